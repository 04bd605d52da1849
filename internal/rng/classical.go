package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"qrng-server/pkg/bitstring"
)

// Classical is a deterministic, seeded PRNG source. Given the same seed it
// reproduces the same sequence, which is the whole point of comparing it
// against the quantum source.
type Classical struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewClassical returns a classical source seeded from the operating system
func NewClassical() *Classical {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic(err)
	}

	return NewClassicalWithSeed(int64(binary.BigEndian.Uint64(buf[:])))
}

// NewClassicalWithSeed returns a classical source with a fixed seed
func NewClassicalWithSeed(seed int64) *Classical {
	return &Classical{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Name returns the source name
func (c *Classical) Name() string {
	return SourceClassical
}

// Bits returns n bits from the underlying PRNG
func (c *Classical) Bits(n int) (bitstring.Bits, error) {
	if n <= 0 {
		return "", nil
	}

	buf := make([]byte, (n+7)/8)

	c.mu.Lock()
	_, _ = c.rnd.Read(buf) // math/rand Read cannot fail
	c.mu.Unlock()

	return bitstring.FromBytes(buf, n)
}
