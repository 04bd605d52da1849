package rng

import (
	"crypto/rand"
	"math/big"

	"qrng-server/pkg/bitstring"
)

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Name returns the source name
func (c Crypto) Name() string {
	return SourceCrypto
}

// Bits returns n bits read from the operating system's CSPRNG
func (c Crypto) Bits(n int) (bitstring.Bits, error) {
	if n <= 0 {
		return "", nil
	}

	return bitstring.Read(rand.Reader, n)
}

// Intn returns a random number from 0 < n
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
