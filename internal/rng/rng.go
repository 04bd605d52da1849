package rng

import (
	"fmt"

	"qrng-server/pkg/bitstring"
)

// Source names accepted by FromName
const (
	SourceQuantum   = "quantum"
	SourceClassical = "classical"
	SourceCrypto    = "crypto"
)

// Source produces random bit sequences
type Source interface {
	// Name identifies the source
	Name() string

	// Bits will return a sequence of n random bits
	Bits(n int) (bitstring.Bits, error)
}

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

var (
	defaultQuantum   = NewQuantum()
	defaultClassical = NewClassical()
	defaultCrypto    = Crypto{}
)

// FromName returns the shared source with the given name
func FromName(name string) (Source, error) {
	switch name {
	case SourceQuantum:
		return defaultQuantum, nil
	case SourceClassical:
		return defaultClassical, nil
	case SourceCrypto:
		return defaultCrypto, nil
	}

	return nil, fmt.Errorf("unknown source %q", name)
}
