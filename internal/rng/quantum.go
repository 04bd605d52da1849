package rng

import (
	"crypto/rand"
	"io"

	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/qsim"
)

// Quantum generates bits by measuring simulated Hadamard circuits. Requests
// wider than qsim.MaxQubits are split into batches and concatenated.
type Quantum struct {
	entropy io.Reader
}

// NewQuantum returns a quantum source whose measurement outcomes are drawn
// from crypto/rand, the stand-in for physical entropy
func NewQuantum() *Quantum {
	return &Quantum{entropy: rand.Reader}
}

// NewQuantumWithEntropy returns a quantum source with a caller-supplied
// entropy reader. Handy for deterministic tests.
func NewQuantumWithEntropy(entropy io.Reader) *Quantum {
	return &Quantum{entropy: entropy}
}

// Name returns the source name
func (q *Quantum) Name() string {
	return SourceQuantum
}

// Bits returns n bits by running as many circuits as needed
func (q *Quantum) Bits(n int) (bitstring.Bits, error) {
	if n <= 0 {
		return "", nil
	}

	var out bitstring.Bits
	for remaining := n; remaining > 0; {
		chunk := remaining
		if chunk > qsim.MaxQubits {
			chunk = qsim.MaxQubits
		}

		circuit, err := qsim.Hadamard(chunk)
		if err != nil {
			return "", err
		}

		bits, err := circuit.Measure(q.entropy)
		if err != nil {
			return "", err
		}

		out += bits
		remaining -= chunk
	}

	return out, nil
}
