// Package qsim is a small statevector simulator for product-state quantum
// circuits. Every qubit starts in |0⟩, single-qubit gates keep the state a
// product state, and measurement collapses each qubit independently using an
// external entropy source for the outcome.
package qsim

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"qrng-server/pkg/bitstring"
)

// MaxQubits is the widest circuit a single run will simulate.
// Wider requests must be batched by the caller.
const MaxQubits = 24

const invSqrt2 = 1 / math.Sqrt2

// qubit holds the real amplitudes of |0⟩ and |1⟩. The supported gates
// (H, X, Z) never introduce a complex phase that measurement could observe.
type qubit struct {
	a0, a1 float64
}

// Circuit is a quantum circuit over n independent qubits
type Circuit struct {
	qubits []qubit
	gates  [][]string
}

// New returns a circuit with n qubits in the |0⟩ state
func New(n int) (*Circuit, error) {
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("qubit count must be between 1 and %d, got %d", MaxQubits, n)
	}

	qubits := make([]qubit, n)
	for i := range qubits {
		qubits[i] = qubit{a0: 1}
	}

	return &Circuit{
		qubits: qubits,
		gates:  make([][]string, n),
	}, nil
}

// Hadamard returns a circuit with a Hadamard gate applied to each of the
// n qubits. Measuring it yields n unbiased random bits.
func Hadamard(n int) (*Circuit, error) {
	c, err := New(n)
	if err != nil {
		return nil, err
	}

	for q := 0; q < n; q++ {
		if err := c.ApplyH(q); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Qubits returns the number of qubits in the circuit
func (c *Circuit) Qubits() int {
	return len(c.qubits)
}

func (c *Circuit) checkQubit(q int) error {
	if q < 0 || q >= len(c.qubits) {
		return fmt.Errorf("qubit %d out of range [0, %d)", q, len(c.qubits))
	}

	return nil
}

// ApplyH applies the Hadamard gate to qubit q, putting it into an equal
// superposition of |0⟩ and |1⟩ when starting from a basis state
func (c *Circuit) ApplyH(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}

	s := c.qubits[q]
	c.qubits[q] = qubit{
		a0: (s.a0 + s.a1) * invSqrt2,
		a1: (s.a0 - s.a1) * invSqrt2,
	}
	c.gates[q] = append(c.gates[q], "H")
	return nil
}

// ApplyX applies the Pauli-X (NOT) gate to qubit q
func (c *Circuit) ApplyX(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}

	s := c.qubits[q]
	c.qubits[q] = qubit{a0: s.a1, a1: s.a0}
	c.gates[q] = append(c.gates[q], "X")
	return nil
}

// ApplyZ applies the Pauli-Z gate to qubit q
func (c *Circuit) ApplyZ(q int) error {
	if err := c.checkQubit(q); err != nil {
		return err
	}

	s := c.qubits[q]
	c.qubits[q] = qubit{a0: s.a0, a1: -s.a1}
	c.gates[q] = append(c.gates[q], "Z")
	return nil
}

// Probability returns the probability of measuring qubit q as 1
func (c *Circuit) Probability(q int) (float64, error) {
	if err := c.checkQubit(q); err != nil {
		return 0, err
	}

	return c.qubits[q].a1 * c.qubits[q].a1, nil
}

// Measure performs one shot, collapsing every qubit. The entropy reader
// decides each outcome; bit i of the result comes from qubit i. The qubits
// are left in the measured basis state.
func (c *Circuit) Measure(entropy io.Reader) (bitstring.Bits, error) {
	var sb strings.Builder
	sb.Grow(len(c.qubits))

	for q := range c.qubits {
		p1 := c.qubits[q].a1 * c.qubits[q].a1

		u, err := uniform(entropy)
		if err != nil {
			return "", fmt.Errorf("could not sample measurement outcome: %w", err)
		}

		if u < p1 {
			sb.WriteByte('1')
			c.qubits[q] = qubit{a1: 1}
		} else {
			sb.WriteByte('0')
			c.qubits[q] = qubit{a0: 1}
		}
	}

	return bitstring.Bits(sb.String()), nil
}

// uniform draws a value in [0, 1) with 53 bits of precision
func uniform(entropy io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return 0, err
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53), nil
}
