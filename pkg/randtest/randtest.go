// Package randtest implements the randomness checks exposed by the Tests and
// Compare pages: frequency (monobit), runs, Shannon entropy, and chi-square
// goodness of fit with p-values.
package randtest

import (
	"errors"
	"math"

	"qrng-server/pkg/bitstring"
)

// ErrLengthMismatch happens if observed and expected counts differ in length
var ErrLengthMismatch = errors.New("observed and expected must have the same length")

// Frequency counts the zeros and ones in the sequence
func Frequency(b bitstring.Bits) (zeros, ones int) {
	return b.Count()
}

// Runs returns the observed number of runs (maximal substrings of equal bits)
// and the expected count (2n-1)/3 for an unbiased sequence of length n
func Runs(b bitstring.Bits) (observed int, expected float64) {
	n := b.Len()
	if n == 0 {
		return 0, 0
	}

	observed = 1
	for i := 1; i < n; i++ {
		if b[i] != b[i-1] {
			observed++
		}
	}

	expected = float64(2*n-1) / 3
	return
}

// Entropy returns the Shannon entropy in bits per symbol; 1.0 is the maximum
// for a binary sequence
func Entropy(b bitstring.Bits) float64 {
	n := b.Len()
	if n == 0 {
		return 0
	}

	zeros, ones := b.Count()

	h := 0.0
	for _, c := range []int{zeros, ones} {
		if c > 0 {
			p := float64(c) / float64(n)
			h -= p * math.Log2(p)
		}
	}

	return h
}

// ChiSquare performs a chi-square goodness-of-fit test of the observed counts
// against the expected counts, with len(observed)-1 degrees of freedom
func ChiSquare(observed, expected []float64) (chi2, p float64, err error) {
	if len(observed) != len(expected) {
		return 0, 0, ErrLengthMismatch
	}

	if len(observed) < 2 {
		return 0, 1, nil
	}

	for i := range observed {
		if expected[i] <= 0 {
			return 0, 0, errors.New("expected counts must be positive")
		}

		d := observed[i] - expected[i]
		chi2 += d * d / expected[i]
	}

	df := float64(len(observed) - 1)
	return chi2, igamc(df/2, chi2/2), nil
}

// ChiSquareBits tests the zero/one counts of the sequence against a fair
// 50/50 split. An empty sequence reports no bias (chi2 0, p 1).
func ChiSquareBits(b bitstring.Bits) (chi2, p float64) {
	n := b.Len()
	if n == 0 {
		return 0, 1
	}

	zeros, ones := b.Count()
	half := float64(n) / 2

	chi2, p, _ = ChiSquare([]float64{float64(zeros), float64(ones)}, []float64{half, half})
	return
}

// Report bundles every test result for a single bit sequence
type Report struct {
	Length       int     `json:"length"`
	Zeros        int     `json:"zeros"`
	Ones         int     `json:"ones"`
	RunsObserved int     `json:"runsObserved"`
	RunsExpected float64 `json:"runsExpected"`
	Entropy      float64 `json:"entropy"`
	ChiSquare    float64 `json:"chiSquare"`
	PValue       float64 `json:"pValue"`
}

// NewReport runs all tests against the sequence
func NewReport(b bitstring.Bits) *Report {
	zeros, ones := Frequency(b)
	runsObs, runsExp := Runs(b)
	chi2, p := ChiSquareBits(b)

	return &Report{
		Length:       b.Len(),
		Zeros:        zeros,
		Ones:         ones,
		RunsObserved: runsObs,
		RunsExpected: runsExp,
		Entropy:      Entropy(b),
		ChiSquare:    chi2,
		PValue:       p,
	}
}
