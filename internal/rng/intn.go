package rng

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrRangeTooLarge happens if a bounded request covers more than 2^31 values
var ErrRangeTooLarge = errors.New("range is too large")

const maxRangeSize = 1 << 31

// Intn returns a number in [0, n) drawn from the source, using rejection
// sampling so every value is equally likely
func Intn(src Source, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("n must be positive, got %d", n)
	}

	if n == 1 {
		return 0, nil
	}

	width := bits.Len(uint(n - 1))
	for {
		b, err := src.Bits(width)
		if err != nil {
			return 0, err
		}

		v := int(b.Int().Int64())
		if v < n {
			return v, nil
		}
	}
}

// IntBetween returns a number in the closed interval [min, max]
func IntBetween(src Source, min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min (%d) cannot be greater than max (%d)", min, max)
	}

	// the difference is computed in uint64 so extreme bounds cannot overflow
	diff := uint64(max) - uint64(min)
	if diff >= maxRangeSize {
		return 0, ErrRangeTooLarge
	}

	v, err := Intn(src, int(diff)+1)
	if err != nil {
		return 0, err
	}

	return min + v, nil
}
