package randtest

import (
	"fmt"
	"math"
)

// Bin is a single histogram bucket over the closed interval [Low, High]
type Bin struct {
	Low   int `json:"low"`
	High  int `json:"high"`
	Count int `json:"count"`
}

// Histogram summarizes a batch of bounded integers: central moments, bucket
// counts, and a chi-square uniformity test across the buckets
type Histogram struct {
	Count     int     `json:"count"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`
	Mean      float64 `json:"mean"`
	Variance  float64 `json:"variance"`
	Bins      []Bin   `json:"bins"`
	ChiSquare float64 `json:"chiSquare"`
	PValue    float64 `json:"pValue"`
}

// NewHistogram buckets values drawn from the closed interval [min, max] into
// the requested number of bins. The bin count is clamped to the range size.
func NewHistogram(values []int, min, max, bins int) (*Histogram, error) {
	if min > max {
		return nil, fmt.Errorf("min (%d) cannot be greater than max (%d)", min, max)
	}

	if bins < 1 {
		return nil, fmt.Errorf("bins must be at least 1, got %d", bins)
	}

	rangeSize := max - min + 1
	if bins > rangeSize {
		bins = rangeSize
	}

	h := &Histogram{
		Count: len(values),
		Min:   min,
		Max:   max,
		Bins:  make([]Bin, bins),
	}

	width := float64(rangeSize) / float64(bins)
	for i := range h.Bins {
		h.Bins[i].Low = min + int(math.Ceil(float64(i)*width))
		h.Bins[i].High = min + int(math.Ceil(float64(i+1)*width)) - 1
	}

	var sum float64
	for _, v := range values {
		if v < min || v > max {
			return nil, fmt.Errorf("value %d outside of [%d, %d]", v, min, max)
		}

		idx := int(float64(v-min) / width)
		if idx >= bins {
			idx = bins - 1
		}

		h.Bins[idx].Count++
		sum += float64(v)
	}

	if len(values) == 0 {
		h.PValue = 1
		return h, nil
	}

	n := float64(len(values))
	h.Mean = sum / n

	var sqSum float64
	for _, v := range values {
		d := float64(v) - h.Mean
		sqSum += d * d
	}
	h.Variance = sqSum / n

	if bins > 1 {
		observed := make([]float64, bins)
		expected := make([]float64, bins)
		for i, b := range h.Bins {
			observed[i] = float64(b.Count)
			// expectation is proportional to how many values the bucket covers
			expected[i] = n * float64(b.High-b.Low+1) / float64(rangeSize)
		}

		chi2, p, err := ChiSquare(observed, expected)
		if err != nil {
			return nil, err
		}

		h.ChiSquare = chi2
		h.PValue = p
	} else {
		h.PValue = 1
	}

	return h, nil
}
