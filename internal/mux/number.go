package mux

import (
	"fmt"
	"net/http"

	"qrng-server/internal/rng"
	"qrng-server/pkg/randtest"
)

const maxNumberCount = 10000
const defaultBins = 10

type numberPayload struct {
	Source string `json:"source"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Count  int    `json:"count"`
	Bins   int    `json:"bins"`
}

type numberResponse struct {
	Source    string              `json:"source"`
	Min       int                 `json:"min"`
	Max       int                 `json:"max"`
	Value     *int                `json:"value,omitempty"`
	Values    []int               `json:"values,omitempty"`
	Histogram *randtest.Histogram `json:"histogram,omitempty"`
}

// postNumber draws bounded integers from the chosen source. Every value lies
// in the closed interval [min, max]. With count > 1 the response includes a
// histogram with mean, variance, and a uniformity chi-square.
func (m *Mux) postNumber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := numberPayload{
			Source: rng.SourceQuantum,
			Count:  1,
			Bins:   defaultBins,
		}
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Min > payload.Max {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("min (%d) cannot be greater than max (%d)", payload.Min, payload.Max))
			return
		}

		if payload.Count < 1 || payload.Count > maxNumberCount {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", maxNumberCount))
			return
		}

		if payload.Bins < 1 {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("bins must be at least 1, got %d", payload.Bins))
			return
		}

		source, err := m.sources(payload.Source)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		values := make([]int, payload.Count)
		for i := range values {
			v, err := rng.IntBetween(source, payload.Min, payload.Max)
			if err != nil {
				if err == rng.ErrRangeTooLarge {
					writeJSONError(w, http.StatusBadRequest, err)
					return
				}

				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			values[i] = v
		}

		resp := numberResponse{
			Source: source.Name(),
			Min:    payload.Min,
			Max:    payload.Max,
		}

		if payload.Count == 1 {
			resp.Value = &values[0]
			writeJSON(w, http.StatusOK, resp)
			return
		}

		histogram, err := randtest.NewHistogram(values, payload.Min, payload.Max, payload.Bins)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		resp.Values = values
		resp.Histogram = histogram
		writeJSON(w, http.StatusOK, resp)
	}
}
