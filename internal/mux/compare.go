package mux

import (
	"fmt"
	"net/http"

	"qrng-server/internal/rng"
	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/randtest"
)

type comparePayload struct {
	Bits int `json:"bits"`
}

// compareSide is one half of a quantum vs classical comparison
type compareSide struct {
	Source      string  `json:"source"`
	Bits        string  `json:"bits"`
	Zeros       int     `json:"zeros"`
	Ones        int     `json:"ones"`
	ZeroPercent float64 `json:"zeroPercent"`
	OnePercent  float64 `json:"onePercent"`
	Entropy     float64 `json:"entropy"`
	ChiSquare   float64 `json:"chiSquare"`
	PValue      float64 `json:"pValue"`
}

type compareResponse struct {
	Length    int         `json:"length"`
	Quantum   compareSide `json:"quantum"`
	Classical compareSide `json:"classical"`
}

func newCompareSide(source string, bits bitstring.Bits) compareSide {
	zeros, ones := randtest.Frequency(bits)
	chi2, p := randtest.ChiSquareBits(bits)

	side := compareSide{
		Source:    source,
		Bits:      bits.String(),
		Zeros:     zeros,
		Ones:      ones,
		Entropy:   randtest.Entropy(bits),
		ChiSquare: chi2,
		PValue:    p,
	}

	if n := bits.Len(); n > 0 {
		side.ZeroPercent = float64(zeros) / float64(n) * 100
		side.OnePercent = float64(ones) / float64(n) * 100
	}

	return side
}

// postCompare generates a quantum and a classical sequence of equal length
// and reports the balance statistics side by side
func (m *Mux) postCompare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload comparePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Bits < 1 || payload.Bits > m.config.maxBits {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("bits must be between 1 and %d", m.config.maxBits))
			return
		}

		resp := compareResponse{Length: payload.Bits}

		for _, side := range []struct {
			name string
			out  *compareSide
		}{
			{rng.SourceQuantum, &resp.Quantum},
			{rng.SourceClassical, &resp.Classical},
		} {
			source, err := m.sources(side.name)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			bits, err := source.Bits(payload.Bits)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			*side.out = newCompareSide(side.name, bits)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
