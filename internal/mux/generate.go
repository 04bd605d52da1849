package mux

import (
	"fmt"
	"net/http"
	"time"

	"qrng-server/internal/rng"
	"qrng-server/pkg/bitstring"
	"qrng-server/pkg/model"
)

type generatePayload struct {
	Source string `json:"source"`
	Bits   int    `json:"bits"`
}

type sampleResponse struct {
	UUID    string    `json:"uuid"`
	Source  string    `json:"source"`
	Bits    string    `json:"bits"`
	Length  int       `json:"length"`
	Integer string    `json:"integer"`
	Hex     string    `json:"hex"`
	Base64  string    `json:"base64"`
	Created time.Time `json:"created"`
}

func newSampleResponse(sample *model.Sample) (*sampleResponse, error) {
	bits, err := sample.BitSequence()
	if err != nil {
		return nil, err
	}

	return &sampleResponse{
		UUID:    sample.UUID,
		Source:  sample.Source,
		Bits:    bits.String(),
		Length:  bits.Len(),
		Integer: bits.Int().String(),
		Hex:     bits.Hex(),
		Base64:  bits.Base64(),
		Created: sample.Created,
	}, nil
}

func (m *Mux) postGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := generatePayload{
			Source: rng.SourceQuantum,
		}
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Bits < 1 || payload.Bits > m.config.maxBits {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("bits must be between 1 and %d", m.config.maxBits))
			return
		}

		source, err := m.sources(payload.Source)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		bits, err := source.Bits(payload.Bits)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		sample, err := m.samples.CreateSample(r.Context(), source.Name(), bits)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.writeSampleResponse(w, http.StatusCreated, sample)
	}
}

func (m *Mux) writeSampleResponse(w http.ResponseWriter, statusCode int, sample *model.Sample) {
	resp, err := newSampleResponse(sample)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, statusCode, resp)
}

// sampleBits pulls the validated bit sequence out of an archived sample
func sampleBits(w http.ResponseWriter, sample *model.Sample) (bitstring.Bits, bool) {
	bits, err := sample.BitSequence()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return "", false
	}

	return bits, true
}
