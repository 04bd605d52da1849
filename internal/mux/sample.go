package mux

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"qrng-server/pkg/keys"
	"qrng-server/pkg/model"
	"qrng-server/pkg/randtest"
)

func (m *Mux) getSample() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		samples, err := m.samples.GetSamples(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		resp := make([]*sampleResponse, 0, len(samples))
		for _, sample := range samples {
			sr, err := newSampleResponse(sample)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			resp = append(resp, sr)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) getSampleUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample := r.Context().Value(ctxSampleKey).(*model.Sample)
		m.writeSampleResponse(w, http.StatusOK, sample)
	}
}

type sampleTestsResponse struct {
	UUID   string `json:"uuid"`
	Source string `json:"source"`
	*randtest.Report
}

func (m *Mux) getSampleUUIDTests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample := r.Context().Value(ctxSampleKey).(*model.Sample)

		bits, ok := sampleBits(w, sample)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, sampleTestsResponse{
			UUID:   sample.UUID,
			Source: sample.Source,
			Report: randtest.NewReport(bits),
		})
	}
}

const (
	deriveKindToken = "token"
	deriveKindUUID  = "uuid"
	deriveKindHMAC  = "hmac"
)

type derivePayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type deriveResponse struct {
	UUID    string `json:"uuid"`
	Kind    string `json:"kind"`
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
}

func (m *Mux) postSampleUUIDDerive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample := r.Context().Value(ctxSampleKey).(*model.Sample)

		var payload derivePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		bits, ok := sampleBits(w, sample)
		if !ok {
			return
		}

		resp := deriveResponse{
			UUID: sample.UUID,
			Kind: payload.Kind,
		}

		var err error
		switch payload.Kind {
		case deriveKindToken:
			resp.Result, err = keys.Token(bits)
		case deriveKindUUID:
			var u uuid.UUID
			if u, err = keys.UUID(bits); err == nil {
				resp.Result = u.String()
			}
		case deriveKindHMAC:
			if payload.Message == "" {
				writeJSONError(w, http.StatusBadRequest, errors.New("message is required for hmac"))
				return
			}

			resp.Message = payload.Message
			resp.Result, err = keys.HMAC(bits, payload.Message)
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("kind must be one of token, uuid, hmac"))
			return
		}

		if err != nil {
			if errors.Is(err, keys.ErrNotEnoughBits) {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) deleteSampleUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample := r.Context().Value(ctxSampleKey).(*model.Sample)

		if err := m.samples.DeleteSampleByUUID(r.Context(), sample.UUID); err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}
