package mux

import (
	"fmt"
	"net/http"
	"strconv"

	"qrng-server/pkg/qsim"
)

const defaultCircuitQubits = 6

type circuitResponse struct {
	Qubits        int       `json:"qubits"`
	Drawing       string    `json:"drawing"`
	Probabilities []float64 `json:"probabilities"`
}

// getCircuit renders the Hadamard circuit the quantum source measures, for
// the Theory and Simulator pages
func (m *Mux) getCircuit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qubits := defaultCircuitQubits
		if qubitsStr := r.FormValue("qubits"); qubitsStr != "" {
			val, err := strconv.Atoi(qubitsStr)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			qubits = val
		}

		if qubits < 1 || qubits > qsim.MaxQubits {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("qubits must be between 1 and %d", qsim.MaxQubits))
			return
		}

		circuit, err := qsim.Hadamard(qubits)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		probabilities := make([]float64, qubits)
		for q := 0; q < qubits; q++ {
			p, err := circuit.Probability(q)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			probabilities[q] = p
		}

		writeJSON(w, http.StatusOK, circuitResponse{
			Qubits:        qubits,
			Drawing:       circuit.Draw(),
			Probabilities: probabilities,
		})
	}
}
