package mux

import (
	"errors"
	"net/http"

	"qrng-server/internal/jwt"
	"qrng-server/pkg/model"
)

type operatorAuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type operatorAuthResponse struct {
	JWT      string          `json:"jwt"`
	Operator *model.Operator `json:"operator"`
}

func (m *Mux) postOperatorAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload operatorAuthPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		operator, err := m.operators.GetOperatorByUsernameAndPassword(r.Context(), payload.Username, payload.Password)
		if err != nil {
			if err == model.ErrInvalidUsernameOrPassword {
				writeJSONError(w, http.StatusUnauthorized, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signed, err := jwt.Sign(operator.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, operatorAuthResponse{
			JWT:      signed,
			Operator: operator,
		})
	}
}

type operatorCreatePayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (m *Mux) postOperator() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload operatorCreatePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Username == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("username is required"))
			return
		}

		operator, err := m.operators.CreateOperator(r.Context(), payload.Username, payload.Password)
		if err != nil {
			if err == model.ErrDuplicateKey {
				writeJSONError(w, http.StatusConflict, err)
				return
			}

			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, operator)
	}
}

func (m *Mux) getOperator() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		operators, err := m.operators.GetOperators(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, operators)
	}
}
