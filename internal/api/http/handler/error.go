package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// ErrorResponse is the structured error body returned on every failure.
type ErrorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// handleError translates domain errors into the stable HTTP status mapping:
// 400 validation, 401 auth, 404 not-found, 409 conflict, 410 expired,
// 429 attempt-limited, 500 internal. Raw internal errors never reach the
// client.
func handleError(w http.ResponseWriter, err error) {
	var mismatch *model.CodeMismatchError
	if errors.As(err, &mismatch) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:             model.ErrCodeMismatch.Error(),
			RemainingAttempts: &mismatch.RemainingAttempts,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidMobile), errors.Is(err, model.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrAccountDataMissing),
		errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrCodeMismatch):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenMalformed):
		writeError(w, http.StatusUnauthorized, model.ErrUnauthenticated.Error())
	case errors.Is(err, model.ErrCodeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrMobileRegistered):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrCodeExpired):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, model.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
