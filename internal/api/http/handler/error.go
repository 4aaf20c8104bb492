package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/provider-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, msg string) {
	writeJSON(w, statusCode, errorResponse{Error: msg})
}

// handleError maps service errors onto HTTP responses. Validation failures
// come back as a field-to-message map; credential errors stay generic.
func handleError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrNothingAffected),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrAccountLocked):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
