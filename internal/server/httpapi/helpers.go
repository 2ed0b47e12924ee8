// Shared response helpers for the HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkalvans/cinetrack/internal/common"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a standard {error: code, message: msg} JSON error response.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// decodeJSON decodes the request body into v.
// Returns false and writes a 400 if decoding fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return false
	}
	return true
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognized is a storage or internal failure and must surface
// as a 500, never as an empty success.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation", "invalid request")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication failed")
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", "resource already exists")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
