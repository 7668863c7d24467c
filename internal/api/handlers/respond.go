// Package handlers contains the gateway's HTTP handlers: the auth
// surface, the four role dashboards' data endpoints and the SSE
// session stream.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error's type to an HTTP status. The
// type rides along in the body so clients can tell a partial
// completion from a plain upstream failure.
func respondWithAppError(w http.ResponseWriter, err error) {
	errType := apperrors.TypeOf(err)

	var status int
	switch errType {
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrorTypeConflict:
		status = http.StatusConflict
	case apperrors.ErrorTypeUpstream, apperrors.ErrorTypePartial:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	respondWithJSON(w, status, map[string]string{
		"error": message,
		"type":  string(errType),
	})
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("malformed JSON body")
	}
	return nil
}
