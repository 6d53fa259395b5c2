package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"foodtruth/internal/middleware"
	"foodtruth/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response carrying the request's correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.CorrelationIDFromContext(r.Context()),
	}, logger)
}

// domainStatus maps domain error codes to HTTP statuses.
var domainStatus = map[string]int{
	model.ErrCodeInvalidBarcode:    http.StatusBadRequest,
	model.ErrCodeUnknownPreference: http.StatusBadRequest,
	model.ErrCodeProductNotFound:   http.StatusNotFound,
	model.ErrCodeAdditiveNotFound:  http.StatusNotFound,
}

// writeDomainError writes err with its domain code, or a 500 for anything else.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		if status, ok := domainStatus[de.Code]; ok {
			writeError(w, r, status, de.Code, de.Message, logger)
			return
		}
	}
	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) {
	writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
}

// pathParam returns the path segment after prefix, or "" when there is none.
func pathParam(r *http.Request, prefix string) string {
	if !strings.HasPrefix(r.URL.Path, prefix) {
		return ""
	}
	return strings.Trim(r.URL.Path[len(prefix):], "/")
}
