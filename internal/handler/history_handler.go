package handler

import (
	"net/http"

	"foodtruth/internal/history"
	"foodtruth/internal/model"

	"github.com/rs/zerolog"
)

// HistoryHandler exposes the scan history.
type HistoryHandler struct {
	log    history.Log
	logger zerolog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(log history.Log, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		log:    log,
		logger: logger.With().Str("handler", "history").Logger(),
	}
}

// Collection handles GET and DELETE /api/history.
func (h *HistoryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.log.List(r.Context()), h.logger)
	case http.MethodDelete:
		h.log.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, h.logger)
	}
}

// Remove handles DELETE /api/history/{barcode}.
func (h *HistoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, h.logger)
		return
	}

	barcode := pathParam(r, "/api/history/")
	if !h.log.Remove(r.Context(), barcode) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "barcode not in history", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
