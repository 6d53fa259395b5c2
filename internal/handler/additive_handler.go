package handler

import (
	"errors"
	"net/http"

	"foodtruth/internal/additive"
	"foodtruth/internal/middleware"
	"foodtruth/internal/model"
	"foodtruth/internal/service"

	"github.com/rs/zerolog"
)

// AdditiveHandler handles additive lookups.
type AdditiveHandler struct {
	service service.AdditiveService
	logger  zerolog.Logger
}

// unidentifiedResponse is returned for codes missing from the knowledge base.
type unidentifiedResponse struct {
	model.ErrorResponse
	Code         string `json:"code"`
	Unidentified bool   `json:"unidentified"`
}

// NewAdditiveHandler creates a new additive handler.
func NewAdditiveHandler(service service.AdditiveService, logger zerolog.Logger) *AdditiveHandler {
	return &AdditiveHandler{
		service: service,
		logger:  logger.With().Str("handler", "additive").Logger(),
	}
}

// Get handles GET /api/additives/{code} requests.
func (h *AdditiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	code := pathParam(r, "/api/additives/")
	if code == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeAdditiveNotFound, "additive code is required", h.logger)
		return
	}

	record, err := h.service.Get(r.Context(), code)
	if errors.Is(err, model.ErrAdditiveNotFound) {
		h.logger.Debug().Str("code", code).Msg("unidentified additive")
		writeJSON(w, http.StatusNotFound, unidentifiedResponse{
			ErrorResponse: model.ErrorResponse{
				Error:         model.ErrCodeAdditiveNotFound,
				Message:       model.ErrAdditiveNotFound.Message,
				CorrelationID: middleware.CorrelationIDFromContext(r.Context()),
			},
			Code:         additive.DisplayCode(code),
			Unidentified: true,
		}, h.logger)
		return
	}
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, record, h.logger)
}
