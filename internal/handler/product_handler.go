package handler

import (
	"net/http"

	"foodtruth/internal/model"
	"foodtruth/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Get handles GET /api/products/{barcode} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, h.logger)
		return
	}

	raw := pathParam(r, "/api/products/")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidBarcode, "barcode is required", h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), raw)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// ClearCache handles DELETE /api/cache requests.
func (h *ProductHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, h.logger)
		return
	}

	h.service.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
