package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"foodtruth/internal/model"
	"foodtruth/internal/preferences"

	"github.com/rs/zerolog"
)

// PreferencesHandler reads and updates dietary preferences.
type PreferencesHandler struct {
	store  preferences.Store
	logger zerolog.Logger
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(store preferences.Store, logger zerolog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		store:  store,
		logger: logger.With().Str("handler", "preferences").Logger(),
	}
}

// Collection handles GET and PUT /api/preferences.
func (h *PreferencesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Get(r.Context()), h.logger)

	case http.MethodPut:
		var prefs model.Preferences
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&prefs); err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}
		if err := h.store.Set(r.Context(), prefs); err != nil {
			writeDomainError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, prefs, h.logger)

	default:
		methodNotAllowed(w, r, h.logger)
	}
}

// Toggle handles POST /api/preferences/{name}/toggle.
func (h *PreferencesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, h.logger)
		return
	}

	name, ok := strings.CutSuffix(pathParam(r, "/api/preferences/"), "/toggle")
	if !ok || name == "" {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "not found", h.logger)
		return
	}

	prefs, err := h.store.Toggle(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, prefs, h.logger)
}
