package router

import (
	"net/http"
	"strings"

	"foodtruth/internal/handler"
	"foodtruth/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product     *handler.ProductHandler
	Additive    *handler.AdditiveHandler
	History     *handler.HistoryHandler
	Preferences *handler.PreferencesHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/products/", h.Product.Get)
	mux.HandleFunc("/api/cache", h.Product.ClearCache)
	mux.HandleFunc("/api/additives/", h.Additive.Get)

	mux.HandleFunc("/api/history", h.History.Collection)
	mux.HandleFunc("/api/history/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/history/" {
			h.History.Collection(w, r)
			return
		}
		h.History.Remove(w, r)
	})

	mux.HandleFunc("/api/preferences", h.Preferences.Collection)
	mux.HandleFunc("/api/preferences/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/toggle") {
			h.Preferences.Toggle(w, r)
			return
		}
		h.Preferences.Collection(w, r)
	})

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CorrelationID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
