package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/spurtek/spurtek-leads/internal/http/middleware"
	"github.com/spurtek/spurtek-leads/internal/leads"
	"github.com/spurtek/spurtek-leads/internal/observability/metrics"
	"github.com/spurtek/spurtek-leads/internal/ratelimit"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	Limiter            ratelimit.Limiter
	Policies           ratelimit.Policies
	Metrics            *metrics.LeadMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	limit := func(p ratelimit.Policy) func(http.Handler) http.Handler {
		return httpmiddleware.RateLimit(cfg.Limiter, p, cfg.Metrics, cfg.Logger)
	}

	h := cfg.LeadsHandler
	r.Route("/api", func(api chi.Router) {
		api.Route("/leads", func(r chi.Router) {
			r.With(limit(cfg.Policies.Quote)).Post("/quote", h.CreateQuote)
			r.With(limit(cfg.Policies.Demo)).Post("/demo", h.CreateDemo)
			r.With(limit(cfg.Policies.Contact)).Post("/contact", h.CreateContact)
		})
		api.With(limit(cfg.Policies.Download)).Post("/downloads", h.TrackDownload)
		api.With(limit(cfg.Policies.Newsletter)).Post("/newsletter", h.Subscribe)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
