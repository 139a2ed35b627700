package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/matchodds/internal/api/handler"
	"github.com/albapepper/matchodds/internal/config"
	"github.com/albapepper/matchodds/internal/fixture"
	"github.com/albapepper/matchodds/internal/predict"
	"github.com/albapepper/matchodds/internal/predlog"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. plog may be nil when no prediction audit log is configured.
func NewRouter(agg *fixture.Aggregator, engine *predict.Engine, plog *predlog.Store, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(agg, engine, plog, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
		r.Get("/db", h.HealthCheckDB)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", h.GetLeagues)
		r.Get("/matches", h.GetMatches)
		r.Get("/fixtures/{fixtureID}/details", h.GetFixtureDetails)
		r.Get("/predict/{fixtureID}", h.Predict)
	})

	return r
}
