package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/graphmsg/internal/api/middleware"
	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/handlers"
)

// NewRouter creates the read-only ops router. Messages are never
// delivered over HTTP; this only exposes health, registry state and metrics.
func NewRouter(logger zerolog.Logger, registry *graph.Registry) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.ReadOnly)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	h := handlers.NewHandler(registry)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/graph", h.Graph)
	r.Get("/who/{id}", h.Who)

	return r
}
