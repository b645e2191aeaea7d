/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:      Unique ID per request for tracing
  2. RequestLogger:  zerolog line per request, logger in context
  3. Recoverer:      Panic recovery (500 instead of crash)
  4. CORS:           Cross-origin GETs for a separate frontend

ROUTES:
  /api/*     JSON API (see handlers.go)
  /charts    go-echarts HTML page
  /          HTML dashboard

SECURITY NOTE:
  No authentication. The dashboard is read-only; loads happen through
  cmd/load, never over HTTP.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/rows", h.Rows)
		r.Get("/low-stock", h.LowStock)
		r.Get("/export", h.Export)
		r.Get("/ingest-runs", h.ListIngestRuns)
		r.Get("/alerts/latest", h.LatestAlert)
	})

	r.Get("/charts", h.Charts)
	r.Get("/", h.Index)

	return r
}
