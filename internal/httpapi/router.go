// Package httpapi wires the HTTP surface of the journaling service.
// It keeps handlers thin, delegating persistence to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/learningsteps/api/internal/service/entry"
)

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through the service.
type Server struct {
	svc     entry.Service
	repo    entry.Repo
	metrics *metrics
	log     *slog.Logger
	rt      *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The logger is
// used by request/response logging and panic recovery; the registry receives
// the request metrics and backs the /metrics scrape endpoint.
func New(repo entry.Repo, writer entry.Writer, logger *slog.Logger, reg *prometheus.Registry) *Server {
	r := chi.NewRouter()
	m := newMetrics(reg)
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	// Innermost so a handler panic is recorded as 500 before the recoverer
	// renders it.
	r.Use(m.middleware)

	s := &Server{
		svc:     entry.New(repo, writer),
		repo:    repo,
		metrics: m,
		rt:      r,
		log:     logger,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// MetricsHandler exposes the scrape endpoint, for mounting on a dedicated
// listener as well as the main router.
func (s *Server) MetricsHandler() http.Handler { return s.metrics.Handler() }

// routes declares the public HTTP API endpoints and attaches any per-route
// middleware.
func (s *Server) routes() {
	s.rt.With(s.validateCreateEntry()).Post("/entries", s.createEntry)
	s.rt.Get("/entries", s.listEntries)
	s.rt.Get("/entries/{id}", s.getEntry)
	s.rt.Patch("/entries/{id}", s.updateEntry)
	s.rt.Delete("/entries/{id}", s.deleteEntry)
	s.rt.Delete("/entries", s.deleteAllEntries)
	// Liveness + health
	s.rt.Get("/", s.root)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	// Prometheus scrape endpoint
	s.rt.Handle("/metrics", s.metrics.Handler())
}
