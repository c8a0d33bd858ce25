package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/metrics"
	"github.com/claude/fitplan/internal/models"
	"github.com/claude/fitplan/internal/planner"
	"github.com/claude/fitplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the Postgres-backed catalog the server writes uploads to and reads
// stats from. It is nil when the server plans from a CSV file.
type Store interface {
	ReplaceExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	QueryImportLogs(ctx context.Context, limit int) ([]storage.ImportLog, error)
	GetCatalogStats(ctx context.Context) (*storage.CatalogStats, error)
}

var _ Store = (*storage.DB)(nil)

// Deps holds everything the HTTP handlers need.
type Deps struct {
	Source   catalog.Source
	Store    Store
	Defaults models.PlanConfig
	APIKey   string
	Registry *prometheus.Registry
	Log      *slog.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	source   catalog.Source
	store    Store
	defaults models.PlanConfig
	planner  *planner.Planner
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(d Deps) *Server {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Log == nil {
		d.Log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		source:   d.Source,
		store:    d.Store,
		defaults: d.Defaults,
		planner:  planner.New(d.Log),
		metrics:  metrics.New(d.Registry),
		registry: d.Registry,
		log:      d.Log,
		apiKey:   d.APIKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/exercises", s.handleListExercises)
		r.Post("/plan", s.handlePlan)
		r.Get("/stats", s.handleStats)
		r.Get("/imports", s.handleImportLogs)

		// Catalog upload (API key required)
		r.With(APIKeyAuth(s.apiKey)).Post("/catalog", s.handleCatalogUpload)
	})
}

// Mount attaches an extra handler (such as the MCP endpoint) under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}
