package metrics

import (
	"strconv"

	"github.com/claude/fitplan/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Plan outcomes.
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
)

// Metrics holds the Prometheus collectors for the planner service.
type Metrics struct {
	PlansTotal          *prometheus.CounterVec
	PlanSessions        prometheus.Histogram
	FallbackPicks       prometheus.Counter
	CatalogImports      *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PlansTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitplan_plans_total",
				Help: "Weekly plans produced, by outcome",
			},
			[]string{"outcome"},
		),
		PlanSessions: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fitplan_plan_sessions",
				Help:    "Sessions per produced plan",
				Buckets: prometheus.LinearBuckets(0, 1, 15),
			},
		),
		FallbackPicks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "fitplan_fallback_picks_total",
				Help: "Sessions filled from the equipment-only fallback pool",
			},
		),
		CatalogImports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitplan_catalog_imports_total",
				Help: "Catalog imports, by status",
			},
			[]string{"status"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitplan_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fitplan_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordPlan counts a produced plan.
func (m *Metrics) RecordPlan(plan models.WeekPlan) {
	outcome := OutcomeComplete
	if !plan.Complete() {
		outcome = OutcomePartial
	}
	m.PlansTotal.WithLabelValues(outcome).Inc()
	m.PlanSessions.Observe(float64(len(plan.Sessions)))
	m.FallbackPicks.Add(float64(plan.FallbackCount()))
}

// RecordImport counts a catalog import attempt.
func (m *Metrics) RecordImport(status string) {
	m.CatalogImports.WithLabelValues(status).Inc()
}

// RecordHTTPRequest counts a served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
