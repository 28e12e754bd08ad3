package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the registration workflow. Each
// instance owns its registry, so wiring and tests can build them freely.
type Metrics struct {
	registry *prometheus.Registry

	// Stage submissions by stage and result
	StageOutcome *prometheus.CounterVec

	// Completed registrations
	RegistrationsCompleted prometheus.Counter

	// Identity documents written to the content store
	DocumentsStored prometheus.Counter

	// Workflow aborts by reason (session-expired, data-validation-failed)
	WorkflowFailures *prometheus.CounterVec

	// HTTP request latency by method, path and status
	RequestDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all workflow metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		StageOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardreg_stage_submissions_total",
			Help: "Total wizard stage submissions by stage and result",
		}, []string{"stage", "result"}), // stage: "register", "document", "confirm"

		RegistrationsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardreg_registrations_completed_total",
			Help: "Total registrations finalized at the confirmation stage",
		}),

		DocumentsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardreg_documents_stored_total",
			Help: "Total identity documents persisted to the content store",
		}),

		WorkflowFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardreg_workflow_failures_total",
			Help: "Total workflow aborts by reason",
		}, []string{"reason"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cardreg_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method, path and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path", "status"}),
	}
}

// Handler returns an HTTP handler exposing this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementStage records a wizard stage submission outcome.
func (m *Metrics) IncrementStage(stage, result string) {
	if m != nil {
		m.StageOutcome.WithLabelValues(stage, result).Inc()
	}
}

// IncrementCompleted records a finalized registration.
func (m *Metrics) IncrementCompleted() {
	if m != nil {
		m.RegistrationsCompleted.Inc()
	}
}

// IncrementDocumentStored records a document write to the content store.
func (m *Metrics) IncrementDocumentStored() {
	if m != nil {
		m.DocumentsStored.Inc()
	}
}

// IncrementFailure records a workflow abort.
func (m *Metrics) IncrementFailure(reason string) {
	if m != nil {
		m.WorkflowFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveRequest records an HTTP request duration.
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	}
}
