package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the link module.
type Metrics struct {
	// Links created by mode: "manual", "bulk", "auto"
	LinksCreated *prometheus.CounterVec

	// Links removed by operation: "unlink", "clear"
	LinksDeleted *prometheus.CounterVec

	// Links flipped to verified
	LinksVerified prometheus.Counter

	// Auto-link pass outcomes
	AutoLinkRuns prometheus.Counter

	// Operation latencies by operation name
	OperationLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all link module metrics registered.
func New() *Metrics {
	return &Metrics{
		LinksCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auditlink_links_created_total",
			Help: "Total links created by mode",
		}, []string{"mode"}),

		LinksDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auditlink_links_deleted_total",
			Help: "Total links removed by operation",
		}, []string{"operation"}),

		LinksVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auditlink_links_verified_total",
			Help: "Total links marked verified",
		}),

		AutoLinkRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auditlink_autolink_runs_total",
			Help: "Total auto-link passes executed",
		}),

		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auditlink_link_operation_duration_seconds",
			Help:    "Duration of link engine operations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}
}

// AddCreated records links created in one operation.
func (m *Metrics) AddCreated(mode string, n int) {
	if m != nil && n > 0 {
		m.LinksCreated.WithLabelValues(mode).Add(float64(n))
	}
}

// AddDeleted records links removed in one operation.
func (m *Metrics) AddDeleted(operation string, n int) {
	if m != nil && n > 0 {
		m.LinksDeleted.WithLabelValues(operation).Add(float64(n))
	}
}

// AddVerified records links marked verified.
func (m *Metrics) AddVerified(n int) {
	if m != nil && n > 0 {
		m.LinksVerified.Add(float64(n))
	}
}

// IncrementAutoLinkRuns records one auto-link pass.
func (m *Metrics) IncrementAutoLinkRuns() {
	if m != nil {
		m.AutoLinkRuns.Inc()
	}
}

// ObserveOperation records the duration of one engine operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
