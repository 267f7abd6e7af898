package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ContactMetrics records contact details operation outcomes and request
// latencies.
type ContactMetrics interface {
	IncOperation(operation, outcome string)
	ObserveRequestDuration(method, status string, seconds float64)
}

type contactMetrics struct {
	operations      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewContactMetrics registers the contact details metrics on the given
// registry.
func NewContactMetrics(registry *prometheus.Registry) ContactMetrics {
	operations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_details_operations_total",
			Help: "The total number of contact details operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_details_request_duration_seconds",
			Help:    "HTTP request duration distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	return &contactMetrics{
		operations:      operations,
		requestDuration: requestDuration,
	}
}

// IncOperation counts one operation with its outcome label.
func (m *contactMetrics) IncOperation(operation, outcome string) {
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveRequestDuration records one request latency.
func (m *contactMetrics) ObserveRequestDuration(method, status string, seconds float64) {
	m.requestDuration.WithLabelValues(method, status).Observe(seconds)
}
