package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all client-side instrumentation
type Metrics struct {
	// Request lifecycle metrics
	RequestsStarted  *prometheus.CounterVec
	RequestsSettled  *prometheus.CounterVec
	RequestLatency   *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	StaleResponses   prometheus.Counter

	// Persisted storage metrics
	StorageOperations *prometheus.CounterVec
}

// New creates and registers all metrics against the given registerer.
// Passing nil uses the default registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_started_total",
			Help:      "Total number of remote requests entering the pending phase",
		}, []string{"operation"}),
		RequestsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_settled_total",
			Help:      "Total number of remote requests settled, by outcome",
		}, []string{"operation", "outcome"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration from pending to settled per operation",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Current number of unsettled remote requests",
		}),
		StaleResponses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer request superseded them",
		}),
		StorageOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of persisted storage operations",
		}, []string{"operation", "status"}),
	}
}
