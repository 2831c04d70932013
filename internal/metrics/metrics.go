// Package metrics holds the Prometheus collectors exported by the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector. Build one per registry.
type Metrics struct {
	Registry prometheus.Gatherer

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	CalculationsTotal *prometheus.CounterVec
	SimulationsSaved  prometheus.Counter
	BreakevenSamples  prometheus.Histogram
}

// New registers the collectors on a fresh registry, or on reg when given
func New(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "ptregime"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP request handling in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Total regime calculations performed",
			},
			[]string{"regime"},
		),
		SimulationsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "simulations_saved_total",
				Help:      "Total simulations persisted",
			},
		),
		BreakevenSamples: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "breakeven_samples",
				Help:      "Number of expense samples evaluated per breakeven search",
				Buckets:   prometheus.LinearBuckets(0, 10, 10),
			},
		),
	}
}

// ObserveRequest records one handled request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// CountCalculation records n calculations for a regime
func (m *Metrics) CountCalculation(regime string, n int) {
	m.CalculationsTotal.WithLabelValues(regime).Add(float64(n))
}
