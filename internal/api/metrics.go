package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one server instance.
// Each instance owns its registry so several servers can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Calculations *prometheus.CounterVec
	Statements   *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors under namespace
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Calculator runs by calculator and outcome",
			},
			[]string{"calculator", "outcome"},
		),
		Statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statements_exported_total",
				Help:      "Monthly statements exported by format",
			},
			[]string{"format"},
		),
	}
	m.registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Calculations, m.Statements)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeCalculation(calculator string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.Calculations.WithLabelValues(calculator, outcome).Inc()
}
