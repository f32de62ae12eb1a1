// Package metrics exposes Prometheus instruments for the dashboard engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the dashboard instruments on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FilterEvaluations prometheus.Counter
	FilterDuration    prometheus.Histogram
	ViewRows          prometheus.Gauge
	DatasetRows       prometheus.Gauge
}

// New creates and registers all instruments.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilterEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "filter_evaluations_total",
			Help:      "Number of filter selections evaluated.",
		}),
		FilterDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Name:      "filter_duration_seconds",
			Help:      "Time spent filtering and aggregating one selection.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		ViewRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "view_rows",
			Help:      "Rows in the most recently evaluated view.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "dataset_rows",
			Help:      "Rows in the loaded canonical dataset.",
		}),
	}
	m.registry.MustRegister(m.FilterEvaluations, m.FilterDuration, m.ViewRows, m.DatasetRows)
	return m
}

// ObserveEvaluation records one filter evaluation.
func (m *Metrics) ObserveEvaluation(elapsed time.Duration, rows int) {
	if m == nil {
		return
	}
	m.FilterEvaluations.Inc()
	m.FilterDuration.Observe(elapsed.Seconds())
	m.ViewRows.Set(float64(rows))
}

// SetDatasetRows records the size of the loaded dataset.
func (m *Metrics) SetDatasetRows(n int) {
	if m == nil {
		return
	}
	m.DatasetRows.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
