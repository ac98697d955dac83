package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather simulation service.
type Metrics struct {
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PublisherRunning   prometheus.Gauge
	PublishCycles      prometheus.Counter
	CycleDuration      prometheus.Histogram

	// API metrics.
	APIRequests *prometheus.CounterVec // labels: endpoint, status
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_sim",
			Name:      "snapshots_published_total",
			Help:      "Total weather snapshots written to the configured sinks.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_sim",
			Name:      "publish_errors_total",
			Help:      "Total failed publish cycles.",
		}),
		PublisherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_sim",
			Name:      "publisher_running",
			Help:      "1 when the snapshot publisher is active, 0 when shut down.",
		}),
		PublishCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_sim",
			Name:      "publish_cycles_total",
			Help:      "Total synthesize-and-publish cycles attempted.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_sim",
			Name:      "publish_cycle_duration_seconds",
			Help:      "Duration of a complete synthesize-and-publish cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_sim",
			Name:      "api_requests_total",
			Help:      "Weather API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
	}

	prometheus.MustRegister(
		m.SnapshotsPublished,
		m.PublishErrors,
		m.PublisherRunning,
		m.PublishCycles,
		m.CycleDuration,
		m.APIRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_sim", Name: "snapshots_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_sim", Name: "publish_errors_total"}),
		PublisherRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_sim", Name: "publisher_running"}),
		PublishCycles:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_sim", Name: "publish_cycles_total"}),
		CycleDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_sim", Name: "publish_cycle_duration_seconds"}),
		APIRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_sim", Name: "api_requests_total"}, []string{"endpoint", "status"}),
	}
}
