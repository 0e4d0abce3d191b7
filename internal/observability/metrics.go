package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kismet_analyzer"

// Metrics holds the Prometheus counters, histograms, and gauges for a
// normalization run.
type Metrics struct {
	RowsRead      prometheus.Counter
	RowsAccepted  prometheus.Counter
	RowsFiltered  prometheus.Counter
	RowsDropped   prometheus.Counter
	RunInProgress prometheus.Gauge
	RunDuration   prometheus.Histogram

	EntitiesExported *prometheus.CounterVec // labels: exporter={csv,kml,kafka,stdout}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsAccepted,
		m.RowsFiltered,
		m.RowsDropped,
		m.RunInProgress,
		m.RunDuration,
		m.EntitiesExported,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Capture rows read from the row source.",
		}),
		RowsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_accepted_total",
			Help:      "Rows normalized into an entity that passed the filters.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_filtered_total",
			Help:      "Rows normalized but rejected by a filter.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows dropped because they could not be parsed or normalized.",
		}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_in_progress",
			Help:      "1 while a normalization run is active.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete normalization run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EntitiesExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_exported_total",
			Help:      "Entities written by each exporter.",
		}, []string{"exporter"}),
	}
}
