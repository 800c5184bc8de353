package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Import row outcomes.
const (
	OutcomeImported = "imported"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// ImportMetrics records bulk import throughput.
type ImportMetrics struct {
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "food_import_rows_total",
		Help: "Bulk import rows by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "food_import_duration_seconds",
		Help:    "Duration of bulk imports in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	reg.MustRegister(rows, duration)
	return &ImportMetrics{
		rows:     rows,
		duration: duration,
	}
}

// AddRows increments the row counter for the outcome.
func (m *ImportMetrics) AddRows(outcome string, n int) {
	if m == nil || m.rows == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(outcome)).Add(float64(n))
}

// ObserveDuration records how long one import took for the given source.
func (m *ImportMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
