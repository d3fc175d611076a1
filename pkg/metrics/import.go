package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records ingestion pipeline outcomes.
type ImportMetrics struct {
	duration    *prometheus.HistogramVec
	rowsWritten *prometheus.CounterVec
	rowsSkipped *prometheus.CounterVec
	success     *prometheus.CounterVec
	failure     *prometheus.CounterVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_duration_seconds",
		Help:    "Duration of import batches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	rowsWritten := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_written",
		Help: "Campaign metric rows written, labelled by outcome (created/updated).",
	}, []string{"outcome"})
	rowsSkipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_skipped",
		Help: "Rows dropped during normalization, labelled by reason.",
	}, []string{"reason"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_success",
		Help: "Successful import batches.",
	}, []string{"source"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_failure",
		Help: "Failed import batches.",
	}, []string{"source"})
	reg.MustRegister(duration, rowsWritten, rowsSkipped, success, failure)
	return &ImportMetrics{
		duration:    duration,
		rowsWritten: rowsWritten,
		rowsSkipped: rowsSkipped,
		success:     success,
		failure:     failure,
	}
}

// ObserveDuration records the duration for one batch.
func (m *ImportMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// AddRowsWritten adds to the written-rows counter for the given outcome.
func (m *ImportMetrics) AddRowsWritten(outcome string, n int) {
	if m == nil || m.rowsWritten == nil || n <= 0 {
		return
	}
	m.rowsWritten.WithLabelValues(normalizeLabel(outcome)).Add(float64(n))
}

// AddRowsSkipped adds to the skipped-rows counter for the given reason.
func (m *ImportMetrics) AddRowsSkipped(reason string, n int) {
	if m == nil || m.rowsSkipped == nil || n <= 0 {
		return
	}
	m.rowsSkipped.WithLabelValues(normalizeLabel(reason)).Add(float64(n))
}

// IncSuccess increments the success counter for the named source.
func (m *ImportMetrics) IncSuccess(source string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailure increments the failure counter for the named source.
func (m *ImportMetrics) IncFailure(source string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
