package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsIngested *prometheus.CounterVec
	rowsDropped  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	datasetSize  prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_rows_ingested_total",
				Help: "Total number of dataset rows ingested",
			},
			[]string{"source"},
		),
		rowsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_rows_dropped_total",
				Help: "Total number of rows dropped during validation",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bizpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bizpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		datasetSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bizpulse_dataset_rows",
				Help: "Row count of the currently stored dataset",
			},
		),
	}
}

// RecordRowsIngested counts rows accepted from an ingestion source.
func (r *Recorder) RecordRowsIngested(source string, n int) {
	r.rowsIngested.WithLabelValues(source).Add(float64(n))
}

// RecordRowsDropped counts rows discarded during validation.
func (r *Recorder) RecordRowsDropped(reason string, n int) {
	r.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordDatasetSize tracks the stored dataset's row count.
func (r *Recorder) RecordDatasetSize(n int) {
	r.datasetSize.Set(float64(n))
}
