// Package metrics provides Prometheus metrics for the time-record store
// and its collaborators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics contains Prometheus metrics for store operations
type StoreMetrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	uploadsTotal      *prometheus.CounterVec
	recordCountGauge  prometheus.Gauge

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewStoreMetrics creates and registers new store metrics
func NewStoreMetrics(registry *prometheus.Registry) (*StoreMetrics, error) {
	m := &StoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *StoreMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitnahme_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"operation", "outcome"}, // operation: stamp, correct, delete, export; outcome: inserted, updated, unchanged, ok
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zeitnahme_store_operation_duration_seconds",
			Help:    "Time taken for store operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"operation"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitnahme_store_operation_errors_total",
			Help: "Total number of store operation errors",
		},
		[]string{"operation"},
	)

	m.uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zeitnahme_uploads_total",
			Help: "Total number of FTP upload attempts",
		},
		[]string{"status"}, // status: success, error
	)

	m.recordCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zeitnahme_records",
		Help: "Number of time records currently stored",
	})

	m.collectors = []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.errorsTotal,
		m.uploadsTotal,
		m.recordCountGauge,
	}
}

// Registry returns the registry the metrics are registered with.
func (m *StoreMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Describe implements prometheus.Collector
func (m *StoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements prometheus.Collector
func (m *StoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordOperation counts one store operation with its outcome.
func (m *StoreMetrics) RecordOperation(operation, outcome string) {
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordDuration observes the duration of one store operation.
func (m *StoreMetrics) RecordDuration(operation string, seconds float64) {
	m.operationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError counts one failed store operation.
func (m *StoreMetrics) RecordError(operation string) {
	m.errorsTotal.WithLabelValues(operation).Inc()
}

// RecordUpload counts one upload attempt.
func (m *StoreMetrics) RecordUpload(status string) {
	m.uploadsTotal.WithLabelValues(status).Inc()
}

// SetRecordCount updates the stored record gauge.
func (m *StoreMetrics) SetRecordCount(count int) {
	m.recordCountGauge.Set(float64(count))
}
