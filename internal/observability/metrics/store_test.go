package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMetricsRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()

	m, err := NewStoreMetrics(registry)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Same(t, registry, m.Registry())

	// double registration must fail
	_, err = NewStoreMetrics(registry)
	assert.Error(t, err)
}

func TestRegistryGathersStoreMetrics(t *testing.T) {
	m, err := NewStoreMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordOperation("stamp", "inserted")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "zeitnahme_store_operations_total")
}

func TestRecordOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewStoreMetrics(registry)
	require.NoError(t, err)

	m.RecordOperation("stamp", "inserted")
	m.RecordOperation("stamp", "inserted")
	m.RecordOperation("correct", "unchanged")
	m.RecordError("stamp")
	m.RecordUpload("success")
	m.SetRecordCount(42)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("stamp", "inserted")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("correct", "unchanged")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("stamp")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.uploadsTotal.WithLabelValues("success")), 0.001)
	assert.InDelta(t, 42.0, testutil.ToFloat64(m.recordCountGauge), 0.001)
}
