package arbitration

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	labels := map[string]string{"gate": "gate", "strategy": "surface_boundary"}
	pm.RecordCounter("arbitration_fallback_total", 1, labels)
	pm.RecordCounter("arbitration_fallback_total", 1, labels)

	got := testutil.ToFloat64(pm.fallbackTotal.WithLabelValues("gate", "surface_boundary"))
	assert.Equal(t, 2.0, got)
}

func TestPrometheusMetrics_RecordCounter_UnknownMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordCounter("arbitrate_failed", 1, map[string]string{"strategy": "intensity_boundary"})

	got := testutil.ToFloat64(pm.operationCounter.WithLabelValues("arbitrate_failed", "unknown", "intensity_boundary"))
	assert.Equal(t, 1.0, got)
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordGauge("arbitration_shift_mm", 6.0, map[string]string{"gate": "gate"})

	got := testutil.ToFloat64(pm.gateMetricGauges.WithLabelValues("arbitration_shift_mm", "gate", "unknown"))
	assert.Equal(t, 6.0, got)
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordLatency("arbitrate", 25*time.Millisecond, map[string]string{"strategy": "surface_boundary"})

	count := testutil.CollectAndCount(pm.arbitrationTime)
	require.Equal(t, 1, count)
}
