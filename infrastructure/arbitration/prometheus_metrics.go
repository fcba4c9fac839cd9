package arbitration

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-xformgate/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It exports the per-comparison gate metrics, the fallback
// counter, and arbitration latency for monitoring registration quality
// across a study.
type PrometheusMetrics struct {
	fallbackTotal    *prometheus.CounterVec
	gateMetricGauges *prometheus.GaugeVec
	arbitrationTime  *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates a PrometheusMetrics instance registered in
// the default Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance registered
// against the given registerer. Tests use this with a private registry to
// avoid duplicate registration.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		fallbackTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbitration_fallback_total",
				Help: "Number of arbitrations that rejected the refined registration.",
			},
			[]string{"gate", "strategy"},
		),
		gateMetricGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arbitration_gate_metric",
				Help: "Most recent gate metric values (shift_mm, rotation_rad, max_scale).",
			},
			[]string{"metric", "gate", "strategy"},
		),
		arbitrationTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arbitration_duration_seconds",
				Help:    "Execution time of arbitration operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "strategy"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbitration_operations_total",
				Help: "Total number of arbitration operations by status.",
			},
			[]string{"operation", "status", "strategy"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, duration time.Duration, labels map[string]string,
) {
	pm.arbitrationTime.WithLabelValues(operation, labelOr(labels, "strategy")).
		Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	strategy := labelOr(labels, "strategy")
	switch metric {
	case "arbitration_fallback_total":
		pm.fallbackTotal.WithLabelValues(labelOr(labels, "gate"), strategy).Add(value)
	default:
		status := labelOr(labels, "status")
		pm.operationCounter.WithLabelValues(metric, status, strategy).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting gauge
// values for the per-comparison gate metrics.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.gateMetricGauges.WithLabelValues(
		metric, labelOr(labels, "gate"), labelOr(labels, "strategy"),
	).Set(value)
}

func labelOr(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return "unknown"
}
