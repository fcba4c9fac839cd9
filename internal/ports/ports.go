// Package ports defines the interfaces between the arbitration core and its
// external collaborators: the two upstream registration methods, the
// matrix-convention conversion tools, and the metrics backend.
// These interfaces enable dependency inversion and make the core testable
// without any registration tooling installed.
package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-xformgate/internal/domain"
)

// Registrar produces one registration candidate: a transform estimate paired
// with its diagnostic report. Implementations wrap external registration
// collaborators (or their already-written output files); the arbitration
// core never computes a registration itself.
//
// The refined and fallback registrars of a strategy have no data dependency
// on each other and are invoked concurrently; implementations must be safe
// for that.
type Registrar interface {
	// Name returns a label for this registration method, used for logging
	// and report attribution.
	Name() string

	// Register returns the candidate produced by this registration method.
	// It blocks until the upstream result is available. Implementations
	// should respect context cancellation; a caller wanting to abort an
	// arbitration cancels the registrars, not the core.
	Register(ctx context.Context) (domain.Candidate, error)
}

// ConventionConverter re-expresses a transform in the convention expected by
// downstream consumers. Conversion is delegated to an external collaborator
// (typically a format-conversion tool run against a fixed reference image
// supplied at construction); the arbitration core only decides what to
// convert.
type ConventionConverter interface {
	// Name returns a label for the target convention.
	Name() string

	// ConvertForward re-expresses the selected source-to-target transform
	// in the consumer convention.
	ConvertForward(ctx context.Context, t domain.Affine) (domain.Affine, error)

	// ConvertInverse produces the consumer-convention transform for the
	// inverse (target-to-source) direction. Depending on the strategy, the
	// input is either the forward transform (the converter inverts
	// natively) or a transform the pipeline has already inverted; the
	// strategy's InvertBeforeConvert flag records which contract applies.
	ConvertInverse(ctx context.Context, t domain.Affine) (domain.Affine, error)
}

// MetricsCollector defines the interface for collecting operational metrics
// from the arbitration core. Implementations should integrate with
// observability platforms like Prometheus or OpenTelemetry.
//
// Metric emission is observational only and must never affect verdicts or
// selections.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like gate rejections.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for exporting the per-comparison gate metrics.
	RecordGauge(metric string, value float64, labels map[string]string)
}

// NoopMetrics is a MetricsCollector that discards everything. It is the
// default when no metrics backend is wired.
type NoopMetrics struct{}

var _ MetricsCollector = (*NoopMetrics)(nil)

// RecordLatency implements MetricsCollector.
func (NoopMetrics) RecordLatency(string, time.Duration, map[string]string) {}

// RecordCounter implements MetricsCollector.
func (NoopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge implements MetricsCollector.
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
