package arbitration

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/domain"
	"github.com/ahrav/go-xformgate/internal/ports"
)

// GateConfig holds the fixed thresholds applied to a transform
// decomposition. The defaults reproduce the established arbitration policy:
// 5 mm shift, 5 degrees rotation, 1.1 scale factor.
//
// All comparisons are strict (>): a deviation that lands exactly on a
// threshold keeps the refined registration. This is intentional policy,
// favoring the refined estimate at the boundary, not a bug.
//
// Configuration is immutable after gate creation and thread-safe for
// concurrent access. Changes require creating a new gate instance.
type GateConfig struct {
	// ShiftThresholdMM is the maximum tolerated relative translation in
	// millimeters (Euclidean norm).
	ShiftThresholdMM float64 `yaml:"shift_threshold_mm" json:"shift_threshold_mm" validate:"required,gt=0"`

	// RotationThresholdRad is the maximum tolerated relative rotation in
	// radians (axis-angle magnitude).
	RotationThresholdRad float64 `yaml:"rotation_threshold_rad" json:"rotation_threshold_rad" validate:"required,gt=0"`

	// ScaleThreshold is the maximum tolerated absolute per-axis scale
	// factor. The check uses max(|scale|), a literal threshold on the
	// factor itself, not a symmetric ratio: a shrink to 0.85 on one axis
	// does not trip a 1.1 threshold.
	ScaleThreshold float64 `yaml:"scale_threshold" json:"scale_threshold" validate:"required,gt=0"`
}

// DefaultGateConfig returns the production thresholds: 5 mm shift, pi/36 rad
// (5 degrees) rotation, and a 1.1 scale factor.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		ShiftThresholdMM:     5.0,
		RotationThresholdRad: math.Pi / 36,
		ScaleThreshold:       1.1,
	}
}

// QualityGate classifies a refined registration as plausible or not by
// applying fixed thresholds to the decomposition of its deviation from the
// fallback estimate. The gate only classifies; it never attempts to repair
// a bad registration.
//
// Concurrency: QualityGate is stateless after construction and safe for
// concurrent use; it operates only on its immutable inputs.
//
// Observability: every evaluation emits the three metrics on an
// OpenTelemetry span and through the metrics collector. Emission is
// observational only and never affects the verdict.
type QualityGate struct {
	// name is the unique identifier for this gate instance.
	name string
	// config contains the validated thresholds.
	config GateConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
	// metrics receives the per-comparison gauge values and the rejection
	// counter.
	metrics ports.MetricsCollector
}

// NewQualityGate creates a QualityGate with validated configuration. The
// name parameter identifies the gate in spans and metrics and must be
// non-empty. A nil metrics collector defaults to a no-op.
func NewQualityGate(name string, config GateConfig, metrics ports.MetricsCollector) (*QualityGate, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}

	return &QualityGate{
		name:    name,
		config:  config,
		tracer:  otel.Tracer("quality-gate"),
		metrics: metrics,
	}, nil
}

// Name returns the unique identifier for this gate instance.
func (g *QualityGate) Name() string { return g.name }

// Config returns the thresholds this gate applies.
func (g *QualityGate) Config() GateConfig { return g.config }

// Evaluate applies the configured thresholds to a decomposition of the
// relative transform between the refined and fallback estimates.
//
// The three metrics are derived as:
//   - shift magnitude: Euclidean norm of the translation component
//   - rotation angle: axis-angle magnitude of the rotation component
//   - max scale: largest absolute per-axis scale factor
//
// The refined estimate is rejected when any metric strictly exceeds its
// threshold. Evaluate has no failure modes of its own; degenerate matrices
// fail earlier, during decomposition.
func (g *QualityGate) Evaluate(ctx context.Context, d domain.Decomposition) domain.QualityVerdict {
	_, span := g.tracer.Start(ctx, "QualityGate.Evaluate",
		trace.WithAttributes(
			attribute.String("gate.id", g.name),
			attribute.Float64("config.shift_threshold_mm", g.config.ShiftThresholdMM),
			attribute.Float64("config.rotation_threshold_rad", g.config.RotationThresholdRad),
			attribute.Float64("config.scale_threshold", g.config.ScaleThreshold),
		),
	)
	defer span.End()

	t := d.Translation
	shift := math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
	rot := xfm.RotationAngle(d.Rotation)
	maxScale := math.Max(math.Abs(d.Scale[0]),
		math.Max(math.Abs(d.Scale[1]), math.Abs(d.Scale[2])))

	verdict := domain.QualityVerdict{
		ShiftMagnitude: shift,
		RotationAngle:  rot,
		MaxScale:       maxScale,
		RejectRefined: shift > g.config.ShiftThresholdMM ||
			rot > g.config.RotationThresholdRad ||
			maxScale > g.config.ScaleThreshold,
	}

	span.SetAttributes(
		attribute.Float64("gate.shift_mm", shift),
		attribute.Float64("gate.rotation_deg", rot*180/math.Pi),
		attribute.Float64("gate.max_scale", maxScale),
		attribute.Bool("gate.reject_refined", verdict.RejectRefined),
	)

	labels := map[string]string{"gate": g.name}
	g.metrics.RecordGauge("arbitration_shift_mm", shift, labels)
	g.metrics.RecordGauge("arbitration_rotation_rad", rot, labels)
	g.metrics.RecordGauge("arbitration_max_scale", maxScale, labels)
	if verdict.RejectRefined {
		g.metrics.RecordCounter("arbitration_fallback_total", 1, labels)
	}

	return verdict
}

// Validate verifies the gate is properly configured and ready for use.
func (g *QualityGate) Validate() error {
	if err := validate.Struct(g.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the gate's
// config, validating before replacing it. The gate's configuration remains
// unchanged on error.
func (g *QualityGate) UnmarshalParameters(params yaml.Node) error {
	var config GateConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	g.config = config
	return nil
}
