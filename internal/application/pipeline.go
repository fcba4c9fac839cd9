// Package application composes the arbitration core into runnable
// pipelines: one generic pipeline shape instantiated once per registration
// strategy, plus the configuration surface for the gate thresholds.
package application

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-xformgate/infrastructure/arbitration"
	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/domain"
	"github.com/ahrav/go-xformgate/internal/ports"
)

// Outcome is the complete result of one arbitration run: the selection with
// its audit metrics, plus the selected transform re-expressed in the
// consumer convention in both directions. Downstream export must not begin
// before the Outcome exists.
type Outcome struct {
	// Selection carries the chosen transform/report pair and the verdict.
	Selection domain.SelectionResult `json:"selection"`

	// Forward is the selected source-to-target transform in the consumer
	// convention.
	Forward domain.Affine `json:"forward"`

	// Inverse is the target-to-source transform in the consumer convention.
	Inverse domain.Affine `json:"inverse"`
}

// Pipeline arbitrates between one refined and one fallback registration for
// a single strategy. It is a synchronization barrier: the two upstream
// registrations run concurrently and the core begins only once both are
// available. Within the pipeline execution is a single linear pass
// (decompose, gate, select, convert) with no retries and no intermediate
// persisted state.
//
// Pipeline holds no mutable state and is safe for concurrent Run calls;
// given identical candidate matrices, repeated runs yield identical
// verdicts and selections.
type Pipeline struct {
	strategy Strategy
	refined  ports.Registrar
	fallback ports.Registrar
	gate     *arbitration.QualityGate
	selector *arbitration.CandidateSelector
	metrics  ports.MetricsCollector
	tracer   trace.Tracer
}

// NewPipeline creates a Pipeline for the given strategy and collaborators.
// A nil metrics collector defaults to a no-op.
func NewPipeline(
	strategy Strategy,
	refined, fallback ports.Registrar,
	gate *arbitration.QualityGate,
	selector *arbitration.CandidateSelector,
	metrics ports.MetricsCollector,
) (*Pipeline, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	if refined == nil || fallback == nil {
		return nil, fmt.Errorf("both registrars are required")
	}
	if gate == nil {
		return nil, fmt.Errorf("quality gate is required")
	}
	if selector == nil {
		return nil, fmt.Errorf("candidate selector is required")
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}

	return &Pipeline{
		strategy: strategy,
		refined:  refined,
		fallback: fallback,
		gate:     gate,
		selector: selector,
		metrics:  metrics,
		tracer:   otel.Tracer("arbitration-pipeline"),
	}, nil
}

// Run executes one arbitration pass. It joins the two concurrent upstream
// registrations, compares the refined estimate against the fallback,
// applies the quality gate, selects the matching transform/report pair, and
// converts the selection to the consumer convention in both directions.
//
// Fatal conditions (*domain.SingularTransformError,
// *domain.CandidateSetMismatchError, registrar or converter failures)
// surface immediately; a rejected refined estimate is not an error but the
// expected fallback path, reported through the verdict inside the Outcome.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	ctx, span := p.tracer.Start(ctx, "ArbitrationPipeline.Run",
		trace.WithAttributes(
			attribute.String("strategy.name", p.strategy.Name),
			attribute.Int("strategy.dof", p.strategy.DOF),
			attribute.Bool("strategy.invert_before_convert", p.strategy.InvertBeforeConvert),
		),
	)
	defer span.End()

	start := time.Now()
	labels := map[string]string{"strategy": p.strategy.Name}

	// Join barrier: the refined and fallback registrations have no data
	// dependency on each other.
	var refinedCand, fallbackCand domain.Candidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := p.refined.Register(gctx)
		if err != nil {
			return fmt.Errorf("refined registration %s: %w", p.refined.Name(), err)
		}
		refinedCand = c
		return nil
	})
	g.Go(func() error {
		c, err := p.fallback.Register(gctx)
		if err != nil {
			return fmt.Errorf("fallback registration %s: %w", p.fallback.Name(), err)
		}
		fallbackCand = c
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		p.metrics.RecordCounter("arbitrate_failed", 1, labels)
		return Outcome{}, err
	}

	set := domain.CandidateSet{Refined: refinedCand, Fallback: fallbackCand}

	decomp, err := xfm.CompareTransforms(refinedCand.Transform, fallbackCand.Transform)
	if err != nil {
		span.RecordError(err)
		p.metrics.RecordCounter("arbitrate_failed", 1, labels)
		return Outcome{}, fmt.Errorf("strategy %s: %w", p.strategy.Name, err)
	}

	verdict := p.gate.Evaluate(ctx, decomp)

	selection, err := p.selector.Select(ctx, set, verdict)
	if err != nil {
		span.RecordError(err)
		p.metrics.RecordCounter("arbitrate_failed", 1, labels)
		return Outcome{}, fmt.Errorf("strategy %s: %w", p.strategy.Name, err)
	}

	// Second barrier: downstream export waits on the selection.
	forward, err := p.strategy.Converter.ConvertForward(ctx, selection.Transform)
	if err != nil {
		span.RecordError(err)
		return Outcome{}, fmt.Errorf("strategy %s: forward conversion: %w", p.strategy.Name, err)
	}

	inverseIn := selection.Transform
	if p.strategy.InvertBeforeConvert {
		// The native tooling of this strategy only conveys the forward
		// direction; the inverse must be produced explicitly.
		inverseIn, err = xfm.Invert(selection.Transform)
		if err != nil {
			span.RecordError(err)
			return Outcome{}, fmt.Errorf("strategy %s: invert selected transform: %w", p.strategy.Name, err)
		}
	}
	inverse, err := p.strategy.Converter.ConvertInverse(ctx, inverseIn)
	if err != nil {
		span.RecordError(err)
		return Outcome{}, fmt.Errorf("strategy %s: inverse conversion: %w", p.strategy.Name, err)
	}

	span.SetAttributes(
		attribute.String("selection.choice", string(selection.Choice)),
		attribute.Bool("verdict.reject_refined", verdict.RejectRefined),
		attribute.Float64("verdict.shift_mm", verdict.ShiftMagnitude),
		attribute.Float64("verdict.rotation_rad", verdict.RotationAngle),
		attribute.Float64("verdict.max_scale", verdict.MaxScale),
	)
	p.metrics.RecordLatency("arbitrate", time.Since(start), labels)

	return Outcome{Selection: selection, Forward: forward, Inverse: inverse}, nil
}
