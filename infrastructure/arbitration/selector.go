package arbitration

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-xformgate/internal/domain"
)

// CandidateSelector deterministically resolves a quality verdict into one of
// the two candidates. Because a CandidateSet is a pair of matched records,
// the selected transform and report are guaranteed to originate from the
// same registration attempt; there is no independent indexing to diverge.
//
// CandidateSelector is stateless and safe for concurrent use.
type CandidateSelector struct {
	// name is the unique identifier for this selector instance.
	name string
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewCandidateSelector creates a CandidateSelector. The name identifies the
// selector in spans and must be non-empty.
func NewCandidateSelector(name string) (*CandidateSelector, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &CandidateSelector{
		name:   name,
		tracer: otel.Tracer("candidate-selector"),
	}, nil
}

// Name returns the unique identifier for this selector instance.
func (cs *CandidateSelector) Name() string { return cs.name }

// Select resolves the verdict into a tagged choice and returns the matching
// candidate's transform and report together with the verdict that justified
// the decision. A rejected refined estimate maps to ChoiceFallback; anything
// else keeps ChoicePrimary.
//
// An incomplete candidate set violates the caller contract and is returned
// as *domain.CandidateSetMismatchError; no selection is produced in that
// case, because silently picking a transform without a full audit trail
// would defeat the purpose of the gate.
func (cs *CandidateSelector) Select(
	ctx context.Context,
	set domain.CandidateSet,
	verdict domain.QualityVerdict,
) (domain.SelectionResult, error) {
	_, span := cs.tracer.Start(ctx, "CandidateSelector.Select",
		trace.WithAttributes(
			attribute.String("selector.id", cs.name),
			attribute.Bool("verdict.reject_refined", verdict.RejectRefined),
		),
	)
	defer span.End()

	if err := set.Validate(); err != nil {
		span.RecordError(err)
		return domain.SelectionResult{}, err
	}

	choice := domain.ChoicePrimary
	if verdict.RejectRefined {
		choice = domain.ChoiceFallback
	}
	selected := set.Get(choice)

	span.SetAttributes(
		attribute.String("selection.choice", string(choice)),
		attribute.String("selection.method", selected.Method),
	)

	return domain.SelectionResult{
		Choice:    choice,
		Transform: selected.Transform,
		Report:    selected.Report,
		Verdict:   verdict,
	}, nil
}
