package domain

// Choice identifies which of the two candidates an arbitration selected.
// It replaces the implicit boolean-to-index coercion of older pipelines with
// an explicit two-variant tagged choice, making selection exhaustive.
type Choice string

// Supported selection choices.
const (
	// ChoicePrimary selects the refined, cost-function-driven registration.
	ChoicePrimary Choice = "primary"

	// ChoiceFallback selects the coarser, independently computed fallback
	// registration. This is the expected, successfully-handled path when the
	// refined estimate fails the quality gate; it is not an error.
	ChoiceFallback Choice = "fallback"
)

// QualityVerdict is the outcome of gating one refined estimate against its
// fallback. It carries the three scalar metrics that justify the decision so
// that every selection is auditable. A verdict is created once per
// comparison and immediately consumed by the candidate selector.
type QualityVerdict struct {
	// ShiftMagnitude is the Euclidean norm of the relative translation in
	// millimeters. Always >= 0.
	ShiftMagnitude float64 `json:"shift_magnitude"`

	// RotationAngle is the axis-angle magnitude of the relative rotation in
	// radians, in [0, pi].
	RotationAngle float64 `json:"rotation_angle"`

	// MaxScale is the largest absolute per-axis scale factor of the
	// relative transform. Unity means no relative scaling.
	MaxScale float64 `json:"max_scale"`

	// RejectRefined reports whether any metric strictly exceeded its
	// threshold, in which case the fallback candidate must be used.
	RejectRefined bool `json:"reject_refined"`
}

// Candidate pairs one registration attempt's transform with its diagnostic
// report. The two fields always originate from the same underlying attempt;
// keeping them in a single record makes transform/report divergence
// unrepresentable.
type Candidate struct {
	// Method labels the registration method that produced this candidate.
	// It is used for logging and report attribution only.
	Method string `json:"method"`

	// DOF is the degrees of freedom of the registration (6, 9, or 12).
	// Consumed only for labeling, never by the arbitration math.
	DOF int `json:"dof"`

	// Transform is the candidate's affine estimate.
	Transform Affine `json:"transform"`

	// Report is an opaque reference to the candidate's diagnostic report
	// artifact (typically a file path). Its format is irrelevant to the
	// arbitration core.
	Report string `json:"report"`
}

// CandidateSet is the ordered pair of candidates under arbitration.
// Refined is the primary, cost-driven estimate; Fallback is the robustness
// baseline computed independently. Modeling the set as two matched records
// rather than parallel lists enforces the central invariant of the core:
// the selected transform and report always come from the same candidate.
type CandidateSet struct {
	Refined  Candidate `json:"refined"`
	Fallback Candidate `json:"fallback"`
}

// Validate checks the caller contract: both candidates must be fully
// populated. A violation is a programming error in the calling pipeline,
// reported as *CandidateSetMismatchError, not a recoverable condition.
func (cs CandidateSet) Validate() error {
	if cs.Refined.Report == "" {
		return NewCandidateSetMismatchError("refined candidate has no report reference")
	}
	if cs.Fallback.Report == "" {
		return NewCandidateSetMismatchError("fallback candidate has no report reference")
	}
	return nil
}

// Get returns the candidate identified by the choice tag.
func (cs CandidateSet) Get(c Choice) Candidate {
	if c == ChoiceFallback {
		return cs.Fallback
	}
	return cs.Refined
}

// SelectionResult is the final output of an arbitration: the chosen
// transform and report (always from the same candidate), the verdict that
// justified the choice, and the choice tag itself. Ownership passes to
// downstream collaborators once produced.
type SelectionResult struct {
	// Choice records which candidate was selected.
	Choice Choice `json:"choice"`

	// Transform is the selected candidate's affine estimate.
	Transform Affine `json:"transform"`

	// Report is the selected candidate's diagnostic report reference.
	Report string `json:"report"`

	// Verdict carries the gating metrics for audit, regardless of which
	// candidate was chosen.
	Verdict QualityVerdict `json:"verdict"`
}
