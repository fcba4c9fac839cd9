// Package domain contains the core types of the registration arbitration
// engine: affine transforms, their decompositions, quality verdicts, and the
// candidate pairs the gate chooses between. The package has no dependencies
// beyond the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors returned by arbitration operations.
var (
	// ErrSingularTransform indicates that a transform's linear block could
	// not be inverted even approximately. It signals a defective upstream
	// registration and is never retried.
	ErrSingularTransform = errors.New("singular transform")

	// ErrCandidateSetMismatch indicates that a candidate set violates the
	// caller contract (incomplete or inconsistently paired candidates).
	ErrCandidateSetMismatch = errors.New("candidate set mismatch")
)

// SingularTransformError reports a transform whose linear block is singular
// beyond numerical tolerance. It is fatal for the arbitration invocation
// that raised it: the defective matrix must be fixed by the upstream
// registration collaborator, not papered over here.
type SingularTransformError struct {
	// Op names the operation that failed (e.g. "decompose", "invert").
	Op string

	// Tolerance is the singular-value cutoff that was applied.
	Tolerance float64

	// Err is the underlying numerical error, if any.
	Err error
}

// Error implements the error interface for SingularTransformError.
func (e *SingularTransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("singular transform: op=%s, tolerance=%g, err=%v", e.Op, e.Tolerance, e.Err)
	}
	return fmt.Sprintf("singular transform: op=%s, tolerance=%g", e.Op, e.Tolerance)
}

// Unwrap returns ErrSingularTransform so callers can match with errors.Is.
func (e *SingularTransformError) Unwrap() error { return ErrSingularTransform }

// NewSingularTransformError creates a SingularTransformError for the given
// operation.
func NewSingularTransformError(op string, tolerance float64, err error) *SingularTransformError {
	return &SingularTransformError{Op: op, Tolerance: tolerance, Err: err}
}

// CandidateSetMismatchError reports a candidate set that violates the
// arbitration caller contract: both candidates must be populated from the
// same ordered pair of upstream registration attempts. This is a programming
// error in the calling pipeline, not a runtime-recoverable condition.
type CandidateSetMismatchError struct {
	// Reason describes the specific contract violation.
	Reason string
}

// Error implements the error interface for CandidateSetMismatchError.
func (e *CandidateSetMismatchError) Error() string {
	return fmt.Sprintf("candidate set mismatch: %s", e.Reason)
}

// Unwrap returns ErrCandidateSetMismatch so callers can match with errors.Is.
func (e *CandidateSetMismatchError) Unwrap() error { return ErrCandidateSetMismatch }

// NewCandidateSetMismatchError creates a CandidateSetMismatchError with the
// given reason.
func NewCandidateSetMismatchError(reason string) *CandidateSetMismatchError {
	return &CandidateSetMismatchError{Reason: reason}
}
