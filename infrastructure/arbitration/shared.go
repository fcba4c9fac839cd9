// Package arbitration provides the decision components of the registration
// quality gate: threshold evaluation of a transform decomposition and the
// index-consistent selection between the refined and fallback candidates.
package arbitration

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by arbitration components.
var (
	// ErrEmptyName is returned when attempting to create a component with an
	// empty name.
	ErrEmptyName = errors.New("component name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
