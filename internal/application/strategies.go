package application

import (
	"fmt"

	"github.com/ahrav/go-xformgate/internal/ports"
)

// Strategy names accepted by the configuration surface.
const (
	// StrategySurfaceBoundary is the surface-boundary registration variant
	// (voxel-space native matrix convention).
	StrategySurfaceBoundary = "surface_boundary"

	// StrategyIntensityBoundary is the intensity-boundary registration
	// variant (tool-native matrix convention).
	StrategyIntensityBoundary = "intensity_boundary"
)

// Strategy describes one arbitration variant. The two shipped variants
// share the transform math, gate, and selector verbatim; they differ only
// in where their candidates come from and how the selected transform
// crosses the matrix-convention boundary, so the pipeline is parametrized
// by this descriptor rather than duplicated.
type Strategy struct {
	// Name identifies the strategy in spans, metrics, and configuration.
	Name string

	// DOF is the degrees of freedom of the refined registration (6, 9, or
	// 12). Used for labeling only, never by the arbitration math.
	DOF int

	// InvertBeforeConvert selects the inverse-direction contract with the
	// converter: when true the pipeline inverts the selected transform
	// before conversion because the strategy's native tooling only conveys
	// the forward direction; when false the converter inverts natively.
	InvertBeforeConvert bool

	// Converter re-expresses the selected transform in the consumer
	// convention.
	Converter ports.ConventionConverter
}

// Validate checks the strategy descriptor.
func (s Strategy) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("strategy name cannot be empty")
	}
	switch s.DOF {
	case 6, 9, 12:
	default:
		return fmt.Errorf("strategy %s: unsupported degrees of freedom: %d", s.Name, s.DOF)
	}
	if s.Converter == nil {
		return fmt.Errorf("strategy %s: convention converter is required", s.Name)
	}
	return nil
}

// SurfaceBoundaryStrategy builds the surface-boundary variant. Its refined
// candidate comes from a surface-driven boundary registration and its
// fallback from an independently computed coarse volume registration, both
// in a voxel-space matrix convention. The converter handles both the
// forward and the inverse direction natively.
func SurfaceBoundaryStrategy(dof int, converter ports.ConventionConverter) (Strategy, error) {
	s := Strategy{
		Name:                StrategySurfaceBoundary,
		DOF:                 dof,
		InvertBeforeConvert: false,
		Converter:           converter,
	}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}

// IntensityBoundaryStrategy builds the intensity-boundary variant. Its
// fallback candidate is the rigid (6-DOF) initialization of the same tool
// rather than a separately computed coarse estimate, and the selected
// transform must be inverted explicitly before the inverse-direction
// conversion.
func IntensityBoundaryStrategy(dof int, converter ports.ConventionConverter) (Strategy, error) {
	s := Strategy{
		Name:                StrategyIntensityBoundary,
		DOF:                 dof,
		InvertBeforeConvert: true,
		Converter:           converter,
	}
	if err := s.Validate(); err != nil {
		return Strategy{}, err
	}
	return s, nil
}
