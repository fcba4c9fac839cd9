// Package convert provides ports.ConventionConverter adapters. Real
// convention conversion (e.g. voxel-space to world-space matrix formats) is
// performed by external tooling against a fixed reference image; this
// package supplies the in-process adapters around it.
package convert

import (
	"context"

	"github.com/ahrav/go-xformgate/infrastructure/xfm"
	"github.com/ahrav/go-xformgate/internal/domain"
	"github.com/ahrav/go-xformgate/internal/ports"
)

// Passthrough is a ConventionConverter for consumers that share the
// strategy's native matrix convention, so no re-expression is needed.
// When constructed with native inversion, ConvertInverse derives the inverse
// direction itself from the forward transform, mirroring converters whose
// external tooling can invert during conversion; otherwise it expects the
// caller to have inverted already and passes the input through.
type Passthrough struct {
	name          string
	invertsNative bool
}

var _ ports.ConventionConverter = (*Passthrough)(nil)

// NewPassthrough creates a Passthrough converter. invertsNative selects
// whether ConvertInverse performs the inversion itself.
func NewPassthrough(name string, invertsNative bool) *Passthrough {
	return &Passthrough{name: name, invertsNative: invertsNative}
}

// Name returns the converter label.
func (p *Passthrough) Name() string { return p.name }

// ConvertForward returns the transform unchanged.
func (p *Passthrough) ConvertForward(ctx context.Context, t domain.Affine) (domain.Affine, error) {
	return t, nil
}

// ConvertInverse returns the inverse-direction transform. With native
// inversion the input is the forward transform and is inverted here; without
// it the input is already inverted and passes through.
func (p *Passthrough) ConvertInverse(ctx context.Context, t domain.Affine) (domain.Affine, error) {
	if p.invertsNative {
		return xfm.Invert(t)
	}
	return t, nil
}
