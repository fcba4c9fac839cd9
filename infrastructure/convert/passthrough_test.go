package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-xformgate/internal/domain"
)

func translation(x, y, z float64) domain.Affine {
	a := domain.IdentityAffine()
	a[0][3], a[1][3], a[2][3] = x, y, z
	return a
}

func TestPassthrough_ConvertForward(t *testing.T) {
	m := translation(1, -2, 3)

	for _, invertsNative := range []bool{true, false} {
		p := NewPassthrough("native", invertsNative)

		got, err := p.ConvertForward(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, m, got, "forward conversion never alters the transform")
	}
}

func TestPassthrough_ConvertInverse_Native(t *testing.T) {
	p := NewPassthrough("native", true)

	got, err := p.ConvertInverse(context.Background(), translation(1, -2, 3))
	require.NoError(t, err)

	want := translation(-1, 2, -3)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i][j], got[i][j], 1e-12)
		}
	}
}

func TestPassthrough_ConvertInverse_Native_Singular(t *testing.T) {
	p := NewPassthrough("native", true)

	_, err := p.ConvertInverse(context.Background(), domain.Affine{})
	assert.ErrorIs(t, err, domain.ErrSingularTransform)
}

func TestPassthrough_ConvertInverse_PreInverted(t *testing.T) {
	p := NewPassthrough("native", false)
	m := translation(-1, 2, -3) // already inverted by the caller

	got, err := p.ConvertInverse(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestPassthrough_Name(t *testing.T) {
	assert.Equal(t, "lta", NewPassthrough("lta", true).Name())
}
