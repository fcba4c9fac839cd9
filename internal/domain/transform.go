package domain

// Affine is a 4x4 homogeneous transform matrix mapping coordinates from a
// source space to a target space: target = M · source. The upper-left 3x3
// block encodes rotation, scale, and shear; the last column carries the
// translation in millimeters.
//
// Affine is a plain value type. The linear block must be invertible for a
// Decomposition to be meaningful; degenerate matrices are reported through
// SingularTransformError by the transform math layer.
type Affine [4][4]float64

// IdentityAffine returns the 4x4 identity transform.
func IdentityAffine() Affine {
	return Affine{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Linear returns the upper-left 3x3 block of the transform.
func (a Affine) Linear() [3][3]float64 {
	var l [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l[i][j] = a[i][j]
		}
	}
	return l
}

// Translation returns the translation component (last column) of the
// transform.
func (a Affine) Translation() [3]float64 {
	return [3]float64{a[0][3], a[1][3], a[2][3]}
}

// Decomposition is the derived breakdown of an affine transform into
// translation, rotation, scale, and shear components. It is computed fresh
// per comparison and never mutated; instances are consumed immediately by
// the quality gate.
type Decomposition struct {
	// Translation is the displacement component in millimeters.
	Translation [3]float64 `json:"translation"`

	// Rotation is the orthonormal rotation component of the linear block,
	// obtained by polar decomposition.
	Rotation [3][3]float64 `json:"rotation"`

	// Scale contains the per-axis scale factors. The sign of the factors
	// follows the determinant of the linear block; consumers interested in
	// magnitude must take absolute values.
	Scale [3]float64 `json:"scale"`

	// Shear contains the off-diagonal shear factors (xy, xz, yz),
	// normalized by the corresponding scale.
	Shear [3]float64 `json:"shear"`
}
