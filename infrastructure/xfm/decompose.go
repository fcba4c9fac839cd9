package xfm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ahrav/go-xformgate/internal/domain"
)

// machEps is the float64 machine epsilon, used to derive singular-value
// cutoffs relative to the largest singular value.
var machEps = math.Ldexp(1, -52)

// singularRelTol is the relative rank tolerance for the 3x3 linear block:
// the block is treated as singular when its smallest singular value falls
// below this fraction of the largest.
const singularRelTol = 1e-12

// Compose computes the relative transform between a candidate estimate and
// a reference estimate. Both inputs map the same source space to the same
// target space (target = M · source); the result
//
//	comp = candidate · pinv(reference)
//
// expresses how much the candidate deviates from the reference. A
// pseudo-inverse is used instead of a strict inverse for numerical
// robustness against near-singular inputs.
func Compose(candidate, reference domain.Affine) (domain.Affine, error) {
	p, err := pseudoInverse(toDense(reference))
	if err != nil {
		return domain.Affine{}, err
	}

	var comp mat.Dense
	comp.Mul(toDense(candidate), p)
	return fromDense(&comp), nil
}

// Decompose breaks an affine transform into translation, rotation, scale,
// and shear. The rotation is obtained by polar decomposition of the 3x3
// linear block (SVD-based); scale factors are the diagonal of the remaining
// stretch and shears its normalized off-diagonals. When the linear block has
// negative determinant, the weakest axis keeps a proper rotation and its
// scale factor goes negative.
//
// Decomposing the identity yields zero translation, identity rotation, unit
// scale, and zero shear. A linear block that is singular beyond numerical
// tolerance is fatal and reported as *domain.SingularTransformError.
func Decompose(a domain.Affine) (domain.Decomposition, error) {
	l := a.Linear()
	lm := mat.NewDense(3, 3, []float64{
		l[0][0], l[0][1], l[0][2],
		l[1][0], l[1][1], l[1][2],
		l[2][0], l[2][1], l[2][2],
	})

	var svd mat.SVD
	if ok := svd.Factorize(lm, mat.SVDFull); !ok {
		return domain.Decomposition{}, domain.NewSingularTransformError(
			"decompose", singularRelTol, errors.New("svd failed to converge"))
	}

	sv := svd.Values(nil)
	tol := sv[0] * singularRelTol
	if sv[0] == 0 || sv[2] <= tol {
		return domain.Decomposition{}, domain.NewSingularTransformError("decompose", tol, nil)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var r mat.Dense
	r.Mul(&u, v.T())
	if mat.Det(&r) < 0 {
		// Reflections cannot be expressed as a rotation; flip the weakest
		// singular direction so the rotation stays proper and the sign
		// moves into the scale factors.
		flip := mat.NewDiagDense(3, []float64{1, 1, -1})
		var uf mat.Dense
		uf.Mul(&u, flip)
		r.Mul(&uf, v.T())
	}

	// Remaining stretch: S = Rᵀ · L. Its diagonal carries the per-axis
	// scales, its off-diagonals the shears.
	var s mat.Dense
	s.Mul(r.T(), lm)

	scale := [3]float64{s.At(0, 0), s.At(1, 1), s.At(2, 2)}
	d := domain.Decomposition{
		Translation: a.Translation(),
		Rotation: [3][3]float64{
			{r.At(0, 0), r.At(0, 1), r.At(0, 2)},
			{r.At(1, 0), r.At(1, 1), r.At(1, 2)},
			{r.At(2, 0), r.At(2, 1), r.At(2, 2)},
		},
		Scale: scale,
		Shear: [3]float64{
			s.At(0, 1) / scale[1],
			s.At(0, 2) / scale[2],
			s.At(1, 2) / scale[2],
		},
	}
	return d, nil
}

// CompareTransforms composes the relative transform of the refined estimate
// against the fallback estimate and decomposes it in one step. This is the
// quantity the quality gate inspects.
func CompareTransforms(refined, fallback domain.Affine) (domain.Decomposition, error) {
	comp, err := Compose(refined, fallback)
	if err != nil {
		return domain.Decomposition{}, err
	}
	return Decompose(comp)
}

// RotationAngle returns the axis-angle magnitude of a rotation matrix in
// radians, in [0, pi]. The cosine argument is clamped so that accumulated
// rounding in near-identity rotations cannot push it outside acos's domain.
func RotationAngle(r [3][3]float64) float64 {
	c := (r[0][0] + r[1][1] + r[2][2] - 1) / 2
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// Invert computes the exact inverse of a transform. It is used when a
// strategy's native tooling only conveys the forward direction and the
// inverse must be produced explicitly before convention conversion.
func Invert(a domain.Affine) (domain.Affine, error) {
	var inv mat.Dense
	if err := inv.Inverse(toDense(a)); err != nil {
		// A finite condition number is a warning with a usable result;
		// anything else means the matrix is effectively singular.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return domain.Affine{}, domain.NewSingularTransformError("invert", 0, err)
		}
	}
	return fromDense(&inv), nil
}

// pseudoInverse computes the Moore-Penrose pseudo-inverse via SVD, zeroing
// singular values below max(m,n)·eps·σmax.
func pseudoInverse(m *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, domain.NewSingularTransformError(
			"compose", 0, errors.New("svd failed to converge"))
	}

	rows, cols := m.Dims()
	sv := svd.Values(nil)
	tol := float64(max(rows, cols)) * machEps * sv[0]

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	recip := make([]float64, len(sv))
	for i, s := range sv {
		if s > tol {
			recip[i] = 1 / s
		}
	}

	var tmp, pinv mat.Dense
	tmp.Mul(&v, mat.NewDiagDense(len(recip), recip))
	pinv.Mul(&tmp, u.T())
	return &pinv, nil
}

func toDense(a domain.Affine) *mat.Dense {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			data = append(data, a[i][j])
		}
	}
	return mat.NewDense(4, 4, data)
}

func fromDense(m mat.Matrix) domain.Affine {
	var a domain.Affine
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = m.At(i, j)
		}
	}
	return a
}
