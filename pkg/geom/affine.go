package geom

import (
	"math"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

// Affine represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Affine values are composable: applying m then n equals applying
// n.Mul(m) once. All transforms produced by the space registry and the
// placement composer are axis-aligned (B == D == 0), but the type keeps
// the full linear part so composition never loses information.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation creates a pure translation transform.
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, C: dx, E: 1, F: dy}
}

// Scaling creates a pure scaling transform about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Mul composes two transforms: (m.Mul(n)).Apply(p) == m.Apply(n.Apply(p)).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ApplyBox transforms all four corners of a box and returns the
// axis-aligned box of the results. For axis-aligned transforms this is
// exact; flips and negative scales are renormalized so the Box invariant
// holds.
func (m Affine) ApplyBox(b Box) Box {
	x0, y0 := m.Apply(b.X0, b.Y0)
	x1, y1 := m.Apply(b.X1, b.Y1)
	out := FromExtents(x0, y0, x1, y1)
	if m.B != 0 || m.D != 0 {
		x2, y2 := m.Apply(b.X0, b.Y1)
		x3, y3 := m.Apply(b.X1, b.Y0)
		out = out.Union(FromExtents(x2, y2, x3, y3))
	}
	return out
}

// Invert returns the inverse transform.
// Returns a DEGENERATE_BOX error if the linear part is singular.
func (m Affine) Invert() (Affine, error) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < Epsilon {
		return Affine{}, carderrors.New(carderrors.ErrCodeDegenerateBox,
			"transform is singular (det=%g)", det)
	}

	invDet := 1.0 / det
	return Affine{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, nil
}

// IsIdentity reports whether the transform is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsAxisAligned reports whether the transform has no rotation or shear
// component. The rendering surface only accepts axis-aligned transforms.
func (m Affine) IsAxisAligned() bool {
	return m.B == 0 && m.D == 0
}

// AlmostEqual reports whether two transforms are equal within eps on
// every coefficient. Pass eps <= 0 to use the package default [Epsilon].
func (m Affine) AlmostEqual(n Affine, eps float64) bool {
	if eps <= 0 {
		eps = Epsilon
	}
	return math.Abs(m.A-n.A) <= eps && math.Abs(m.B-n.B) <= eps &&
		math.Abs(m.C-n.C) <= eps && math.Abs(m.D-n.D) <= eps &&
		math.Abs(m.E-n.E) <= eps && math.Abs(m.F-n.F) <= eps
}
