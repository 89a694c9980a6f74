// Package geom provides the immutable geometry value types the layout
// machinery is built on: axis-aligned bounding boxes, 2D affine
// transforms, and the placement composer that maps one box onto another.
//
// All types are plain values. Operations never mutate their receiver;
// anything that looks like a mutation returns a new value. Floating-point
// results are compared with an epsilon tolerance (see [AlmostEqual]) -
// no exact equality contract is made.
package geom

import (
	"math"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

// Epsilon is the default tolerance for floating-point box and transform
// comparisons.
const Epsilon = 1e-9

// Box is an axis-aligned rectangle described by two corners.
// The invariant X1 >= X0 and Y1 >= Y0 holds for every Box produced by
// the constructors in this package; degenerate zero-area boxes (points,
// lines) are legal values.
//
// A Box does not know which coordinate space it lives in - space
// membership is tracked by the caller, which keeps the type composable
// across figure, physical, device, and region-local spaces.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// FromExtents creates a Box from its two corners. The corners are
// normalized, so callers may pass them in any order.
func FromExtents(x0, y0, x1, y1 float64) Box {
	return Box{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// FromBounds creates a Box from an origin corner and a width/height.
// Negative sizes are normalized toward the origin.
func FromBounds(x, y, w, h float64) Box {
	return FromExtents(x, y, x+w, y+h)
}

// FromCenterSize creates a Box centered on (cx, cy) with the given size.
func FromCenterSize(cx, cy, w, h float64) Box {
	return FromExtents(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// IsDegenerate reports whether the box has (near-)zero width or height.
func (b Box) IsDegenerate() bool {
	return b.Width() < Epsilon || b.Height() < Epsilon
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X0: b.X0 + dx, Y0: b.Y0 + dy, X1: b.X1 + dx, Y1: b.Y1 + dy}
}

// ScaleAbout returns the box scaled by (sx, sy) about the fixed point
// (px, py). Scaling about the box's own min corner with positive factors
// keeps that corner in place.
func (b Box) ScaleAbout(sx, sy, px, py float64) Box {
	return FromExtents(
		px+(b.X0-px)*sx,
		py+(b.Y0-py)*sy,
		px+(b.X1-px)*sx,
		py+(b.Y1-py)*sy,
	)
}

// Inset returns the box shrunk by margin on all four sides.
// Returns a DEGENERATE_BOX error if the resulting width or height would
// go negative.
func (b Box) Inset(margin float64) (Box, error) {
	if b.Width()-2*margin < 0 || b.Height()-2*margin < 0 {
		return Box{}, carderrors.New(carderrors.ErrCodeDegenerateBox,
			"inset by %g leaves no area in %gx%g box", margin, b.Width(), b.Height())
	}
	return Box{X0: b.X0 + margin, Y0: b.Y0 + margin, X1: b.X1 - margin, Y1: b.Y1 - margin}, nil
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Intersect returns the overlap of b and other. When the boxes are
// disjoint the result is a degenerate zero-area box (never a sentinel);
// callers test via Width/Height or IsDegenerate.
func (b Box) Intersect(other Box) Box {
	x0 := math.Max(b.X0, other.X0)
	y0 := math.Max(b.Y0, other.Y0)
	x1 := math.Min(b.X1, other.X1)
	y1 := math.Min(b.Y1, other.Y1)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Box{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// FlipY returns the box with its y coordinates mirrored within the given
// height extent: y -> withinHeight - y on both corners. This is the
// primitive used when converting between y-up and y-down spaces.
// FlipY is its own inverse: b.FlipY(h).FlipY(h) == b.
func (b Box) FlipY(withinHeight float64) Box {
	return FromExtents(b.X0, withinHeight-b.Y0, b.X1, withinHeight-b.Y1)
}

// AlmostEqual reports whether two boxes are equal within eps on every
// coordinate. Pass eps <= 0 to use the package default [Epsilon].
func (b Box) AlmostEqual(other Box, eps float64) bool {
	if eps <= 0 {
		eps = Epsilon
	}
	return math.Abs(b.X0-other.X0) <= eps &&
		math.Abs(b.Y0-other.Y0) <= eps &&
		math.Abs(b.X1-other.X1) <= eps &&
		math.Abs(b.Y1-other.Y1) <= eps
}

// ContainsBox reports whether other lies entirely within b, with eps
// tolerance on every edge. Pass eps <= 0 to use the package default.
func (b Box) ContainsBox(other Box, eps float64) bool {
	if eps <= 0 {
		eps = Epsilon
	}
	return other.X0 >= b.X0-eps &&
		other.Y0 >= b.Y0-eps &&
		other.X1 <= b.X1+eps &&
		other.Y1 <= b.Y1+eps
}
