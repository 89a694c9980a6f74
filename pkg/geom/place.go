package geom

import (
	"math"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

// Policy selects how a source box is mapped onto a destination box.
type Policy int

const (
	// PolicyStretch scales x and y independently so the source box
	// fills the destination exactly. Aspect ratio is not preserved.
	PolicyStretch Policy = iota

	// PolicyFit scales uniformly by min(destW/srcW, destH/srcH) so the
	// source fits entirely inside the destination, positioned by the
	// placement's Anchor.
	PolicyFit
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyStretch:
		return "stretch"
	case PolicyFit:
		return "fit"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "stretch":
		return PolicyStretch, nil
	case "fit", "":
		return PolicyFit, nil
	default:
		return 0, carderrors.New(carderrors.ErrCodeInvalidPolicy,
			"unknown placement policy %q (must be 'stretch' or 'fit')", s)
	}
}

// Anchor selects where a fitted box sits inside its destination when the
// uniform scale leaves slack on one axis.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorBottomLeft
	AnchorBottomRight
	AnchorTopLeft
	AnchorTopRight
	AnchorLeft
	AnchorRight
	AnchorBottom
	AnchorTop
)

// anchorNames maps configuration strings to anchors. Bottom-left is the
// default reference corner, matching the convention that authored assets
// are y-up.
var anchorNames = map[string]Anchor{
	"center":       AnchorCenter,
	"bottom-left":  AnchorBottomLeft,
	"bottom-right": AnchorBottomRight,
	"top-left":     AnchorTopLeft,
	"top-right":    AnchorTopRight,
	"left":         AnchorLeft,
	"right":        AnchorRight,
	"bottom":       AnchorBottom,
	"top":          AnchorTop,
}

// String returns the configuration name of the anchor.
func (a Anchor) String() string {
	for name, anchor := range anchorNames {
		if anchor == a {
			return name
		}
	}
	return "unknown"
}

// ParseAnchor converts a configuration string to an Anchor.
// The empty string parses as center, the fit policy's default.
func ParseAnchor(s string) (Anchor, error) {
	if s == "" {
		return AnchorCenter, nil
	}
	if a, ok := anchorNames[s]; ok {
		return a, nil
	}
	return 0, carderrors.New(carderrors.ErrCodeInvalidAnchor, "unknown anchor %q", s)
}

// Placement pairs a scaling policy with an anchor.
type Placement struct {
	Policy Policy
	Anchor Anchor
}

// Compose builds the affine transform that maps src onto dst under the
// placement, along with the box src occupies after the transform.
// Both boxes must already be expressed in the same coordinate space;
// Compose is agnostic to which space that is. Composing the result with
// a space-conversion transform yields the single transform handed to the
// rendering surface.
//
// Returns a DEGENERATE_BOX error if src has zero width or height, since
// no finite scale can map it onto a non-degenerate destination.
func Compose(src, dst Box, p Placement) (Affine, Box, error) {
	if src.IsDegenerate() {
		return Affine{}, Box{}, carderrors.New(carderrors.ErrCodeDegenerateBox,
			"cannot place %gx%g source box", src.Width(), src.Height())
	}

	var sx, sy float64
	switch p.Policy {
	case PolicyStretch:
		sx = dst.Width() / src.Width()
		sy = dst.Height() / src.Height()
	case PolicyFit:
		s := math.Min(dst.Width()/src.Width(), dst.Height()/src.Height())
		sx, sy = s, s
	default:
		return Affine{}, Box{}, carderrors.New(carderrors.ErrCodeInvalidPolicy,
			"unknown placement policy %d", p.Policy)
	}

	w := src.Width() * sx
	h := src.Height() * sy
	x0, y0 := anchorOffset(p.Anchor, dst, w, h)

	// The transform maps src's min corner exactly onto the placed box's
	// min corner after scaling.
	m := Affine{
		A: sx, C: x0 - sx*src.X0,
		E: sy, F: y0 - sy*src.Y0,
	}
	return m, FromBounds(x0, y0, w, h), nil
}

// anchorOffset returns the min corner of a w x h box positioned inside
// dst according to the anchor.
func anchorOffset(a Anchor, dst Box, w, h float64) (float64, float64) {
	left := dst.X0
	right := dst.X1 - w
	hcenter := dst.X0 + (dst.Width()-w)/2
	bottom := dst.Y0
	top := dst.Y1 - h
	vcenter := dst.Y0 + (dst.Height()-h)/2

	switch a {
	case AnchorBottomLeft:
		return left, bottom
	case AnchorBottomRight:
		return right, bottom
	case AnchorTopLeft:
		return left, top
	case AnchorTopRight:
		return right, top
	case AnchorLeft:
		return left, vcenter
	case AnchorRight:
		return right, vcenter
	case AnchorBottom:
		return hcenter, bottom
	case AnchorTop:
		return hcenter, top
	default: // AnchorCenter
		return hcenter, vcenter
	}
}
