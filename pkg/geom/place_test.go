package geom

import (
	"testing"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

func TestComposeStretch(t *testing.T) {
	src := FromExtents(0, 0, 10, 20)
	dst := FromExtents(5, 5, 25, 25)

	m, placed, err := Compose(src, dst, Placement{Policy: PolicyStretch})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}

	// The transform maps the source corners exactly onto the destination corners.
	if x, y := m.Apply(0, 0); x != 5 || y != 5 {
		t.Errorf("(0,0) -> (%g, %g), want (5, 5)", x, y)
	}
	if x, y := m.Apply(10, 20); x != 25 || y != 25 {
		t.Errorf("(10,20) -> (%g, %g), want (25, 25)", x, y)
	}
	if !placed.AlmostEqual(dst, 0) {
		t.Errorf("placed = %+v, want %+v", placed, dst)
	}
}

func TestComposeFitPreservesAspect(t *testing.T) {
	// Aspect 0.5 source into a square: scaled to 20x40, centered at x-offset 10.
	src := FromExtents(0, 0, 10, 20)
	dst := FromExtents(0, 0, 40, 40)

	m, placed, err := Compose(src, dst, Placement{Policy: PolicyFit, Anchor: AnchorCenter})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if !placed.AlmostEqual(Box{10, 0, 30, 40}, 0) {
		t.Errorf("placed = %+v, want {10 0 30 40}", placed)
	}
	if got := m.ApplyBox(src); !got.AlmostEqual(placed, 0) {
		t.Errorf("transform maps src to %+v, placed box says %+v", got, placed)
	}
	// Uniform scale.
	if m.A != m.E {
		t.Errorf("fit scale not uniform: sx=%g sy=%g", m.A, m.E)
	}
}

func TestComposeAnchors(t *testing.T) {
	src := FromExtents(0, 0, 10, 20) // fits as 20x40 inside the 40x40 destination
	dst := FromExtents(0, 0, 40, 40)

	tests := []struct {
		name   string
		anchor Anchor
		want   Box
	}{
		{"Center", AnchorCenter, Box{10, 0, 30, 40}},
		{"BottomLeft", AnchorBottomLeft, Box{0, 0, 20, 40}},
		{"BottomRight", AnchorBottomRight, Box{20, 0, 40, 40}},
		{"TopLeft", AnchorTopLeft, Box{0, 0, 20, 40}},
		{"Top", AnchorTop, Box{10, 0, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, placed, err := Compose(src, dst, Placement{Policy: PolicyFit, Anchor: tt.anchor})
			if err != nil {
				t.Fatalf("Compose error: %v", err)
			}
			if !placed.AlmostEqual(tt.want, 0) {
				t.Errorf("placed = %+v, want %+v", placed, tt.want)
			}
		})
	}
}

func TestComposeAnchorsWithVerticalSlack(t *testing.T) {
	// A wide source leaves vertical slack, exercising top/bottom anchors.
	src := FromExtents(0, 0, 20, 10) // fits as 40x20 inside the 40x40 destination
	dst := FromExtents(0, 0, 40, 40)

	tests := []struct {
		name   string
		anchor Anchor
		want   Box
	}{
		{"BottomLeft", AnchorBottomLeft, Box{0, 0, 40, 20}},
		{"TopLeft", AnchorTopLeft, Box{0, 20, 40, 40}},
		{"Center", AnchorCenter, Box{0, 10, 40, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, placed, err := Compose(src, dst, Placement{Policy: PolicyFit, Anchor: tt.anchor})
			if err != nil {
				t.Fatalf("Compose error: %v", err)
			}
			if !placed.AlmostEqual(tt.want, 0) {
				t.Errorf("placed = %+v, want %+v", placed, tt.want)
			}
		})
	}
}

func TestComposeDegenerateSource(t *testing.T) {
	dst := FromExtents(0, 0, 40, 40)

	zeroWidth := FromExtents(0, 0, 0, 20)
	if _, _, err := Compose(zeroWidth, dst, Placement{Policy: PolicyStretch}); !carderrors.Is(err, carderrors.ErrCodeDegenerateBox) {
		t.Errorf("zero-width stretch error = %v, want DEGENERATE_BOX", err)
	}

	zeroHeight := FromExtents(0, 0, 10, 0)
	if _, _, err := Compose(zeroHeight, dst, Placement{Policy: PolicyFit}); !carderrors.Is(err, carderrors.ErrCodeDegenerateBox) {
		t.Errorf("zero-height fit error = %v, want DEGENERATE_BOX", err)
	}
}

func TestComposeOffsetSource(t *testing.T) {
	// Source boxes need not start at the origin.
	src := FromExtents(100, 50, 110, 70)
	dst := FromExtents(0, 0, 20, 40)

	m, _, err := Compose(src, dst, Placement{Policy: PolicyStretch})
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if x, y := m.Apply(100, 50); x != 0 || y != 0 {
		t.Errorf("src min corner -> (%g, %g), want (0, 0)", x, y)
	}
	if x, y := m.Apply(110, 70); x != 20 || y != 40 {
		t.Errorf("src max corner -> (%g, %g), want (20, 40)", x, y)
	}
}

func TestParsePolicyAndAnchor(t *testing.T) {
	if p, err := ParsePolicy("stretch"); err != nil || p != PolicyStretch {
		t.Errorf("ParsePolicy(stretch) = %v, %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != PolicyFit {
		t.Errorf("ParsePolicy('') = %v, %v, want fit default", p, err)
	}
	if _, err := ParsePolicy("tile"); !carderrors.Is(err, carderrors.ErrCodeInvalidPolicy) {
		t.Errorf("ParsePolicy(tile) error = %v, want INVALID_POLICY", err)
	}

	if a, err := ParseAnchor("bottom-left"); err != nil || a != AnchorBottomLeft {
		t.Errorf("ParseAnchor(bottom-left) = %v, %v", a, err)
	}
	if a, err := ParseAnchor(""); err != nil || a != AnchorCenter {
		t.Errorf("ParseAnchor('') = %v, %v, want center default", a, err)
	}
	if _, err := ParseAnchor("middle"); !carderrors.Is(err, carderrors.ErrCodeInvalidAnchor) {
		t.Errorf("ParseAnchor(middle) error = %v, want INVALID_ANCHOR", err)
	}
}
