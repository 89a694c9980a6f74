package layout

import (
	"testing"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/space"
)

// newTestTree builds the canonical test document: a 3.5x2.0 inch page at
// 300 px/in (1050x600 device pixels) carved into header and body bands.
func newTestTree(t *testing.T) *Tree {
	t.Helper()

	reg, err := space.NewRegistry(3.5, 2.0, "in")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := reg.SetResolution(300); err != nil {
		t.Fatalf("SetResolution: %v", err)
	}

	tree, err := NewTree("page", geom.FromExtents(0, 0, 3.5, 2.0), space.Physical, reg)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	// Top 30% of the page.
	if _, err := tree.AddChild("page", "header", geom.FromExtents(0, 0.7, 1, 1)); err != nil {
		t.Fatalf("AddChild header: %v", err)
	}
	// Bottom 70%.
	if _, err := tree.AddChild("page", "body", geom.FromExtents(0, 0, 1, 0.7)); err != nil {
		t.Fatalf("AddChild body: %v", err)
	}
	return tree
}

func TestResolveRoot(t *testing.T) {
	tree := newTestTree(t)

	got, err := tree.Resolve("page")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.AlmostEqual(geom.FromExtents(0, 0, 1050, 600), 0) {
		t.Errorf("page = %+v, want (0, 0, 1050, 600)", got)
	}
}

func TestResolveChildren(t *testing.T) {
	tree := newTestTree(t)

	// The header occupies the top 30% of the page: in y-down device
	// coordinates that is the y range [0, 180].
	header, err := tree.Resolve("header")
	if err != nil {
		t.Fatalf("Resolve header: %v", err)
	}
	if !header.AlmostEqual(geom.FromExtents(0, 0, 1050, 180), 1e-9) {
		t.Errorf("header = %+v, want (0, 0, 1050, 180)", header)
	}

	body, err := tree.Resolve("body")
	if err != nil {
		t.Fatalf("Resolve body: %v", err)
	}
	if !body.AlmostEqual(geom.FromExtents(0, 180, 1050, 600), 1e-9) {
		t.Errorf("body = %+v, want (0, 180, 1050, 600)", body)
	}
}

func TestResolveNested(t *testing.T) {
	tree := newTestTree(t)

	// Left quarter of the body, full height.
	if _, err := tree.AddChild("body", "headshot", geom.FromExtents(0, 0, 0.25, 1)); err != nil {
		t.Fatalf("AddChild headshot: %v", err)
	}

	got, err := tree.Resolve("headshot")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.AlmostEqual(geom.FromExtents(0, 180, 262.5, 600), 1e-9) {
		t.Errorf("headshot = %+v, want (0, 180, 262.5, 600)", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	tree := newTestTree(t)

	first, err := tree.Resolve("header")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := tree.Resolve("header")
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if first != second {
		t.Errorf("Resolve not idempotent: %+v vs %+v", first, second)
	}
}

func TestUnknownParent(t *testing.T) {
	tree := newTestTree(t)

	_, err := tree.AddChild("footer", "icons", geom.FromExtents(0, 0, 1, 1))
	if !carderrors.Is(err, carderrors.ErrCodeUnknownRegion) {
		t.Errorf("unknown parent error = %v, want UNKNOWN_REGION", err)
	}
}

func TestUnknownRegionResolve(t *testing.T) {
	tree := newTestTree(t)

	_, err := tree.Resolve("nowhere")
	if !carderrors.Is(err, carderrors.ErrCodeUnknownRegion) {
		t.Errorf("unknown region error = %v, want UNKNOWN_REGION", err)
	}
}

func TestDuplicateName(t *testing.T) {
	tree := newTestTree(t)

	_, err := tree.AddChild("body", "header", geom.FromExtents(0, 0, 0.5, 0.5))
	if !carderrors.Is(err, carderrors.ErrCodeInvalidConfig) {
		t.Errorf("duplicate name error = %v, want INVALID_CONFIG", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	tree := newTestTree(t)

	tests := []struct {
		name string
		box  geom.Box
	}{
		{"PastRight", geom.FromExtents(0.5, 0, 1.5, 0.5)},
		{"PastTop", geom.FromExtents(0, 0.5, 0.5, 1.2)},
		{"Negative", geom.FromExtents(-0.1, 0, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tree.AddChild("body", "escape-"+tt.name, tt.box)
			if !carderrors.Is(err, carderrors.ErrCodeOutOfBounds) {
				t.Errorf("error = %v, want OUT_OF_BOUNDS", err)
			}
		})
	}

	// The full unit square is exactly in bounds.
	if _, err := tree.AddChild("body", "full", geom.FromExtents(0, 0, 1, 1)); err != nil {
		t.Errorf("exact-fit child: %v", err)
	}
}

func TestOverflowAllowed(t *testing.T) {
	reg, err := space.NewRegistry(3.5, 2.0, "in")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if err := reg.SetResolution(300); err != nil {
		t.Fatalf("SetResolution: %v", err)
	}

	tree, err := NewTree("page", geom.FromExtents(0, 0, 3.5, 2.0), space.Physical, reg, WithOverflow())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	if _, err := tree.AddChild("page", "bleed", geom.FromExtents(-0.05, -0.05, 1.05, 1.05)); err != nil {
		t.Errorf("overflow child with WithOverflow: %v", err)
	}
}

func TestLocalSpaceRegistered(t *testing.T) {
	tree := newTestTree(t)
	reg := tree.Registry()

	if !reg.Registered(space.LocalName("header")) {
		t.Fatal("header local space should be registered")
	}

	// The header's local unit square maps onto its resolved device box.
	got, err := reg.Convert(geom.FromExtents(0, 0, 1, 1), space.LocalName("header"), space.Device)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want, err := tree.Resolve("header")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.AlmostEqual(want, 1e-9) {
		t.Errorf("local unit square = %+v, want %+v", got, want)
	}

	// Local space is y-up: local (0,0) is the region's device bottom-left.
	x, y := mustToDevice(t, reg, space.LocalName("header")).Apply(0, 0)
	if x != want.X0 || y != want.Y1 {
		t.Errorf("local origin -> (%g, %g), want (%g, %g)", x, y, want.X0, want.Y1)
	}
}

func mustToDevice(t *testing.T, reg *space.Registry, name space.Name) geom.Affine {
	t.Helper()
	m, err := reg.ToDevice(name)
	if err != nil {
		t.Fatalf("ToDevice(%s): %v", name, err)
	}
	return m
}

func TestWalkOrder(t *testing.T) {
	tree := newTestTree(t)
	if _, err := tree.AddChild("body", "headshot", geom.FromExtents(0, 0, 0.25, 1)); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if _, err := tree.AddChild("body", "details", geom.FromExtents(0.25, 0, 1, 1)); err != nil {
		t.Fatalf("AddChild: %v", err)
	}

	var names []string
	var depths []int
	tree.Walk(func(r *Region, depth, index int) {
		names = append(names, r.Name())
		depths = append(depths, depth)
	})

	wantNames := []string{"page", "header", "body", "headshot", "details"}
	wantDepths := []int{0, 1, 1, 2, 2}
	if len(names) != len(wantNames) {
		t.Fatalf("visited %d regions, want %d", len(names), len(wantNames))
	}
	for i := range wantNames {
		if names[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = %s@%d, want %s@%d", i, names[i], depths[i], wantNames[i], wantDepths[i])
		}
	}
}
