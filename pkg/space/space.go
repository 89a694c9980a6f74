// Package space defines the named coordinate spaces of a document and the
// conversions between them.
//
// A document has three built-in spaces plus any number of region-local
// spaces:
//
//   - Figure: the unit square over the whole page, y-up
//   - Physical: physical units (inches, millimeters, ...), y-up, origin at
//     the page's bottom-left corner
//   - Device: pixels, y-down, origin at the top-left corner, 1:1 with the
//     rendering surface
//   - local spaces: registered per region, origin at the region's own
//     bottom-left corner with the region extent as the unit square
//
// Every space declares an affine map to Device; converting between two
// arbitrary spaces composes fromDevice(dst) with toDevice(src). The
// registry makes the space of every box an explicit parameter, removing
// the implicit-coordinate-system ambiguity that layout debugging tools
// otherwise have to untangle.
package space

import (
	"fmt"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
)

// Name identifies a coordinate space in a Registry.
type Name string

// Built-in spaces present in every registry.
const (
	Figure   Name = "figure"
	Physical Name = "physical"
	Device   Name = "device"
)

// Registry holds the fixed set of named spaces for one document together
// with the page's physical size and the physical-to-pixel scale.
//
// A Registry is built once during document construction and is read-only
// afterwards, so concurrent conversions are safe once SetResolution and
// all Register calls are done.
type Registry struct {
	pageW, pageH float64 // physical units
	unit         string  // display name of the physical unit ("in", "mm")
	ppu          float64 // pixels per physical unit; 0 until SetResolution
	locals       map[Name]geom.Affine
}

// NewRegistry creates a registry for a page of the given physical size.
// The unit string is informational (it appears in dumps). Resolution must
// be set with SetResolution before any conversion touching Device or
// Figure space; conversions attempted earlier fail with UNKNOWN_SPACE.
func NewRegistry(pageW, pageH float64, unit string) (*Registry, error) {
	if pageW <= 0 || pageH <= 0 {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"page size must be positive, got %gx%g", pageW, pageH)
	}
	return &Registry{
		pageW:  pageW,
		pageH:  pageH,
		unit:   unit,
		locals: make(map[Name]geom.Affine),
	}, nil
}

// SetResolution sets the physical-to-pixel scale in pixels per unit.
func (r *Registry) SetResolution(pixelsPerUnit float64) error {
	if pixelsPerUnit <= 0 {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"resolution must be positive, got %g", pixelsPerUnit)
	}
	r.ppu = pixelsPerUnit
	return nil
}

// PageSize returns the page's physical width and height.
func (r *Registry) PageSize() (w, h float64) { return r.pageW, r.pageH }

// Unit returns the display name of the physical unit.
func (r *Registry) Unit() string { return r.unit }

// Resolution returns the physical-to-pixel scale, or 0 if unset.
func (r *Registry) Resolution() float64 { return r.ppu }

// DeviceSize returns the page extent in device pixels.
// Fails with UNKNOWN_SPACE if the resolution has not been set.
func (r *Registry) DeviceSize() (w, h float64, err error) {
	if r.ppu == 0 {
		return 0, 0, carderrors.New(carderrors.ErrCodeUnknownSpace,
			"resolution not set; call SetResolution before converting to device pixels")
	}
	return r.pageW * r.ppu, r.pageH * r.ppu, nil
}

// Register adds a local space with the given transform to Device.
// Built-in space names cannot be re-registered, and registering the same
// local name twice is an error.
func (r *Registry) Register(name Name, toDevice geom.Affine) error {
	switch name {
	case Figure, Physical, Device:
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"cannot re-register built-in space %q", name)
	}
	if err := carderrors.ValidateName(string(name)); err != nil {
		return err
	}
	if _, exists := r.locals[name]; exists {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"space %q already registered", name)
	}
	r.locals[name] = toDevice
	return nil
}

// Registered reports whether the name refers to a known space.
func (r *Registry) Registered(name Name) bool {
	switch name {
	case Figure, Physical, Device:
		return true
	}
	_, ok := r.locals[name]
	return ok
}

// ToDevice returns the affine transform from the named space to Device.
//
// The y-direction flag of the y-up built-in spaces is realized as a flipY
// against the space's own height extent folded into the returned
// transform: a point at a space's bottom edge lands at the device box's
// bottom (maximum y).
func (r *Registry) ToDevice(name Name) (geom.Affine, error) {
	if name == Device {
		return geom.Identity(), nil
	}

	devW, devH, err := r.DeviceSize()
	if err != nil {
		return geom.Affine{}, err
	}

	switch name {
	case Figure:
		// x' = devW*x ; y' = devH - devH*y
		return geom.Affine{A: devW, E: -devH, F: devH}, nil
	case Physical:
		// x' = ppu*x ; y' = devH - ppu*y
		return geom.Affine{A: r.ppu, E: -r.ppu, F: devH}, nil
	}

	if m, ok := r.locals[name]; ok {
		return m, nil
	}
	return geom.Affine{}, carderrors.New(carderrors.ErrCodeUnknownSpace,
		"space %q not registered", name)
}

// FromDevice returns the affine transform from Device to the named space.
func (r *Registry) FromDevice(name Name) (geom.Affine, error) {
	toDev, err := r.ToDevice(name)
	if err != nil {
		return geom.Affine{}, err
	}
	inv, err := toDev.Invert()
	if err != nil {
		return geom.Affine{}, carderrors.Wrap(carderrors.ErrCodeUnknownSpace, err,
			"space %q has a singular device transform", name)
	}
	return inv, nil
}

// Transform returns the affine transform converting coordinates from one
// space to another: fromDevice(to) ∘ toDevice(from).
func (r *Registry) Transform(from, to Name) (geom.Affine, error) {
	if from == to {
		return geom.Identity(), nil
	}
	toDev, err := r.ToDevice(from)
	if err != nil {
		return geom.Affine{}, err
	}
	fromDev, err := r.FromDevice(to)
	if err != nil {
		return geom.Affine{}, err
	}
	return fromDev.Mul(toDev), nil
}

// Convert expresses a box in another coordinate space.
// Convert is its own inverse within epsilon:
// Convert(Convert(b, A, B), B, A) ≈ b.
func (r *Registry) Convert(b geom.Box, from, to Name) (geom.Box, error) {
	m, err := r.Transform(from, to)
	if err != nil {
		return geom.Box{}, err
	}
	return m.ApplyBox(b), nil
}

// LocalName returns the conventional space name for a region's local
// space, e.g. "local:headshot".
func LocalName(region string) Name {
	return Name(fmt.Sprintf("local:%s", region))
}
