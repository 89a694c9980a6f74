// Package render draws placed content onto a raster canvas.
//
// A Surface wraps a device-pixel canvas with a y-down origin at the
// top-left, matching the device coordinate space used by the layout
// machinery. Content is expressed as Drawables with native bounds;
// the surface applies axis-aligned placement transforms produced by
// the composer and knows nothing about regions or policies.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
)

// Drawable is anything that can paint itself onto a canvas at its
// native size, origin at the top-left of its bounds.
type Drawable interface {
	// Bounds returns the native bounding box, anchored at (0, 0).
	Bounds() geom.Box

	// Draw paints the content onto dc in native coordinates. The
	// surface has already installed the placement transform.
	Draw(dc *gg.Context) error
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithBackground sets the canvas fill color. Default is white.
func WithBackground(c color.Color) SurfaceOption {
	return func(s *Surface) { s.background = c }
}

// WithDebugColor sets the outline color used by DebugBox.
func WithDebugColor(c color.Color) SurfaceOption {
	return func(s *Surface) { s.debugColor = c }
}

// Surface is a fixed-size raster canvas in device pixels.
type Surface struct {
	dc         *gg.Context
	w, h       int
	background color.Color
	debugColor color.Color
}

// NewSurface creates a canvas of the given device-pixel size and fills
// it with the background color.
func NewSurface(width, height int, opts ...SurfaceOption) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, carderrors.New(carderrors.ErrCodeDegenerateBox,
			"surface size must be positive, got %dx%d", width, height)
	}
	s := &Surface{
		dc:         gg.NewContext(width, height),
		w:          width,
		h:          height,
		background: color.White,
		debugColor: color.RGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dc.SetColor(s.background)
	s.dc.Clear()
	return s, nil
}

// Size returns the canvas dimensions in device pixels.
func (s *Surface) Size() (int, int) { return s.w, s.h }

// Place paints d under the given placement transform. Only axis-aligned
// transforms with positive scale are accepted; the composer never
// produces anything else for device-space placements.
func (s *Surface) Place(d Drawable, m geom.Affine) error {
	if !m.IsAxisAligned() {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"placement transform must be axis-aligned")
	}
	if m.A <= 0 || m.E <= 0 {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"placement transform must not mirror (sx=%g, sy=%g)", m.A, m.E)
	}

	s.dc.Push()
	s.dc.Translate(m.C, m.F)
	s.dc.Scale(m.A, m.E)
	err := d.Draw(s.dc)
	s.dc.Pop()
	if err != nil {
		return carderrors.Wrap(carderrors.ErrCodeInternal, err, "draw content")
	}
	return nil
}

// FillBox fills a device-space rectangle, typically a region background.
func (s *Surface) FillBox(box geom.Box, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(box.X0, box.Y0, box.Width(), box.Height())
	s.dc.Fill()
}

// DebugBox strokes a dashed outline around a device-space rectangle.
// Used to visualize region boundaries during layout debugging.
func (s *Surface) DebugBox(box geom.Box) {
	s.dc.Push()
	s.dc.SetColor(s.debugColor)
	s.dc.SetLineWidth(1)
	s.dc.SetDash(4, 4)
	s.dc.DrawRectangle(box.X0, box.Y0, box.Width(), box.Height())
	s.dc.Stroke()
	s.dc.Pop()
}

// Image returns the rendered canvas.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return carderrors.Wrap(carderrors.ErrCodeInternal, err, "encode PNG")
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return carderrors.Wrap(carderrors.ErrCodeInternal, err, "save PNG to %s", path)
	}
	return nil
}

// DeviceSize converts a physical page size to integer canvas
// dimensions, rounding to the nearest pixel.
func DeviceSize(pageW, pageH, pixelsPerUnit float64) (int, int) {
	return int(math.Round(pageW * pixelsPerUnit)), int(math.Round(pageH * pixelsPerUnit))
}
