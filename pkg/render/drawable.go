package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/svgasset"
)

// Image is a raster drawable at its native pixel size.
type Image struct {
	img image.Image
}

// LoadImage decodes a raster image file.
func LoadImage(path string) (*Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeFileNotFound, err, "load image %s", path)
	}
	return &Image{img: img}, nil
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

func (i *Image) Bounds() geom.Box {
	b := i.img.Bounds()
	return geom.FromBounds(0, 0, float64(b.Dx()), float64(b.Dy()))
}

func (i *Image) Draw(dc *gg.Context) error {
	dc.DrawImage(i.img, 0, 0)
	return nil
}

// Path is a vector drawable built from a loaded SVG asset.
type Path struct {
	asset *svgasset.Asset
	fill  color.Color
}

// NewPath wraps an asset with a fill color.
func NewPath(a *svgasset.Asset, fill color.Color) *Path {
	return &Path{asset: a, fill: fill}
}

func (p *Path) Bounds() geom.Box { return p.asset.Bounds() }

func (p *Path) Draw(dc *gg.Context) error {
	for _, cmd := range p.asset.Commands {
		switch cmd.Kind {
		case svgasset.MoveTo:
			dc.MoveTo(cmd.Pts[0].X, cmd.Pts[0].Y)
		case svgasset.LineTo:
			dc.LineTo(cmd.Pts[0].X, cmd.Pts[0].Y)
		case svgasset.CubicTo:
			dc.CubicTo(
				cmd.Pts[0].X, cmd.Pts[0].Y,
				cmd.Pts[1].X, cmd.Pts[1].Y,
				cmd.Pts[2].X, cmd.Pts[2].Y)
		case svgasset.QuadTo:
			dc.QuadraticTo(
				cmd.Pts[0].X, cmd.Pts[0].Y,
				cmd.Pts[1].X, cmd.Pts[1].Y)
		case svgasset.Close:
			dc.ClosePath()
		default:
			return carderrors.New(carderrors.ErrCodeUnsupportedPathCommand,
				"unknown path command kind %d", cmd.Kind)
		}
	}
	dc.SetColor(p.fill)
	dc.Fill()
	return nil
}

// TextOption configures a Text drawable.
type TextOption func(*Text)

// WithTextColor sets the fill color. Default is black.
func WithTextColor(c color.Color) TextOption {
	return func(t *Text) { t.color = c }
}

// WithOutline adds a stroked halo around the glyphs, useful for text
// over photos or saturated backgrounds.
func WithOutline(c color.Color, width float64) TextOption {
	return func(t *Text) {
		t.outline = c
		t.outlineWidth = width
	}
}

// Text is a single line of text rasterized at its native point size.
// The glyphs are drawn once into an offscreen buffer; placement then
// scales that buffer like any other image, so downstream fitting does
// not depend on font hinting at arbitrary sizes.
type Text struct {
	str          string
	fontPath     string
	size         float64
	color        color.Color
	outline      color.Color
	outlineWidth float64

	w, h float64
	img  image.Image
}

// NewText measures and rasterizes a line of text. The font is located
// by family name through the system font directories.
func NewText(str, fontFamily string, size float64, opts ...TextOption) (*Text, error) {
	if str == "" {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig, "text content is empty")
	}
	if size <= 0 {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"font size must be positive, got %g", size)
	}

	fontPath, err := findfont.Find(fontFamily)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeFontNotFound, err,
			"font %q not found", fontFamily)
	}

	t := &Text{
		str:      str,
		fontPath: fontPath,
		size:     size,
		color:    color.Black,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.rasterize(); err != nil {
		return nil, err
	}
	return t, nil
}

// rasterize measures the string and paints it into the offscreen buffer.
func (t *Text) rasterize() error {
	scratch := gg.NewContext(1, 1)
	if err := scratch.LoadFontFace(t.fontPath, t.size); err != nil {
		return carderrors.Wrap(carderrors.ErrCodeFontNotFound, err,
			"load font face %s", t.fontPath)
	}
	w, _ := scratch.MeasureString(t.str)
	h := scratch.FontHeight()

	pad := math.Ceil(t.outlineWidth)
	bw := int(math.Ceil(w + 2*pad))
	bh := int(math.Ceil(h + 2*pad))
	if bw < 1 || bh < 1 {
		return carderrors.New(carderrors.ErrCodeDegenerateBox,
			"text %q measures to an empty box", t.str)
	}

	dc := gg.NewContext(bw, bh)
	if err := dc.LoadFontFace(t.fontPath, t.size); err != nil {
		return carderrors.Wrap(carderrors.ErrCodeFontNotFound, err,
			"load font face %s", t.fontPath)
	}

	cx := float64(bw) / 2
	cy := float64(bh) / 2
	if t.outline != nil && t.outlineWidth > 0 {
		dc.SetColor(t.outline)
		// Approximate a stroke by stamping the string around a ring of
		// offsets. Cheap but visually equivalent at halo widths of a
		// few pixels.
		n := int(math.Max(8, 4*t.outlineWidth))
		for i := 0; i < n; i++ {
			angle := float64(i) * 2 * math.Pi / float64(n)
			dx := t.outlineWidth * math.Cos(angle)
			dy := t.outlineWidth * math.Sin(angle)
			dc.DrawStringAnchored(t.str, cx+dx, cy+dy, 0.5, 0.5)
		}
	}
	dc.SetColor(t.color)
	dc.DrawStringAnchored(t.str, cx, cy, 0.5, 0.5)

	t.w = w + 2*pad
	t.h = h + 2*pad
	t.img = dc.Image()
	return nil
}

func (t *Text) Bounds() geom.Box { return geom.FromBounds(0, 0, t.w, t.h) }

func (t *Text) Draw(dc *gg.Context) error {
	dc.DrawImage(t.img, 0, 0)
	return nil
}
