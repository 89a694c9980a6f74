// Package svgasset loads vector assets from SVG files into an opaque
// path representation plus native pixel dimensions.
//
// The loader deliberately supports only the normalized subset of the SVG
// path language: absolute M (move), L (line), C (cubic), Q (quadratic)
// and Z (close) commands, with the viewBox attribute supplying the
// asset's native size. Assets are expected to be pre-normalized by an
// SVG authoring tool; anything else fails with
// UNSUPPORTED_PATH_COMMAND rather than being approximated.
//
// The only geometric property the layout machinery inspects is the
// native size; the command list is handed opaquely to the rendering
// surface.
package svgasset

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
)

// Kind identifies a path command.
type Kind int

const (
	MoveTo Kind = iota
	LineTo
	CubicTo // 3 points: two control points, then the end point
	QuadTo  // 2 points: control point, then the end point
	Close   // no points
)

// Point is a single path coordinate in the asset's native pixel space.
type Point struct {
	X, Y float64
}

// Command is one step of a path.
type Command struct {
	Kind Kind
	Pts  []Point
}

// Asset is a loaded vector asset: an opaque command list plus the native
// size derived from the SVG viewBox.
type Asset struct {
	Commands []Command
	W, H     float64
}

// Bounds returns the asset's native bounding box, origin at (0, 0).
func (a *Asset) Bounds() geom.Box {
	return geom.FromBounds(0, 0, a.W, a.H)
}

// Options configures asset loading.
type Options struct {
	// FlipY mirrors the path's y coordinates within the viewBox height,
	// converting from screen space (y origin at the top) to a y-up
	// space. Leave it off when the rendering surface is itself y-down.
	FlipY bool

	// FitHeight, when positive, uniformly scales the asset so its
	// native height equals this value.
	FitHeight float64
}

// ReadFile loads an SVG asset from a file.
func ReadFile(path string, opts Options) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read loads an SVG asset from a reader.
func Read(r io.Reader, opts Options) (*Asset, error) {
	viewBox, paths, err := scan(r)
	if err != nil {
		return nil, err
	}

	a := &Asset{
		W: viewBox.Width(),
		H: viewBox.Height(),
	}
	for _, d := range paths {
		cmds, err := parsePathData(d)
		if err != nil {
			return nil, err
		}
		a.Commands = append(a.Commands, cmds...)
	}

	if opts.FlipY {
		a.transform(func(p Point) Point { return Point{p.X, a.H - p.Y} })
	}
	if opts.FitHeight > 0 {
		if a.H < geom.Epsilon {
			return nil, carderrors.New(carderrors.ErrCodeDegenerateBox,
				"cannot scale asset with zero viewBox height")
		}
		s := opts.FitHeight / a.H
		a.transform(func(p Point) Point { return Point{p.X * s, p.Y * s} })
		a.W *= s
		a.H = opts.FitHeight
	}

	return a, nil
}

// transform applies fn to every point of every command in place.
// Used only during loading; loaded assets are immutable.
func (a *Asset) transform(fn func(Point) Point) {
	for i := range a.Commands {
		for j, p := range a.Commands[i].Pts {
			a.Commands[i].Pts[j] = fn(p)
		}
	}
}

// scan extracts the root viewBox and every <path d="..."> attribute.
func scan(r io.Reader) (geom.Box, []string, error) {
	dec := xml.NewDecoder(r)

	var viewBox geom.Box
	var haveViewBox bool
	var paths []string

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return geom.Box{}, nil, carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "malformed SVG")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "svg":
			for _, attr := range start.Attr {
				if attr.Name.Local == "viewBox" {
					vb, err := parseViewBox(attr.Value)
					if err != nil {
						return geom.Box{}, nil, err
					}
					viewBox = vb
					haveViewBox = true
				}
			}
		case "path":
			for _, attr := range start.Attr {
				if attr.Name.Local == "d" {
					paths = append(paths, attr.Value)
				}
			}
		}
	}

	if !haveViewBox {
		return geom.Box{}, nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"SVG has no viewBox attribute; native size is undefined")
	}
	if len(paths) == 0 {
		return geom.Box{}, nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"SVG contains no path elements")
	}
	return viewBox, paths, nil
}

// parseViewBox parses "minX minY width height".
func parseViewBox(s string) (geom.Box, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return geom.Box{}, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"viewBox must have 4 values, got %q", s)
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Box{}, carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "viewBox value %q", f)
		}
		vals[i] = v
	}
	return geom.FromBounds(vals[0], vals[1], vals[2], vals[3]), nil
}

// pointsPerCurve maps a command kind to how many points one curve
// consumes; L consumes its points one at a time.
var pointsPerCurve = map[Kind]int{
	MoveTo:  1,
	LineTo:  1,
	CubicTo: 3,
	QuadTo:  2,
}

// parsePathData splits normalized path data into commands. Only the
// absolute single-letter forms M, L, C, Q, Z are recognized; an SVG
// normalizer reduces the full path language to this subset before
// assets reach the loader.
func parsePathData(d string) ([]Command, error) {
	var cmds []Command

	i := 0
	for i < len(d) {
		c := d[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		var kind Kind
		switch c {
		case 'M':
			kind = MoveTo
		case 'L':
			kind = LineTo
		case 'C':
			kind = CubicTo
		case 'Q':
			kind = QuadTo
		case 'Z':
			cmds = append(cmds, Command{Kind: Close})
			i++
			continue
		default:
			return nil, carderrors.New(carderrors.ErrCodeUnsupportedPathCommand,
				"unrecognized path command: %q", string(c))
		}
		i++

		// Consume the argument run up to the next command letter.
		j := i
		for j < len(d) && !isCommandLetter(d[j]) {
			j++
		}
		pts, err := parsePoints(d[i:j])
		if err != nil {
			return nil, err
		}
		i = j

		per := pointsPerCurve[kind]
		if len(pts) == 0 || len(pts)%per != 0 {
			return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
				"command %q expects points in groups of %d, got %d", string(c), per, len(pts))
		}

		for k := 0; k < len(pts); k += per {
			ck := kind
			// Extra point pairs after a move are implicit line segments.
			if kind == MoveTo && k > 0 {
				ck = LineTo
			}
			cmds = append(cmds, Command{Kind: ck, Pts: pts[k : k+per]})
		}
	}

	return cmds, nil
}

func isCommandLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// parsePoints parses a run of "x,y" pairs separated by whitespace.
func parsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, field := range strings.Fields(s) {
		xy := strings.Split(field, ",")
		if len(xy) != 2 {
			return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
				"malformed path point %q", field)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "path coordinate %q", xy[0])
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "path coordinate %q", xy[1])
		}
		pts = append(pts, Point{x, y})
	}
	return pts, nil
}
