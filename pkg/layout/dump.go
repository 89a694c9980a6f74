package layout

import (
	"fmt"
	"io"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/space"
)

// DumpOptions configures the tree dump.
type DumpOptions struct {
	// Digits is the number of fractional digits printed for box
	// coordinates. Zero prints integers, matching the convention that
	// device-pixel output is rounded to whole pixels.
	Digits int

	// Space is the coordinate space resolved boxes are reported in.
	// Defaults to device pixels; physical units and figure fractions
	// are also useful when checking a layout against its configuration.
	Space space.Name
}

// Dump writes a deterministic, indentation-nested report of every region
// in pre-order: name, declared space, local box, and resolved box in the
// requested space. Children print in insertion order, so two dumps of an
// unmodified tree are byte-identical.
//
// Output format, one region per line:
//
//	1. page [physical] local=(0.00, 0.00, 3.50, 2.00) resolved=(0.00, 0.00, 1050.00, 600.00)
//	| 1. header [local:page] local=(0.00, 0.70, 1.00, 1.00) resolved=(0.00, 0.00, 1050.00, 180.00)
//	| | 1. logo ...
func (t *Tree) Dump(w io.Writer, opts DumpOptions) error {
	if opts.Space == "" {
		opts.Space = space.Device
	}
	if err := carderrors.ValidateDigits(opts.Digits); err != nil {
		return err
	}
	if !t.reg.Registered(opts.Space) {
		return carderrors.New(carderrors.ErrCodeUnknownSpace, "space %q not registered", opts.Space)
	}

	var walkErr error
	t.Walk(func(r *Region, depth, index int) {
		if walkErr != nil {
			return
		}
		dev, err := t.resolve(r)
		if err != nil {
			walkErr = err
			return
		}
		resolved, err := t.reg.Convert(dev, space.Device, opts.Space)
		if err != nil {
			walkErr = err
			return
		}

		prefix := ""
		for i := 0; i < depth; i++ {
			prefix += "| "
		}
		_, walkErr = fmt.Fprintf(w, "%s%d. %s [%s] local=%s resolved=%s\n",
			prefix, index+1, r.name, r.space,
			formatBox(r.box, opts.Digits),
			formatBox(resolved, opts.Digits))
	})
	return walkErr
}

// formatBox renders a box as "(x0, y0, x1, y1)" with fixed digits.
func formatBox(b geom.Box, digits int) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f, %.*f)",
		digits, b.X0, digits, b.Y0, digits, b.X1, digits, b.Y1)
}
