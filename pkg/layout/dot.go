package layout

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

// DOTOptions configures region-hierarchy diagram generation.
type DOTOptions struct {
	// Detailed includes each region's resolved device-pixel bounds in
	// its node label. When false, only the region name is shown.
	Detailed bool
}

// ToDOT converts the region tree to Graphviz DOT format for a node-link
// view of the hierarchy. The resulting DOT string can be rendered with
// [RenderDOT]. Nodes appear in the same pre-order as the tree dump, so
// the output is deterministic.
func (t *Tree) ToDOT(opts DOTOptions) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph regions {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var walkErr error
	t.Walk(func(r *Region, depth, index int) {
		if walkErr != nil {
			return
		}
		label := r.name
		if opts.Detailed {
			dev, err := t.resolve(r)
			if err != nil {
				walkErr = err
				return
			}
			label = fmt.Sprintf("%s\n[%s]\npx (%.0f, %.0f, %.0f, %.0f)",
				r.name, r.space, dev.X0, dev.Y0, dev.X1, dev.Y1)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", r.name, label)
	})
	if walkErr != nil {
		return "", walkErr
	}

	buf.WriteString("\n")
	t.Walk(func(r *Region, depth, index int) {
		if r.parent != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", r.parent.name, r.name)
		}
	})

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderDOT renders a DOT graph to the given Graphviz output format
// (e.g. graphviz.SVG, graphviz.PNG).
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeInternal, err, "render DOT")
	}
	return buf.Bytes(), nil
}
