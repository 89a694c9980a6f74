package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstock/pkg/card"
	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/layout"
	"github.com/matzehuels/cardstock/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	digits int    // coordinate precision of the text dump
	space  string // coordinate space: "px", "physical" or "figure"
	format string // output format: "text", "dot", "png" or "svg"
	output string // output file for diagram formats
}

// newTreeCmd creates the tree command for inspecting the resolved
// region tree. The text and dot formats print to stdout; png and svg
// render a Graphviz diagram to a file.
func newTreeCmd() *cobra.Command {
	opts := treeOpts{
		digits: pipeline.DefaultDigits,
		format: "text",
	}

	cmd := &cobra.Command{
		Use:   "tree [card.toml]",
		Short: "Dump or diagram the resolved region tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.digits, "digits", opts.digits, "decimal digits for coordinates (0 prints integers)")
	cmd.Flags().StringVar(&opts.space, "space", "", "coordinate space: px (default), physical, figure")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: text (default), dot, png, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for png/svg diagrams")

	return cmd
}

// runTree builds the document and emits the region tree in the
// requested form.
func runTree(ctx context.Context, input string, opts *treeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := card.LoadConfig(input)
	if err != nil {
		return err
	}
	doc, err := card.Build(cfg)
	if err != nil {
		return err
	}
	logger.Debugf("Built document: %d regions", len(cfg.Regions))

	switch opts.format {
	case "text":
		dumpSpace, err := pipeline.ParseSpace(opts.space)
		if err != nil {
			return err
		}
		return doc.Tree().Dump(os.Stdout, layout.DumpOptions{
			Digits: opts.digits,
			Space:  dumpSpace,
		})

	case "dot":
		dot, err := doc.Tree().ToDOT(layout.DOTOptions{Detailed: true})
		if err != nil {
			return err
		}
		fmt.Print(dot)
		return nil

	case "png", "svg":
		return renderTreeDiagram(ctx, doc, input, opts)

	default:
		return carderrors.New(carderrors.ErrCodeInvalidFormat,
			"invalid tree format %q (must be text, dot, png or svg)", opts.format)
	}
}

// renderTreeDiagram rasterizes the region tree through Graphviz.
func renderTreeDiagram(ctx context.Context, doc *card.Document, input string, opts *treeOpts) error {
	logger := loggerFromContext(ctx)

	dot, err := doc.Tree().ToDOT(layout.DOTOptions{Detailed: true})
	if err != nil {
		return err
	}

	gvFormat := graphviz.PNG
	if opts.format == "svg" {
		gvFormat = graphviz.SVG
	}
	data, err := layout.RenderDOT(ctx, dot, gvFormat)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "_tree." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Infof("Generated %s", path)
	printFile(path)
	return nil
}
