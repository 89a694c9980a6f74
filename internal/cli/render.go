package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstock/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "png", "json", "txt", "dot"
	debugBoxes bool     // stroke region outlines on the rendered card
	noCache    bool     // disable the artifact cache
	refresh    bool     // bypass cached artifacts and re-render
}

// newRenderCmd creates the render command for producing card artifacts.
//
// Default settings:
//   - format: png
//   - caching: enabled (XDG cache directory)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [card.toml]",
		Short: "Render a card description to PNG and other artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), json, txt, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.debugBoxes, "debug-boxes", false, "stroke dashed region outlines on the rendered card")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")

	return cmd
}

// runRender executes the pipeline and writes every requested artifact.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	runner := newRunner(ctx, opts.noCache)
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: input,
		Formats:    opts.formats,
		DebugBoxes: opts.debugBoxes,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		printError("Render failed: %v", err)
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	w, h := result.Document.DeviceSize()
	p.done(fmt.Sprintf("Rendered %s (%dx%d px)", filepath.Base(input), w, h))
	printStats(result.Stats.RegionCount, result.Stats.AssetCount, result.CacheInfo.RenderHit)
	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output carries a known format extension, that extension is stripped so
// multi-format runs do not produce names like card.png.json.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
