// Package pkg provides the core libraries for Cardstock card composition.
//
// # Overview
//
// Cardstock turns declarative card descriptions into print-ready raster
// output with pixel-precise layout. The pkg directory is organized into
// three main areas:
//
//  1. Geometry and layout (boxes, transforms, coordinate spaces, regions)
//  2. Content (asset loading, document building, rasterization)
//  3. Infrastructure (caching, observability, pipeline orchestration)
//
// # Architecture
//
// The typical data flow through Cardstock:
//
//	TOML card description
//	         ↓
//	    [card] package (validate config, build document)
//	         ↓
//	    [space] + [layout] packages (coordinate spaces, region tree)
//	         ↓
//	    [geom] package (placement transforms)
//	         ↓
//	    [render] package (rasterize onto the device canvas)
//	         ↓
//	    PNG/JSON/text/DOT output
//
// # Quick Start
//
// Build and render a card:
//
//	import "github.com/matzehuels/cardstock/pkg/card"
//
//	cfg, _ := card.LoadConfig("card.toml")
//	doc, _ := card.Build(cfg)
//	surface, _ := doc.Render(card.RenderOptions{BaseDir: "."})
//	_ = surface.SavePNG("card.png")
//
// Inspect the resolved region tree:
//
//	doc.Tree().Dump(os.Stdout, layout.DumpOptions{Digits: 2})
//
// # Main Packages
//
// [geom] - Bounding box algebra, affine transforms, and the placement
// composer (stretch and aspect-preserving fit with anchors).
//
// [space] - Named coordinate spaces (figure, physical, device, and
// per-region local spaces) with exact conversions between any pair.
//
// [layout] - The hierarchical region tree: fractional child boxes,
// device-space resolution, containment checking, text dumps, JSON
// export, and Graphviz diagrams.
//
// [card] - TOML card descriptions resolved into complete documents:
// page setup, region carving, asset placement.
//
// [render] - The raster surface backed by a 2D drawing context, with
// image, vector path, and text drawables.
//
// [svgasset] - Loader for normalized SVG path assets.
//
// [pipeline] - Complete load → build → render pipeline used by every
// entry point, with artifact caching.
//
// [cache] - Content-hash keyed artifact cache with file and null
// backends.
//
// [observability] - Optional instrumentation hooks for pipeline and
// cache events.
//
// [errors] - Structured error codes shared across the module.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/geom
// [space]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/space
// [layout]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/layout
// [card]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/card
// [render]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/render
// [svgasset]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/svgasset
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cardstock/pkg/errors
package pkg
