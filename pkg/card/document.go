package card

import (
	"image/color"
	"path/filepath"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/layout"
	"github.com/matzehuels/cardstock/pkg/render"
	"github.com/matzehuels/cardstock/pkg/space"
	"github.com/matzehuels/cardstock/pkg/svgasset"
)

// RootRegion is the name of the implicit region spanning the page.
const RootRegion = "page"

// ContentRegion is the region carved out by a page margin.
const ContentRegion = "content"

// Placed is one asset bound to its resolved device-space destination.
type Placed struct {
	Asset  AssetConfig
	Region string
	Dest   geom.Box
	Place  geom.Placement
}

// Document is a fully resolved card: every region placed, every asset
// bound to a destination box. Build either returns a complete document
// or an error; there are no partially resolved documents.
type Document struct {
	cfg        *Config
	reg        *space.Registry
	tree       *layout.Tree
	placed     []Placed
	devW, devH int
	background color.Color
}

// Build resolves a validated config into a document.
func Build(cfg *Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, err := space.NewRegistry(cfg.Page.Width, cfg.Page.Height, cfg.Page.Unit)
	if err != nil {
		return nil, err
	}
	if err := reg.SetResolution(cfg.Page.DPI); err != nil {
		return nil, err
	}

	pageBox := geom.FromExtents(0, 0, cfg.Page.Width, cfg.Page.Height)
	tree, err := layout.NewTree(RootRegion, pageBox, space.Physical, reg)
	if err != nil {
		return nil, err
	}

	// A margin carves a content region out of the page; top-level
	// regions then nest inside it instead of the raw page.
	defaultParent := RootRegion
	if cfg.Page.Margin > 0 {
		fx := cfg.Page.Margin / cfg.Page.Width
		fy := cfg.Page.Margin / cfg.Page.Height
		if _, err := tree.AddChild(RootRegion, ContentRegion,
			geom.FromExtents(fx, fy, 1-fx, 1-fy)); err != nil {
			return nil, err
		}
		defaultParent = ContentRegion
	}

	for _, rc := range cfg.Regions {
		parent := rc.Parent
		if parent == "" {
			parent = defaultParent
		}
		box := geom.FromExtents(rc.Box[0], rc.Box[1], rc.Box[2], rc.Box[3])
		if _, err := tree.AddChild(parent, rc.Name, box); err != nil {
			return nil, err
		}
	}

	placed := make([]Placed, 0, len(cfg.Assets))
	for _, ac := range cfg.Assets {
		p, err := parsePlacement(ac)
		if err != nil {
			return nil, err
		}
		dest, err := tree.Resolve(ac.Region)
		if err != nil {
			return nil, err
		}
		placed = append(placed, Placed{
			Asset:  ac,
			Region: ac.Region,
			Dest:   dest,
			Place:  p,
		})
	}

	background := color.Color(color.White)
	if cfg.Page.Background != "" {
		background, err = ParseColor(cfg.Page.Background)
		if err != nil {
			return nil, err
		}
	}

	devW, devH := render.DeviceSize(cfg.Page.Width, cfg.Page.Height, cfg.Page.DPI)
	return &Document{
		cfg:        cfg,
		reg:        reg,
		tree:       tree,
		placed:     placed,
		devW:       devW,
		devH:       devH,
		background: background,
	}, nil
}

// parsePlacement converts an asset's policy and anchor strings into a
// device-space placement. Anchors are named visually (y-up); device
// coordinates run y-down, so the vertical component flips.
func parsePlacement(ac AssetConfig) (geom.Placement, error) {
	policy, err := geom.ParsePolicy(ac.Policy)
	if err != nil {
		return geom.Placement{}, err
	}
	anchor, err := geom.ParseAnchor(ac.Anchor)
	if err != nil {
		return geom.Placement{}, err
	}
	return geom.Placement{Policy: policy, Anchor: flipAnchor(anchor)}, nil
}

var deviceAnchor = map[geom.Anchor]geom.Anchor{
	geom.AnchorTop:         geom.AnchorBottom,
	geom.AnchorBottom:      geom.AnchorTop,
	geom.AnchorTopLeft:     geom.AnchorBottomLeft,
	geom.AnchorTopRight:    geom.AnchorBottomRight,
	geom.AnchorBottomLeft:  geom.AnchorTopLeft,
	geom.AnchorBottomRight: geom.AnchorTopRight,
}

func flipAnchor(a geom.Anchor) geom.Anchor {
	if flipped, ok := deviceAnchor[a]; ok {
		return flipped
	}
	return a
}

// Config returns the source configuration.
func (d *Document) Config() *Config { return d.cfg }

// Registry returns the document's coordinate space registry.
func (d *Document) Registry() *space.Registry { return d.reg }

// Tree returns the resolved region tree.
func (d *Document) Tree() *layout.Tree { return d.tree }

// Placements returns the assets with their resolved destinations, in
// config order.
func (d *Document) Placements() []Placed { return d.placed }

// DeviceSize returns the raster canvas size in pixels.
func (d *Document) DeviceSize() (int, int) { return d.devW, d.devH }

// RenderOptions configures rasterization of a document.
type RenderOptions struct {
	// BaseDir resolves relative asset paths, typically the directory
	// holding the config file.
	BaseDir string

	// DebugBoxes strokes a dashed outline around every region after
	// the content is drawn.
	DebugBoxes bool
}

// Render rasterizes the document onto a fresh surface.
func (d *Document) Render(opts RenderOptions) (*render.Surface, error) {
	surface, err := render.NewSurface(d.devW, d.devH, render.WithBackground(d.background))
	if err != nil {
		return nil, err
	}

	for _, p := range d.placed {
		drawable, err := loadDrawable(p.Asset, opts.BaseDir)
		if err != nil {
			return nil, err
		}
		m, _, err := geom.Compose(drawable.Bounds(), p.Dest, p.Place)
		if err != nil {
			return nil, carderrors.Wrap(carderrors.GetCode(err), err,
				"place %s asset in region %s", p.Asset.Type, p.Region)
		}
		if err := surface.Place(drawable, m); err != nil {
			return nil, err
		}
	}

	if opts.DebugBoxes {
		var walkErr error
		d.tree.Walk(func(r *layout.Region, depth, index int) {
			box, err := d.tree.Resolve(r.Name())
			if err != nil {
				walkErr = err
				return
			}
			surface.DebugBox(box)
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return surface, nil
}

// loadDrawable materializes an asset config into renderable content.
func loadDrawable(ac AssetConfig, baseDir string) (render.Drawable, error) {
	switch ac.Type {
	case "text":
		opts := []render.TextOption{}
		if ac.Color != "" {
			c, err := ParseColor(ac.Color)
			if err != nil {
				return nil, err
			}
			opts = append(opts, render.WithTextColor(c))
		}
		if ac.Outline != "" {
			c, err := ParseColor(ac.Outline)
			if err != nil {
				return nil, err
			}
			width := ac.OutlineWidth
			if width == 0 {
				width = 2
			}
			opts = append(opts, render.WithOutline(c, width))
		}
		return render.NewText(ac.Text, ac.Font, ac.Size, opts...)

	case "image":
		return render.LoadImage(resolvePath(ac.Path, baseDir))

	case "svg":
		asset, err := svgasset.ReadFile(resolvePath(ac.Path, baseDir), svgasset.Options{})
		if err != nil {
			return nil, err
		}
		fill := color.Color(color.Black)
		if ac.Fill != "" {
			if fill, err = ParseColor(ac.Fill); err != nil {
				return nil, err
			}
		}
		return render.NewPath(asset, fill), nil

	default:
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"unknown asset type %q", ac.Type)
	}
}

func resolvePath(path, baseDir string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
