// Package card turns a declarative card description into a resolved
// document: a coordinate space registry, a region tree, and a list of
// placed assets ready for rendering.
package card

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

// Config is the top-level card description, typically loaded from TOML.
type Config struct {
	Page    PageConfig     `toml:"page"`
	Regions []RegionConfig `toml:"region"`
	Assets  []AssetConfig  `toml:"asset"`
}

// PageConfig describes the physical page and raster resolution.
type PageConfig struct {
	// Width and Height are the physical page size in Unit.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Unit names the physical unit, e.g. "in" or "mm". Informational;
	// all page-unit values in the config share it.
	Unit string `toml:"unit"`

	// DPI is the raster resolution in pixels per unit.
	DPI float64 `toml:"dpi"`

	// Margin insets the content area from the page edge, in page
	// units. When positive a "content" region is carved out of the
	// page and becomes the default parent for top-level regions.
	Margin float64 `toml:"margin"`

	// Background is the page fill color as a hex string. Empty means
	// white.
	Background string `toml:"background"`
}

// RegionConfig carves a named rectangle out of its parent. The box is
// given as fractions of the parent's extent, y-up, so [0, 0.7, 1, 1]
// is the parent's top 30% band.
type RegionConfig struct {
	Name   string     `toml:"name"`
	Parent string     `toml:"parent"`
	Box    [4]float64 `toml:"box"`
}

// AssetConfig places one piece of content into a region.
type AssetConfig struct {
	// Type is "text", "image" or "svg".
	Type   string `toml:"type"`
	Region string `toml:"region"`

	// Policy is "fit" (default) or "stretch"; Anchor positions fitted
	// content, named in visual terms ("top" is the visually upper edge).
	Policy string `toml:"policy"`
	Anchor string `toml:"anchor"`

	// Text assets.
	Text         string  `toml:"text"`
	Font         string  `toml:"font"`
	Size         float64 `toml:"size"`
	Color        string  `toml:"color"`
	Outline      string  `toml:"outline"`
	OutlineWidth float64 `toml:"outline_width"`

	// Image and SVG assets.
	Path string `toml:"path"`
	Fill string `toml:"fill"`
}

// LoadConfig reads and validates a TOML card description.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a TOML card description.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for structural problems that do not need
// the layout machinery to detect. Geometry errors (out-of-bounds boxes,
// unknown regions) surface later during Build.
func (c *Config) Validate() error {
	p := c.Page
	if p.Width <= 0 || p.Height <= 0 {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"page size must be positive, got %gx%g", p.Width, p.Height)
	}
	if p.DPI <= 0 {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"page dpi must be positive, got %g", p.DPI)
	}
	if p.Margin < 0 {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"page margin must not be negative, got %g", p.Margin)
	}
	if 2*p.Margin >= p.Width || 2*p.Margin >= p.Height {
		return carderrors.New(carderrors.ErrCodeInvalidConfig,
			"page margin %g leaves no content area on a %gx%g page", p.Margin, p.Width, p.Height)
	}
	if p.Background != "" {
		if _, err := ParseColor(p.Background); err != nil {
			return err
		}
	}

	for i, r := range c.Regions {
		if err := carderrors.ValidateName(r.Name); err != nil {
			return carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "region %d", i)
		}
	}

	for i, a := range c.Assets {
		if err := a.validate(); err != nil {
			return carderrors.Wrap(carderrors.ErrCodeInvalidConfig, err, "asset %d", i)
		}
	}
	return nil
}

func (a *AssetConfig) validate() error {
	if a.Region == "" {
		return fmt.Errorf("missing region")
	}
	switch a.Type {
	case "text":
		if a.Text == "" {
			return fmt.Errorf("text asset needs text")
		}
		if a.Font == "" {
			return fmt.Errorf("text asset needs a font")
		}
		if a.Size <= 0 {
			return fmt.Errorf("text asset needs a positive size")
		}
	case "image", "svg":
		if a.Path == "" {
			return fmt.Errorf("%s asset needs a path", a.Type)
		}
	default:
		return fmt.Errorf("unknown asset type %q", a.Type)
	}
	for _, hex := range []string{a.Color, a.Outline, a.Fill} {
		if hex == "" {
			continue
		}
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" hex notation.
func ParseColor(s string) (color.Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"color %q must start with '#'", s)
	}
	hex := s[1:]

	parse := func(sub string) (uint8, error) {
		v, err := strconv.ParseUint(sub, 16, 8)
		return uint8(v), err
	}

	var c color.RGBA
	var err error
	switch len(hex) {
	case 3:
		expand := func(b byte) string { return string([]byte{b, b}) }
		if c.R, err = parse(expand(hex[0])); err == nil {
			if c.G, err = parse(expand(hex[1])); err == nil {
				c.B, err = parse(expand(hex[2]))
			}
		}
		c.A = 0xff
	case 6, 8:
		if c.R, err = parse(hex[0:2]); err == nil {
			if c.G, err = parse(hex[2:4]); err == nil {
				c.B, err = parse(hex[4:6])
			}
		}
		c.A = 0xff
		if err == nil && len(hex) == 8 {
			c.A, err = parse(hex[6:8])
		}
	default:
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"color %q has invalid length", s)
	}
	if err != nil {
		return nil, carderrors.New(carderrors.ErrCodeInvalidConfig,
			"color %q is not valid hex", s)
	}
	return c, nil
}
