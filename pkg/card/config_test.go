package card

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

const sampleTOML = `
[page]
width = 3.5
height = 2.0
unit = "in"
dpi = 300

[[region]]
name = "header"
box = [0.0, 0.7, 1.0, 1.0]

[[region]]
name = "body"
box = [0.0, 0.0, 1.0, 0.7]

[[asset]]
type = "svg"
region = "header"
path = "logo.svg"
policy = "fit"
anchor = "left"
fill = "#336699"

[[asset]]
type = "text"
region = "body"
text = "Ada Lovelace"
font = "DejaVuSans.ttf"
size = 48
color = "#222222"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Page.Width != 3.5 || cfg.Page.Height != 2.0 || cfg.Page.DPI != 300 {
		t.Errorf("page = %+v, want 3.5x2.0 @300", cfg.Page)
	}
	if len(cfg.Regions) != 2 || cfg.Regions[0].Name != "header" {
		t.Errorf("regions = %+v", cfg.Regions)
	}
	if got := cfg.Regions[0].Box; got != [4]float64{0, 0.7, 1, 1} {
		t.Errorf("header box = %v", got)
	}
	if len(cfg.Assets) != 2 || cfg.Assets[1].Type != "text" {
		t.Errorf("assets = %+v", cfg.Assets)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("LoadConfig: %v", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !carderrors.Is(err, carderrors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		cfg, err := ParseConfig([]byte(sampleTOML))
		if err != nil {
			t.Fatalf("ParseConfig: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ZeroWidth", func(c *Config) { c.Page.Width = 0 }},
		{"NegativeHeight", func(c *Config) { c.Page.Height = -1 }},
		{"ZeroDPI", func(c *Config) { c.Page.DPI = 0 }},
		{"NegativeMargin", func(c *Config) { c.Page.Margin = -0.1 }},
		{"MarginSwallowsPage", func(c *Config) { c.Page.Margin = 1.0 }},
		{"BadBackground", func(c *Config) { c.Page.Background = "blue" }},
		{"EmptyRegionName", func(c *Config) { c.Regions[0].Name = "" }},
		{"SlashInRegionName", func(c *Config) { c.Regions[0].Name = "a/b" }},
		{"AssetWithoutRegion", func(c *Config) { c.Assets[0].Region = "" }},
		{"TextWithoutFont", func(c *Config) { c.Assets[1].Font = "" }},
		{"TextWithoutSize", func(c *Config) { c.Assets[1].Size = 0 }},
		{"UnknownAssetType", func(c *Config) { c.Assets[0].Type = "video" }},
		{"BadFillColor", func(c *Config) { c.Assets[0].Fill = "#12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); !carderrors.Is(err, carderrors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#000000", color.RGBA{A: 0xff}},
		{"#ff0000", color.RGBA{R: 0xff, A: 0xff}},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}},
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#12345678", color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x78}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "red", "#12345", "#zzzzzz"} {
		if _, err := ParseColor(bad); !carderrors.Is(err, carderrors.ErrCodeInvalidConfig) {
			t.Errorf("ParseColor(%q) error = %v, want INVALID_CONFIG", bad, err)
		}
	}
}
