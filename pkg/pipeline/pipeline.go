// Package pipeline provides the core card pipeline for Cardstock.
//
// This package implements the complete load → build → render pipeline
// shared by every entry point. Centralizing it keeps CLI commands thin
// and guarantees that caching and instrumentation behave the same
// everywhere.
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the TOML card description
//  2. Build: Resolve coordinate spaces, the region tree, and placements
//  3. Render: Produce artifacts in the requested formats
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ConfigPath: "card.toml",
//	    Formats:    []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardstock/pkg/card"
	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/space"
)

// Format constants for output artifacts.
const (
	// FormatPNG is the rasterized card.
	FormatPNG = "png"

	// FormatJSON is the resolved region tree as JSON.
	FormatJSON = "json"

	// FormatText is the human-readable region tree dump.
	FormatText = "txt"

	// FormatDOT is the region tree as a Graphviz document.
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
}

// DefaultDigits is the coordinate precision of text dumps.
const DefaultDigits = 2

// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
// keyed by content hash, so expiry only reclaims disk space.
const TTLArtifact = 7 * 24 * time.Hour

// Options contains all configuration for the card pipeline.
type Options struct {
	// ConfigPath locates the TOML card description. Relative asset
	// paths in the config resolve against its directory.
	ConfigPath string `json:"config_path"`

	// Formats selects the artifacts to produce. Defaults to png.
	Formats []string `json:"formats,omitempty"`

	// DebugBoxes strokes region outlines on rendered cards.
	DebugBoxes bool `json:"debug_boxes,omitempty"`

	// Digits is the coordinate precision of text dumps.
	Digits int `json:"digits,omitempty"`

	// Space selects the coordinate space of text dumps. Empty means
	// device pixels.
	Space string `json:"space,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is the runtime logger. Not serialized.
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the fully resolved card.
	Document *card.Document

	// ConfigHash is the content hash of the card description.
	ConfigHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RegionCount int
	AssetCount  int
	LoadTime    time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache behavior for the render stage.
type CacheInfo struct {
	// RenderHit reports whether every artifact came from cache.
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return carderrors.New(carderrors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: png, json, txt, dot)", format)
	}
	return nil
}

// ParseSpace maps a CLI space name to the registry's builtin spaces.
// The empty string and "px" both mean device pixels.
func ParseSpace(s string) (space.Name, error) {
	switch s {
	case "", "px", "device":
		return space.Device, nil
	case "physical":
		return space.Physical, nil
	case "figure":
		return space.Figure, nil
	default:
		return "", carderrors.New(carderrors.ErrCodeUnknownSpace,
			"unknown space %q (must be px, physical or figure)", s)
	}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent; calling it repeatedly has the same effect as calling it
// once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ConfigPath == "" {
		return carderrors.New(carderrors.ErrCodeInvalidConfig, "config path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Digits == 0 {
		o.Digits = DefaultDigits
	}
	if err := carderrors.ValidateDigits(o.Digits); err != nil {
		return err
	}
	if _, err := ParseSpace(o.Space); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
