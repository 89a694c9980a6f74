package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardstock/pkg/cache"
	"github.com/matzehuels/cardstock/pkg/card"
	carderrors "github.com/matzehuels/cardstock/pkg/errors"
	"github.com/matzehuels/cardstock/pkg/layout"
	"github.com/matzehuels/cardstock/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  *cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil cache disables caching; a nil keyer uses an unscoped one.
func NewRunner(c cache.Cache, keyer *cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewKeyer("")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	raw, err := os.ReadFile(opts.ConfigPath)
	if err != nil {
		return nil, carderrors.Wrap(carderrors.ErrCodeFileNotFound, err,
			"read config %s", opts.ConfigPath)
	}
	cfg, err := card.ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	result.ConfigHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)

	opts.Logger.Debug("loaded config",
		"path", opts.ConfigPath,
		"regions", len(cfg.Regions),
		"assets", len(cfg.Assets))

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.ConfigPath)
	doc, err := card.Build(cfg)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, opts.ConfigPath,
		len(cfg.Regions), result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.RegionCount = len(cfg.Regions)
	result.Stats.AssetCount = len(cfg.Assets)

	opts.Logger.Info("built document",
		"regions", len(cfg.Regions),
		"assets", len(cfg.Assets),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.renderWithCache(ctx, doc, result.ConfigHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCache produces every requested artifact, consulting the
// cache first unless a refresh was requested.
func (r *Runner) renderWithCache(ctx context.Context, doc *card.Document, configHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(configHash, r.artifactOpts(format, opts))
			data, ok, err := r.Cache.Get(ctx, key)
			if err != nil || !ok {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	for _, format := range opts.Formats {
		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := r.renderFormat(doc, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		key := r.Keyer.ArtifactKey(configHash, r.artifactOpts(format, opts))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// renderFormat produces a single artifact from a built document.
func (r *Runner) renderFormat(doc *card.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		surface, err := doc.Render(card.RenderOptions{
			BaseDir:    filepath.Dir(opts.ConfigPath),
			DebugBoxes: opts.DebugBoxes,
		})
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := surface.EncodePNG(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatJSON:
		var buf bytes.Buffer
		if err := doc.Tree().WriteJSON(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatText:
		dumpSpace, err := ParseSpace(opts.Space)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := doc.Tree().Dump(&buf, layout.DumpOptions{
			Digits: opts.Digits,
			Space:  dumpSpace,
		}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatDOT:
		dot, err := doc.Tree().ToDOT(layout.DOTOptions{Detailed: true})
		if err != nil {
			return nil, err
		}
		return []byte(dot), nil

	default:
		return nil, carderrors.New(carderrors.ErrCodeInvalidFormat,
			"invalid format %q", format)
	}
}

// artifactOpts derives the cache key options for one format.
func (r *Runner) artifactOpts(format string, opts Options) cache.ArtifactOpts {
	return cache.ArtifactOpts{
		Format:     format,
		DebugBoxes: opts.DebugBoxes,
		Space:      opts.Space,
		Digits:     opts.Digits,
	}
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
