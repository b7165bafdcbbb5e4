package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordviz/pkg/cache"
	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete prepare → layout → render pipeline with caching.
//
// opts.Colors are given in input order; they follow their variables through
// filtering and reordering.
func (r *Runner) Execute(ctx context.Context, m *matrix.Matrix, opts Options) (*Result, error) {
	result, opts, err := r.Layout(ctx, m, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout runs the prepare and layout stages. The returned options are
// validated and carry opts.Colors in layout order, ready for
// [Runner.RenderWithCacheInfo].
func (r *Runner) Layout(ctx context.Context, m *matrix.Matrix, opts Options) (*Result, Options, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, opts, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Prepare
	prepareStart := time.Now()
	p, err := Prepare(m, opts)
	if err != nil {
		return nil, opts, fmt.Errorf("prepare: %w", err)
	}
	result.Stats.PrepareTime = time.Since(prepareStart)
	result.Stats.Variables = m.Size()
	result.Stats.Nodes = m.Size() - len(p.Removed)
	result.Stats.CrossingsBefore = p.CrossingsBefore
	result.Stats.CrossingsAfter = p.CrossingsAfter
	result.Matrix = p.Matrix
	result.Removed = p.Removed
	result.MatrixHash = matrixHash(p.Matrix)

	hooks.OnFilter(ctx, result.Stats.Variables, result.Stats.Nodes)
	if len(p.Removed) > 0 {
		opts.Logger.Debug("filtered variables", "removed", p.Removed, "threshold", opts.Threshold)
	}
	if p.Empty() {
		msg := fmt.Sprintf("No variables left. All correlations are below threshold = %g", opts.Threshold)
		opts.Logger.Warn(msg)
		result.Warnings = append(result.Warnings, msg)
	} else {
		hooks.OnOrder(ctx, result.Stats.Nodes, p.CrossingsBefore, p.CrossingsAfter, result.Stats.PrepareTime)
		opts.Logger.Info("prepared matrix",
			"variables", result.Stats.Variables,
			"nodes", result.Stats.Nodes,
			"ordering", opts.Ordering,
			"crossings", fmt.Sprintf("%d -> %d", p.CrossingsBefore, p.CrossingsAfter),
			"duration", result.Stats.PrepareTime)
	}
	opts.Colors = colorsInLayoutOrder(opts.Colors, p.Index)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, result.Stats.Nodes)
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, p, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.VizType, len(l.Chords), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, opts, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.Chords = len(l.Chords)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"viz_type", opts.VizType,
		"chords", len(l.Chords),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	return result, opts, nil
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
// opts.Colors must be in layout order.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, p Prepared, opts Options) (diagram.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return diagram.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(matrixHash(p.Matrix), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := diagram.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Debug("discarding unreadable cached layout", "key", cacheKey, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	l, err := GenerateLayout(p, opts)
	if err != nil {
		return diagram.Layout{}, false, err
	}

	if data, err := diagram.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return l, false, nil // Cache miss
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, p Prepared, opts Options) (diagram.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, p, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	layoutData, err := diagram.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := r.render(ctx, l, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return artifacts, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// render renders format by format so each one reports to the hooks.
func (r *Runner) render(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		one := opts
		one.Formats = []string{format}

		start := time.Now()
		hooks.OnRenderStart(ctx, format)
		rendered, err := RenderFromLayout(ctx, l, one)
		hooks.OnRenderComplete(ctx, format, len(rendered[format]), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(rendered[format]), "duration", time.Since(start))
		out[format] = rendered[format]
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
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
