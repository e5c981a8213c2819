package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jfache/nivo/pkg/cache"
	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and a shared month
// outline memo - it doesn't store pipeline results. Multiple goroutines
// can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	builder *calendar.Builder
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
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		builder: calendar.NewBuilder(),
	}
}

// Execute runs the complete layout → bind → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Days = len(l.Days)
	result.Stats.Months = len(l.Months)
	result.Stats.Years = len(l.Years)
	result.CacheInfo.LayoutHit = layoutHit

	// Compute layout hash for artifact cache keys and API responses
	if layoutData, err := calendar.MarshalLayout(l); err == nil {
		result.LayoutHash = cache.Hash(layoutData)
	}

	r.Logger.Info("computed layout",
		"days", len(l.Days),
		"years", len(l.Years),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Bind
	bindStart := time.Now()
	observability.Pipeline().OnBindStart(ctx, len(opts.Data))
	bound, matched := Bind(l, opts)
	result.Layout = bound
	result.Stats.Bound = matched
	result.Stats.BindTime = time.Since(bindStart)
	observability.Pipeline().OnBindComplete(ctx, matched, result.Stats.BindTime)

	r.Logger.Info("bound data",
		"records", len(opts.Data),
		"matched", matched,
		"duration", result.Stats.BindTime)

	result.Legends = Legends(bound, opts)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, bound, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (calendar.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return calendar.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cfg, err := opts.LayoutConfig()
	if err != nil {
		return calendar.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.Direction, cfg.To.Year()-cfg.From.Year()+1)

	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := calendar.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, cacheKey)
			hooks.OnLayoutComplete(ctx, opts.Direction, len(cached.Days), time.Since(start), nil)
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, cacheKey)

	// Compute layout
	l := r.compute(cfg)

	// Cache the result
	if data, err := calendar.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
	}

	hooks.OnLayoutComplete(ctx, opts.Direction, len(l.Days), time.Since(start), nil)
	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (calendar.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
// The layout should already carry bound day cells when the options include
// data; [Runner.Execute] takes care of the ordering.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l calendar.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := calendar.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	dataHash := opts.DataHash()

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, dataHash))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, layoutHash)
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(l, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, dataHash))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l calendar.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// compute runs the layout through the runner's shared builder so that
// month outline work is memoized across requests. A zero-value Runner
// without a builder falls back to the stateless path.
func (r *Runner) compute(cfg calendar.LayoutConfig) calendar.Layout {
	if r.builder != nil {
		return r.builder.ComputeLayout(cfg)
	}
	return calendar.ComputeLayout(cfg)
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
