// Package cache provides caching for expensive pipeline operations.
//
// This package defines the Cache and Keyer interfaces used by the render
// pipeline, with implementations for different backends:
//   - memory: Bounded in-process LRU for single-process use
//   - file: File-based storage for CLI applications
//   - redis: Redis-backed storage for multi-instance deployments
//   - null: No-op cache that disables caching entirely
//
// # Architecture
//
// The pipeline has two cacheable stages: layout computation (pure geometry,
// keyed by the layout options) and artifact rendering (keyed by the layout
// hash plus the render options). Keys are generated through a Keyer so that
// key construction stays in one place and multi-tenant deployments can
// namespace keys with a ScopedKeyer.
//
// Cache failures are never fatal: a failed Get is treated as a miss and a
// failed Set is ignored, so the worst case is recomputation.
//
// # Usage
//
//	// CLI (the CLI resolves ~/.cache/nivo/ and passes it in)
//	c, err := cache.NewFileCache(dir)
//
//	// Server
//	c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(opts.LayoutKeyOpts())
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class.
const (
	// TTLLayout is the lifetime of cached layout JSON. Layouts are pure
	// functions of their options, so the TTL only bounds cache growth.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts (SVG, PNG, PDF).
	TTLArtifact = 24 * time.Hour

	// TTLChart is the lifetime of cached chart specs looked up by ID.
	TTLChart = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry TTLs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves data by key.
	// The bool reports whether the key was present and unexpired.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key with the given TTL.
	// A TTL of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the options that affect layout geometry.
// Two option sets with equal fields must produce the same key.
type LayoutKeyOpts struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	Direction      string  `json:"direction"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	YearSpacing    float64 `json:"year_spacing"`
	DaySpacing     float64 `json:"day_spacing"`
	Align          string  `json:"align"`
	FirstDayOfWeek int     `json:"first_day_of_week"`
}

// ArtifactKeyOpts are the options that affect rendered output for a given
// layout. DataHash covers the bound data so that the same layout rendered
// with different values produces different keys.
type ArtifactKeyOpts struct {
	Format       string   `json:"format"`
	DataHash     string   `json:"data_hash"`
	Colors       []string `json:"colors"`
	EmptyColor   string   `json:"empty_color"`
	MinValue     *float64 `json:"min_value,omitempty"`
	MaxValue     *float64 `json:"max_value,omitempty"`
	Theme        string   `json:"theme"`
	YearLegend   string   `json:"year_legend"`
	MonthLegend  string   `json:"month_legend"`
	LegendOffset float64  `json:"legend_offset"`
	Titles       bool     `json:"titles,omitempty"`
	ChartID      string   `json:"chart_id,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(opts LayoutKeyOpts) string

	// ArtifactKey generates a key for an artifact rendered from the layout
	// identified by layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// ChartKey generates a key for a stored chart spec.
	ChartKey(id string) string
}

// DefaultKeyer generates deterministic keys with hashed option sets.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ChartKey generates a key for a stored chart spec.
// Chart IDs are already opaque UUIDs, so no hashing is needed.
func (k *DefaultKeyer) ChartKey(id string) string {
	return "chart:" + id
}
