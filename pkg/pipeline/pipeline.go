// Package pipeline provides the core chart pipeline for nivo.
//
// This package implements the complete layout → bind → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Compute day cell, month outline and year box geometry
//  2. Bind: Join data records onto day cells and color them through a scale
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout and render results are cached; binding is cheap and always runs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    From:    "2018-01-01",
//	    To:      "2018-12-31",
//	    Data:    data,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.ComputeLayout(ctx, opts)
//
//	// Bind data onto an existing layout
//	bound, matched := pipeline.Bind(l, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, bound, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jfache/nivo/pkg/align"
	"github.com/jfache/nivo/pkg/cache"
	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/errors"
	"github.com/jfache/nivo/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels. Calendars are
	// wide and short, so the default frame is not square.
	DefaultHeight = 200.0

	// DefaultYearSpacing is the default gap between year bands in pixels.
	DefaultYearSpacing = 30.0

	// DefaultDaySpacing is the default gap between day cells in pixels.
	DefaultDaySpacing = 0.0

	// DefaultDirection is the default flow of weeks.
	DefaultDirection = "horizontal"

	// DefaultAlign is the default placement of the grid inside the frame.
	DefaultAlign = "center"

	// DefaultTheme is the default visual theme.
	DefaultTheme = "default"

	// DefaultLegendOffset is the default legend distance from the year
	// band in pixels.
	DefaultLegendOffset = 10.0

	// DefaultPNGScale is the default supersampling factor for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidThemes is the set of supported visual themes.
var ValidThemes = map[string]bool{
	"default": true,
	"dark":    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	From           string  `json:"from,omitempty"` // YYYY-MM-DD
	To             string  `json:"to,omitempty"`   // YYYY-MM-DD
	Direction      string  `json:"direction,omitempty"`
	Width          float64 `json:"width,omitempty"`
	Height         float64 `json:"height,omitempty"`
	YearSpacing    float64 `json:"year_spacing,omitempty"`
	DaySpacing     float64 `json:"day_spacing,omitempty"`
	Align          string  `json:"align,omitempty"`
	FirstDayOfWeek int     `json:"first_day_of_week,omitempty"` // 0 = Sunday … 6 = Saturday

	// Bind options
	Data       []calendar.Datum `json:"data,omitempty"`
	Colors     []string         `json:"colors,omitempty"`
	EmptyColor string           `json:"empty_color,omitempty"`
	MinValue   *float64         `json:"min_value,omitempty"`
	MaxValue   *float64         `json:"max_value,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Theme        string   `json:"theme,omitempty"`
	YearLegend   string   `json:"year_legend,omitempty"`  // "before", "after" or "" for none
	MonthLegend  string   `json:"month_legend,omitempty"` // "before", "after" or "" for none
	LegendOffset float64  `json:"legend_offset,omitempty"`
	Titles       bool     `json:"titles,omitempty"`   // embed <title> tooltips in SVG output
	ChartID      string   `json:"chart_id,omitempty"` // stamps the SVG root element id
	PNGScale     float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed geometry with data bound onto its day cells.
	Layout calendar.Layout

	// LayoutHash is the content hash of the unbound layout.
	LayoutHash string

	// Legends are the year and month legend anchors for the layout.
	Legends []calendar.LegendEntry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Days       int
	Months     int
	Years      int
	Bound      int // day cells that received a data value
	LayoutTime time.Duration
	BindTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme name is valid.
func ValidateTheme(name string) error {
	if !ValidThemes[name] {
		return errors.New(errors.ErrCodeInvalidTheme, "invalid theme: %q (must be one of: default, dark)", name)
	}
	return nil
}

// ValidateLegendPosition checks that a legend position is valid.
// The empty string is not a position; callers use it to disable a legend
// and skip validation entirely.
func ValidateLegendPosition(pos string) error {
	if _, err := calendar.ParseLegendPosition(pos); err != nil {
		return errors.New(errors.ErrCodeInvalidLegend, "%s", err)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForBind(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.YearSpacing == 0 {
		o.YearSpacing = DefaultYearSpacing
	}
	if o.Align == "" {
		o.Align = DefaultAlign
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.From == "" || o.To == "" {
		return errors.New(errors.ErrCodeInvalidRange, "from and to dates are required")
	}
	cfg, err := o.LayoutConfig()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// SetBindDefaults sets default values for data binding.
func (o *Options) SetBindDefaults() {
	if len(o.Colors) == 0 {
		o.Colors = render.DefaultColors
	}
	if o.EmptyColor == "" {
		o.EmptyColor = render.DefaultEmptyColor
	}
}

// ValidateForBind validates and sets defaults for data binding.
func (o *Options) ValidateForBind() error {
	o.SetBindDefaults()
	for _, c := range o.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	if err := errors.ValidateHexColor(o.EmptyColor); err != nil {
		return err
	}
	if o.MinValue != nil && o.MaxValue != nil && *o.MaxValue < *o.MinValue {
		return errors.New(errors.ErrCodeInvalidData, "max_value %g is less than min_value %g", *o.MaxValue, *o.MinValue)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.LegendOffset == 0 {
		o.LegendOffset = DefaultLegendOffset
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetBindDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if o.YearLegend != "" {
		if err := ValidateLegendPosition(o.YearLegend); err != nil {
			return err
		}
	}
	if o.MonthLegend != "" {
		if err := ValidateLegendPosition(o.MonthLegend); err != nil {
			return err
		}
	}
	return nil
}

// LayoutConfig converts the options to a calendar layout configuration.
// Date, direction and alignment strings are parsed here so that every
// entry point reports the same coded errors for the same bad input.
func (o *Options) LayoutConfig() (calendar.LayoutConfig, error) {
	from, err := time.Parse(calendar.DayFormat, o.From)
	if err != nil {
		return calendar.LayoutConfig{}, errors.New(errors.ErrCodeInvalidRange, "invalid from date: %q (want YYYY-MM-DD)", o.From)
	}
	to, err := time.Parse(calendar.DayFormat, o.To)
	if err != nil {
		return calendar.LayoutConfig{}, errors.New(errors.ErrCodeInvalidRange, "invalid to date: %q (want YYYY-MM-DD)", o.To)
	}
	dir, err := calendar.ParseDirection(o.Direction)
	if err != nil {
		return calendar.LayoutConfig{}, errors.New(errors.ErrCodeInvalidDirection, "%s", err)
	}
	anchor, err := align.ParseAnchor(o.Align)
	if err != nil {
		return calendar.LayoutConfig{}, errors.New(errors.ErrCodeInvalidAlignment, "%s", err)
	}
	if o.FirstDayOfWeek < 0 || o.FirstDayOfWeek > 6 {
		return calendar.LayoutConfig{}, errors.New(errors.ErrCodeInvalidWeekday, "invalid first day of week: %d (want 0-6, Sunday is 0)", o.FirstDayOfWeek)
	}
	return calendar.LayoutConfig{
		Width:          o.Width,
		Height:         o.Height,
		From:           from,
		To:             to,
		Direction:      dir,
		YearSpacing:    o.YearSpacing,
		DaySpacing:     o.DaySpacing,
		Align:          anchor,
		FirstDayOfWeek: time.Weekday(o.FirstDayOfWeek),
	}, nil
}

// DataHash returns the content hash of the data records, or the empty
// string when there are none. It feeds artifact cache keys so that the
// same layout bound to different data caches separately.
func (o *Options) DataHash() string {
	if len(o.Data) == 0 {
		return ""
	}
	data, err := json.Marshal(o.Data)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		From:           o.From,
		To:             o.To,
		Direction:      o.Direction,
		Width:          o.Width,
		Height:         o.Height,
		YearSpacing:    o.YearSpacing,
		DaySpacing:     o.DaySpacing,
		Align:          o.Align,
		FirstDayOfWeek: o.FirstDayOfWeek,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, dataHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		DataHash:     dataHash,
		Colors:       o.Colors,
		EmptyColor:   o.EmptyColor,
		MinValue:     o.MinValue,
		MaxValue:     o.MaxValue,
		Theme:        o.Theme,
		YearLegend:   o.YearLegend,
		MonthLegend:  o.MonthLegend,
		LegendOffset: o.LegendOffset,
		Titles:       o.Titles,
		ChartID:      o.ChartID,
		Scale:        o.PNGScale,
	}
}
