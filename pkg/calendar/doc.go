// Package calendar computes the pixel geometry of calendar heatmaps:
// one colored cell per day, arranged in week columns grouped by month
// and year, in the style popularized by contribution graphs.
//
// # Overview
//
// Nivo renders day-keyed values (commits, sales, activity counts) as a
// calendar grid. This package is the layout core: given a frame size, a
// date range and a handful of spacing knobs it produces the exact
// position and size of every day cell, an SVG outline path and bounding
// box for every month, and a bounding box for every year. Renderers
// (SVG, PNG, terminal) consume that geometry without re-deriving any of
// the arithmetic.
//
// # Basic Usage
//
// Build a [LayoutConfig], compute the geometry, then bind data onto it:
//
//	cfg := calendar.LayoutConfig{
//	    Width:  800,
//	    Height: 200,
//	    From:   time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
//	    To:     time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC),
//	    Direction:      calendar.Horizontal,
//	    YearSpacing:    30,
//	    DaySpacing:     2,
//	    Align:          align.Center,
//	    FirstDayOfWeek: time.Sunday,
//	}
//	layout := calendar.ComputeLayout(cfg)
//	bound := calendar.BindDays(layout.Days, data, scale.Scale, "#eeeeee")
//
// Layout computation is total: it never errors, and a degenerate
// configuration (inverted range, zero frame) degrades to an empty or
// zero-sized layout. Boundaries that accept user input should call
// [LayoutConfig.Validate] first to reject such configurations with a
// coded error.
//
// # Geometry Model
//
// All cells share one uniform size, solved in [Builder.ComputeLayout] as
// the largest square fitting both axes. A day's position derives from
// two indices: its week offset (count of week boundaries since January 1
// of its year, [WeekOffset]) and its day index (weekday relative to the
// configured first day of week, [DayIndex]). The horizontal direction
// maps week offsets to x and day indices to y; [Vertical] swaps the
// axes. Years stack along the day-index axis with a configurable gap.
//
// Month outlines are closed rectilinear paths tracing the union of the
// month's day cells, so a month starting midweek gets the familiar
// step-shaped notch. Consecutive months in one year are adjacent and
// never overlap, and each year's bounding box exactly bounds its twelve
// months.
//
// # Memoization
//
// Month outlines are memoized per [Builder] in a bounded LRU keyed by
// the full parameter tuple, since unchanged configurations recur across
// re-renders. Hold on to one Builder (the pipeline does) to benefit;
// the package-level [ComputeLayout] uses a throwaway one.
//
// # Related Packages
//
// [pkg/align] supplies the nine-anchor box alignment used to place the
// grid inside the frame. [pkg/scales] provides quantized color scales
// for [BindDays]. [pkg/render] turns layouts into SVG, PNG and PDF.
//
// [pkg/align]: github.com/jfache/nivo/pkg/align
// [pkg/scales]: github.com/jfache/nivo/pkg/scales
// [pkg/render]: github.com/jfache/nivo/pkg/render
package calendar
