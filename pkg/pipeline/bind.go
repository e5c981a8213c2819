package pipeline

import (
	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/scales"
)

// =============================================================================
// Data Binding
// =============================================================================

// Bind joins the options' data records onto the layout's day cells and
// colors them through a quantize scale built from the palette and value
// domain. Cells without a matching record get the empty color.
//
// Binding never fails: records outside the layout's range are ignored and
// an empty data set simply leaves every cell empty. The returned layout
// shares no day slice with the input. The second return value is the
// number of cells that received a value.
func Bind(l calendar.Layout, opts Options) (calendar.Layout, int) {
	opts.SetBindDefaults()

	lo, hi := scales.DomainFromData(opts.Data, opts.MinValue, opts.MaxValue)
	q := scales.NewQuantize(lo, hi, opts.Colors)

	l.Days = calendar.BindDays(l.Days, opts.Data, q.Scale, opts.EmptyColor)

	bound := 0
	for _, d := range l.Days {
		if d.Value != nil {
			bound++
		}
	}
	return l, bound
}

// Legends computes the year and month legend anchors for a layout.
// Legends whose position option is empty are omitted.
func Legends(l calendar.Layout, opts Options) []calendar.LegendEntry {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	dir, err := calendar.ParseDirection(opts.Direction)
	if err != nil {
		dir = calendar.Horizontal
	}

	var entries []calendar.LegendEntry
	if opts.YearLegend != "" {
		if pos, err := calendar.ParseLegendPosition(opts.YearLegend); err == nil {
			entries = append(entries, calendar.YearLegends(l.Years, dir, pos, opts.LegendOffset)...)
		}
	}
	if opts.MonthLegend != "" {
		if pos, err := calendar.ParseLegendPosition(opts.MonthLegend); err == nil {
			entries = append(entries, calendar.MonthLegends(l.Months, dir, pos, opts.LegendOffset)...)
		}
	}
	return entries
}
