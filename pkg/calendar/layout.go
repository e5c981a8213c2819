package calendar

import (
	"math"
	"time"

	"github.com/jfache/nivo/pkg/align"
)

// defaultOutlineMemoCap bounds the builder's month outline memo. Twelve
// outlines per year per distinct configuration means the cap comfortably
// holds dozens of concurrently re-rendered charts.
const defaultOutlineMemoCap = 1024

// Builder computes calendar layouts. It owns the month outline memo, so
// repeated layouts with an unchanged configuration reuse their outline
// computations. A Builder is safe for concurrent use. The zero value is
// not usable; create one with [NewBuilder].
type Builder struct {
	memo *outlineMemo
}

// NewBuilder returns a Builder with an empty outline memo.
func NewBuilder() *Builder {
	return &Builder{memo: newOutlineMemo(defaultOutlineMemoCap)}
}

// ComputeLayout computes a layout with a throwaway Builder. Callers that
// re-render the same configuration should hold on to a [Builder] instead
// to benefit from outline memoization across calls.
func ComputeLayout(cfg LayoutConfig) Layout {
	return NewBuilder().ComputeLayout(cfg)
}

// cellSize solves for the largest uniform cell edge that fits the frame.
// Both axes produce a candidate (available space minus spacing, divided
// by the cell count along that axis) and the smaller one wins, so the
// grid never overflows in either direction. Degenerate inputs yield a
// non-positive size rather than an error.
func cellSize(width, height float64, dir Direction, years int, yearSpacing, daySpacing float64, weeks int) float64 {
	if years <= 0 || weeks <= 0 {
		return 0
	}
	weeksFrame, yearsFrame := dir.plan().split(width, height)
	weeksFit := (weeksFrame - daySpacing*float64(weeks)) / float64(weeks)
	yearsFit := (yearsFrame - float64(years-1)*yearSpacing - float64(years)*7*daySpacing) / float64(years*7)
	return math.Min(weeksFit, yearsFit)
}

// ComputeLayout produces the full geometry for the configuration: one
// Day per calendar day, one Month outline per month and one Year box per
// year of the range. The computation is deterministic and total; an
// inverted year range yields an empty layout. Run
// [LayoutConfig.Validate] first wherever the configuration comes from
// user input.
func (b *Builder) ComputeLayout(cfg LayoutConfig) Layout {
	fromYear, toYear := cfg.From.Year(), cfg.To.Year()
	if toYear < fromYear {
		return Layout{}
	}

	years := toYear - fromYear + 1
	weeks := maxWeeks(fromYear, toYear, cfg.FirstDayOfWeek)
	size := cellSize(cfg.Width, cfg.Height, cfg.Direction, years, cfg.YearSpacing, cfg.DaySpacing, weeks)
	u := size + cfg.DaySpacing

	// Grid extents: weeks axis spans the widest year, years axis stacks
	// the 7-row year bands with their spacing.
	monthsSize := float64(weeks) * u
	yearsSize := float64(years)*7*u + float64(years-1)*cfg.YearSpacing

	plan := cfg.Direction.plan()
	calWidth, calHeight := plan.join(monthsSize, yearsSize)

	originX, originY := align.Align(
		align.Box{Width: calWidth, Height: calHeight},
		align.Box{Width: cfg.Width, Height: cfg.Height},
		cfg.Align,
	)
	originWeeks, originYears := plan.split(originX, originY)

	layout := Layout{
		Years:          make([]Year, 0, years),
		Months:         make([]Month, 0, years*12),
		Days:           make([]Day, 0, years*366),
		CellSize:       size,
		CalendarWidth:  calWidth,
		CalendarHeight: calHeight,
		OriginX:        originX,
		OriginY:        originY,
	}

	for i := 0; i < years; i++ {
		year := fromYear + i
		yearOffset := float64(i) * (7*u + cfg.YearSpacing)

		monthStart := len(layout.Months)
		for m := time.January; m <= time.December; m++ {
			date := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			outline := b.monthOutline(monthParams{
				Date:           date,
				CellSize:       size,
				YearIndex:      i,
				YearSpacing:    cfg.YearSpacing,
				DaySpacing:     cfg.DaySpacing,
				Direction:      cfg.Direction,
				OriginX:        originX,
				OriginY:        originY,
				FirstDayOfWeek: cfg.FirstDayOfWeek,
			})
			layout.Months = append(layout.Months, Month{
				Date:  date,
				Year:  year,
				Month: m,
				Path:  outline.Path,
				BBox:  outline.BBox,
			})
		}

		// The year box spans January through December outlines.
		first := layout.Months[monthStart].BBox
		last := layout.Months[len(layout.Months)-1].BBox
		layout.Years = append(layout.Years, Year{
			Year: year,
			BBox: align.Box{
				X:      first.X,
				Y:      first.Y,
				Width:  last.X - first.X + last.Width,
				Height: last.Y - first.Y + last.Height,
			},
		})

		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
			weekPos := originWeeks + float64(WeekOffset(d, cfg.FirstDayOfWeek))*u + cfg.DaySpacing/2
			dayPos := originYears + yearOffset + float64(DayIndex(d, cfg.FirstDayOfWeek))*u + cfg.DaySpacing/2
			x, y := plan.join(weekPos, dayPos)
			layout.Days = append(layout.Days, Day{
				Date: d,
				Day:  d.Format(DayFormat),
				X:    x,
				Y:    y,
				Size: size,
			})
		}
	}

	return layout
}

// monthOutline serves an outline from the memo or computes and stores it.
func (b *Builder) monthOutline(p monthParams) monthOutline {
	k := p.key()
	if v, ok := b.memo.get(k); ok {
		return v
	}
	v := monthPathAndBBox(p)
	b.memo.put(k, v)
	return v
}
