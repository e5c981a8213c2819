package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// LegendPosition places legends before or after the band they label:
// left/above vs right/below depending on direction and legend kind.
type LegendPosition int

const (
	Before LegendPosition = iota
	After
)

// String returns the canonical name of the position.
func (p LegendPosition) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return fmt.Sprintf("LegendPosition(%d)", int(p))
}

// Valid reports whether p is one of the two defined positions.
func (p LegendPosition) Valid() bool {
	return p == Before || p == After
}

// ParseLegendPosition converts a canonical position name.
func ParseLegendPosition(s string) (LegendPosition, error) {
	switch s {
	case "before":
		return Before, nil
	case "after":
		return After, nil
	}
	return 0, fmt.Errorf("invalid legend position: %q (must be one of: before, after)", s)
}

// LegendEntry is a year or month record resolved to a label anchor.
// Rotation is in degrees; -90 turns the label to read bottom-up along a
// year band. Month is zero for year legends.
type LegendEntry struct {
	Year     int        `json:"year" bson:"year"`
	Month    time.Month `json:"month,omitempty" bson:"month,omitempty"`
	Label    string     `json:"label" bson:"label"`
	X        float64    `json:"x" bson:"x"`
	Y        float64    `json:"y" bson:"y"`
	Rotation float64    `json:"rotation" bson:"rotation"`
}

// YearLegends derives a label anchor for every year box. In horizontal
// layouts the label stands rotated (-90) beside the 7-row band: before
// places it offset pixels left of the box, after right of it, vertically
// centered either way. In vertical layouts the label sits unrotated
// above or below the band, horizontally centered.
func YearLegends(years []Year, dir Direction, pos LegendPosition, offset float64) []LegendEntry {
	entries := make([]LegendEntry, 0, len(years))
	for _, year := range years {
		e := LegendEntry{
			Year:  year.Year,
			Label: strconv.Itoa(year.Year),
		}
		b := year.BBox
		switch {
		case dir == Horizontal && pos == Before:
			e.X = b.X - offset
			e.Y = b.Y + b.Height/2
			e.Rotation = -90
		case dir == Horizontal && pos == After:
			e.X = b.X + b.Width + offset
			e.Y = b.Y + b.Height/2
			e.Rotation = -90
		case dir == Vertical && pos == Before:
			e.X = b.X + b.Width/2
			e.Y = b.Y - offset
		default:
			e.X = b.X + b.Width/2
			e.Y = b.Y + b.Height + offset
		}
		entries = append(entries, e)
	}
	return entries
}

// MonthLegends derives a label anchor for every month box. The rules
// mirror [YearLegends] with the axes inverted: horizontal layouts get
// unrotated labels above or below each month, vertical layouts get
// rotated labels beside it.
func MonthLegends(months []Month, dir Direction, pos LegendPosition, offset float64) []LegendEntry {
	entries := make([]LegendEntry, 0, len(months))
	for _, month := range months {
		e := LegendEntry{
			Year:  month.Year,
			Month: month.Month,
			Label: month.Date.Format("Jan"),
		}
		b := month.BBox
		switch {
		case dir == Horizontal && pos == Before:
			e.X = b.X + b.Width/2
			e.Y = b.Y - offset
		case dir == Horizontal && pos == After:
			e.X = b.X + b.Width/2
			e.Y = b.Y + b.Height + offset
		case dir == Vertical && pos == Before:
			e.X = b.X - offset
			e.Y = b.Y + b.Height/2
			e.Rotation = -90
		default:
			e.X = b.X + b.Width + offset
			e.Y = b.Y + b.Height/2
			e.Rotation = -90
		}
		entries = append(entries, e)
	}
	return entries
}
