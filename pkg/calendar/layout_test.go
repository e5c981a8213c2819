package calendar

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/jfache/nivo/pkg/align"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func year2018Config() LayoutConfig {
	return LayoutConfig{
		Width:          800,
		Height:         200,
		From:           date(2018, time.January, 1),
		To:             date(2018, time.December, 31),
		Direction:      Horizontal,
		YearSpacing:    30,
		DaySpacing:     2,
		Align:          align.Center,
		FirstDayOfWeek: time.Sunday,
	}
}

func TestComputeLayout2018Horizontal(t *testing.T) {
	l := ComputeLayout(year2018Config())

	if len(l.Years) != 1 {
		t.Errorf("years = %d, want 1", len(l.Years))
	}
	if len(l.Months) != 12 {
		t.Errorf("months = %d, want 12", len(l.Months))
	}
	if len(l.Days) != 365 {
		t.Errorf("days = %d, want 365", len(l.Days))
	}
	if l.CellSize <= 0 {
		t.Errorf("cellSize = %g, want > 0", l.CellSize)
	}

	// 2018 spans 53 week columns under a Sunday start, so the width
	// axis constrains the cell: (800 - 2*53) / 53.
	if want := 694.0 / 53.0; !almostEqual(l.CellSize, want) {
		t.Errorf("cellSize = %g, want %g", l.CellSize, want)
	}

	u := l.CellSize + 2
	if !almostEqual(l.CalendarWidth, 53*u) {
		t.Errorf("calendarWidth = %g, want %g", l.CalendarWidth, 53*u)
	}
	if !almostEqual(l.CalendarHeight, 7*u) {
		t.Errorf("calendarHeight = %g, want %g", l.CalendarHeight, 7*u)
	}

	// Centered: the grid fills the width, leaving the height margin
	// split evenly.
	if !almostEqual(l.OriginX, (800-l.CalendarWidth)/2) {
		t.Errorf("originX = %g", l.OriginX)
	}
	if !almostEqual(l.OriginY, (200-l.CalendarHeight)/2) {
		t.Errorf("originY = %g", l.OriginY)
	}

	// January 1, 2018 is a Monday: week 0, row 1.
	first := l.Days[0]
	if first.Day != "2018-01-01" {
		t.Fatalf("first day = %s", first.Day)
	}
	if !almostEqual(first.X, l.OriginX+1) {
		t.Errorf("first day x = %g, want %g", first.X, l.OriginX+1)
	}
	if !almostEqual(first.Y, l.OriginY+u+1) {
		t.Errorf("first day y = %g, want %g", first.Y, l.OriginY+u+1)
	}
	if !almostEqual(first.Size, l.CellSize) {
		t.Errorf("first day size = %g, want %g", first.Size, l.CellSize)
	}

	// The single year box spans the full grid.
	yb := l.Years[0].BBox
	if !almostEqual(yb.X, l.OriginX) || !almostEqual(yb.Y, l.OriginY) {
		t.Errorf("year bbox origin = (%g, %g), want (%g, %g)", yb.X, yb.Y, l.OriginX, l.OriginY)
	}
	if !almostEqual(yb.Width, l.CalendarWidth) || !almostEqual(yb.Height, l.CalendarHeight) {
		t.Errorf("year bbox size = %gx%g, want %gx%g", yb.Width, yb.Height, l.CalendarWidth, l.CalendarHeight)
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	cfg := year2018Config()
	a := ComputeLayout(cfg)
	b := ComputeLayout(cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical configurations produced different layouts")
	}
}

func TestComputeLayoutMonthAdjacency(t *testing.T) {
	l := ComputeLayout(year2018Config())
	u := l.CellSize + 2

	for i := 1; i < len(l.Months); i++ {
		prev, cur := l.Months[i-1], l.Months[i]

		// Month boxes advance monotonically along the week axis and
		// share at most the single split week column.
		if cur.BBox.X < prev.BBox.X {
			t.Errorf("%s bbox.X went backwards", cur.Date.Format("2006-01"))
		}
		gap := cur.BBox.X - (prev.BBox.X + prev.BBox.Width)
		if gap > 1e-9 {
			t.Errorf("gap of %g between %s and %s", gap, prev.Date.Format("2006-01"), cur.Date.Format("2006-01"))
		}
		if gap < -u-1e-9 {
			t.Errorf("%s overlaps %s by more than one week column", prev.Date.Format("2006-01"), cur.Date.Format("2006-01"))
		}
	}

	// March 2018 ends exactly on a Saturday, so April must start flush
	// in the very next week column.
	march, april := l.Months[2], l.Months[3]
	if !almostEqual(april.BBox.X, march.BBox.X+march.BBox.Width) {
		t.Errorf("april starts at %g, want %g", april.BBox.X, march.BBox.X+march.BBox.Width)
	}
}

func TestComputeLayoutVertical(t *testing.T) {
	cfg := year2018Config()
	cfg.Width, cfg.Height = 200, 800
	cfg.Direction = Vertical

	l := ComputeLayout(cfg)

	// Same constraint arithmetic as the horizontal case, with the axes
	// swapped.
	if want := 694.0 / 53.0; !almostEqual(l.CellSize, want) {
		t.Errorf("cellSize = %g, want %g", l.CellSize, want)
	}
	u := l.CellSize + 2
	if !almostEqual(l.CalendarWidth, 7*u) {
		t.Errorf("calendarWidth = %g, want %g", l.CalendarWidth, 7*u)
	}
	if !almostEqual(l.CalendarHeight, 53*u) {
		t.Errorf("calendarHeight = %g, want %g", l.CalendarHeight, 53*u)
	}

	// January 1 is a Monday: column 1, week row 0.
	first := l.Days[0]
	if !almostEqual(first.X, l.OriginX+u+1) {
		t.Errorf("first day x = %g, want %g", first.X, l.OriginX+u+1)
	}
	if !almostEqual(first.Y, l.OriginY+1) {
		t.Errorf("first day y = %g, want %g", first.Y, l.OriginY+1)
	}

	// Month boxes are 7 columns wide and stack down the week axis.
	for _, m := range l.Months {
		if !almostEqual(m.BBox.Width, 7*u) {
			t.Errorf("%s bbox width = %g, want %g", m.Date.Format("2006-01"), m.BBox.Width, 7*u)
		}
	}
}

func TestComputeLayoutMultiYear(t *testing.T) {
	cfg := year2018Config()
	cfg.From = date(2017, time.January, 1)
	cfg.To = date(2018, time.December, 31)
	cfg.Height = 400

	l := ComputeLayout(cfg)

	if len(l.Years) != 2 {
		t.Fatalf("years = %d, want 2", len(l.Years))
	}
	if len(l.Months) != 24 {
		t.Errorf("months = %d, want 24", len(l.Months))
	}
	// 2017 has 365 days, 2018 has 365.
	if len(l.Days) != 730 {
		t.Errorf("days = %d, want 730", len(l.Days))
	}

	// The second year band sits one 7-row band plus the year spacing
	// below the first.
	u := l.CellSize + 2
	wantShift := 7*u + 30
	if got := l.Years[1].BBox.Y - l.Years[0].BBox.Y; !almostEqual(got, wantShift) {
		t.Errorf("year band shift = %g, want %g", got, wantShift)
	}

	// Partial-year bounds still cover whole calendar years.
	if l.Days[0].Day != "2017-01-01" {
		t.Errorf("first day = %s, want 2017-01-01", l.Days[0].Day)
	}
	if l.Days[len(l.Days)-1].Day != "2018-12-31" {
		t.Errorf("last day = %s, want 2018-12-31", l.Days[len(l.Days)-1].Day)
	}
}

func TestComputeLayoutFullYearsFromPartialRange(t *testing.T) {
	cfg := year2018Config()
	cfg.From = date(2018, time.June, 1)
	cfg.To = date(2018, time.June, 30)

	l := ComputeLayout(cfg)
	if len(l.Days) != 365 {
		t.Errorf("days = %d, want 365 (layouts cover whole years)", len(l.Days))
	}
}

func TestComputeLayoutLeapYear(t *testing.T) {
	cfg := year2018Config()
	cfg.From = date(2020, time.January, 1)
	cfg.To = date(2020, time.December, 31)

	l := ComputeLayout(cfg)
	if len(l.Days) != 366 {
		t.Errorf("days = %d, want 366", len(l.Days))
	}
	if l.Days[59].Day != "2020-02-29" {
		t.Errorf("day 59 = %s, want 2020-02-29", l.Days[59].Day)
	}
}

func TestComputeLayoutDegenerateRange(t *testing.T) {
	cfg := year2018Config()
	cfg.From = date(2019, time.January, 1)
	cfg.To = date(2018, time.December, 31)

	l := ComputeLayout(cfg)
	if len(l.Years) != 0 || len(l.Months) != 0 || len(l.Days) != 0 {
		t.Errorf("inverted range produced %d years, %d months, %d days", len(l.Years), len(l.Months), len(l.Days))
	}
	if l.CellSize != 0 {
		t.Errorf("cellSize = %g, want 0", l.CellSize)
	}
}

func TestCellSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  float64
		dir   Direction
		years int
		ys    float64
		ds    float64
		weeks int
		want  float64
	}{
		{"width constrained", 800, 200, Horizontal, 1, 30, 2, 53, 694.0 / 53},
		{"height constrained", 2000, 100, Horizontal, 1, 30, 2, 53, 86.0 / 7},
		{"vertical swaps axes", 200, 800, Vertical, 1, 30, 2, 53, 694.0 / 53},
		{"no years", 800, 200, Horizontal, 0, 30, 2, 53, 0},
		{"no weeks", 800, 200, Horizontal, 1, 30, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cellSize(tt.w, tt.h, tt.dir, tt.years, tt.ys, tt.ds, tt.weeks)
			if !almostEqual(got, tt.want) {
				t.Errorf("cellSize = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCellSizeDegenerateIsFinite(t *testing.T) {
	// A frame smaller than the spacing budget must yield a plain
	// negative number, never NaN or an infinity.
	got := cellSize(10, 10, Horizontal, 1, 30, 2, 53)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("cellSize = %v, want finite", got)
	}
	if got > 0 {
		t.Errorf("cellSize = %g, want non-positive", got)
	}
}

func TestLayoutConfigValidate(t *testing.T) {
	valid := year2018Config()

	tests := []struct {
		name   string
		mutate func(*LayoutConfig)
		ok     bool
	}{
		{"valid", func(c *LayoutConfig) {}, true},
		{"zero width", func(c *LayoutConfig) { c.Width = 0 }, false},
		{"negative height", func(c *LayoutConfig) { c.Height = -1 }, false},
		{"negative day spacing", func(c *LayoutConfig) { c.DaySpacing = -1 }, false},
		{"zero from", func(c *LayoutConfig) { c.From = time.Time{} }, false},
		{"inverted range", func(c *LayoutConfig) { c.From, c.To = c.To.AddDate(1, 0, 0), c.From }, false},
		{"bad direction", func(c *LayoutConfig) { c.Direction = Direction(7) }, false},
		{"bad alignment", func(c *LayoutConfig) { c.Align = align.Anchor(42) }, false},
		{"bad weekday", func(c *LayoutConfig) { c.FirstDayOfWeek = time.Weekday(9) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := ComputeLayout(year2018Config())

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}

	path := t.TempDir() + "/2018.layout.json"
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}

	if len(got.Days) != len(l.Days) || len(got.Months) != len(l.Months) {
		t.Fatalf("round trip lost entries: %d days, %d months", len(got.Days), len(got.Months))
	}
	if !almostEqual(got.CellSize, l.CellSize) {
		t.Errorf("cellSize = %g, want %g", got.CellSize, l.CellSize)
	}
	if got.Months[2].Path != l.Months[2].Path {
		t.Errorf("month path changed in round trip")
	}
	if len(data) == 0 {
		t.Error("MarshalLayout returned no bytes")
	}
}
