package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jfache/nivo/pkg/align"
	"github.com/jfache/nivo/pkg/errors"
)

// DayFormat is the string key format used to match data records to days.
const DayFormat = "2006-01-02"

// Datum is one external data record bound onto a day cell. Day must be a
// YYYY-MM-DD key; records whose key falls outside the layout's range are
// ignored by the binder.
type Datum struct {
	Day   string  `json:"day" bson:"day" toml:"day"`
	Value float64 `json:"value" bson:"value" toml:"value"`
}

// Day is the geometry of a single day cell, optionally augmented with a
// bound value and color by [BindDays].
type Day struct {
	Date  time.Time `json:"date" bson:"date"`
	Day   string    `json:"day" bson:"day"`
	X     float64   `json:"x" bson:"x"`
	Y     float64   `json:"y" bson:"y"`
	Size  float64   `json:"size" bson:"size"`
	Color string    `json:"color,omitempty" bson:"color,omitempty"`
	Value *float64  `json:"value,omitempty" bson:"value,omitempty"`
	Data  *Datum    `json:"data,omitempty" bson:"data,omitempty"`
}

// Month is the outline geometry of one calendar month: a closed
// rectilinear SVG path tracing its day cells and the smallest rectangle
// containing it.
type Month struct {
	Date  time.Time  `json:"date" bson:"date"`
	Year  int        `json:"year" bson:"year"`
	Month time.Month `json:"month" bson:"month"`
	Path  string     `json:"path" bson:"path"`
	BBox  align.Box  `json:"bbox" bson:"bbox"`
}

// Year is one calendar year of the range with the bounding box of its
// twelve month outlines.
type Year struct {
	Year int       `json:"year" bson:"year"`
	BBox align.Box `json:"bbox" bson:"bbox"`
}

// Layout is the complete geometry snapshot for one configuration: every
// day cell, month outline and year box, plus the resolved cell size,
// calendar extents and origin. It is recomputed deterministically from a
// [LayoutConfig] and carries no state of its own.
type Layout struct {
	Years    []Year  `json:"years" bson:"years"`
	Months   []Month `json:"months" bson:"months"`
	Days     []Day   `json:"days" bson:"days"`
	CellSize float64 `json:"cell_size" bson:"cell_size"`

	// Calendar extents: the pixel size of the drawn grid, which is at
	// most the configured frame size.
	CalendarWidth  float64 `json:"calendar_width" bson:"calendar_width"`
	CalendarHeight float64 `json:"calendar_height" bson:"calendar_height"`

	// Origin: top-left corner of the grid after alignment in the frame.
	OriginX float64 `json:"origin_x" bson:"origin_x"`
	OriginY float64 `json:"origin_y" bson:"origin_y"`
}

// LayoutConfig is the full input to [Builder.ComputeLayout]. From and To
// bound an inclusive calendar-year range: layouts always cover whole
// years, so From = 2018-06-01 still yields all 365 days of 2018.
type LayoutConfig struct {
	Width          float64      `json:"width"`
	Height         float64      `json:"height"`
	From           time.Time    `json:"from"`
	To             time.Time    `json:"to"`
	Direction      Direction    `json:"direction"`
	YearSpacing    float64      `json:"year_spacing"`
	DaySpacing     float64      `json:"day_spacing"`
	Align          align.Anchor `json:"align"`
	FirstDayOfWeek time.Weekday `json:"first_day_of_week"`
}

// Validate checks the configuration at an application boundary. Layout
// computation itself is total and never errors; callers that accept user
// input (CLI flags, chart documents, API requests) run Validate first so
// that degenerate geometry is rejected with a coded error instead of
// silently producing an empty layout.
func (c LayoutConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "width and height must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.YearSpacing < 0 || c.DaySpacing < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "spacing must not be negative, got yearSpacing=%g daySpacing=%g", c.YearSpacing, c.DaySpacing)
	}
	if c.From.IsZero() || c.To.IsZero() {
		return errors.New(errors.ErrCodeInvalidRange, "from and to dates are required")
	}
	if c.To.Year() < c.From.Year() {
		return errors.New(errors.ErrCodeInvalidRange, "from %s is after to %s", c.From.Format(DayFormat), c.To.Format(DayFormat))
	}
	if !c.Direction.Valid() {
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %d", int(c.Direction))
	}
	if !c.Align.Valid() {
		return errors.New(errors.ErrCodeInvalidAlignment, "invalid alignment: %d", int(c.Align))
	}
	if c.FirstDayOfWeek < time.Sunday || c.FirstDayOfWeek > time.Saturday {
		return errors.New(errors.ErrCodeInvalidWeekday, "invalid first day of week: %d", int(c.FirstDayOfWeek))
	}
	return nil
}

// MarshalLayout converts a Layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeLayoutTo(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout decodes JSON bytes produced by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
// The file is created with 0644 permissions.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeLayoutTo(l, f)
}

// ReadLayoutFile reads a JSON file and returns the decoded Layout.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var l Layout
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}

func writeLayoutTo(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
