// Package chart loads and validates chart documents.
//
// # Overview
//
// A chart document is a declarative description of one calendar heatmap:
// the date range, grid geometry, palette, legends and the data records to
// bind. Documents exist so that charts can be kept in version control,
// posted to the API, or re-rendered from the CLI without repeating a long
// flag list.
//
// # Document Format
//
// Documents are TOML or JSON; the format is chosen by file extension.
// A minimal TOML document:
//
//	from = "2018-01-01"
//	to   = "2018-12-31"
//
//	[[data]]
//	day   = "2018-03-01"
//	value = 5.0
//
// Data can live inline in [[data]] tables, in an external file referenced
// by data_file (JSON array or day,value CSV, resolved relative to the
// document), or both; external records are appended after the inline ones.
//
// # Usage
//
// Load a document and run it through the pipeline:
//
//	spec, err := chart.Load("commits.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := spec.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, spec.Pipeline())
//
// Validation is separate from loading so that the API can decode a
// document from a request body and reuse the same checks.
package chart

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/errors"
	"github.com/jfache/nivo/pkg/pipeline"
)

// Spec is a chart document: everything needed to lay out, bind and
// render one calendar except runtime concerns (output formats, scale,
// chart identity), which stay with the caller.
type Spec struct {
	// Title is display metadata; it is stored and echoed by the API but
	// does not affect rendering.
	Title string `toml:"title" json:"title,omitempty" bson:"title,omitempty"`

	// Layout
	From           string  `toml:"from" json:"from" bson:"from"`
	To             string  `toml:"to" json:"to" bson:"to"`
	Direction      string  `toml:"direction" json:"direction,omitempty" bson:"direction,omitempty"`
	Width          float64 `toml:"width" json:"width,omitempty" bson:"width,omitempty"`
	Height         float64 `toml:"height" json:"height,omitempty" bson:"height,omitempty"`
	YearSpacing    float64 `toml:"year_spacing" json:"year_spacing,omitempty" bson:"year_spacing,omitempty"`
	DaySpacing     float64 `toml:"day_spacing" json:"day_spacing,omitempty" bson:"day_spacing,omitempty"`
	Align          string  `toml:"align" json:"align,omitempty" bson:"align,omitempty"`
	FirstDayOfWeek int     `toml:"first_day_of_week" json:"first_day_of_week,omitempty" bson:"first_day_of_week,omitempty"`

	// Palette
	Colors     []string `toml:"colors" json:"colors,omitempty" bson:"colors,omitempty"`
	EmptyColor string   `toml:"empty_color" json:"empty_color,omitempty" bson:"empty_color,omitempty"`
	MinValue   *float64 `toml:"min_value" json:"min_value,omitempty" bson:"min_value,omitempty"`
	MaxValue   *float64 `toml:"max_value" json:"max_value,omitempty" bson:"max_value,omitempty"`

	// Presentation
	Theme        string  `toml:"theme" json:"theme,omitempty" bson:"theme,omitempty"`
	YearLegend   string  `toml:"year_legend" json:"year_legend,omitempty" bson:"year_legend,omitempty"`
	MonthLegend  string  `toml:"month_legend" json:"month_legend,omitempty" bson:"month_legend,omitempty"`
	LegendOffset float64 `toml:"legend_offset" json:"legend_offset,omitempty" bson:"legend_offset,omitempty"`
	Titles       bool    `toml:"titles" json:"titles,omitempty" bson:"titles,omitempty"`

	// Data
	DataFile string           `toml:"data_file" json:"data_file,omitempty" bson:"data_file,omitempty"`
	Data     []calendar.Datum `toml:"data" json:"data,omitempty" bson:"data,omitempty"`
}

// Load reads a chart document from path. The format is chosen by the
// file extension (.toml or .json). When the document names a data_file,
// its records are loaded relative to the document and appended to the
// inline data.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse %s", path)
		}
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart document extension: %q (want .toml or .json)", filepath.Ext(path))
	}

	if spec.DataFile != "" {
		dataPath := spec.DataFile
		if !filepath.IsAbs(dataPath) {
			dataPath = filepath.Join(filepath.Dir(path), dataPath)
		}
		records, err := LoadData(dataPath)
		if err != nil {
			return nil, err
		}
		spec.Data = append(spec.Data, records...)
	}

	return &spec, nil
}

// LoadData reads data records from a JSON or CSV file at path.
func LoadData(path string) ([]calendar.Datum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadDataJSON(f)
	case ".csv":
		return ReadDataCSV(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data extension: %q (want .json or .csv)", filepath.Ext(path))
	}
}

// ReadDataJSON decodes a JSON array of data records from r:
//
//	[{"day": "2018-03-01", "value": 5}, ...]
func ReadDataJSON(r io.Reader) ([]calendar.Datum, error) {
	var records []calendar.Datum
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode data")
	}
	return records, nil
}

// ReadDataCSV decodes day,value rows from r. A header row is tolerated:
// when the first row's value column does not parse as a number the row
// is skipped.
func ReadDataCSV(r io.Reader) ([]calendar.Datum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var records []calendar.Datum
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read csv")
		}
		line++

		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, errors.New(errors.ErrCodeInvalidData, "line %d: value %q is not a number", line, row[1])
		}
		records = append(records, calendar.Datum{Day: row[0], Value: value})
	}
	return records, nil
}

// Validate checks the document before it enters the pipeline. It covers
// the fields pipeline validation cannot report well for documents: the
// date range in document terms and every inline data record.
func (s *Spec) Validate() error {
	if s.From == "" || s.To == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "from and to dates are required")
	}
	from, err := time.Parse(calendar.DayFormat, s.From)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid from date: %q (want YYYY-MM-DD)", s.From)
	}
	to, err := time.Parse(calendar.DayFormat, s.To)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid to date: %q (want YYYY-MM-DD)", s.To)
	}
	if to.Year() < from.Year() {
		return errors.New(errors.ErrCodeInvalidRange, "from %s is after to %s", s.From, s.To)
	}

	for _, c := range s.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	if s.EmptyColor != "" {
		if err := errors.ValidateHexColor(s.EmptyColor); err != nil {
			return err
		}
	}

	for i, d := range s.Data {
		if err := errors.ValidateDayKey(d.Day); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidData, err, "data record %d", i)
		}
	}

	return nil
}

// Pipeline converts the document to pipeline options. The caller fills
// in runtime options (formats, PNG scale, chart id) afterwards.
func (s *Spec) Pipeline() pipeline.Options {
	return pipeline.Options{
		From:           s.From,
		To:             s.To,
		Direction:      s.Direction,
		Width:          s.Width,
		Height:         s.Height,
		YearSpacing:    s.YearSpacing,
		DaySpacing:     s.DaySpacing,
		Align:          s.Align,
		FirstDayOfWeek: s.FirstDayOfWeek,

		Data:       s.Data,
		Colors:     s.Colors,
		EmptyColor: s.EmptyColor,
		MinValue:   s.MinValue,
		MaxValue:   s.MaxValue,

		Theme:        s.Theme,
		YearLegend:   s.YearLegend,
		MonthLegend:  s.MonthLegend,
		LegendOffset: s.LegendOffset,
		Titles:       s.Titles,
	}
}
