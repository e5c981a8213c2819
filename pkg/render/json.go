package render

import (
	"encoding/json"

	"github.com/jfache/nivo/pkg/calendar"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	width      float64
	height     float64
	theme      string
	colors     []string
	emptyColor string
	legends    []calendar.LegendEntry
}

// WithJSONFrame records the outer frame dimensions in the output.
func WithJSONFrame(width, height float64) JSONOption {
	return func(r *jsonRenderer) { r.width = width; r.height = height }
}

// WithJSONTheme records the theme name in the output for round-trip rendering.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONPalette records the color scale and empty color used for binding.
func WithJSONPalette(colors []string, emptyColor string) JSONOption {
	return func(r *jsonRenderer) { r.colors = colors; r.emptyColor = emptyColor }
}

// WithJSONLegends includes computed legend entries in the output.
func WithJSONLegends(entries []calendar.LegendEntry) JSONOption {
	return func(r *jsonRenderer) { r.legends = append(r.legends, entries...) }
}

type jsonOutput struct {
	Width      float64                `json:"width,omitempty"`
	Height     float64                `json:"height,omitempty"`
	Theme      string                 `json:"theme,omitempty"`
	Colors     []string               `json:"colors,omitempty"`
	EmptyColor string                 `json:"empty_color,omitempty"`
	Legends    []calendar.LegendEntry `json:"legends,omitempty"`
	Layout     calendar.Layout        `json:"layout"`
}

// RenderJSON exports the layout and the options that shaped it as a
// pretty-printed JSON document. This is the data interchange format,
// enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify l and is safe to call concurrently.
func RenderJSON(l calendar.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      r.width,
		Height:     r.height,
		Theme:      r.theme,
		Colors:     r.colors,
		EmptyColor: r.emptyColor,
		Legends:    r.legends,
		Layout:     l,
	}
	return json.MarshalIndent(out, "", "  ")
}
