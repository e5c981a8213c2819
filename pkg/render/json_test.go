package render

import (
	"encoding/json"
	"testing"

	"github.com/jfache/nivo/pkg/calendar"
)

func TestRenderJSON(t *testing.T) {
	l := testLayout(t)
	legends := calendar.MonthLegends(l.Months, calendar.Horizontal, calendar.Before, 10)

	out, err := RenderJSON(l,
		WithJSONFrame(800, 200),
		WithJSONTheme("dark"),
		WithJSONPalette([]string{"#9be9a8", "#216e39"}, "#ebedf0"),
		WithJSONLegends(legends),
	)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded struct {
		Width      float64                `json:"width"`
		Height     float64                `json:"height"`
		Theme      string                 `json:"theme"`
		Colors     []string               `json:"colors"`
		EmptyColor string                 `json:"empty_color"`
		Legends    []calendar.LegendEntry `json:"legends"`
		Layout     calendar.Layout        `json:"layout"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Width != 800 || decoded.Height != 200 {
		t.Errorf("frame = %gx%g, want 800x200", decoded.Width, decoded.Height)
	}
	if decoded.Theme != "dark" {
		t.Errorf("theme = %q, want dark", decoded.Theme)
	}
	if len(decoded.Colors) != 2 || decoded.EmptyColor != "#ebedf0" {
		t.Errorf("palette not preserved: %v %q", decoded.Colors, decoded.EmptyColor)
	}
	if len(decoded.Legends) != 12 {
		t.Errorf("legend count = %d, want 12", len(decoded.Legends))
	}
	if len(decoded.Layout.Days) != 365 {
		t.Errorf("day count = %d, want 365", len(decoded.Layout.Days))
	}
	if decoded.Layout.Days[0].Day != "2018-01-01" {
		t.Errorf("first day = %s, want 2018-01-01", decoded.Layout.Days[0].Day)
	}
}

func TestRenderJSONBare(t *testing.T) {
	// Without options only the layout is emitted.
	out, err := RenderJSON(calendar.Layout{})
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded["layout"]; !ok {
		t.Error("layout key missing")
	}
	if _, ok := decoded["theme"]; ok {
		t.Error("empty theme should be omitted")
	}
}
