package pipeline

import (
	"testing"

	"github.com/jfache/nivo/pkg/calendar"
)

func layout2018(t *testing.T) calendar.Layout {
	t.Helper()
	l, err := ComputeLayout(Options{From: "2018-01-01", To: "2018-12-31"})
	if err != nil {
		t.Fatalf("ComputeLayout failed: %v", err)
	}
	return l
}

func TestBind(t *testing.T) {
	l := layout2018(t)

	opts := Options{
		From: "2018-01-01",
		To:   "2018-12-31",
		Data: []calendar.Datum{
			{Day: "2018-03-01", Value: 1},
			{Day: "2018-07-04", Value: 10},
			{Day: "2030-01-01", Value: 99}, // outside the range, ignored
		},
	}

	bound, matched := Bind(l, opts)
	if matched != 2 {
		t.Fatalf("matched = %d, want 2", matched)
	}

	byDay := make(map[string]calendar.Day, len(bound.Days))
	for _, d := range bound.Days {
		byDay[d.Day] = d
	}

	// Domain is [1, 10] with the 4-color default palette: the minimum
	// lands in the first bucket, the maximum clamps into the last.
	if got := byDay["2018-03-01"].Color; got != "#61cdbb" {
		t.Errorf("min value color = %q, want first palette color", got)
	}
	if got := byDay["2018-07-04"].Color; got != "#f47560" {
		t.Errorf("max value color = %q, want last palette color", got)
	}
	if got := byDay["2018-01-15"].Color; got != "#fff" {
		t.Errorf("unmatched day color = %q, want empty color", got)
	}
	if byDay["2018-01-15"].Value != nil {
		t.Error("unmatched day should carry no value")
	}
}

func TestBindNoData(t *testing.T) {
	l := layout2018(t)

	bound, matched := Bind(l, Options{From: "2018-01-01", To: "2018-12-31"})
	if matched != 0 {
		t.Fatalf("matched = %d, want 0", matched)
	}
	for _, d := range bound.Days {
		if d.Color != "#fff" {
			t.Fatalf("day %s color = %q, want empty color", d.Day, d.Color)
		}
	}
}

func TestBindDoesNotMutateLayout(t *testing.T) {
	l := layout2018(t)
	before := l.Days[100].Color

	_, _ = Bind(l, Options{
		From: "2018-01-01",
		To:   "2018-12-31",
		Data: []calendar.Datum{{Day: l.Days[100].Day, Value: 5}},
	})

	if l.Days[100].Color != before {
		t.Error("Bind should not mutate the input layout's days")
	}
}

func TestLegends(t *testing.T) {
	l := layout2018(t)

	opts := Options{
		From:       "2018-01-01",
		To:         "2018-12-31",
		YearLegend: "before",
	}
	entries := Legends(l, opts)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 year legend", len(entries))
	}
	if entries[0].Label != "2018" {
		t.Errorf("label = %q, want 2018", entries[0].Label)
	}
	if entries[0].Rotation != -90 {
		t.Errorf("rotation = %g, want -90 for horizontal year legends", entries[0].Rotation)
	}

	opts.MonthLegend = "after"
	entries = Legends(l, opts)
	if len(entries) != 13 {
		t.Fatalf("entries = %d, want 1 year + 12 month legends", len(entries))
	}
}

func TestLegendsDisabled(t *testing.T) {
	l := layout2018(t)

	entries := Legends(l, Options{From: "2018-01-01", To: "2018-12-31"})
	if len(entries) != 0 {
		t.Fatalf("entries = %d, want none when both legends are off", len(entries))
	}
}
