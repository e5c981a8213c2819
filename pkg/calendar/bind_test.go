package calendar

import (
	"fmt"
	"testing"
)

func TestBindDays(t *testing.T) {
	l := ComputeLayout(year2018Config())

	scale := func(v float64) string { return fmt.Sprintf("c%.0f", v) }
	data := []Datum{
		{Day: "2018-01-01", Value: 10},
		{Day: "2018-06-15", Value: 5},
		{Day: "2019-03-03", Value: 9}, // outside the layout, ignored
	}

	bound := BindDays(l.Days, data, scale, "#eeeeee")

	if len(bound) != len(l.Days) {
		t.Fatalf("bound %d days, want %d", len(bound), len(l.Days))
	}

	first := bound[0]
	if first.Value == nil || *first.Value != 10 {
		t.Errorf("first day value = %v, want 10", first.Value)
	}
	if first.Color != "c10" {
		t.Errorf("first day color = %q, want c10", first.Color)
	}
	if first.Data == nil || first.Data.Day != "2018-01-01" {
		t.Errorf("first day data = %+v", first.Data)
	}

	// June 15 is day-of-year 166.
	jun15 := bound[165]
	if jun15.Day != "2018-06-15" {
		t.Fatalf("day 165 = %s, want 2018-06-15", jun15.Day)
	}
	if jun15.Value == nil || *jun15.Value != 5 {
		t.Errorf("jun 15 value = %v, want 5", jun15.Value)
	}

	// Unmatched days carry the empty color and no value.
	second := bound[1]
	if second.Color != "#eeeeee" {
		t.Errorf("unbound color = %q, want #eeeeee", second.Color)
	}
	if second.Value != nil || second.Data != nil {
		t.Errorf("unbound day carries value %v data %v", second.Value, second.Data)
	}
}

func TestBindDaysDuplicateKeysLastWins(t *testing.T) {
	l := ComputeLayout(year2018Config())
	scale := func(v float64) string { return fmt.Sprintf("c%.0f", v) }

	data := []Datum{
		{Day: "2018-01-01", Value: 10},
		{Day: "2018-01-01", Value: 20},
	}
	bound := BindDays(l.Days, data, scale, "#eeeeee")

	if bound[0].Value == nil || *bound[0].Value != 20 {
		t.Errorf("value = %v, want 20 (last record wins)", bound[0].Value)
	}
	if bound[0].Color != "c20" {
		t.Errorf("color = %q, want c20", bound[0].Color)
	}
}

func TestBindDaysDoesNotMutateInput(t *testing.T) {
	l := ComputeLayout(year2018Config())

	data := []Datum{{Day: "2018-01-01", Value: 10}}
	_ = BindDays(l.Days, data, func(float64) string { return "#000000" }, "#eeeeee")

	if l.Days[0].Color != "" || l.Days[0].Value != nil || l.Days[0].Data != nil {
		t.Errorf("input day mutated: %+v", l.Days[0])
	}
}

func TestBindDaysNilScale(t *testing.T) {
	l := ComputeLayout(year2018Config())

	data := []Datum{{Day: "2018-01-01", Value: 10}}
	bound := BindDays(l.Days, data, nil, "#eeeeee")

	// Without a scale the value still binds; the color stays empty.
	if bound[0].Value == nil || *bound[0].Value != 10 {
		t.Errorf("value = %v, want 10", bound[0].Value)
	}
	if bound[0].Color != "#eeeeee" {
		t.Errorf("color = %q, want the empty color", bound[0].Color)
	}
}

func TestBindDaysGeometryPreserved(t *testing.T) {
	l := ComputeLayout(year2018Config())
	bound := BindDays(l.Days, nil, nil, "#eeeeee")

	for i := range bound {
		if bound[i].X != l.Days[i].X || bound[i].Y != l.Days[i].Y || bound[i].Size != l.Days[i].Size {
			t.Fatalf("geometry changed for %s", bound[i].Day)
		}
		if bound[i].Date != l.Days[i].Date {
			t.Fatalf("date changed for %s", bound[i].Day)
		}
	}
}
