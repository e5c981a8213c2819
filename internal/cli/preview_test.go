package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jfache/nivo/pkg/pipeline"
)

func previewFixture(t *testing.T, from, to string) PreviewModel {
	t.Helper()

	opts := pipeline.Options{From: from, To: to}
	l, err := pipeline.ComputeLayout(opts)
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	bound, _ := pipeline.Bind(l, opts)
	return newPreviewModel("test", bound, time.Sunday)
}

func TestNewPreviewModel(t *testing.T) {
	m := previewFixture(t, "2018-01-01", "2019-12-31")

	if len(m.Years) != 2 {
		t.Fatalf("len(Years) = %d, want 2", len(m.Years))
	}
	for _, y := range m.Years {
		if len(y.rows) != 7 {
			t.Errorf("year %d: len(rows) = %d, want 7", y.year, len(y.rows))
		}
	}
	if m.Years[0].days != 365 {
		t.Errorf("2018 days = %d, want 365", m.Years[0].days)
	}
}

func TestPreviewModelNavigation(t *testing.T) {
	m := previewFixture(t, "2018-01-01", "2019-12-31")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(PreviewModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after right = %d, want 1", m.Cursor)
	}

	// Right at the last year stays put
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(PreviewModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after right at end = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(PreviewModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after left = %d, want 0", m.Cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestPreviewModelView(t *testing.T) {
	m := previewFixture(t, "2018-01-01", "2018-12-31")

	view := m.View()
	if !strings.Contains(view, "2018") {
		t.Error("view should name the year")
	}
	if !strings.Contains(view, "365 days") {
		t.Error("view should report the day count")
	}
}

func TestWeekdayInitial(t *testing.T) {
	tests := []struct {
		firstDay time.Weekday
		row      int
		want     string
	}{
		{time.Sunday, 0, "S"},
		{time.Sunday, 1, "M"},
		{time.Monday, 0, "M"},
		{time.Monday, 6, "S"},
		{time.Saturday, 1, "S"},
	}

	for _, tt := range tests {
		if got := weekdayInitial(tt.firstDay, tt.row); got != tt.want {
			t.Errorf("weekdayInitial(%v, %d) = %q, want %q", tt.firstDay, tt.row, got, tt.want)
		}
	}
}
