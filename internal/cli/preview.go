package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/pipeline"
)

// previewCommand creates the preview command: an interactive terminal
// heatmap of the bound calendar.
func (c *CLI) previewCommand() *cobra.Command {
	var dataFile string

	cmd := &cobra.Command{
		Use:   "preview [chart file]",
		Short: "Preview a calendar heatmap in the terminal",
		Long: `Preview a calendar heatmap in the terminal.

The preview command computes the layout, binds the document's data records
and draws the calendar as colored terminal cells, one week per column.
Multi-year ranges are browsed one year at a time with the arrow keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], dataFile)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "extra data records (.json or .csv)")

	return cmd
}

// runPreview loads the document, computes and binds the layout, and hands
// the result to the interactive model. No cache is involved: previews are
// one-shot and layout computation is fast at terminal sizes.
func (c *CLI) runPreview(ctx context.Context, input, dataFile string) error {
	spec, err := loadSpec(input, dataFile)
	if err != nil {
		return err
	}

	opts := spec.Pipeline()
	opts.Logger = c.Logger

	l, err := pipeline.ComputeLayout(opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	bound, _ := pipeline.Bind(l, opts)

	title := spec.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	model := newPreviewModel(title, bound, time.Weekday(spec.FirstDayOfWeek))
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// Preview styles
var (
	previewEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// previewCell is the glyph used for one day. Two block characters give a
// roughly square cell in most terminal fonts.
const previewCell = "██"

// =============================================================================
// PreviewModel - Interactive calendar heatmap
// =============================================================================

// previewYear is one prerendered year band of the heatmap.
type previewYear struct {
	year  int
	rows  []string // 7 lines, weekday rows top to bottom
	days  int
	bound int
}

// PreviewModel is the bubbletea model for the calendar preview.
type PreviewModel struct {
	Title  string
	Years  []previewYear
	Cursor int
}

// newPreviewModel prerenders every year of the bound layout into colored
// terminal rows. Days are placed by the same weekday/week-offset
// arithmetic the pixel layout uses.
func newPreviewModel(title string, l calendar.Layout, firstDay time.Weekday) PreviewModel {
	byYear := make(map[int][]calendar.Day)
	for _, d := range l.Days {
		byYear[d.Date.Year()] = append(byYear[d.Date.Year()], d)
	}

	years := make([]previewYear, 0, len(l.Years))
	for _, y := range l.Years {
		years = append(years, renderPreviewYear(y.Year, byYear[y.Year], firstDay))
	}

	return PreviewModel{Title: title, Years: years}
}

// renderPreviewYear lays one year's days onto a 7-row grid of colored
// cells. Grid slots before the first day or after the last stay dim.
func renderPreviewYear(year int, days []calendar.Day, firstDay time.Weekday) previewYear {
	weeks := 0
	for _, d := range days {
		if w := calendar.WeekOffset(d.Date, firstDay); w >= weeks {
			weeks = w + 1
		}
	}

	grid := make([][]string, 7)
	for r := range grid {
		grid[r] = make([]string, weeks)
		for c := range grid[r] {
			grid[r][c] = previewEmptyStyle.Render("··")
		}
	}

	bound := 0
	for _, d := range days {
		row := calendar.DayIndex(d.Date, firstDay)
		col := calendar.WeekOffset(d.Date, firstDay)
		cell := previewCell
		if d.Color != "" {
			cell = lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render(previewCell)
		}
		grid[row][col] = cell
		if d.Value != nil {
			bound++
		}
	}

	rows := make([]string, 7)
	for r := range grid {
		label := weekdayInitial(firstDay, r)
		rows[r] = previewLabelStyle.Render(label+" ") + strings.Join(grid[r], "")
	}

	return previewYear{year: year, rows: rows, days: len(days), bound: bound}
}

// weekdayInitial returns the one-letter label of the weekday shown on
// grid row r under the configured week start.
func weekdayInitial(firstDay time.Weekday, r int) string {
	return "SMTWTFS"[(int(firstDay)+r)%7 : (int(firstDay)+r)%7+1]
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l":
			if m.Cursor < len(m.Years)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	if len(m.Years) == 0 {
		return StyleDim.Render("nothing to preview") + "\n"
	}

	y := m.Years[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")

	nav := fmt.Sprintf("%d", y.year)
	if len(m.Years) > 1 {
		nav = fmt.Sprintf("◂ %d ▸  (%d/%d)", y.year, m.Cursor+1, len(m.Years))
	}
	b.WriteString(StyleHighlight.Render(nav))
	b.WriteString("\n\n")

	for _, row := range y.rows {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d days · %d with data", y.days, y.bound)))
	b.WriteString("\n")
	if len(m.Years) > 1 {
		b.WriteString(StyleDim.Render("←/→ year  q quit"))
	} else {
		b.WriteString(StyleDim.Render("q quit"))
	}
	b.WriteString("\n")

	return b.String()
}
