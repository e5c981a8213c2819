package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/jfache/nivo/pkg/calendar"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width   float64
	height  float64
	theme   Theme
	legends []calendar.LegendEntry
	titles  bool
	id      string
}

// WithFrame sets the outer frame (viewBox) dimensions. Without it the
// frame is derived from the calendar box, which drops the alignment
// whitespace around the grid.
func WithFrame(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width = width; r.height = height }
}

// WithTheme sets the visual theme. Defaults to [DefaultTheme].
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithLegends adds precomputed legend entries to the output.
func WithLegends(entries []calendar.LegendEntry) SVGOption {
	return func(r *svgRenderer) { r.legends = append(r.legends, entries...) }
}

// WithTitles adds a <title> child to every day cell so browsers show the
// day key and value on hover.
func WithTitles() SVGOption { return func(r *svgRenderer) { r.titles = true } }

// WithID sets an id attribute on the root element, prefixed with "nivo-",
// so documents inlining several charts can address each one.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// RenderSVG renders a computed layout as a standalone SVG document.
// Day cells are emitted first, then month outlines, then legend text, so
// outlines and labels stay visible on top of the cells.
func RenderSVG(l calendar.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width, height := r.frame(l)

	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if r.id != "" {
		fmt.Fprintf(&buf, ` id="nivo-%s"`, escapeXML(r.id))
	}
	fmt.Fprintf(&buf, ` viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))

	if r.theme.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n",
			num(width), num(height), escapeXML(r.theme.Background))
	}

	for _, d := range l.Days {
		r.renderDay(&buf, d)
	}
	for _, m := range l.Months {
		r.renderMonth(&buf, m)
	}
	for _, e := range r.legends {
		r.renderLegend(&buf, e)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frame returns the viewBox dimensions, falling back to the aligned
// calendar box when no frame was configured.
func (r *svgRenderer) frame(l calendar.Layout) (float64, float64) {
	if r.width > 0 && r.height > 0 {
		return r.width, r.height
	}
	return l.OriginX + l.CalendarWidth, l.OriginY + l.CalendarHeight
}

func (r *svgRenderer) renderDay(buf *bytes.Buffer, d calendar.Day) {
	fill := d.Color
	if fill == "" {
		fill = DefaultEmptyColor
	}

	fmt.Fprintf(buf, `  <rect class="day" x="%s" y="%s" width="%s" height="%s" fill="%s"`,
		num(d.X), num(d.Y), num(d.Size), num(d.Size), escapeXML(fill))
	if r.theme.DayBorderWidth > 0 {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`,
			escapeXML(r.theme.DayBorderColor), num(r.theme.DayBorderWidth))
	}

	if !r.titles {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")
	if d.Value != nil {
		fmt.Fprintf(buf, "<title>%s: %s</title>", escapeXML(d.Day), num(*d.Value))
	} else {
		fmt.Fprintf(buf, "<title>%s</title>", escapeXML(d.Day))
	}
	buf.WriteString("</rect>\n")
}

func (r *svgRenderer) renderMonth(buf *bytes.Buffer, m calendar.Month) {
	if r.theme.MonthBorderWidth <= 0 {
		return
	}
	fmt.Fprintf(buf, `  <path class="month" d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		m.Path, escapeXML(r.theme.MonthBorderColor), num(r.theme.MonthBorderWidth))
}

func (r *svgRenderer) renderLegend(buf *bytes.Buffer, e calendar.LegendEntry) {
	fmt.Fprintf(buf, `  <text class="legend" x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s"`,
		num(e.X), num(e.Y), escapeXML(r.theme.FontFamily), num(r.theme.FontSize), escapeXML(r.theme.TextColor))
	if e.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, num(e.Rotation), num(e.X), num(e.Y))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(e.Label))
}

// num formats a coordinate with no trailing zeros, matching the path
// builder's output so cell and outline coordinates agree textually.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
