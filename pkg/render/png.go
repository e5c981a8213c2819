package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/jfache/nivo/pkg/calendar"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width      float64
	height     float64
	scale      float64
	theme      Theme
	legends    []calendar.LegendEntry
	fontPath   string
	fontPoints float64
}

// WithPNGFrame sets the outer frame dimensions in layout units.
func WithPNGFrame(width, height float64) PNGOption {
	return func(r *pngRenderer) { r.width = width; r.height = height }
}

// WithPNGScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTheme sets the visual theme. Defaults to [DefaultTheme].
func WithPNGTheme(t Theme) PNGOption { return func(r *pngRenderer) { r.theme = t } }

// WithPNGLegends adds precomputed legend entries to the output.
func WithPNGLegends(entries []calendar.LegendEntry) PNGOption {
	return func(r *pngRenderer) { r.legends = append(r.legends, entries...) }
}

// WithPNGFontFace loads a TTF font for legend text. Without it legends are
// drawn with the built-in bitmap face, which ignores the theme font size.
func WithPNGFontFace(path string, points float64) PNGOption {
	return func(r *pngRenderer) { r.fontPath = path; r.fontPoints = points }
}

// RenderPNG rasterizes a computed layout directly, without an SVG
// intermediate or external tools.
func RenderPNG(l calendar.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := r.width, r.height
	if width <= 0 || height <= 0 {
		width = l.OriginX + l.CalendarWidth
		height = l.OriginY + l.CalendarHeight
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render png: empty layout")
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}

	dc := gg.NewContext(int(math.Ceil(width*r.scale)), int(math.Ceil(height*r.scale)))
	if r.fontPath != "" {
		// Load at scaled size so glyphs stay crisp at scale > 1.
		if err := dc.LoadFontFace(r.fontPath, r.fontPoints*r.scale); err != nil {
			return nil, fmt.Errorf("render png: %w", err)
		}
	}

	if r.theme.Background != "" {
		dc.SetHexColor(r.theme.Background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	for _, d := range l.Days {
		r.drawDay(dc, d)
	}
	for _, m := range l.Months {
		if err := r.drawMonth(dc, m); err != nil {
			return nil, err
		}
	}
	dc.SetHexColor(r.theme.TextColor)
	for _, e := range r.legends {
		r.drawLegend(dc, e)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawDay(dc *gg.Context, d calendar.Day) {
	fill := d.Color
	if fill == "" {
		fill = DefaultEmptyColor
	}

	dc.DrawRectangle(d.X, d.Y, d.Size, d.Size)
	if r.theme.DayBorderWidth > 0 {
		dc.SetHexColor(fill)
		dc.FillPreserve()
		dc.SetHexColor(r.theme.DayBorderColor)
		dc.SetLineWidth(r.theme.DayBorderWidth)
		dc.Stroke()
		return
	}
	dc.SetHexColor(fill)
	dc.Fill()
}

func (r *pngRenderer) drawMonth(dc *gg.Context, m calendar.Month) error {
	if r.theme.MonthBorderWidth <= 0 {
		return nil
	}
	verts, err := pathVertices(m.Path)
	if err != nil {
		return fmt.Errorf("render png: month %s: %w", m.Date.Format("2006-01"), err)
	}
	if len(verts) == 0 {
		return nil
	}

	dc.NewSubPath()
	dc.MoveTo(verts[0][0], verts[0][1])
	for _, v := range verts[1:] {
		dc.LineTo(v[0], v[1])
	}
	dc.ClosePath()
	dc.SetHexColor(r.theme.MonthBorderColor)
	dc.SetLineWidth(r.theme.MonthBorderWidth)
	dc.Stroke()
	return nil
}

func (r *pngRenderer) drawLegend(dc *gg.Context, e calendar.LegendEntry) {
	if e.Rotation != 0 {
		dc.Push()
		dc.RotateAbout(gg.Radians(e.Rotation), e.X, e.Y)
		dc.DrawStringAnchored(e.Label, e.X, e.Y, 0.5, 0.5)
		dc.Pop()
		return
	}
	dc.DrawStringAnchored(e.Label, e.X, e.Y, 0.5, 0.5)
}

// pathVertices parses the rectilinear outline grammar the layout emits
// ("M x,y" followed by alternating "H x" / "V y" commands, closed with
// "Z") into an ordered vertex list.
func pathVertices(d string) ([][2]float64, error) {
	var verts [][2]float64
	var cur [2]float64
	i := 0

	readNum := func() (float64, error) {
		start := i
		for i < len(d) {
			c := d[i]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				i++
				continue
			}
			break
		}
		if start == i {
			return 0, fmt.Errorf("expected number at offset %d in %q", start, d)
		}
		return strconv.ParseFloat(d[start:i], 64)
	}

	for i < len(d) {
		switch d[i] {
		case 'M':
			i++
			x, err := readNum()
			if err != nil {
				return nil, err
			}
			if i >= len(d) || d[i] != ',' {
				return nil, fmt.Errorf("expected ',' at offset %d in %q", i, d)
			}
			i++
			y, err := readNum()
			if err != nil {
				return nil, err
			}
			cur = [2]float64{x, y}
			verts = append(verts, cur)
		case 'H':
			i++
			x, err := readNum()
			if err != nil {
				return nil, err
			}
			cur[0] = x
			verts = append(verts, cur)
		case 'V':
			i++
			y, err := readNum()
			if err != nil {
				return nil, err
			}
			cur[1] = y
			verts = append(verts, cur)
		case 'Z':
			i++
		default:
			return nil, fmt.Errorf("unsupported path command %q in %q", d[i], d)
		}
	}
	return verts, nil
}
