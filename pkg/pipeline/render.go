package pipeline

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jfache/nivo/pkg/calendar"
	"github.com/jfache/nivo/pkg/errors"
	"github.com/jfache/nivo/pkg/render"
)

// =============================================================================
// Rendering
// =============================================================================

// Render generates output artifacts in the requested formats.
// Formats render concurrently; the first failure cancels the rest and is
// returned. The layout should already carry bound day cells when the
// options include data (see [Bind]).
func Render(l calendar.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	legends := Legends(l, opts)

	results := make([][]byte, len(opts.Formats))
	var g errgroup.Group
	for i, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(l, legends, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = results[i]
	}
	return artifacts, nil
}

// renderFormat renders a single output format.
func renderFormat(l calendar.Layout, legends []calendar.LegendEntry, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(l, svgOptions(legends, opts)...), nil
	case FormatPDF:
		return render.RenderPDF(l, svgOptions(legends, opts)...)
	case FormatPNG:
		return render.RenderPNG(l, pngOptions(legends, opts)...)
	case FormatJSON:
		return render.RenderJSON(l,
			render.WithJSONFrame(opts.Width, opts.Height),
			render.WithJSONTheme(opts.Theme),
			render.WithJSONPalette(opts.Colors, opts.EmptyColor),
			render.WithJSONLegends(legends),
		)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// svgOptions builds the rendering options shared by the SVG and PDF sinks.
func svgOptions(legends []calendar.LegendEntry, opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{
		render.WithFrame(opts.Width, opts.Height),
		render.WithTheme(render.ThemeByName(opts.Theme)),
	}
	if len(legends) > 0 {
		svgOpts = append(svgOpts, render.WithLegends(legends))
	}
	if opts.Titles {
		svgOpts = append(svgOpts, render.WithTitles())
	}
	if opts.ChartID != "" {
		svgOpts = append(svgOpts, render.WithID(opts.ChartID))
	}
	return svgOpts
}

// pngOptions builds the rendering options for the PNG sink.
func pngOptions(legends []calendar.LegendEntry, opts Options) []render.PNGOption {
	pngOpts := []render.PNGOption{
		render.WithPNGFrame(opts.Width, opts.Height),
		render.WithPNGScale(opts.PNGScale),
		render.WithPNGTheme(render.ThemeByName(opts.Theme)),
	}
	if len(legends) > 0 {
		pngOpts = append(pngOpts, render.WithPNGLegends(legends))
	}
	return pngOpts
}
