// Package render turns computed calendar layouts into output artifacts.
//
// # Overview
//
// This package contains the sinks that transform a [calendar.Layout] into
// final output formats. It provides:
//
//   - SVG: standalone vector document (day cells, month outlines, legends)
//   - PNG: native raster output via fogleman/gg, no external tools
//   - PDF: print-ready output converted from SVG (requires rsvg-convert)
//   - JSON: layout and render options export for external tools
//
// # SVG Output
//
// [RenderSVG] produces a self-contained SVG document:
//
//	legends := calendar.YearLegends(layout.Years, calendar.Horizontal, calendar.Before, 10)
//	svg := render.RenderSVG(layout,
//	    render.WithFrame(800, 200),
//	    render.WithTheme(render.DarkTheme()),
//	    render.WithLegends(legends),
//	)
//
// Day cells are drawn first, then month outlines, then legend text, so
// outlines and labels stay visible on top of the cells.
//
// # PNG Output
//
// [RenderPNG] rasterizes the layout directly with fogleman/gg. Month
// outlines are reconstructed from their path strings, so the raster output
// traces the same rectilinear polygons as the SVG. Legend text uses the
// built-in bitmap face unless a TTF is supplied with [WithPNGFontFace].
//
// # PDF Output
//
// [ToPDF] converts SVG bytes using the external rsvg-convert tool
// (from librsvg):
//
//	svg := render.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(svg)
//
// # Themes
//
// A [Theme] covers the non-data visuals: background, borders, text. Data
// colors come from the color scale applied during binding, not from the
// theme. [DefaultTheme] and [DarkTheme] are built in; [ThemeByName]
// resolves a configured name.
//
// [calendar.Layout]: github.com/jfache/nivo/pkg/calendar.Layout
package render
