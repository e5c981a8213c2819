// Package pkg provides the core libraries for nivo calendar heatmaps.
//
// # Overview
//
// Nivo computes the geometry of calendar-style heatmaps: one colored
// cell per day, grouped into month outlines and year bands, and renders
// it to SVG, PNG, PDF or JSON. The pkg directory is organized around a
// pure layout core with rendering, orchestration and infrastructure
// layered on top:
//
//   - [calendar]: the layout core. Weekday and week-offset arithmetic,
//     month outline paths, year boxes, data binding and legend anchors.
//     Pure and I/O-free; everything else consumes its Layout value.
//   - [align]: nine-anchor box alignment used to place the computed grid
//     inside the chart frame.
//   - [scales]: quantized value-to-color scales and domain derivation.
//   - [render]: output sinks (SVG, PNG via gg, PDF via rsvg-convert,
//     JSON) and the visual themes.
//   - [chart]: declarative chart documents (TOML/JSON) with inline or
//     external data, validated and mapped into pipeline options.
//   - [pipeline]: the layout → bind → render pipeline with caching,
//     shared by the CLI and the HTTP API.
//   - [cache]: cache interfaces with memory-LRU, file, Redis and null
//     backends, plus content-hashed key construction.
//   - [store]: chart persistence for the API, with memory and MongoDB
//     backends.
//   - [observability]: pipeline, cache and HTTP hook interfaces with
//     no-op defaults.
//   - [errors]: the coded error type shared by user-facing boundaries.
//   - [buildinfo]: version metadata injected at build time.
//
// # Data Flow
//
// The typical flow through nivo:
//
//	chart.Load  →  pipeline.Options  →  Runner.Execute
//	                                      │
//	                 calendar.ComputeLayout (cached)
//	                 pipeline.Bind  (scales color the day cells)
//	                 pipeline.Render (cached; svg/png/pdf/json)
//
// # Example
//
// Render a chart document to SVG:
//
//	spec, err := chart.Load("commits.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, spec.Pipeline())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("commits.svg", result.Artifacts["svg"], 0o644)
//
// [calendar]: https://pkg.go.dev/github.com/jfache/nivo/pkg/calendar
// [align]: https://pkg.go.dev/github.com/jfache/nivo/pkg/align
// [scales]: https://pkg.go.dev/github.com/jfache/nivo/pkg/scales
// [render]: https://pkg.go.dev/github.com/jfache/nivo/pkg/render
// [chart]: https://pkg.go.dev/github.com/jfache/nivo/pkg/chart
// [pipeline]: https://pkg.go.dev/github.com/jfache/nivo/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/jfache/nivo/pkg/cache
// [store]: https://pkg.go.dev/github.com/jfache/nivo/pkg/store
// [observability]: https://pkg.go.dev/github.com/jfache/nivo/pkg/observability
// [errors]: https://pkg.go.dev/github.com/jfache/nivo/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/jfache/nivo/pkg/buildinfo
package pkg
