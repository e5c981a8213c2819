package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfache/nivo/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path (multiple)
	formats  string  // comma-separated output formats
	dataFile string  // extra data records appended to the document's own
	noCache  bool    // disable the local render cache
	titles   bool    // embed <title> tooltips in SVG output
	pngScale float64 // supersampling factor for PNG output
}

// renderCommand creates the render command: the full layout → bind →
// render pipeline from a chart document to output files.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		pngScale: pipeline.DefaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render [chart file]",
		Short: "Render a chart document to SVG, PNG, PDF or JSON",
		Long: `Render a chart document to SVG, PNG, PDF or JSON.

The render command reads a chart document (.toml or .json), computes the
calendar layout, binds the document's data records onto the day cells and
writes one output file per requested format. Output paths default to the
document path with the format extension (chart.toml renders to chart.svg).

Data can live inline in the document, in a data_file it references, or in
an extra file passed with --data (JSON array or day,value CSV).

Layouts and rendered artifacts are cached locally for faster re-renders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.dataFile, "data", "", "extra data records (.json or .csv)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.titles, "titles", false, "embed day tooltips in SVG output")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "supersampling factor for PNG output")

	return cmd
}

// runRender loads the document, runs the pipeline and writes every
// requested format to its own file.
func (c *CLI) runRender(ctx context.Context, input string, ro *renderOpts) error {
	spec, err := loadSpec(input, ro.dataFile)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := spec.Pipeline()
	opts.Formats = parseFormats(ro.formats)
	opts.Titles = opts.Titles || ro.titles
	opts.PNGScale = ro.pngScale
	opts.Logger = c.Logger

	p := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering calendar...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	paths, err := writeArtifacts(input, ro.output, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.Days, result.Stats.Years,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	return nil
}

// writeArtifacts writes one file per format and returns the written paths
// in format order. A single format with an explicit --output goes exactly
// there; otherwise paths derive from the base path plus the format
// extension.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := writeFile(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeFile(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., chart.svg, chart.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
