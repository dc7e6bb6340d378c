package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/pipeline"
)

// renderCommand creates the render command for generating output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an interaction network to SVG, DOT, PNG, or JSON",
		Long: `Render an interaction network through the full pipeline.

The render command parses the input, settles the force layout, and writes
the requested output formats. SVG output embeds hover and click interaction;
DOT and PNG go through Graphviz with the settled positions pinned.

Examples:
  bionet render network.xml
  bionet render network.xml -f svg,png
  bionet render network.xml --highlight cancer --labels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache for this run")
	cmd.Flags().Float64Var(opts.WeightThreshold, "weight", *opts.WeightThreshold, "minimum edge weight (inclusive)")
	cmd.Flags().IntVar(&opts.DegreeThreshold, "degree", opts.DegreeThreshold, "minimum node degree (exclusive)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Highlight, "highlight", opts.Highlight, "category to highlight (all, signaling, receptors, cancer, ...)")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", false, "label hub nodes")

	return cmd
}

// runRender runs the full pipeline and writes each requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	opts.Input = input

	spinner := newSpinner(ctx, "Rendering network...")
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

	base := renderBasePath(output, input)
	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		out.Close()
		printFile(path)
	}
	printNetworkStats(len(result.Layout.Nodes), len(result.Layout.Edges), result.CacheInfo.LayoutHit)

	return nil
}

// renderBasePath derives the base output path from the output and input
// file paths, stripping any known format extension.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
