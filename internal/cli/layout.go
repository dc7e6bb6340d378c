package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/pipeline"
)

// layoutCommand creates the layout command for computing settled layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Run the force simulation until it settles and save the frame",
		Long: `Run the force simulation over the filtered network until it settles.

The layout command takes a GraphML-style file, filters it by the weight and
degree thresholds, and steps the force simulation until the energy drops
below the settle floor. The output is a layout.json frame with final node
positions, ready for 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(opts.WeightThreshold, "weight", *opts.WeightThreshold, "minimum edge weight (inclusive)")
	cmd.Flags().IntVar(&opts.DegreeThreshold, "degree", opts.DegreeThreshold, "minimum node degree (exclusive)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", opts.MaxSteps, "maximum simulation steps")

	return cmd
}

// runLayout runs the parse and layout stages and writes the frame as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	opts.Input = input
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := json.MarshalIndent(result.Layout, "", "  ")
	if err != nil {
		return err
	}
	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout settled after %d steps", result.Stats.Steps)
	printFile(outputPath)
	printNetworkStats(len(result.Layout.Nodes), len(result.Layout.Edges), result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "bionet render "+input)

	return nil
}
