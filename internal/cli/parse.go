package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/bionet"
)

// parseCommand creates the parse command for extracting networks from
// GraphML-style files.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an interaction network from a GraphML-style file",
		Long: `Parse an interaction network from a GraphML-style file.

The parser is tolerant: malformed node and edge declarations are skipped
rather than failing the whole file. Node degrees are computed from the
surviving edges. The output is a graph.json file consumed by 'layout',
'render', 'view', and 'serve'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runParse parses the input file and writes the network as JSON.
func (c *CLI) runParse(input, output string) error {
	g, err := bionet.ParseFile(input)
	if err != nil {
		return err
	}
	bionet.ComputeDegrees(g)

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := bionet.WriteGraph(g, out); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Parsed %s", input)
		printFile(output)
		printNetworkStats(len(g.Nodes), len(g.Edges), false)
		printNewline()
		printNextStep("Layout", "bionet layout "+output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
