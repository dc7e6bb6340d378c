package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/store"
)

// graphsCommand creates the graphs command group for managing named networks
// in the graph store.
func (c *CLI) graphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage named networks in the graph store",
		Long: `Manage named networks in the MongoDB graph store.

Stored networks can be served by name so viewers never need the raw source
file. Configure the connection in the [mongo] section of config.toml.`,
	}

	cmd.AddCommand(c.graphsPushCommand())
	cmd.AddCommand(c.graphsPullCommand())
	cmd.AddCommand(c.graphsListCommand())
	cmd.AddCommand(c.graphsRemoveCommand())

	return cmd
}

// newGraphStore connects to the configured MongoDB instance.
func (c *CLI) newGraphStore(ctx context.Context) (store.GraphStore, error) {
	s, err := store.NewMongoStore(ctx, c.Config.Mongo)
	if err != nil {
		return nil, fmt.Errorf("connect to graph store: %w", err)
	}
	return s, nil
}

func (c *CLI) graphsPushCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Parse a network and store it under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraphsPush(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name to store the network under (defaults to the file name)")

	return cmd
}

func (c *CLI) runGraphsPush(ctx context.Context, input, name string) error {
	g, err := bionet.ParseFile(input)
	if err != nil {
		return err
	}
	bionet.ComputeDegrees(g)

	if name == "" {
		name = graphName(input)
	}

	s, err := c.newGraphStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	spinner := newSpinner(ctx, "Storing network...")
	spinner.Start()
	if err := s.Save(ctx, name, g); err != nil {
		spinner.StopWithError("Store failed")
		return err
	}
	spinner.Stop()

	printSuccess("Stored %s as %q", input, name)
	printNetworkStats(len(g.Nodes), len(g.Edges), false)
	printNewline()
	printNextStep("Serve", fmt.Sprintf("bionet serve --graph %s", name))
	return nil
}

func (c *CLI) graphsPullCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull <name>",
		Short: "Retrieve a stored network as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraphsPull(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runGraphsPull(ctx context.Context, name, output string) error {
	s, err := c.newGraphStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	g, err := s.Load(ctx, name)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := bionet.WriteGraph(g, out); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Retrieved %q", name)
		printFile(output)
		printNetworkStats(len(g.Nodes), len(g.Edges), false)
	}
	return nil
}

func (c *CLI) graphsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraphsList(cmd.Context())
		},
	}
}

func (c *CLI) runGraphsList(ctx context.Context) error {
	s, err := c.newGraphStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	docs, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printInfo("No stored networks")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, doc := range docs {
		rows = append(rows, []string{
			doc.Name,
			fmt.Sprintf("%d", doc.NodeCount),
			fmt.Sprintf("%d", doc.EdgeCount),
			doc.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Nodes", "Edges", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(t.Render())
	return nil
}

func (c *CLI) graphsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraphsRemove(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runGraphsRemove(ctx context.Context, name string) error {
	s, err := c.newGraphStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if err := s.Delete(ctx, name); err != nil {
		return err
	}
	printSuccess("Removed %q", name)
	return nil
}
