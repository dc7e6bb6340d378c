package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/bionet"
)

// statsCommand creates the stats command for summarizing a network.
func (c *CLI) statsCommand() *cobra.Command {
	var hubs int

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Print degree and category statistics for a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(args[0], hubs)
		},
	}

	cmd.Flags().IntVar(&hubs, "hubs", 10, "number of highest-degree nodes to list")

	return cmd
}

// runStats parses the network and prints category counts and hub nodes.
func (c *CLI) runStats(input string, hubs int) error {
	g, err := bionet.ParseFile(input)
	if err != nil {
		return err
	}
	bionet.ComputeDegrees(g)

	counts := make(map[bionet.Category]int)
	for _, n := range g.Nodes {
		counts[bionet.Classify(n.ID)]++
	}

	fmt.Println(StyleTitle.Render(input))
	printNetworkStats(len(g.Nodes), len(g.Edges), false)
	printNewline()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, cat := range bionet.Categories() {
		if counts[cat] == 0 {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(bionet.ColorOf(cat))).Render("●")
		rows = append(rows, []string{swatch, cat.String(), fmt.Sprintf("%d", counts[cat])})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", "Nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(t.Render())

	if hubs > 0 && len(g.Nodes) > 0 {
		printNewline()
		fmt.Println(StyleDim.Render("Highest-degree nodes:"))
		sorted := make([]bionet.Node, len(g.Nodes))
		copy(sorted, g.Nodes)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Degree > sorted[j].Degree })
		if hubs > len(sorted) {
			hubs = len(sorted)
		}
		for _, n := range sorted[:hubs] {
			cat := bionet.Classify(n.ID)
			printDetail("%-14s degree %-4d %s", n.DisplayLabel(), n.Degree, cat.String())
		}
	}

	return nil
}
