package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/sim"
)

// viewCommand creates the view command for interactive terminal exploration.
func (c *CLI) viewCommand() *cobra.Command {
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Explore an interaction network interactively in the terminal",
		Long: `Explore an interaction network interactively in the terminal.

The simulation runs live: nodes drift into place as the layout settles.
Thresholds, category highlighting, and node selection are adjusted with
single keys, and every change reheats or refilters the layout in place.

Keys:
  w/W   raise/lower the weight threshold
  d/D   raise/lower the degree threshold
  h     cycle the highlighted category
  tab   select the next visible node
  esc   clear the selection
  space reheat the simulation
  q     quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := bionet.ParseFile(args[0])
			if err != nil {
				return err
			}

			cfg := c.Config.SimConfig()
			engine := sim.NewEngine(g, bionet.Thresholds{
				Weight: *opts.WeightThreshold,
				Degree: opts.DegreeThreshold,
			}, cfg)

			m := newViewModel(args[0], engine)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(opts.WeightThreshold, "weight", *opts.WeightThreshold, "minimum edge weight (inclusive)")
	cmd.Flags().IntVar(&opts.DegreeThreshold, "degree", opts.DegreeThreshold, "minimum node degree (exclusive)")

	return cmd
}

// =============================================================================
// viewModel - Live Simulation Viewer
// =============================================================================

// weightStep is the threshold increment for w/W keys.
const weightStep = 0.0001

// tickInterval paces the simulation at roughly 30 frames per second.
const tickInterval = 33 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// viewModel is the bubbletea model for the live viewer.
type viewModel struct {
	source string
	engine *sim.Engine

	width  int // terminal columns
	height int // terminal rows

	highlightIdx int // -1 means all categories
	selectedIdx  int // index into the current frame's nodes, -1 for none
}

func newViewModel(source string, engine *sim.Engine) viewModel {
	return viewModel{
		source:       source,
		engine:       engine,
		width:        80,
		height:       24,
		highlightIdx: -1,
		selectedIdx:  -1,
	}
}

func (m viewModel) Init() tea.Cmd {
	return tick()
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.engine.Step()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.engine.Thresholds()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "w":
		t.Weight += weightStep
		m.engine.Reconfigure(t)
	case "W":
		t.Weight -= weightStep
		m.engine.Reconfigure(t)
	case "d":
		t.Degree++
		m.engine.Reconfigure(t)
	case "D":
		t.Degree--
		m.engine.Reconfigure(t)

	case "h":
		cats := bionet.Categories()
		m.highlightIdx++
		if m.highlightIdx >= len(cats) {
			m.highlightIdx = -1
			m.engine.SetHighlight(bionet.HighlightAll)
		} else {
			m.engine.SetHighlight(cats[m.highlightIdx])
		}

	case "tab":
		f := m.engine.Frame(false)
		if len(f.Nodes) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(f.Nodes)
			m.engine.ClickNode(f.Nodes[m.selectedIdx].ID)
		}
	case "esc":
		m.selectedIdx = -1
		m.engine.ClickCanvas()

	case " ":
		m.engine.Reconfigure(t)
	}
	return m, nil
}

func (m viewModel) View() string {
	f := m.engine.Frame(false)

	plotH := m.height - 4
	if plotH < 5 {
		plotH = 5
	}
	plotW := m.width
	if plotW < 20 {
		plotW = 20
	}

	grid := make([][]string, plotH)
	for i := range grid {
		grid[i] = make([]string, plotW)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	selected := m.engine.Selected()
	for _, n := range f.Nodes {
		col := int(n.X / f.Width * float64(plotW-1))
		row := int(n.Y / f.Height * float64(plotH-1))
		if col < 0 || col >= plotW || row < 0 || row >= plotH {
			continue
		}
		glyph := "·"
		if n.Radius > 8 {
			glyph = "●"
		}
		if n.ID == selected {
			glyph = "◉"
		}
		grid[row][col] = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render(glyph)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(f, selected))
	return b.String()
}

// statusLine renders thresholds, highlight, energy, and the selection detail.
func (m viewModel) statusLine(f sim.Frame, selected string) string {
	t := m.engine.Thresholds()

	highlight := "all"
	if m.highlightIdx >= 0 {
		highlight = m.engine.Highlight().String()
	}

	status := fmt.Sprintf(" %s  weight≥%.4f  degree>%d  highlight:%s  alpha:%.3f  %d/%d nodes",
		m.source, t.Weight, t.Degree, highlight, f.Alpha, len(f.Nodes), len(m.engine.Graph().Nodes))

	detail := ""
	if selected != "" {
		if n := m.engine.Graph().NodeByID(selected); n != nil {
			cat := bionet.Classify(n.ID)
			detail = fmt.Sprintf("\n %s  degree %d  %s",
				StyleTitle.Render(n.DisplayLabel()), n.Degree, cat.String())
		}
	}

	help := StyleDim.Render(" w/W d/D thresholds · h highlight · tab select · esc clear · q quit")
	return StyleDim.Render(status) + detail + "\n" + help
}
