package sim

import (
	"sync"

	"github.com/lbartels/bionet/pkg/bionet"
)

// =============================================================================
// Engine - Graph + Filter + Simulation + Interaction
// =============================================================================

// Engine binds a parsed network to a live simulation: it owns the current
// thresholds, derives the visible subgraph on every reconfiguration, and
// layers the interaction controller on top. All mutable UI state (thresholds,
// highlight, drag, selection) flows through explicit Engine operations; the
// Engine holds no ambient globals.
//
// A mutex serializes every operation so callers with concurrent schedulers
// (the HTTP server) get the single-threaded semantics the simulation
// requires: reconfiguration and drag updates land between steps, never
// mid-step.
type Engine struct {
	mu sync.Mutex

	graph      *bionet.Graph
	thresholds bionet.Thresholds
	cfg        Config

	sim  *Simulation
	ctrl *Controller
}

// NewEngine builds an engine over a parsed graph. Degrees are annotated,
// the initial visible set is derived from the given thresholds (clamped),
// and the simulation is seeded ready for stepping.
func NewEngine(g *bionet.Graph, thresholds bionet.Thresholds, cfg Config) *Engine {
	bionet.ComputeDegrees(g)

	s := NewSimulation(cfg)
	e := &Engine{
		graph:      g,
		thresholds: bionet.ClampThresholds(thresholds),
		cfg:        cfg,
		sim:        s,
		ctrl:       NewController(s, cfg),
	}
	nodes, edges := bionet.Filter(g, e.thresholds)
	s.Reconfigure(nodes, edges)
	return e
}

// Graph returns the full, unfiltered network.
func (e *Engine) Graph() *bionet.Graph { return e.graph }

// Thresholds returns the active (clamped) filter thresholds.
func (e *Engine) Thresholds() bionet.Thresholds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.thresholds
}

// Reconfigure applies new thresholds: the visible subgraph is fully
// recomputed and replaces the simulation's active set before the next step.
// Out-of-domain thresholds are clamped, never rejected.
func (e *Engine) Reconfigure(t bionet.Thresholds) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.thresholds = bionet.ClampThresholds(t)
	nodes, edges := bionet.Filter(e.graph, e.thresholds)
	e.sim.Reconfigure(nodes, edges)
}

// Step advances the simulation one tick. It reports whether the simulation
// advanced; false means settled or stopped.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Step()
}

// Stop halts stepping idempotently, preserving positions.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim.Stop()
}

// Alpha returns the current simulation energy.
func (e *Engine) Alpha() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Alpha()
}

// Settled reports whether the layout has converged.
func (e *Engine) Settled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Settled()
}

// DragStart begins dragging a visible node.
func (e *Engine) DragStart(nodeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.DragStart(nodeID)
}

// DragMove updates an active drag to the pointer position.
func (e *Engine) DragMove(nodeID string, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.DragMove(nodeID, x, y)
}

// DragEnd releases an active drag.
func (e *Engine) DragEnd(nodeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.DragEnd(nodeID)
}

// ClickNode selects a node for detail display.
func (e *Engine) ClickNode(nodeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.ClickNode(nodeID)
}

// ClickCanvas clears the selection.
func (e *Engine) ClickCanvas() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.ClickCanvas()
}

// Selected returns the selected node ID, or empty.
func (e *Engine) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Selected()
}

// ToggleHighlight toggles the category legend highlight.
func (e *Engine) ToggleHighlight(cat bionet.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.ToggleHighlight(cat)
}

// SetHighlight sets the category highlight directly.
func (e *Engine) SetHighlight(cat bionet.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.SetHighlight(cat)
}

// Highlight returns the active category highlight.
func (e *Engine) Highlight() bionet.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Highlight()
}

// Frame snapshots the current simulation step as ordered render output.
// Node colors reflect classification under the active highlight; labels are
// produced for hub nodes (degree > LabelDegreeMin) and the selected node
// when showLabels is set.
func (e *Engine) Frame(showLabels bool) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	highlight := e.ctrl.Highlight()
	selected := e.ctrl.Selected()

	f := Frame{
		Alpha:    e.sim.Alpha(),
		Width:    e.cfg.Width,
		Height:   e.cfg.Height,
		Selected: selected,
		Nodes:    make([]NodeFrame, 0, len(e.sim.Bodies())),
		Edges:    make([]EdgeFrame, 0, len(e.sim.Links())),
	}

	for _, b := range e.sim.Bodies() {
		f.Nodes = append(f.Nodes, NodeFrame{
			ID:     b.ID,
			X:      b.X,
			Y:      b.Y,
			Radius: b.Radius,
			Color:  bionet.DisplayColor(b.Category, highlight),
		})
		if showLabels && (b.Degree > LabelDegreeMin || b.ID == selected) {
			label := b.ID
			if n := e.graph.NodeByID(b.ID); n != nil {
				label = n.DisplayLabel()
			}
			f.Labels = append(f.Labels, LabelFrame{ID: b.ID, Text: label, X: b.X, Y: b.Y - b.Radius - 2})
		}
	}

	for _, l := range e.sim.Links() {
		f.Edges = append(f.Edges, EdgeFrame{
			ID:            l.ID,
			Source:        l.Source.ID,
			Target:        l.Target.ID,
			X1:            l.Source.X,
			Y1:            l.Source.Y,
			X2:            l.Target.X,
			Y2:            l.Target.Y,
			StrokeOpacity: edgeStrokeOpacity(l.Weight),
			StrokeWidth:   edgeStrokeWidth(l.Weight),
		})
	}
	return f
}
