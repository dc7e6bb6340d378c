package sim

import (
	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/errors"
)

// =============================================================================
// Interaction Controller
// =============================================================================

// Controller owns interaction state layered over a Simulation: the per-node
// drag state machine (Free -> Dragging -> Free), the selected node, and the
// category highlight. Selection and highlight are presentation state only
// and never pin positions.
//
// An explicit active-drag count (rather than closure capture around pointer
// handlers) decides when the resting alpha target is raised and lowered, so
// overlapping multi-touch drags behave predictably.
type Controller struct {
	sim       *Simulation
	cfg       Config
	dragging  map[string]bool
	selected  string
	highlight bionet.Category
}

// NewController creates a controller over the given simulation.
func NewController(s *Simulation, cfg Config) *Controller {
	return &Controller{
		sim:       s,
		cfg:       cfg,
		dragging:  make(map[string]bool),
		highlight: bionet.HighlightAll,
	}
}

// DragStart begins dragging a node, pinning it at its current position.
// The first active drag raises the resting alpha target and resumes
// stepping so the rest of the layout keeps redistributing underneath.
func (c *Controller) DragStart(nodeID string) error {
	b := c.sim.Body(nodeID)
	if b == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q is not in the visible set", nodeID)
	}
	if c.dragging[nodeID] {
		return nil
	}
	if len(c.dragging) == 0 {
		c.sim.SetAlphaTarget(c.cfg.DragAlphaTarget)
		c.sim.Restart()
	}
	c.dragging[nodeID] = true
	c.sim.Pin(nodeID, b.X, b.Y)
	return nil
}

// DragMove updates the pin of an actively dragged node to the pointer
// position. Moves for nodes not in the Dragging state are ignored.
func (c *Controller) DragMove(nodeID string, x, y float64) {
	if !c.dragging[nodeID] {
		return
	}
	c.sim.Pin(nodeID, x, y)
}

// DragEnd releases a drag, unpinning the node back into free simulation.
// When no other drag remains active the resting alpha target drops to zero
// and the layout settles.
func (c *Controller) DragEnd(nodeID string) {
	if !c.dragging[nodeID] {
		return
	}
	delete(c.dragging, nodeID)
	if len(c.dragging) == 0 {
		c.sim.SetAlphaTarget(0)
	}
	c.sim.Unpin(nodeID)
}

// Dragging reports whether a node is currently in the Dragging state.
func (c *Controller) Dragging(nodeID string) bool { return c.dragging[nodeID] }

// ActiveDrags returns the number of nodes currently being dragged.
func (c *Controller) ActiveDrags() int { return len(c.dragging) }

// ClickNode selects a node for detail display. Selection is orthogonal to
// dragging and never affects simulation state.
func (c *Controller) ClickNode(nodeID string) { c.selected = nodeID }

// ClickCanvas clears the selection.
func (c *Controller) ClickCanvas() { c.selected = "" }

// Selected returns the selected node ID, or empty.
func (c *Controller) Selected() string { return c.selected }

// ToggleHighlight toggles the category legend highlight: clicking the
// already highlighted category returns to HighlightAll.
func (c *Controller) ToggleHighlight(cat bionet.Category) {
	if c.highlight == cat {
		c.highlight = bionet.HighlightAll
		return
	}
	c.highlight = cat
}

// Highlight returns the current category highlight (HighlightAll when none).
func (c *Controller) Highlight() bionet.Category { return c.highlight }

// SetHighlight sets the highlight directly, bypassing toggle semantics.
func (c *Controller) SetHighlight(cat bionet.Category) { c.highlight = cat }
