// Package sim implements the force-directed layout engine for biological
// interaction networks.
//
// The simulation evolves 2D positions for the currently visible subgraph
// under four competing forces: link springs (stronger interactions pull
// shorter), many-body charge repulsion (Barnes-Hut approximated), a weak
// centering pull, and a soft collision constraint keyed to node radius.
//
// # Scheduling
//
// The engine never owns a loop or timer. An external scheduler (redraw loop,
// HTTP handler, TUI tick) calls Step once per frame; all reconfiguration and
// drag updates are applied between steps. Step returns false once the
// simulation has settled (alpha below the floor with no resting target) or
// after Stop, which is idempotent and preserves positions.
//
//	eng := sim.NewEngine(g, bionet.Thresholds{Weight: 0.0007}, sim.DefaultConfig())
//	for eng.Step() {
//	    frame := eng.Frame(true)
//	    // hand frame to the rendering layer
//	}
//
// Dragging pins a node: its position is forced to the pin on every step while
// it still exerts forces on its neighbors. Releasing the last active drag
// lets alpha decay back to zero and the layout settle.
package sim
