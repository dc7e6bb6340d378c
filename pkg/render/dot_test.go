package render

import (
	"strings"
	"testing"

	"github.com/lbartels/bionet/pkg/sim"
)

func TestToDOT(t *testing.T) {
	out := ToDOT(testFrame())

	if !strings.Contains(out, "layout=neato;") {
		t.Error("missing neato layout directive")
	}
	// Positions are pinned and Y-flipped into Graphviz coordinates.
	if !strings.Contains(out, `"EGFR" [pos="100.00,400.00!"`) {
		t.Errorf("EGFR position wrong, got:\n%s", out)
	}
	if !strings.Contains(out, `"TP53" [pos="300.00,200.00!"`) {
		t.Errorf("TP53 position wrong, got:\n%s", out)
	}
	if !strings.Contains(out, `"EGFR" -- "TP53" [penwidth=1.50];`) {
		t.Errorf("edge missing, got:\n%s", out)
	}
}

func TestToDOT_SkipsEdgesWithoutEndpointIDs(t *testing.T) {
	f := testFrame()
	// A frame deserialized from before endpoint IDs were recorded carries
	// empty Source/Target; such edges are dropped rather than guessed.
	f.Edges[0].Source = ""

	out := ToDOT(f)
	if strings.Contains(out, "--") {
		t.Errorf("edge without endpoint IDs emitted, got:\n%s", out)
	}
}

func TestToDOT_CoincidentNodes(t *testing.T) {
	// Two nodes at the same coordinates must still resolve their own edges,
	// since attribution goes by endpoint ID, not by position.
	f := testFrame()
	f.Nodes = append(f.Nodes, sim.NodeFrame{ID: "MYC", X: 100, Y: 200, Radius: 8, Color: "#9467bd"})
	f.Edges = append(f.Edges, sim.EdgeFrame{
		ID: 2, Source: "MYC", Target: "TP53",
		X1: 100, Y1: 200, X2: 300, Y2: 400, StrokeOpacity: 0.7, StrokeWidth: 2,
	})

	out := ToDOT(f)
	if !strings.Contains(out, `"EGFR" -- "TP53" [penwidth=1.50];`) {
		t.Errorf("EGFR edge missing, got:\n%s", out)
	}
	if !strings.Contains(out, `"MYC" -- "TP53" [penwidth=2.00];`) {
		t.Errorf("MYC edge missing, got:\n%s", out)
	}
}

func TestToDOT_NodeStyling(t *testing.T) {
	out := ToDOT(testFrame())
	if !strings.Contains(out, `fillcolor="#1f77b4"`) {
		t.Error("missing node fill color")
	}
	if !strings.Contains(out, "node [shape=circle, style=filled") {
		t.Error("missing default node attributes")
	}
}
