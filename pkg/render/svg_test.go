package render

import (
	"strings"
	"testing"

	"github.com/lbartels/bionet/pkg/sim"
)

func testFrame() sim.Frame {
	return sim.Frame{
		Alpha:  0.5,
		Width:  800,
		Height: 600,
		Nodes: []sim.NodeFrame{
			{ID: "EGFR", X: 100, Y: 200, Radius: 8, Color: "#1f77b4"},
			{ID: "TP53", X: 300, Y: 400, Radius: 11, Color: "#d62728"},
		},
		Edges: []sim.EdgeFrame{
			{ID: 1, Source: "EGFR", Target: "TP53", X1: 100, Y1: 200, X2: 300, Y2: 400, StrokeOpacity: 0.7, StrokeWidth: 1.5},
		},
		Labels: []sim.LabelFrame{
			{ID: "TP53", Text: "TP53-Protein", X: 300, Y: 415},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testFrame()))

	if !strings.Contains(out, `viewBox="0 0 800.0 600.0"`) {
		t.Errorf("missing viewBox, got:\n%s", out)
	}
	for _, want := range []string{
		`id="node-EGFR"`,
		`id="node-TP53"`,
		`id="edge-1"`,
		`stroke-opacity="0.700"`,
		`stroke-width="1.50"`,
		`fill="#1f77b4"`,
		`>TP53-Protein</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVG_LayerOrder(t *testing.T) {
	out := string(RenderSVG(testFrame()))

	edges := strings.Index(out, `<g class="edges">`)
	nodes := strings.Index(out, `<g class="nodes">`)
	labels := strings.Index(out, `<g class="labels">`)
	if edges < 0 || nodes < 0 || labels < 0 {
		t.Fatalf("missing layer group, got:\n%s", out)
	}
	if !(edges < nodes && nodes < labels) {
		t.Errorf("layers out of order: edges=%d nodes=%d labels=%d", edges, nodes, labels)
	}
}

func TestRenderSVG_NoLabelGroupWhenEmpty(t *testing.T) {
	f := testFrame()
	f.Labels = nil
	out := string(RenderSVG(f))
	if strings.Contains(out, `<g class="labels">`) {
		t.Error("label group emitted for frame without labels")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	f := testFrame()

	plain := string(RenderSVG(f))
	if strings.Contains(plain, "<style>") || strings.Contains(plain, "<script>") {
		t.Error("plain render should not embed interaction assets")
	}
	if strings.Contains(plain, "<rect") {
		t.Error("plain render should not draw a background")
	}

	fancy := string(RenderSVG(f, WithInteraction(), WithBackground("#ffffff")))
	if !strings.Contains(fancy, "<style>") || !strings.Contains(fancy, "<script>") {
		t.Error("interactive render missing style or script block")
	}
	if !strings.Contains(fancy, `fill="#ffffff"`) {
		t.Error("background rect missing")
	}
}

func TestRenderSVG_EscapesText(t *testing.T) {
	f := sim.Frame{
		Width: 100, Height: 100,
		Nodes:  []sim.NodeFrame{{ID: "A<B", X: 10, Y: 10, Radius: 5, Color: "#000"}},
		Labels: []sim.LabelFrame{{ID: "A<B", Text: "A<B & C", X: 10, Y: 25}},
	}
	out := string(RenderSVG(f))
	if strings.Contains(out, "<B & C") {
		t.Error("label text not escaped")
	}
	if !strings.Contains(out, "A&lt;B &amp; C") {
		t.Errorf("expected escaped label text, got:\n%s", out)
	}
}
