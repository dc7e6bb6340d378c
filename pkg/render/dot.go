package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/lbartels/bionet/pkg/sim"
)

// ToDOT converts a simulation frame to Graphviz DOT with pinned positions,
// so downstream tools lay the graph out exactly as the force simulation
// settled it (neato's -n semantics: pos attributes with the ! suffix).
func ToDOT(f sim.Frame) string {
	var buf bytes.Buffer
	buf.WriteString("graph bionet {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=8];\n")
	buf.WriteString("\n")

	// Graphviz points run bottom-up; flip Y so the diagram matches the canvas.
	for _, n := range f.Nodes {
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.3f, fillcolor=%q, color=%q];\n",
			n.ID, n.X, f.Height-n.Y, n.Radius/36, n.Color, n.Color)
	}

	buf.WriteString("\n")
	// Endpoint IDs come straight from the frame. Edges missing them (frames
	// serialized before the IDs were recorded) are skipped rather than
	// guessed from coordinates.
	for _, e := range f.Edges {
		if e.Source == "" || e.Target == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.2f];\n", e.Source, e.Target, e.StrokeWidth)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG rasterizes a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderDOTPNG rasterizes a DOT graph to PNG using Graphviz.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
