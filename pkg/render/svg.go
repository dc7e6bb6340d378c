package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lbartels/bionet/pkg/sim"
)

const nodeInteractionCSS = `
    .node { transition: stroke-width 0.15s ease; stroke: #fff; stroke-width: 1.5; }
    .node.highlight { stroke: #333; stroke-width: 3; }
    .node-label { font-family: sans-serif; font-size: 10px; text-anchor: middle; fill: #333; pointer-events: none; }
    circle { cursor: pointer; }`

const nodeInteractionJS = `
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	interactive bool
}

// WithBackground sets a background fill (default: none).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithInteraction embeds hover-highlight CSS and JS in the SVG.
func WithInteraction() SVGOption {
	return func(r *svgRenderer) { r.interactive = true }
}

// RenderSVG draws a simulation frame as an SVG document. Edges are drawn
// under nodes, nodes under labels, matching the layer order of the live
// viewer. Stroke opacity and width come precomputed on the frame.
func RenderSVG(f sim.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	if r.interactive {
		fmt.Fprintf(&buf, "<style>%s</style>\n", nodeInteractionCSS)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	buf.WriteString(`<g class="edges">` + "\n")
	for _, e := range f.Edges {
		fmt.Fprintf(&buf,
			`  <line id="edge-%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
			e.ID, e.X1, e.Y1, e.X2, e.Y2, e.StrokeOpacity, e.StrokeWidth)
	}
	buf.WriteString("</g>\n")

	buf.WriteString(`<g class="nodes">` + "\n")
	for _, n := range f.Nodes {
		fmt.Fprintf(&buf,
			`  <circle id="node-%s" class="node" cx="%.2f" cy="%.2f" r="%.2f" fill=%q/>`+"\n",
			html.EscapeString(n.ID), n.X, n.Y, n.Radius, n.Color)
	}
	buf.WriteString("</g>\n")

	if len(f.Labels) > 0 {
		buf.WriteString(`<g class="labels">` + "\n")
		for _, l := range f.Labels {
			fmt.Fprintf(&buf,
				`  <text class="node-label" x="%.2f" y="%.2f">%s</text>`+"\n",
				l.X, l.Y, html.EscapeString(l.Text))
		}
		buf.WriteString("</g>\n")
	}

	if r.interactive {
		fmt.Fprintf(&buf, "<script>//<![CDATA[%s//]]></script>\n", nodeInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
