// Package render turns simulation frames into output artifacts.
//
// Two sinks are provided: a hand-emitted SVG renderer for the node-link
// diagram (the primary output) and a Graphviz DOT exporter that can also
// rasterize a settled layout to SVG or PNG with positions preserved.
package render
