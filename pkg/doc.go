// Package pkg provides the core libraries for bionet interaction network
// visualization.
//
// # Overview
//
// Bionet turns GraphML-style descriptions of biological interaction networks
// (protein-protein, gene regulatory) into live force-directed visualizations.
// The pkg directory is organized into five main areas:
//
//  1. [bionet] - Domain logic (parsing, degrees, categories, filtering)
//  2. [sim] - Force simulation (physics, interaction, frame output)
//  3. [render] - Output formats (SVG, DOT, PNG via Graphviz)
//  4. [pipeline] - Orchestration (parse → layout → render)
//  5. [cache], [session], [store] - Infrastructure
//
// # Architecture
//
// The typical data flow through bionet:
//
//	GraphML-style source
//	         ↓
//	    [bionet] package (parse, compute degrees, classify, filter)
//	         ↓
//	    [sim] package (force simulation + interaction state)
//	         ↓
//	    [render] package (SVG/DOT/PNG/JSON output)
//
// # Quick Start
//
// Parse a network and render a settled layout:
//
//	import (
//	    "github.com/lbartels/bionet/pkg/bionet"
//	    "github.com/lbartels/bionet/pkg/render"
//	    "github.com/lbartels/bionet/pkg/sim"
//	)
//
//	// 1. Parse the network
//	g, _ := bionet.ParseFile("network.xml")
//	bionet.ComputeDegrees(g)
//
//	// 2. Run the simulation until it settles
//	engine := sim.NewEngine(g, bionet.Thresholds{Weight: 0.0007}, sim.DefaultConfig())
//	for engine.Step() {
//	}
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(engine.Frame(true))
//
// # Main Packages
//
// ## Domain Logic
//
// [bionet] - The interaction network model: a tolerant GraphML-style parser,
// degree computation, ordered-rule category classification with fixed display
// colors, and threshold-based subgraph filtering.
//
// [sim] - A d3-style force simulation with alpha cooling, Barnes-Hut charge
// approximation, link springs, collision, and canvas clamping. The Engine
// layers interaction state on top: thresholds, category highlighting, node
// selection, and multi-pointer dragging.
//
// [render] - Frame output as interactive SVG, Graphviz DOT with pinned
// positions, and rasterized PNG.
//
// ## Orchestration
//
// [pipeline] - Complete visualization pipeline (parse → layout → render) used
// by the CLI, the TUI, and the HTTP server. Ensures consistent behavior across
// all entry points and gives each stage content-addressed caching.
//
// ## Infrastructure
//
// [cache] - Stage caching keyed on content hashes. FileCache for the CLI,
// MemoryCache (LRU with TTL) for the server, NullCache for tests.
//
// [session] - Viewer session state (thresholds, highlight, selection) with
// memory, file, and Redis backends.
//
// [store] - Named-graph persistence in MongoDB so the server can load
// networks without the raw source file.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Pluggable lifecycle hooks for the pipeline and caches.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/sim/...      # Specific package
//
// [bionet]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/bionet
// [sim]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/sim
// [render]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/cache
// [session]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/session
// [store]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/store
// [errors]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/lbartels/bionet/pkg/observability
package pkg
