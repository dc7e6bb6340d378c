// Package bionet defines the core data model for biological interaction
// networks: nodes, weighted interaction edges, degree annotation, category
// classification, and threshold-based filtering.
//
// The package is intentionally free of rendering and simulation concerns.
// It produces the visible subgraph that the simulation engine (pkg/sim)
// lays out and the render sinks (pkg/render) draw.
//
// # Data Flow
//
// Raw GraphML-style text is parsed into a Graph, degrees are annotated,
// and a filtered view is derived from live thresholds:
//
//	g, err := bionet.ParseFile("network.xml")
//	if err != nil {
//	    return err
//	}
//	bionet.ComputeDegrees(g)
//	nodes, edges := bionet.Filter(g, bionet.Thresholds{Weight: 0.0007, Degree: 0})
//
// Filtering is a view, not a mutation: the Graph itself is never modified
// by threshold changes.
package bionet
