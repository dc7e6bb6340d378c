package bionet

import "math"

// =============================================================================
// Filter Engine - Threshold-Derived Visible Subgraph
// =============================================================================

// ClampThresholds forces thresholds into their valid domains: weight and
// degree are non-negative, and a NaN weight collapses to zero. Out-of-domain
// inputs are recovered, never fatal.
func ClampThresholds(t Thresholds) Thresholds {
	if math.IsNaN(t.Weight) || t.Weight < 0 {
		t.Weight = 0
	}
	if t.Degree < 0 {
		t.Degree = 0
	}
	return t
}

// Filter derives the visible subgraph for the given thresholds.
//
// A node is visible when its degree is strictly greater than the degree
// threshold. An edge is visible when its weight is at least the weight
// threshold and both endpoints are visible; an edge referencing an ID absent
// from the node set therefore never appears, which is the graceful handling
// of a dangling reference.
//
// The computation is a full recomputation on every call and is stable: the
// returned slices preserve the relative order of the source arrays, and the
// Graph itself is never mutated.
func Filter(g *Graph, t Thresholds) (visibleNodes []Node, visibleEdges []Edge) {
	t = ClampThresholds(t)

	visibleIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Degree > t.Degree {
			visibleNodes = append(visibleNodes, n)
			visibleIDs[n.ID] = true
		}
	}

	for _, e := range g.Edges {
		if e.Weight >= t.Weight && visibleIDs[e.Source] && visibleIDs[e.Target] {
			visibleEdges = append(visibleEdges, e)
		}
	}
	return visibleNodes, visibleEdges
}
