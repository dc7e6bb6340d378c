package bionet

// ComputeDegrees annotates every node with the number of edge endpoints
// referencing it in the full, unfiltered edge set. Each edge contributes one
// increment per endpoint role, so a self-loop adds two to its single node.
// Nodes referenced by no edge get degree zero.
//
// The computation is idempotent: degrees are recomputed from scratch on every
// call, so re-invocation with unchanged inputs is stable. Edge endpoints that
// reference no known node are counted into the map and silently discarded.
func ComputeDegrees(g *Graph) {
	counts := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		counts[e.Source]++
		counts[e.Target]++
	}
	for i := range g.Nodes {
		g.Nodes[i].Degree = counts[g.Nodes[i].ID]
	}
}
