package bionet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph() *Graph {
	// A - B at 0.001, B - C at 0.0005
	g := &Graph{
		Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []Edge{
			{ID: 1, Source: "A", Target: "B", Weight: 0.001},
			{ID: 2, Source: "B", Target: "C", Weight: 0.0005},
		},
	}
	ComputeDegrees(g)
	return g
}

func TestClampThresholds(t *testing.T) {
	tests := []struct {
		name string
		in   Thresholds
		want Thresholds
	}{
		{"valid passes through", Thresholds{Weight: 0.0007, Degree: 3}, Thresholds{Weight: 0.0007, Degree: 3}},
		{"negative weight clamps", Thresholds{Weight: -1, Degree: 0}, Thresholds{Weight: 0, Degree: 0}},
		{"negative degree clamps", Thresholds{Weight: 0.001, Degree: -5}, Thresholds{Weight: 0.001, Degree: 0}},
		{"nan weight clamps", Thresholds{Weight: math.NaN(), Degree: 1}, Thresholds{Weight: 0, Degree: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampThresholds(tt.in))
		})
	}
}

func TestFilter_WeightAboveMiddleEdge(t *testing.T) {
	g := chainGraph()

	// All degrees are above zero, so every node stays visible. Only the
	// A-B edge survives the 0.0007 weight floor.
	nodes, edges := Filter(g, Thresholds{Weight: 0.0007, Degree: 0})

	require.Len(t, nodes, 3)
	require.Len(t, edges, 1)
	assert.Equal(t, "A", edges[0].Source)
	assert.Equal(t, "B", edges[0].Target)
}

func TestFilter_WeightThresholdInclusive(t *testing.T) {
	g := chainGraph()

	// An edge exactly at the threshold stays visible.
	_, edges := Filter(g, Thresholds{Weight: 0.0005, Degree: 0})
	assert.Len(t, edges, 2)
}

func TestFilter_DegreeThresholdExclusive(t *testing.T) {
	g := chainGraph()

	// A and C have degree 1, B has degree 2. Degree threshold 1 hides the
	// degree-1 endpoints, which drags every edge down with them.
	nodes, edges := Filter(g, Thresholds{Weight: 0, Degree: 1})

	require.Len(t, nodes, 1)
	assert.Equal(t, "B", nodes[0].ID)
	assert.Empty(t, edges)
}

func TestFilter_DanglingEdgeReference(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "A", Degree: 1}},
		Edges: []Edge{{ID: 1, Source: "A", Target: "GHOST", Weight: 0.001}},
	}

	nodes, edges := Filter(g, Thresholds{})

	assert.Len(t, nodes, 1)
	assert.Empty(t, edges)
}

func TestFilter_DoesNotMutate(t *testing.T) {
	g := chainGraph()
	beforeNodes := len(g.Nodes)
	beforeEdges := len(g.Edges)

	Filter(g, Thresholds{Weight: 1, Degree: 100})

	assert.Equal(t, beforeNodes, len(g.Nodes))
	assert.Equal(t, beforeEdges, len(g.Edges))
}

func TestFilter_Monotone(t *testing.T) {
	g := chainGraph()

	// Raising either threshold can only shrink the visible set.
	prevNodes, prevEdges := Filter(g, Thresholds{})
	for d := 0; d <= 3; d++ {
		nodes, edges := Filter(g, Thresholds{Degree: d})
		assert.LessOrEqual(t, len(nodes), len(prevNodes))
		assert.LessOrEqual(t, len(edges), len(prevEdges))
		prevNodes, prevEdges = nodes, edges
	}
}

func TestFilter_StableOrder(t *testing.T) {
	g := chainGraph()

	nodes, _ := Filter(g, Thresholds{})
	require.Len(t, nodes, 3)
	assert.Equal(t, "A", nodes[0].ID)
	assert.Equal(t, "B", nodes[1].ID)
	assert.Equal(t, "C", nodes[2].ID)
}
