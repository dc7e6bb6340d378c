package bionet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph - Interaction Network Model
// =============================================================================

// Node is a single entity in the interaction network, identified by its ID
// (typically a gene symbol). Degree is derived by ComputeDegrees and is zero
// for a freshly parsed graph.
//
// Position, velocity, and pin fields are owned by the simulation engine;
// they are carried here so a settled layout can round-trip through JSON.
// FX/FY are non-nil only while the node is pinned (e.g. during a drag).
type Node struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Degree int    `json:"degree" bson:"degree"`

	X  float64  `json:"x,omitempty" bson:"x,omitempty"`
	Y  float64  `json:"y,omitempty" bson:"y,omitempty"`
	VX float64  `json:"vx,omitempty" bson:"vx,omitempty"`
	VY float64  `json:"vy,omitempty" bson:"vy,omitempty"`
	FX *float64 `json:"fx,omitempty" bson:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty" bson:"fy,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is an undirected interaction between two nodes, stored with
// source/target roles for serialization fidelity. Weight is the interaction
// confidence, strictly positive.
//
// An edge may reference a node ID absent from the node set (a dangling
// reference). That is not an error: such edges simply never pass the
// visibility filter.
type Edge struct {
	ID     int     `json:"id" bson:"id"`
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Graph is a parsed interaction network. Node and edge order matches the
// declaration order of the source document.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// NodeByID returns a pointer to the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// =============================================================================
// Thresholds - Live Filter Inputs
// =============================================================================

// Thresholds are the externally owned filter inputs, consumed read-only on
// every recomputation. Weight is compared inclusively (>=) against edges;
// Degree is compared strictly (>) against nodes.
type Thresholds struct {
	Weight float64 `json:"weight" toml:"weight"`
	Degree int     `json:"degree" toml:"degree"`
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return &g, nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a Graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &g, nil
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
