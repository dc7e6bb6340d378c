package bionet

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `<?xml version="1.0"?>
<graphml>
  <graph edgedefault="undirected">
    <node id="EGFR" label="EGFR" />
    <node id="TP53" label="TP53" />
    <node id="MYC" label="MYC" />
    <edge id="1" source="EGFR" target="TP53" weight="0.0012" />
    <edge id="2" source="TP53" target="MYC" weight="0.0008" />
  </graph>
</graphml>`

func TestParseBytes(t *testing.T) {
	g := ParseBytes([]byte(sampleDoc))

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(g.Edges))
	}
	if g.Edges[0].Source != "EGFR" || g.Edges[0].Target != "TP53" {
		t.Errorf("edge 0 endpoints = %s-%s, want EGFR-TP53", g.Edges[0].Source, g.Edges[0].Target)
	}
	if g.Edges[0].Weight != 0.0012 {
		t.Errorf("edge 0 weight = %v, want 0.0012", g.Edges[0].Weight)
	}
}

func TestParseBytes_SkipsMalformed(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantNodes int
		wantEdges int
	}{
		{
			name:      "node without id",
			doc:       `<node label="X" /><node id="A" label="A" />`,
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name:      "node without label",
			doc:       `<node id="A" /><node id="B" label="B" />`,
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name: "edge missing endpoint",
			doc: `<node id="A" label="A" /><node id="B" label="B" />
				<edge id="1" source="A" weight="0.001" />
				<edge id="2" source="A" target="B" weight="0.001" />`,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "edge with bad weight",
			doc: `<node id="A" label="A" /><node id="B" label="B" />
				<edge id="1" source="A" target="B" weight="abc" />
				<edge id="2" source="A" target="B" weight="0" />
				<edge id="3" source="A" target="B" weight="-0.5" />`,
			wantNodes: 2,
			wantEdges: 0,
		},
		{
			name: "edge with non-integer id",
			doc: `<node id="A" label="A" /><node id="B" label="B" />
				<edge id="x" source="A" target="B" weight="0.001" />`,
			wantNodes: 2,
			wantEdges: 0,
		},
		{
			name:      "empty document",
			doc:       ``,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:      "surrounding junk ignored",
			doc:       `garbage <node id="A" label="A" /> more garbage`,
			wantNodes: 1,
			wantEdges: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ParseBytes([]byte(tt.doc))
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), tt.wantNodes)
			}
			if len(g.Edges) != tt.wantEdges {
				t.Errorf("edges = %d, want %d", len(g.Edges), tt.wantEdges)
			}
		})
	}
}

func TestParseBytes_PreservesOrder(t *testing.T) {
	g := ParseBytes([]byte(sampleDoc))

	want := []string{"EGFR", "TP53", "MYC"}
	for i, id := range want {
		if g.Nodes[i].ID != id {
			t.Errorf("node %d = %s, want %s", i, g.Nodes[i].ID, id)
		}
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.xml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
