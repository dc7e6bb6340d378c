package bionet

import (
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/lbartels/bionet/pkg/errors"
)

// =============================================================================
// GraphML-Style Parser
// =============================================================================
//
// Network descriptions arrive as GraphML-flavored text: node declarations
// carrying "id" and "label" attributes followed by edge declarations carrying
// "source", "target", "id", and "weight" attributes. Parsing is tolerant and
// best-effort: only declarations matching the grammar are extracted, and
// malformed fragments are skipped rather than failing the whole document.
// Unknown elements and attributes are ignored.
//
// Only an unreadable input stream is fatal (errors.ErrCodeDataLoad).

var (
	nodeDeclPattern = regexp.MustCompile(`<node\b[^>]*?/?>`)
	edgeDeclPattern = regexp.MustCompile(`<edge\b[^>]*?/?>`)
	attrPattern     = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.:-]*)\s*=\s*"([^"]*)"`)
)

// Parse extracts an interaction network from GraphML-style text.
//
// Nodes and edges preserve source declaration order. Node degrees are not
// computed here; call ComputeDegrees on the result. A read failure on r is
// the only fatal condition.
func Parse(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "read network description")
	}
	return ParseBytes(data), nil
}

// ParseFile parses a network description from a file.
// A missing or unreadable file is reported as a data-load error.
func ParseFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "read %s", path)
	}
	return ParseBytes(data), nil
}

// ParseBytes extracts all well-formed node and edge declarations from data.
// It never fails: a document with no recognizable declarations yields an
// empty graph.
func ParseBytes(data []byte) *Graph {
	g := &Graph{}

	for _, decl := range nodeDeclPattern.FindAll(data, -1) {
		if n, ok := parseNodeDecl(decl); ok {
			g.Nodes = append(g.Nodes, n)
		}
	}
	for _, decl := range edgeDeclPattern.FindAll(data, -1) {
		if e, ok := parseEdgeDecl(decl); ok {
			g.Edges = append(g.Edges, e)
		}
	}
	return g
}

// parseNodeDecl extracts a Node from a single declaration.
// Requires id and label attributes; anything else is ignored.
func parseNodeDecl(decl []byte) (Node, bool) {
	attrs := declAttrs(decl)
	id, okID := attrs["id"]
	label, okLabel := attrs["label"]
	if !okID || !okLabel || id == "" {
		return Node{}, false
	}
	return Node{ID: id, Label: label}, true
}

// parseEdgeDecl extracts an Edge from a single declaration.
// Requires source, target, an integer id, and a positive decimal weight.
func parseEdgeDecl(decl []byte) (Edge, bool) {
	attrs := declAttrs(decl)

	source, okS := attrs["source"]
	target, okT := attrs["target"]
	if !okS || !okT || source == "" || target == "" {
		return Edge{}, false
	}

	id, err := strconv.Atoi(attrs["id"])
	if err != nil {
		return Edge{}, false
	}
	weight, err := strconv.ParseFloat(attrs["weight"], 64)
	if err != nil || weight <= 0 {
		return Edge{}, false
	}

	return Edge{ID: id, Source: source, Target: target, Weight: weight}, true
}

// declAttrs parses the key="value" attributes of a declaration.
func declAttrs(decl []byte) map[string]string {
	matches := attrPattern.FindAllSubmatch(decl, -1)
	attrs := make(map[string]string, len(matches))
	for _, m := range matches {
		attrs[string(m[1])] = string(m[2])
	}
	return attrs
}
