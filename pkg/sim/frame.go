package sim

// =============================================================================
// Frames - Per-Step Render Output
// =============================================================================

// LabelDegreeMin is the degree above which a node always gets a label.
const LabelDegreeMin = 15

// NodeFrame is the per-step render output for one visible node.
type NodeFrame struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Radius float64 `json:"radius" bson:"radius"`
	Color  string  `json:"color" bson:"color"`
}

// EdgeFrame is the per-step render output for one visible edge. Source and
// Target carry the endpoint node IDs so consumers never have to resolve
// endpoints by coordinates, which is ambiguous when two nodes coincide.
type EdgeFrame struct {
	ID            int     `json:"id" bson:"id"`
	Source        string  `json:"source" bson:"source"`
	Target        string  `json:"target" bson:"target"`
	X1            float64 `json:"x1" bson:"x1"`
	Y1            float64 `json:"y1" bson:"y1"`
	X2            float64 `json:"x2" bson:"x2"`
	Y2            float64 `json:"y2" bson:"y2"`
	StrokeOpacity float64 `json:"stroke_opacity" bson:"stroke_opacity"`
	StrokeWidth   float64 `json:"stroke_width" bson:"stroke_width"`
}

// LabelFrame is one entry of the optional text-label sub-layer.
type LabelFrame struct {
	ID   string  `json:"id" bson:"id"`
	Text string  `json:"text" bson:"text"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
}

// Frame is the complete ordered render output of one simulation step:
// nodes and edges in visible-set order, plus the label sub-layer when
// requested. Alpha lets consumers show settling progress.
type Frame struct {
	Alpha    float64      `json:"alpha" bson:"alpha"`
	Width    float64      `json:"width" bson:"width"`
	Height   float64      `json:"height" bson:"height"`
	Selected string       `json:"selected,omitempty" bson:"selected,omitempty"`
	Nodes    []NodeFrame  `json:"nodes" bson:"nodes"`
	Edges    []EdgeFrame  `json:"edges" bson:"edges"`
	Labels   []LabelFrame `json:"labels,omitempty" bson:"labels,omitempty"`
}

// edgeStrokeOpacity derives an edge's stroke opacity from its weight.
func edgeStrokeOpacity(weight float64) float64 {
	return weight * 1000
}

// edgeStrokeWidth derives an edge's stroke width from its weight,
// floored at one pixel.
func edgeStrokeWidth(weight float64) float64 {
	w := weight*5000 - 3
	if w < 1 {
		return 1
	}
	return w
}
