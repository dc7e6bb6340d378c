package sim

import "math"

// =============================================================================
// Barnes-Hut Quadtree
// =============================================================================
//
// The charge force is O(n^2) when evaluated pairwise. The quadtree groups
// distant bodies into aggregate charges so each accumulation visit is
// O(log n) on average: a region whose extent is small relative to its
// distance is treated as a single point charge at its center of mass.

// quadNode is one cell of the quadtree. Leaves hold a single body (plus any
// exactly coincident overflow); internal nodes hold four children and the
// aggregate charge of their subtree.
type quadNode struct {
	children [4]*quadNode
	body     *Body
	overflow []*Body

	// Region bounds.
	x0, y0, x1, y1 float64

	// Aggregate charge (sum) and its center of mass.
	charge   float64
	cx, cy   float64
	internal bool
}

// buildQuadtree constructs the tree over all bodies with a uniform repulsive
// charge per body. Strength is the charge magnitude; the force applied is
// repulsive.
func buildQuadtree(bodies []*Body, strength float64) *quadNode {
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, b := range bodies {
		x0 = math.Min(x0, b.X)
		y0 = math.Min(y0, b.Y)
		x1 = math.Max(x1, b.X)
		y1 = math.Max(y1, b.Y)
	}
	// Square region so quadrant subdivision stays uniform.
	side := math.Max(x1-x0, y1-y0)
	if side == 0 {
		side = 1
	}
	root := &quadNode{x0: x0, y0: y0, x1: x0 + side, y1: y0 + side}

	for _, b := range bodies {
		root.insert(b)
	}
	root.aggregate(strength)
	return root
}

// insert places a body in the subtree, subdividing leaves as needed.
// Exactly coincident bodies pile up in the leaf's overflow list.
func (q *quadNode) insert(b *Body) {
	if !q.internal && q.body == nil {
		q.body = b
		return
	}

	if !q.internal {
		prev := q.body
		if prev.X == b.X && prev.Y == b.Y {
			q.overflow = append(q.overflow, b)
			return
		}
		q.internal = true
		q.body = nil
		rest := q.overflow
		q.overflow = nil
		q.childFor(prev.X, prev.Y).insert(prev)
		for _, o := range rest {
			q.childFor(o.X, o.Y).insert(o)
		}
	}
	q.childFor(b.X, b.Y).insert(b)
}

// childFor returns (creating if needed) the quadrant child containing (x, y).
func (q *quadNode) childFor(x, y float64) *quadNode {
	mx, my := (q.x0+q.x1)/2, (q.y0+q.y1)/2
	i := 0
	if x >= mx {
		i |= 1
	}
	if y >= my {
		i |= 2
	}
	if q.children[i] == nil {
		child := &quadNode{x0: q.x0, y0: q.y0, x1: mx, y1: my}
		if i&1 != 0 {
			child.x0, child.x1 = mx, q.x1
		}
		if i&2 != 0 {
			child.y0, child.y1 = my, q.y1
		}
		q.children[i] = child
	}
	return q.children[i]
}

// aggregate computes each subtree's total charge and center of mass.
func (q *quadNode) aggregate(strength float64) {
	if !q.internal {
		n := 1 + len(q.overflow)
		q.charge = strength * float64(n)
		q.cx, q.cy = q.body.X, q.body.Y
		return
	}
	var charge, wx, wy float64
	for _, c := range q.children {
		if c == nil {
			continue
		}
		c.aggregate(strength)
		charge += c.charge
		wx += c.cx * c.charge
		wy += c.cy * c.charge
	}
	q.charge = charge
	if charge != 0 {
		q.cx, q.cy = wx/charge, wy/charge
	}
}

// accumulate adds the repulsive charge force on b into its velocity.
// Theta is the squared opening ratio: a cell is treated as a point charge
// when its squared width over squared distance falls below theta.
func (q *quadNode) accumulate(b *Body, theta, alpha float64) {
	dx := q.cx - b.X
	dy := q.cy - b.Y
	d2 := dx*dx + dy*dy
	w := q.x1 - q.x0

	if q.internal {
		if w*w < theta*d2 {
			applyPointCharge(b, dx, dy, d2, q.charge, alpha)
			return
		}
		for _, c := range q.children {
			if c != nil {
				c.accumulate(b, theta, alpha)
			}
		}
		return
	}

	if q.body == b {
		// Self-interaction: only coincident overflow bodies contribute,
		// and they resolve through the collision force instead.
		return
	}
	applyPointCharge(b, dx, dy, d2, q.charge, alpha)
}

// applyPointCharge applies an inverse-square repulsion from a point charge.
// Distances are floored to keep coincident pairs from exploding.
func applyPointCharge(b *Body, dx, dy, d2, charge, alpha float64) {
	if dx == 0 {
		dx = jiggle
	}
	if dy == 0 {
		dy = jiggle
	}
	const minDist2 = 1.0
	if d2 < minDist2 {
		d2 = minDist2
	}
	k := charge * alpha / d2
	// Repulsion pushes b away from the charge, hence the negative direction.
	b.VX -= dx / math.Sqrt(d2) * k
	b.VY -= dy / math.Sqrt(d2) * k
}
