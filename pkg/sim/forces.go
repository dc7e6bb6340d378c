package sim

import "math"

// =============================================================================
// Forces
// =============================================================================
//
// All four forces are evaluated once per step and accumulate into body
// velocities before integration. Magnitudes scale with alpha so the layout
// cools as the simulation settles.

// jiggle breaks ties between coincident bodies with a small fixed offset.
// A deterministic epsilon keeps layouts reproducible across runs.
const jiggle = 1e-6

// applyLinks pulls each link's endpoints toward its target separation.
// The correction is split between the endpoints proportionally to their
// connectivity so well-connected hubs move less than leaf nodes.
func (s *Simulation) applyLinks() {
	for i := range s.links {
		l := &s.links[i]
		src, tgt := l.Source, l.Target

		dx := tgt.X + tgt.VX - src.X - src.VX
		dy := tgt.Y + tgt.VY - src.Y - src.VY
		if dx == 0 {
			dx = jiggle
		}
		if dy == 0 {
			dy = jiggle
		}

		dist := math.Sqrt(dx*dx + dy*dy)
		k := (dist - l.distance) / dist * s.alpha * l.strength
		dx *= k
		dy *= k

		tgt.VX -= dx * l.bias
		tgt.VY -= dy * l.bias
		src.VX += dx * (1 - l.bias)
		src.VY += dy * (1 - l.bias)
	}
}

// applyCharge makes every body repel every other with the uniform charge
// strength, approximated with a Barnes-Hut quadtree so large visible sets
// stay interactive.
func (s *Simulation) applyCharge() {
	if len(s.bodies) < 2 {
		return
	}
	qt := buildQuadtree(s.bodies, s.cfg.ChargeStrength)
	for _, b := range s.bodies {
		qt.accumulate(b, s.cfg.Theta, s.alpha)
	}
}

// applyCenter applies the weak global pull toward the canvas center.
func (s *Simulation) applyCenter() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	k := s.cfg.CenterStrength * s.alpha
	for _, b := range s.bodies {
		b.VX += (cx - b.X) * k
		b.VY += (cy - b.Y) * k
	}
}

// applyCollision softly separates overlapping bodies. Each pair closer than
// the sum of their radii is pushed apart along the connecting axis, with the
// correction apportioned by squared radius so small nodes yield to hubs.
func (s *Simulation) applyCollision() {
	k := s.cfg.CollisionStrength
	for i := 0; i < len(s.bodies); i++ {
		b1 := s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b2 := s.bodies[j]

			dx := b2.X + b2.VX - b1.X - b1.VX
			dy := b2.Y + b2.VY - b1.Y - b1.VY
			r := b1.Radius + b2.Radius

			d2 := dx*dx + dy*dy
			if d2 >= r*r {
				continue
			}
			if dx == 0 {
				dx = jiggle
			}
			if dy == 0 {
				dy = jiggle
			}
			d := math.Sqrt(dx*dx + dy*dy)
			overlap := (r - d) / d * k

			r1sq, r2sq := b1.Radius*b1.Radius, b2.Radius*b2.Radius
			share := r2sq / (r1sq + r2sq)

			dx *= overlap
			dy *= overlap
			b2.VX += dx * share
			b2.VY += dy * share
			b1.VX -= dx * (1 - share)
			b1.VY -= dy * (1 - share)
		}
	}
}
