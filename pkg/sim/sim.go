package sim

import (
	"math"

	"github.com/lbartels/bionet/pkg/bionet"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds the tunable physics parameters of the simulation.
// DefaultConfig values are calibrated for protein-interaction networks with
// edge weights in the 0.0005-0.002 range on an 800x600 canvas.
type Config struct {
	// Width and Height bound the canvas; positions are clamped into
	// [radius, Width-radius] x [radius, Height-radius] after every step.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// ChargeStrength is the uniform many-body repulsion magnitude.
	ChargeStrength float64 `toml:"charge_strength"`

	// CenterStrength scales the weak pull toward the canvas center.
	CenterStrength float64 `toml:"center_strength"`

	// CollisionStrength scales the soft non-overlap correction.
	CollisionStrength float64 `toml:"collision_strength"`

	// Theta is the Barnes-Hut opening angle; larger trades accuracy for speed.
	Theta float64 `toml:"theta"`

	// AlphaMin is the energy floor below which the simulation counts as
	// settled when no resting target holds it up.
	AlphaMin float64 `toml:"alpha_min"`

	// AlphaDecay is the per-step geometric cooling rate toward AlphaTarget.
	AlphaDecay float64 `toml:"alpha_decay"`

	// VelocityDecay is the fraction of velocity retained each step.
	VelocityDecay float64 `toml:"velocity_decay"`

	// DragAlphaTarget is the resting energy held while a drag is active.
	DragAlphaTarget float64 `toml:"drag_alpha_target"`
}

// DefaultConfig returns the standard physics parameters.
func DefaultConfig() Config {
	return Config{
		Width:             800,
		Height:            600,
		ChargeStrength:    150,
		CenterStrength:    0.05,
		CollisionStrength: 0.7,
		Theta:             0.81,
		AlphaMin:          0.001,
		AlphaDecay:        1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:     0.6,
		DragAlphaTarget:   0.3,
	}
}

// Radius returns a node's display and collision radius for its degree.
func Radius(degree int) float64 {
	return math.Sqrt(float64(degree))*3 + 5
}

// LinkDistance returns the target separation for an edge of the given weight:
// stronger-weighted interactions pull their endpoints closer together.
func LinkDistance(weight float64) float64 {
	return 100 / (weight * 100)
}

// =============================================================================
// Bodies and Links
// =============================================================================

// Body is a simulated node. FX/FY, when non-nil, pin the position: the
// integrator never overwrites a pinned position, though the body still
// participates in forces against others.
type Body struct {
	ID       string
	Degree   int
	Category bionet.Category
	Radius   float64

	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pinned reports whether the body's position is currently fixed.
func (b *Body) Pinned() bool { return b.FX != nil && b.FY != nil }

// Link is a simulated edge between two resolved bodies.
type Link struct {
	ID     int
	Source *Body
	Target *Body
	Weight float64

	distance float64 // target separation
	strength float64 // spring stiffness
	bias     float64 // share of correction applied to the target endpoint
}

// =============================================================================
// Simulation
// =============================================================================

// Simulation owns the ephemeral layout state for the visible subgraph:
// alpha, alphaTarget, and per-body position and velocity. It is not safe for
// concurrent use; the Engine serializes access for callers that need it.
type Simulation struct {
	cfg         Config
	bodies      []*Body
	index       map[string]*Body
	links       []Link
	alpha       float64
	alphaTarget float64
	stopped     bool
}

// NewSimulation creates an empty simulation with the given physics config.
// Call Reconfigure to load a visible subgraph.
func NewSimulation(cfg Config) *Simulation {
	return &Simulation{
		cfg:   cfg,
		index: make(map[string]*Body),
		alpha: 1,
	}
}

// Reconfigure fully replaces the active visible set before the next step.
//
// Bodies surviving from the previous set keep their position and velocity;
// newly visible nodes are seeded deterministically on a phyllotaxis spiral
// around the canvas center. Prior state for nodes no longer visible is
// discarded. Reconfiguration is a restart: alpha is raised back to one and a
// stopped simulation resumes.
func (s *Simulation) Reconfigure(nodes []bionet.Node, edges []bionet.Edge) {
	prev := s.index
	s.bodies = make([]*Body, 0, len(nodes))
	s.index = make(map[string]*Body, len(nodes))

	for i, n := range nodes {
		b := &Body{
			ID:       n.ID,
			Degree:   n.Degree,
			Category: bionet.Classify(n.ID),
			Radius:   Radius(n.Degree),
		}
		if old, ok := prev[n.ID]; ok {
			b.X, b.Y = old.X, old.Y
			b.VX, b.VY = old.VX, old.VY
			b.FX, b.FY = old.FX, old.FY
		} else {
			b.X, b.Y = s.seedPosition(i)
		}
		s.bodies = append(s.bodies, b)
		s.index[n.ID] = b
	}

	s.links = s.links[:0]
	counts := make(map[string]int, len(nodes))
	for _, e := range edges {
		counts[e.Source]++
		counts[e.Target]++
	}
	for _, e := range edges {
		src, okS := s.index[e.Source]
		tgt, okT := s.index[e.Target]
		if !okS || !okT {
			continue
		}
		sc, tc := float64(counts[e.Source]), float64(counts[e.Target])
		s.links = append(s.links, Link{
			ID:       e.ID,
			Source:   src,
			Target:   tgt,
			Weight:   e.Weight,
			distance: LinkDistance(e.Weight),
			strength: 1 / math.Min(sc, tc),
			bias:     sc / (sc + tc),
		})
	}

	s.Restart()
}

// seedPosition places the i-th fresh body on a phyllotaxis spiral, giving
// reproducible initial layouts without a random source.
func (s *Simulation) seedPosition(i int) (x, y float64) {
	const initialRadius = 10.0
	var initialAngle = math.Pi * (3 - math.Sqrt(5))

	r := initialRadius * math.Sqrt(0.5+float64(i))
	a := float64(i) * initialAngle
	return s.cfg.Width/2 + r*math.Cos(a), s.cfg.Height/2 + r*math.Sin(a)
}

// Restart raises alpha back to one and resumes a stopped simulation.
// Positions and velocities are untouched.
func (s *Simulation) Restart() {
	s.alpha = 1
	s.stopped = false
}

// Stop halts stepping. Stopping is idempotent, leaves no residual timers
// (the simulation never owns any), and does not clear positions.
func (s *Simulation) Stop() {
	s.stopped = true
}

// Alpha returns the current simulation energy in [0, 1].
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the current resting energy floor.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget raises or lowers the resting energy floor. A positive
// target keeps the simulation redistributing nodes (e.g. during a drag);
// zero lets alpha decay until the layout settles.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
	if t > 0 {
		s.stopped = false
	}
}

// Bodies returns the live body slice in visible-node order.
// Callers must not mutate between steps unless they own the scheduling.
func (s *Simulation) Bodies() []*Body { return s.bodies }

// Links returns the live link slice in visible-edge order.
func (s *Simulation) Links() []Link { return s.links }

// Body returns the simulated body for a node ID, or nil.
func (s *Simulation) Body(id string) *Body { return s.index[id] }

// Pin fixes a body's position. The pin overrides integration until Unpin;
// forces exerted by the pinned body on others remain in effect.
func (s *Simulation) Pin(id string, x, y float64) {
	if b := s.index[id]; b != nil {
		fx, fy := x, y
		b.FX, b.FY = &fx, &fy
		b.X, b.Y = x, y
	}
}

// Unpin releases a body back into free simulation.
func (s *Simulation) Unpin(id string) {
	if b := s.index[id]; b != nil {
		b.FX, b.FY = nil, nil
	}
}

// Settled reports whether alpha has decayed to the floor with no resting
// target holding the simulation up.
func (s *Simulation) Settled() bool {
	return s.alpha < s.cfg.AlphaMin && s.alphaTarget == 0
}

// Step advances the simulation one tick: alpha decays geometrically toward
// alphaTarget, the four forces accumulate into velocities, and free bodies
// integrate velocity into position. Pinned bodies snap to their pin with
// velocity zeroed. Finally every position is clamped into the canvas; the
// clamp is a post-step constraint and does not touch velocity.
//
// Step reports whether the simulation advanced: false after Stop or once
// settled.
func (s *Simulation) Step() bool {
	if s.stopped || s.Settled() {
		return false
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()
	s.applyCollision()

	for _, b := range s.bodies {
		if b.Pinned() {
			b.X, b.Y = *b.FX, *b.FY
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= s.cfg.VelocityDecay
		b.VY *= s.cfg.VelocityDecay
		b.X += b.VX
		b.Y += b.VY
	}

	s.clampToCanvas()
	return true
}

// clampToCanvas keeps every body inside the visible canvas, accounting for
// its radius. Pinned bodies are clamped too so drags cannot escape the frame.
func (s *Simulation) clampToCanvas() {
	for _, b := range s.bodies {
		b.X = clamp(b.X, b.Radius, s.cfg.Width-b.Radius)
		b.Y = clamp(b.Y, b.Radius, s.cfg.Height-b.Radius)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Degenerate canvas smaller than the node; park at the low bound.
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
