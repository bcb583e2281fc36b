package systems

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/config"
)

// SoftBody is a ring of solver particles joined by springs. Its position,
// velocity and radius are statistics of the particles, refreshed by
// Recompute after each solver step.
type SoftBody struct {
	solver    ConstraintSolver
	particles []ParticleID
	springs   []SpringID

	Pos    r2.Point
	Vel    r2.Point
	Radius float64

	points []r2.Point // particle positions in ring order
}

// ParticleCountFor maps a radius to the number of ring particles.
func ParticleCountFor(r float64, cfg config.ClusterConfig) int {
	n := int(math.Floor(MapRange(r, cfg.MinRadius, cfg.MaxRadius,
		float64(cfg.MinParticles), float64(cfg.MaxParticles))))
	if n < cfg.MinParticles {
		return cfg.MinParticles
	}
	if n > cfg.MaxParticles {
		return cfg.MaxParticles
	}
	return n
}

// NewSoftBody registers a ring of particles around pos, all moving at vel,
// and springs between every pair closer than r*ConnectScale.
func NewSoftBody(solver ConstraintSolver, pos, vel r2.Point, r float64, cfg config.ClusterConfig) *SoftBody {
	n := ParticleCountFor(r, cfg)
	b := &SoftBody{
		solver:    solver,
		particles: make([]ParticleID, 0, n),
		Pos:       pos,
		Vel:       vel,
		Radius:    r,
	}

	ring := r * cfg.RingScale
	positions := make([]r2.Point, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		positions[i] = pos.Add(FromAngle(angle, ring))
		b.particles = append(b.particles, solver.AddParticle(positions[i], vel))
	}

	maxLen := r * cfg.ConnectScale
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rest := Dist(positions[i], positions[j])
			if rest < maxLen {
				b.springs = append(b.springs, solver.AddSpring(b.particles[i], b.particles[j], rest, cfg.SpringStrength))
			}
		}
	}

	b.points = positions
	return b
}

// Recompute refreshes position, velocity and radius from the solver.
// A destroyed body keeps its last values.
func (b *SoftBody) Recompute() {
	if len(b.particles) == 0 {
		return
	}

	var sumPos, sumVel r2.Point
	b.points = b.points[:0]
	for _, id := range b.particles {
		st, ok := b.solver.Particle(id)
		if !ok {
			continue
		}
		sumPos = sumPos.Add(st.Pos)
		sumVel = sumVel.Add(st.Vel)
		b.points = append(b.points, st.Pos)
	}
	if len(b.points) == 0 {
		return
	}

	inv := 1 / float64(len(b.points))
	b.Pos = sumPos.Mul(inv)
	b.Vel = sumVel.Mul(inv)

	maxDist := 0.0
	for _, p := range b.points {
		if d := Dist(p, b.Pos); d > maxDist {
			maxDist = d
		}
	}
	// Radius must stay positive even if the ring collapses to a point
	if maxDist > 0 {
		b.Radius = maxDist
	}
}

// Contain translates the whole body so its disk lies inside the bounds and
// reflects the mean velocity component that pointed out of them.
func (b *SoftBody) Contain(bounds Bounds) {
	if !b.Alive() {
		return
	}
	dx, flipX := containAxis(b.Pos.X, b.Vel.X, b.Radius, bounds.Width)
	dy, flipY := containAxis(b.Pos.Y, b.Vel.Y, b.Radius, bounds.Height)
	if dx == 0 && dy == 0 {
		return
	}

	shift := r2.Point{X: dx, Y: dy}
	var dv r2.Point
	if flipX {
		dv.X = -2 * b.Vel.X
	}
	if flipY {
		dv.Y = -2 * b.Vel.Y
	}
	for _, id := range b.particles {
		st, ok := b.solver.Particle(id)
		if !ok {
			continue
		}
		st.Pos = st.Pos.Add(shift)
		st.Vel = st.Vel.Add(dv)
		b.solver.SetParticle(id, st)
	}
	for i := range b.points {
		b.points[i] = b.points[i].Add(shift)
	}
	b.Pos = b.Pos.Add(shift)
	b.Vel = b.Vel.Add(dv)
}

func containAxis(p, v, r, bound float64) (shift float64, flip bool) {
	lo, hi := r, bound-r
	if hi < lo {
		return (lo+hi)/2 - p, false
	}
	if p < lo {
		return lo - p, v < 0
	}
	if p > hi {
		return hi - p, v > 0
	}
	return 0, false
}

// ApplyForce pushes each particle with the force returned for its position.
func (b *SoftBody) ApplyForce(force func(p r2.Point) r2.Point) {
	for _, id := range b.particles {
		st, ok := b.solver.Particle(id)
		if !ok {
			continue
		}
		b.solver.ApplyForce(id, force(st.Pos))
	}
}

// AddVelocity adds dv to every particle.
func (b *SoftBody) AddVelocity(dv r2.Point) {
	for _, id := range b.particles {
		b.solver.AddVelocity(id, dv)
	}
}

// Points returns the particle positions as of the last Recompute.
func (b *SoftBody) Points() []r2.Point {
	return b.points
}

// ParticleCount returns the number of live particles.
func (b *SoftBody) ParticleCount() int {
	return len(b.particles)
}

// SpringCount returns the number of live springs.
func (b *SoftBody) SpringCount() int {
	return len(b.springs)
}

// Alive reports whether the body still owns solver resources.
func (b *SoftBody) Alive() bool {
	return len(b.particles) > 0
}

// Destroy unregisters springs, then particles. Safe to call more than once.
func (b *SoftBody) Destroy() {
	for _, id := range b.springs {
		b.solver.RemoveSpring(id)
	}
	for _, id := range b.particles {
		b.solver.RemoveParticle(id)
	}
	b.springs = nil
	b.particles = nil
}
