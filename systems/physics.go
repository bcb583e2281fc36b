// Package systems contains the simulation machinery shared by the agent
// population: noise, flow field, steering, the soft-body solver and effects.
package systems

import (
	"github.com/golang/geo/r2"
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/slime/config"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// PhysicsSystem is the chipmunk-backed ConstraintSolver. Particles are
// shapeless bodies, so they never collide with each other; only springs
// and external forces move them.
type PhysicsSystem struct {
	space   *cp.Space
	bounds  Bounds
	dt      float64
	mass    float64
	damping float64 // Spring damping

	bodies  map[ParticleID]*cp.Body
	springs map[SpringID]*cp.Constraint
	nextPID ParticleID
	nextSID SpringID

	stepping bool
}

// NewPhysicsSystem creates a solver over the given world bounds.
func NewPhysicsSystem(bounds Bounds, cfg config.SolverConfig) *PhysicsSystem {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})
	space.SetDamping(cfg.Damping)
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}

	mass := cfg.ParticleMass
	if mass <= 0 {
		mass = 1
	}
	dt := cfg.DT
	if dt <= 0 {
		dt = 1
	}

	return &PhysicsSystem{
		space:   space,
		bounds:  bounds,
		dt:      dt,
		mass:    mass,
		damping: cfg.SpringDamping,
		bodies:  make(map[ParticleID]*cp.Body),
		springs: make(map[SpringID]*cp.Constraint),
		nextPID: 1,
		nextSID: 1,
	}
}

func (s *PhysicsSystem) mustNotStep() {
	if s.stepping {
		panic("systems: solver mutated during Integrate")
	}
}

// AddParticle registers a point mass.
func (s *PhysicsSystem) AddParticle(pos, vel r2.Point) ParticleID {
	s.mustNotStep()
	body := cp.NewBody(s.mass, cp.MomentForCircle(s.mass, 0, 1, cp.Vector{}))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetVelocity(vel.X, vel.Y)
	s.space.AddBody(body)

	id := s.nextPID
	s.nextPID++
	s.bodies[id] = body
	return id
}

// RemoveParticle unregisters a point mass. Unknown handles are ignored.
func (s *PhysicsSystem) RemoveParticle(id ParticleID) {
	s.mustNotStep()
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	s.space.RemoveBody(body)
	delete(s.bodies, id)
}

// AddSpring connects two particles. Returns 0 if either handle is unknown.
func (s *PhysicsSystem) AddSpring(a, b ParticleID, rest, stiffness float64) SpringID {
	s.mustNotStep()
	ba, okA := s.bodies[a]
	bb, okB := s.bodies[b]
	if !okA || !okB {
		return 0
	}
	spring := cp.NewDampedSpring(ba, bb, cp.Vector{}, cp.Vector{}, rest, stiffness, s.damping)
	s.space.AddConstraint(spring)

	id := s.nextSID
	s.nextSID++
	s.springs[id] = spring
	return id
}

// RemoveSpring unregisters a spring. Unknown handles are ignored.
func (s *PhysicsSystem) RemoveSpring(id SpringID) {
	s.mustNotStep()
	spring, ok := s.springs[id]
	if !ok {
		return
	}
	s.space.RemoveConstraint(spring)
	delete(s.springs, id)
}

// ApplyForce accumulates a force; chipmunk clears it after the next step.
func (s *PhysicsSystem) ApplyForce(id ParticleID, f r2.Point) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	body.ApplyForceAtWorldPoint(cp.Vector{X: f.X, Y: f.Y}, body.Position())
}

// AddVelocity changes a particle's velocity immediately.
func (s *PhysicsSystem) AddVelocity(id ParticleID, dv r2.Point) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	v := body.Velocity()
	body.SetVelocity(v.X+dv.X, v.Y+dv.Y)
}

// Particle returns the current state of a particle.
func (s *PhysicsSystem) Particle(id ParticleID) (ParticleState, bool) {
	body, ok := s.bodies[id]
	if !ok {
		return ParticleState{}, false
	}
	p := body.Position()
	v := body.Velocity()
	return ParticleState{Pos: r2.Point{X: p.X, Y: p.Y}, Vel: r2.Point{X: v.X, Y: v.Y}}, true
}

// SetParticle overwrites a particle's position and velocity.
func (s *PhysicsSystem) SetParticle(id ParticleID, st ParticleState) {
	s.mustNotStep()
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	body.SetPosition(cp.Vector{X: st.Pos.X, Y: st.Pos.Y})
	body.SetVelocity(st.Vel.X, st.Vel.Y)
}

// Integrate advances every particle one step and clamps them to the world.
func (s *PhysicsSystem) Integrate() {
	s.stepping = true
	s.space.Step(s.dt)
	s.stepping = false

	for _, body := range s.bodies {
		p := body.Position()
		v := body.Velocity()
		clamped := false
		if p.X < 0 || p.X > s.bounds.Width {
			p.X = Clamp(p.X, 0, s.bounds.Width)
			v.X = 0
			clamped = true
		}
		if p.Y < 0 || p.Y > s.bounds.Height {
			p.Y = Clamp(p.Y, 0, s.bounds.Height)
			v.Y = 0
			clamped = true
		}
		if clamped {
			body.SetPosition(p)
			body.SetVelocity(v.X, v.Y)
		}
	}
}

// Counts returns the number of registered particles and springs.
func (s *PhysicsSystem) Counts() (particles, springs int) {
	return len(s.bodies), len(s.springs)
}
