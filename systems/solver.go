package systems

import "github.com/golang/geo/r2"

// ParticleID is a solver handle for a point mass.
type ParticleID uint32

// SpringID is a solver handle for a spring.
type SpringID uint32

// ParticleState is a point mass snapshot.
type ParticleState struct {
	Pos, Vel r2.Point
}

// ConstraintSolver integrates point masses connected by springs. Handles
// stay valid until removed. Integrate must not be re-entered, and callers
// must not add or remove particles while it runs.
type ConstraintSolver interface {
	AddParticle(pos, vel r2.Point) ParticleID
	RemoveParticle(id ParticleID)
	AddSpring(a, b ParticleID, rest, stiffness float64) SpringID
	RemoveSpring(id SpringID)

	// ApplyForce accumulates a force for the next Integrate call.
	ApplyForce(id ParticleID, f r2.Point)
	// AddVelocity changes a particle's velocity immediately.
	AddVelocity(id ParticleID, dv r2.Point)
	Particle(id ParticleID) (ParticleState, bool)
	// SetParticle teleports a particle. Springs are unaffected.
	SetParticle(id ParticleID, st ParticleState)

	Integrate()
}
