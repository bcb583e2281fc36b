package systems

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/config"
)

func testSolverConfig() config.SolverConfig {
	return config.SolverConfig{DT: 1, Iterations: 10, Damping: 1, ParticleMass: 1, SpringDamping: 0.1}
}

func TestPhysicsSystemIntegratesVelocity(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 500, Height: 500}, testSolverConfig())
	id := s.AddParticle(r2.Point{X: 100, Y: 100}, r2.Point{X: 2, Y: -1})

	s.Integrate()

	st, ok := s.Particle(id)
	if !ok {
		t.Fatal("particle missing after Integrate")
	}
	if math.Abs(st.Pos.X-102) > 1e-6 || math.Abs(st.Pos.Y-99) > 1e-6 {
		t.Errorf("position = %v, want (102, 99)", st.Pos)
	}
}

func TestPhysicsSystemAddVelocity(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 500, Height: 500}, testSolverConfig())
	id := s.AddParticle(r2.Point{X: 100, Y: 100}, r2.Point{})

	s.AddVelocity(id, r2.Point{X: 3, Y: 0})
	st, _ := s.Particle(id)
	if math.Abs(st.Vel.X-3) > 1e-9 {
		t.Errorf("velocity = %v, want x = 3", st.Vel)
	}
}

func TestPhysicsSystemForceAccelerates(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 500, Height: 500}, testSolverConfig())
	id := s.AddParticle(r2.Point{X: 100, Y: 100}, r2.Point{})

	s.ApplyForce(id, r2.Point{X: 0, Y: 0.5})
	// Positions advance before velocities within a step, so the push shows
	// up in position one step later.
	s.Integrate()
	s.Integrate()

	st, _ := s.Particle(id)
	if st.Vel.Y <= 0 || st.Pos.Y <= 100 {
		t.Errorf("after downward force: pos %v vel %v, want positive y motion", st.Pos, st.Vel)
	}
}

func TestPhysicsSystemSpringPulls(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 500, Height: 500}, testSolverConfig())
	a := s.AddParticle(r2.Point{X: 100, Y: 100}, r2.Point{})
	b := s.AddParticle(r2.Point{X: 140, Y: 100}, r2.Point{})
	if s.AddSpring(a, b, 20, 0.05) == 0 {
		t.Fatal("AddSpring returned the zero handle")
	}

	s.Integrate()
	s.Integrate()

	pa, _ := s.Particle(a)
	pb, _ := s.Particle(b)
	if d := Dist(pa.Pos, pb.Pos); d >= 40 {
		t.Errorf("stretched spring did not contract: distance %v", d)
	}
}

func TestPhysicsSystemClampsToBounds(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 100, Height: 100}, testSolverConfig())
	id := s.AddParticle(r2.Point{X: 5, Y: 50}, r2.Point{X: -10, Y: 0})

	s.Integrate()

	st, _ := s.Particle(id)
	if st.Pos.X != 0 || st.Vel.X != 0 {
		t.Errorf("pos %v vel %v, want clamped to x = 0 with zero x velocity", st.Pos, st.Vel)
	}
}

func TestPhysicsSystemRemove(t *testing.T) {
	s := NewPhysicsSystem(Bounds{Width: 100, Height: 100}, testSolverConfig())
	a := s.AddParticle(r2.Point{X: 10, Y: 10}, r2.Point{})
	b := s.AddParticle(r2.Point{X: 20, Y: 10}, r2.Point{})
	spring := s.AddSpring(a, b, 10, 0.05)

	s.RemoveSpring(spring)
	s.RemoveParticle(a)
	s.RemoveParticle(a) // unknown handles are ignored

	if _, ok := s.Particle(a); ok {
		t.Error("removed particle is still reported")
	}
	particles, springs := s.Counts()
	if particles != 1 || springs != 0 {
		t.Errorf("Counts() = (%d, %d), want (1, 0)", particles, springs)
	}
	if s.AddSpring(a, b, 10, 0.05) != 0 {
		t.Error("AddSpring with a removed particle should return 0")
	}
}
