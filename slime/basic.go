package slime

import (
	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// Basic wanders along its noise curve. Arrow-shaped basics chase the pointer.
type Basic struct {
	Body
}

// Kind implements Agent.
func (s *Basic) Kind() components.Kind {
	return components.KindBasic
}

// Move implements Agent.
func (s *Basic) Move(ctx *MoveContext) {
	mc := ctx.Cfg.Motion
	var accel r2.Point
	maxSpeed := s.MaxSpeed

	if s.Shape == components.ShapeArrow && ctx.Pointer != nil {
		accel = systems.SetMag(ctx.Pointer.Sub(s.Pos), mc.ArrowAccel)
		maxSpeed = mc.ArrowMaxSpeed
	} else {
		accel = systems.Wander(s.wanderHeading(ctx), mc.WanderForce)
	}

	if ctx.Flow != nil {
		accel = accel.Add(systems.Follow(s.Vel, ctx.Flow.Lookup(s.Pos.X, s.Pos.Y), s.MaxSpeed, s.MaxForce))
	}

	s.integrate(ctx, accel, maxSpeed)
}

// Split implements Agent.
func (s *Basic) Split(f *Factory) []Agent {
	return f.splitIntoBasics(&s.Body)
}

// Release implements Agent. Basics hold no external resources.
func (s *Basic) Release() {}
