// Package slime implements the slime population: agent variants, collision
// resolution into merges, consumptions and detonations, splitting and the
// per-frame driver.
package slime

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

// Body is the state shared by every agent variant.
type Body struct {
	ID         uint64
	Pos        r2.Point
	Vel        r2.Point
	R          float64
	Color      components.Color
	Shape      components.Shape
	NoiseSeed  float64
	MoveOffset float64
	Expression components.Expression
	MaxSpeed   float64
	MaxForce   float64
}

// Agent is implemented by the four variants. The resolver dispatches on
// Kind, never on the concrete type.
type Agent interface {
	Kind() components.Kind
	State() *Body
	Intersects(other Agent) bool
	IsClicked(x, y float64) bool
	// Move advances the agent one frame and keeps it inside the bounds.
	Move(ctx *MoveContext)
	// Split returns the two children, or nil when the agent cannot split.
	// The parent is left untouched; the caller releases it.
	Split(f *Factory) []Agent
	// Release frees external resources. It is idempotent.
	Release()
}

// MoveContext carries everything an agent may read while moving.
type MoveContext struct {
	Cfg        *config.Config
	Bounds     systems.Bounds
	Flow       systems.FlowSampler // nil disables flow following
	Pointer    *r2.Point           // nil when no pointer is available
	Population *Population
	Noise      *systems.Noise
	RNG        *systems.RNG
}

// State returns the shared state.
func (b *Body) State() *Body {
	return b
}

// Area returns the disk area of the agent.
func (b *Body) Area() float64 {
	return systems.CircleArea(b.R)
}

// Intersects reports whether the two disks overlap.
func (b *Body) Intersects(other Agent) bool {
	o := other.State()
	return systems.Dist(b.Pos, o.Pos) < b.R+o.R
}

// IsClicked reports whether (x, y) lies inside the disk.
func (b *Body) IsClicked(x, y float64) bool {
	return systems.Dist(b.Pos, r2.Point{X: x, Y: y}) < b.R
}

// bounce clamps the position into [r, bound-r] on both axes and reflects
// the velocity component that crossed.
func (b *Body) bounce(bounds systems.Bounds) {
	b.Pos.X, b.Vel.X = reflect(b.Pos.X, b.Vel.X, b.R, bounds.Width-b.R)
	b.Pos.Y, b.Vel.Y = reflect(b.Pos.Y, b.Vel.Y, b.R, bounds.Height-b.R)
}

func reflect(p, v, lo, hi float64) (float64, float64) {
	if hi < lo {
		// Agent wider than the world; centre it
		return (lo + hi) / 2, 0
	}
	if p > hi {
		return hi, -v
	}
	if p < lo {
		return lo, -v
	}
	return p, v
}

// wanderHeading samples the agent's noise curve at its current phase.
func (b *Body) wanderHeading(ctx *MoveContext) float64 {
	return ctx.Noise.Noise1D(b.MoveOffset, b.NoiseSeed) * 2 * math.Pi * ctx.Cfg.Motion.NoiseTurns
}

// integrate finishes a frame for the free-moving variants.
func (b *Body) integrate(ctx *MoveContext, accel r2.Point, maxSpeed float64) {
	b.Vel = systems.Limit(b.Vel.Add(accel), maxSpeed)
	b.Vel = b.Vel.Mul(ctx.Cfg.Motion.Drag)
	b.Pos = b.Pos.Add(b.Vel)
	b.bounce(ctx.Bounds)
	b.MoveOffset += ctx.Cfg.Motion.NoiseStep
}

// FieldValue returns the numeric value of an inspector field.
func FieldValue(a Agent, id string, pop *Population) (float64, bool) {
	b := a.State()
	switch id {
	case "radius":
		return b.R, true
	case "area":
		return b.Area(), true
	case "speed":
		return b.Vel.Norm(), true
	case "max_speed":
		return b.MaxSpeed, a.Kind() != components.KindBlackHole
	case "alpha":
		return b.Color.A, true
	case "particles":
		if c, ok := a.(*Cluster); ok {
			return float64(c.soft.ParticleCount()), true
		}
	case "target":
		if k, ok := a.(*Killer); ok {
			if t, ok := k.Target(pop); ok {
				return float64(t.State().ID), true
			}
		}
	}
	return 0, false
}
