package slime

import (
	"github.com/pthm-cable/slime/components"
)

// Orbit is one decorative point circling a black hole.
type Orbit struct {
	Angle float64
	Dist  float64
	Speed float64 // Radians per frame
}

// BlackHole never moves and grows only by consuming other agents.
type BlackHole struct {
	Body
	orbits []Orbit
}

// Kind implements Agent.
func (b *BlackHole) Kind() components.Kind {
	return components.KindBlackHole
}

// Orbits returns the decorative orbit points.
func (b *BlackHole) Orbits() []Orbit {
	return b.orbits
}

// Move implements Agent. Only the orbits advance; orbits swallowed by the
// growing horizon are pushed back out.
func (b *BlackHole) Move(ctx *MoveContext) {
	reach := ctx.Cfg.BlackHole.OrbitReach
	for i := range b.orbits {
		o := &b.orbits[i]
		o.Angle += o.Speed
		if o.Dist < b.R {
			o.Dist = ctx.RNG.Range(b.R, b.R*reach)
		}
	}
	b.Vel.X, b.Vel.Y = 0, 0
	b.bounce(ctx.Bounds)
}

// Split implements Agent. Black holes cannot be split.
func (b *BlackHole) Split(*Factory) []Agent {
	return nil
}

// Release implements Agent.
func (b *BlackHole) Release() {}
