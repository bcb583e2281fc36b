package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// ParticleRenderer renders explosion shards and stamps paint droplets.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders the live shards, fading them out over their life.
func (r *ParticleRenderer) Draw(ps *systems.ParticleSystem) {
	ps.Each(func(pos components.Position, eff components.Effect) {
		if eff.Kind != components.EffectShard {
			return
		}
		fade := eff.Fade()
		c := toRL(eff.Color)
		c.A = uint8(float32(c.A) * fade)

		size := eff.Size * fade
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircleV(rl.Vector2{X: pos.X, Y: pos.Y}, size, c)
	})
}

// Stamp drains pending droplets onto the paint canvas. Each droplet is
// painted exactly once.
func (r *ParticleRenderer) Stamp(ps *systems.ParticleSystem, bg *BackgroundRenderer) {
	bg.Paint(func() {
		ps.DrainDroplets(func(pos components.Position, eff components.Effect) {
			rl.DrawCircleV(rl.Vector2{X: pos.X, Y: pos.Y}, eff.Size/2, toRL(eff.Color))
		})
	})
}
