package slime

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

// Launcher is the cannon at the bottom centre of the world.
type Launcher struct {
	cfg    config.CannonConfig
	Center r2.Point
}

// NewLauncher places the cannon so its barrel rests on the bottom edge.
func NewLauncher(cfg config.CannonConfig, bounds systems.Bounds) *Launcher {
	return &Launcher{
		cfg:    cfg,
		Center: r2.Point{X: bounds.Width / 2, Y: bounds.Height - cfg.Height/2},
	}
}

// Size returns the barrel width and height.
func (l *Launcher) Size() (w, h float64) {
	return l.cfg.Width, l.cfg.Height
}

// IsClicked tests the cannon's own hit box, slightly wider than the barrel
// and extending below it over the base.
func (l *Launcher) IsClicked(x, y float64) bool {
	halfW := l.cfg.Width * l.cfg.HitScale / 2
	return math.Abs(x-l.Center.X) < halfW &&
		y > l.Center.Y-l.cfg.Height/2 &&
		y < l.Center.Y+l.cfg.Height
}

// Nozzle returns the point shots leave from.
func (l *Launcher) Nozzle() r2.Point {
	return r2.Point{X: l.Center.X, Y: l.Center.Y - l.cfg.Height/2}
}

// Fire creates a projectile agent moving upward.
func (l *Launcher) Fire(f *Factory) Agent {
	rng := f.RNG()
	r := rng.Range(l.cfg.MinRadius, l.cfg.MaxRadius)
	vel := r2.Point{X: rng.Range(-l.cfg.SpreadX, l.cfg.SpreadX), Y: l.cfg.LaunchVY}
	return f.NewFromShape(l.Nozzle(), vel, r, f.RandomColor(), f.LaunchShape())
}
