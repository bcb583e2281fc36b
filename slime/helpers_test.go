package slime

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

const eps = 1e-9

type fixture struct {
	cfg     *config.Config
	rng     *systems.RNG
	solver  *systems.PhysicsSystem
	factory *Factory
	bounds  systems.Bounds
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	cfg := config.Default()
	bounds := systems.Bounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH}
	rng := systems.NewRNG(seed)
	solver := systems.NewPhysicsSystem(bounds, cfg.Solver)
	return &fixture{
		cfg:     cfg,
		rng:     rng,
		solver:  solver,
		factory: NewFactory(cfg, rng, solver),
		bounds:  bounds,
	}
}

func (fx *fixture) moveContext(pop *Population) *MoveContext {
	return &MoveContext{
		Cfg:        fx.cfg,
		Bounds:     fx.bounds,
		Flow:       systems.NewFlowField(fx.bounds.Width, fx.bounds.Height, fx.cfg.FlowField, 7),
		Population: pop,
		Noise:      systems.NewNoise(7),
		RNG:        fx.rng,
	}
}

func (fx *fixture) basic(x, y, r float64, shape components.Shape) *Basic {
	return fx.factory.NewBasic(r2.Point{X: x, Y: y}, r2.Point{}, r, grey, shape)
}

var grey = components.Color{R: 128, G: 128, B: 128, A: 60}

type explosion struct {
	center r2.Point
	size   float64
	c1, c2 components.Color
}

// recordingSink captures explosions instead of spawning particles.
type recordingSink struct {
	explosions []explosion
}

func (s *recordingSink) EmitExplosion(center r2.Point, size float64, c1, c2 components.Color) {
	s.explosions = append(s.explosions, explosion{center, size, c1, c2})
}

func near(a, b r2.Point) bool {
	return systems.Dist(a, b) < 1e-6
}
