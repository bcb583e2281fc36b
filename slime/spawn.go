package slime

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

// Factory creates agents. It owns ID assignment and the weighted shape
// tables, and hands the solver to every cluster it builds.
type Factory struct {
	cfg    *config.Config
	rng    *systems.RNG
	solver systems.ConstraintSolver

	seedShapes   *systems.ShapeTable
	splitShapes  *systems.ShapeTable
	launchShapes *systems.ShapeTable

	nextID uint64
}

// NewFactory builds a factory. It panics if a shape table is empty.
func NewFactory(cfg *config.Config, rng *systems.RNG, solver systems.ConstraintSolver) *Factory {
	return &Factory{
		cfg:          cfg,
		rng:          rng,
		solver:       solver,
		seedShapes:   systems.NewShapeTable(cfg.Derived.SeedShapes, rng),
		splitShapes:  systems.NewShapeTable(cfg.Derived.SplitShapes, rng),
		launchShapes: systems.NewShapeTable(cfg.Derived.LaunchShapes, rng),
		nextID:       1,
	}
}

func (f *Factory) newBody(pos, vel r2.Point, r float64, c components.Color, shape components.Shape) Body {
	id := f.nextID
	f.nextID++
	return Body{
		ID:         id,
		Pos:        pos,
		Vel:        vel,
		R:          r,
		Color:      c,
		Shape:      shape,
		NoiseSeed:  f.rng.Range(0, 1000),
		MoveOffset: f.rng.Range(0, 1000),
		Expression: components.Expression(f.rng.IntN(components.ExpressionCount())),
		MaxSpeed:   f.cfg.Motion.MaxSpeed,
		MaxForce:   f.cfg.Motion.MaxForce,
	}
}

// NewBasic creates a basic agent with the given shape.
func (f *Factory) NewBasic(pos, vel r2.Point, r float64, c components.Color, shape components.Shape) *Basic {
	return &Basic{Body: f.newBody(pos, vel, r, c, shape)}
}

// NewKiller creates a predator.
func (f *Factory) NewKiller(pos, vel r2.Point, r float64, c components.Color) *Killer {
	k := &Killer{Body: f.newBody(pos, vel, r, c, components.ShapeKiller)}
	k.Expression = components.ExprSurprised
	k.MaxSpeed = f.cfg.Killer.MaxSpeed
	k.MaxForce = f.cfg.Killer.MaxForce
	return k
}

// NewCluster creates a soft-body agent and registers its particles.
func (f *Factory) NewCluster(pos, vel r2.Point, r float64, c components.Color) *Cluster {
	cl := &Cluster{Body: f.newBody(pos, vel, r, c, components.ShapeCluster)}
	cl.soft = systems.NewSoftBody(f.solver, pos, vel, r, f.cfg.Cluster)
	return cl
}

// NewBlackHole creates a stationary black hole with its orbit decoration.
func (f *Factory) NewBlackHole(pos r2.Point, r float64) *BlackHole {
	bh := &BlackHole{Body: f.newBody(pos, r2.Point{}, r, components.Black, components.ShapeBlackHole)}
	bc := f.cfg.BlackHole
	bh.orbits = make([]Orbit, bc.OrbitCount)
	for i := range bh.orbits {
		bh.orbits[i] = Orbit{
			Angle: f.rng.Range(0, 2*math.Pi),
			Dist:  f.rng.Range(r, r*bc.OrbitReach),
			Speed: f.rng.Range(bc.OrbitMinSpeed, bc.OrbitMaxSpeed),
		}
	}
	return bh
}

// NewFromShape creates the variant that carries the given shape.
func (f *Factory) NewFromShape(pos, vel r2.Point, r float64, c components.Color, shape components.Shape) Agent {
	switch shape {
	case components.ShapeKiller:
		return f.NewKiller(pos, vel, r, c)
	case components.ShapeCluster:
		return f.NewCluster(pos, vel, r, c)
	case components.ShapeBlackHole:
		return f.NewBlackHole(pos, r)
	default:
		return f.NewBasic(pos, vel, r, c, shape)
	}
}

// RandomColor draws a seeding colour.
func (f *Factory) RandomColor() components.Color {
	pc := f.cfg.Population
	return components.Color{
		R: f.rng.Range(pc.MinChannel, pc.MaxChannel),
		G: f.rng.Range(pc.MinChannel, pc.MaxChannel),
		B: f.rng.Range(pc.MinChannel, pc.MaxChannel),
		A: pc.Alpha,
	}
}

// Seed creates the initial population inside the bounds.
func (f *Factory) Seed(bounds systems.Bounds) []Agent {
	pc := f.cfg.Population
	agents := make([]Agent, 0, pc.Initial)
	for i := 0; i < pc.Initial; i++ {
		r := f.rng.Range(pc.MinRadius, pc.MaxRadius)
		pos := r2.Point{
			X: f.rng.Range(r, math.Max(r, bounds.Width-r)),
			Y: f.rng.Range(r, math.Max(r, bounds.Height-r)),
		}
		vel := f.rng.UnitVector().Mul(pc.InitialSpeed)
		agents = append(agents, f.NewFromShape(pos, vel, r, f.RandomColor(), f.seedShapes.Pick()))
	}
	return agents
}

// LaunchShape draws a shape for a cannon shot.
func (f *Factory) LaunchShape() components.Shape {
	return f.launchShapes.Pick()
}

// RNG returns the factory's random source.
func (f *Factory) RNG() *systems.RNG {
	return f.rng
}

// splitPlan is the geometry and colouring shared by every split.
type splitPlan struct {
	r         float64
	axis      r2.Point
	offset    r2.Point
	c1, c2    components.Color
	blackHole bool
}

// planSplit decides whether b can split and how. Children sit r+gap from
// the parent centre, so their disks are 2*gap apart.
func (f *Factory) planSplit(b *Body) (splitPlan, bool) {
	sc := f.cfg.Split
	r := b.R / math.Sqrt2
	if r < sc.MinChildRadius {
		return splitPlan{}, false
	}
	axis := f.rng.UnitVector()
	c1, c2 := SplitColor(b.Color, f.rng)
	return splitPlan{
		r:         r,
		axis:      axis,
		offset:    axis.Mul(r + sc.Gap),
		c1:        c1,
		c2:        c2,
		blackHole: b.R > sc.BlackHoleMinRadius && f.rng.Chance(sc.BlackHoleChance),
	}, true
}

// splitIntoBasics splits a free-moving agent. Children carry only the kick
// and draw their shapes from the split table.
func (f *Factory) splitIntoBasics(b *Body) []Agent {
	plan, ok := f.planSplit(b)
	if !ok {
		return nil
	}
	kick := plan.axis.Mul(f.cfg.Split.Kick)
	first := f.NewBasic(b.Pos.Add(plan.offset), kick, plan.r, plan.c1, f.splitShapes.Pick())
	if plan.blackHole {
		return []Agent{first, f.NewBlackHole(b.Pos.Sub(plan.offset), plan.r)}
	}
	second := f.NewBasic(b.Pos.Sub(plan.offset), kick.Mul(-1), plan.r, plan.c2, f.splitShapes.Pick())
	return []Agent{first, second}
}
