package slime

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

func inBounds(b *Body, bounds systems.Bounds) bool {
	const tol = 1e-6
	return b.Pos.X >= b.R-tol && b.Pos.X <= bounds.Width-b.R+tol &&
		b.Pos.Y >= b.R-tol && b.Pos.Y <= bounds.Height-b.R+tol
}

func TestBounceContainment(t *testing.T) {
	tests := []struct {
		name  string
		shape components.Shape
		pos   r2.Point
		vel   r2.Point
	}{
		{"basic left", components.ShapeCircle, r2.Point{X: 21, Y: 300}, r2.Point{X: -3, Y: 0}},
		{"basic corner", components.ShapeSquare, r2.Point{X: 1270, Y: 715}, r2.Point{X: 3, Y: 3}},
		{"arrow top", components.ShapeArrow, r2.Point{X: 400, Y: 5}, r2.Point{X: 0, Y: -4}},
		{"killer right", components.ShapeKiller, r2.Point{X: 1275, Y: 300}, r2.Point{X: 3, Y: 0}},
		{"cluster bottom", components.ShapeCluster, r2.Point{X: 600, Y: 710}, r2.Point{X: 0, Y: 5}},
		{"black hole outside", components.ShapeBlackHole, r2.Point{X: -10, Y: 300}, r2.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, 1)
			a := fx.factory.NewFromShape(tt.pos, tt.vel, 20, grey, tt.shape)
			pop := NewPopulation(a)
			ctx := fx.moveContext(pop)
			ctx.Pointer = &r2.Point{X: 400, Y: -100}

			for frame := 0; frame < 30; frame++ {
				if frame > 0 {
					fx.solver.Integrate()
				}
				a.Move(ctx)
				if !inBounds(a.State(), fx.bounds) {
					t.Fatalf("frame %d: %v at %v with r %v left the bounds", frame, tt.name, a.State().Pos, a.State().R)
				}
			}
		})
	}
}

func TestBounceReflectsVelocity(t *testing.T) {
	fx := newFixture(t, 1)
	b := &Body{Pos: r2.Point{X: 5, Y: 100}, Vel: r2.Point{X: -2, Y: 1}, R: 10}
	b.bounce(fx.bounds)
	if b.Pos.X != 10 || b.Vel.X != 2 || b.Vel.Y != 1 {
		t.Errorf("after bounce pos = %v vel = %v, want x = 10 and vel (2, 1)", b.Pos, b.Vel)
	}
}

func TestBasicSpeedLimit(t *testing.T) {
	fx := newFixture(t, 2)
	a := fx.basic(600, 300, 20, components.ShapeCircle)
	a.Vel = r2.Point{X: 10, Y: 0}
	ctx := fx.moveContext(NewPopulation(a))
	offset := a.MoveOffset

	a.Move(ctx)

	want := fx.cfg.Motion.MaxSpeed * fx.cfg.Motion.Drag
	if a.Vel.Norm() > want+eps {
		t.Errorf("speed = %v, want at most %v", a.Vel.Norm(), want)
	}
	if math.Abs(a.MoveOffset-offset-fx.cfg.Motion.NoiseStep) > eps {
		t.Error("noise phase did not advance")
	}
}

func TestArrowChasesPointer(t *testing.T) {
	fx := newFixture(t, 3)
	a := fx.basic(300, 300, 20, components.ShapeArrow)
	ctx := fx.moveContext(NewPopulation(a))
	ctx.Flow = nil
	ctx.Pointer = &r2.Point{X: 800, Y: 300}

	for i := 0; i < 10; i++ {
		a.Move(ctx)
	}
	if a.Pos.X <= 300 || math.Abs(a.Pos.Y-300) > eps {
		t.Errorf("arrow moved to %v, want straight toward the pointer", a.Pos)
	}
}

func TestKillerSteering(t *testing.T) {
	t.Run("flees larger", func(t *testing.T) {
		fx := newFixture(t, 4)
		k := fx.factory.NewKiller(r2.Point{X: 300, Y: 300}, r2.Point{}, 20, grey)
		big := fx.basic(350, 300, 40, components.ShapeCircle)
		small := fx.basic(250, 300, 10, components.ShapeCircle)
		pop := NewPopulation(k, big, small)
		k.target = small.ID

		steer := k.Steering(fx.moveContext(pop))

		if steer.X >= 0 {
			t.Errorf("steering = %v, want away from the larger agent", steer)
		}
		if k.TargetID() != 0 {
			t.Errorf("target = %d, want cleared while fleeing", k.TargetID())
		}
	})

	t.Run("ignores distant larger", func(t *testing.T) {
		fx := newFixture(t, 5)
		k := fx.factory.NewKiller(r2.Point{X: 300, Y: 300}, r2.Point{}, 20, grey)
		big := fx.basic(900, 300, 40, components.ShapeCircle)
		small := fx.basic(200, 300, 10, components.ShapeCircle)
		pop := NewPopulation(k, big, small)

		steer := k.Steering(fx.moveContext(pop))

		if steer.X >= 0 {
			t.Errorf("steering = %v, want toward the prey", steer)
		}
		if k.TargetID() != small.ID {
			t.Errorf("target = %d, want %d", k.TargetID(), small.ID)
		}
	})

	t.Run("picks closest prey", func(t *testing.T) {
		fx := newFixture(t, 6)
		k := fx.factory.NewKiller(r2.Point{X: 300, Y: 300}, r2.Point{}, 20, grey)
		far := fx.basic(700, 300, 10, components.ShapeCircle)
		closest := fx.basic(300, 500, 20, components.ShapeCircle)
		pop := NewPopulation(k, far, closest)

		steer := k.Steering(fx.moveContext(pop))

		if k.TargetID() != closest.ID {
			t.Errorf("target = %d, want the closest prey %d", k.TargetID(), closest.ID)
		}
		if steer.Y <= 0 {
			t.Errorf("steering = %v, want toward +y", steer)
		}
	})

	t.Run("alone", func(t *testing.T) {
		fx := newFixture(t, 7)
		k := fx.factory.NewKiller(r2.Point{X: 300, Y: 300}, r2.Point{}, 20, grey)
		k.target = 99
		steer := k.Steering(fx.moveContext(NewPopulation(k)))
		if steer != (r2.Point{}) || k.TargetID() != 0 {
			t.Errorf("steering = %v target = %d, want zero and none", steer, k.TargetID())
		}
	})
}

func TestKillerTargetInvalidated(t *testing.T) {
	fx := newFixture(t, 8)
	k := fx.factory.NewKiller(r2.Point{X: 300, Y: 300}, r2.Point{}, 20, grey)
	prey := fx.basic(400, 300, 10, components.ShapeCircle)
	pop := NewPopulation(k, prey)
	k.Steering(fx.moveContext(pop))

	if got, ok := k.Target(pop); !ok || got != Agent(prey) {
		t.Fatal("target not resolved while prey is alive")
	}

	pop.RemoveAt(1)
	if _, ok := k.Target(pop); ok {
		t.Error("target still resolves after prey left the population")
	}
	if k.TargetID() != 0 {
		t.Errorf("TargetID = %d, want 0 after invalidation", k.TargetID())
	}
}

func TestBlackHoleStaysPut(t *testing.T) {
	fx := newFixture(t, 9)
	hole := fx.factory.NewBlackHole(r2.Point{X: 500, Y: 300}, 30)
	hole.Vel = r2.Point{X: 4, Y: 4}
	before := make([]Orbit, len(hole.Orbits()))
	copy(before, hole.Orbits())

	hole.R = 200 // swallows every orbit
	hole.Move(fx.moveContext(NewPopulation(hole)))

	if hole.Pos != (r2.Point{X: 500, Y: 300}) || hole.Vel != (r2.Point{}) {
		t.Errorf("black hole moved: pos %v vel %v", hole.Pos, hole.Vel)
	}
	for i, o := range hole.Orbits() {
		if o.Angle <= before[i].Angle {
			t.Errorf("orbit %d did not advance", i)
		}
		if o.Dist < hole.R || o.Dist > hole.R*fx.cfg.BlackHole.OrbitReach {
			t.Errorf("orbit %d at %v, want within [%v, %v]", i, o.Dist, hole.R, hole.R*fx.cfg.BlackHole.OrbitReach)
		}
	}
}

func TestGravity(t *testing.T) {
	fx := newFixture(t, 1)
	bc := fx.cfg.BlackHole
	tests := []struct {
		name string
		pos  r2.Point
		want r2.Point
	}{
		{"in range", r2.Point{X: 100, Y: 0}, r2.Point{X: -6 * 20 * 10 / 10000.0}},
		{"clamped near", r2.Point{X: 0, Y: 5}, r2.Point{Y: -6 * 20 * 10 / 400.0}},
		{"clamped far", r2.Point{X: 0, Y: -500}, r2.Point{Y: 6 * 20 * 10 / 40000.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gravity(r2.Point{}, 20, tt.pos, 10, bc)
			if !near(got, tt.want) {
				t.Errorf("Gravity() = %v, want %v", got, tt.want)
			}
		})
	}
}

// moveWithAndWithoutFlow moves a from the same starting state twice and
// returns the velocity gained from the flow field alone.
func moveWithAndWithoutFlow(a Agent, ctx *MoveContext) (flowGain r2.Point, start Body) {
	b := a.State()
	start = *b

	a.Move(ctx)
	with := b.Vel

	*b = start
	field := ctx.Flow
	ctx.Flow = nil
	a.Move(ctx)
	ctx.Flow = field

	return with.Sub(b.Vel), start
}

func TestFlowSteering(t *testing.T) {
	tests := []struct {
		name   string
		shape  components.Shape
		weight func(*config.Config) float64
	}{
		{"circle", components.ShapeCircle, func(*config.Config) float64 { return 1 }},
		{"square", components.ShapeSquare, func(*config.Config) float64 { return 1 }},
		{"killer", components.ShapeKiller, func(c *config.Config) float64 { return c.Killer.FlowWeight }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, 3)
			a := fx.factory.NewFromShape(r2.Point{X: 640, Y: 360}, r2.Point{}, 20, grey, tt.shape)
			ctx := fx.moveContext(NewPopulation(a))

			gain, start := moveWithAndWithoutFlow(a, ctx)
			follow := systems.Follow(start.Vel, ctx.Flow.Lookup(start.Pos.X, start.Pos.Y), start.MaxSpeed, start.MaxForce)
			want := follow.Mul(tt.weight(fx.cfg) * fx.cfg.Motion.Drag)
			if !near(gain, want) {
				t.Errorf("flow changed velocity by %v, want %v", gain, want)
			}
			if gain.Norm() == 0 {
				t.Error("flow field had no effect")
			}
		})
	}
}

func TestLoneKillerWanders(t *testing.T) {
	fx := newFixture(t, 5)
	k := fx.factory.NewKiller(r2.Point{X: 640, Y: 360}, r2.Point{}, 20, grey)
	ctx := fx.moveContext(NewPopulation(k))
	ctx.Flow = nil

	if s := k.Steering(ctx); s.Norm() != 0 {
		t.Fatalf("lone killer steering = %v, want zero", s)
	}
	k.Move(ctx)

	want := fx.cfg.Killer.WanderForce * fx.cfg.Motion.Drag
	if got := k.Vel.Norm(); math.Abs(got-want) > eps {
		t.Errorf("|vel| = %v, want %v", got, want)
	}
}

// constantFlow points the same way everywhere.
type constantFlow r2.Point

func (f constantFlow) Lookup(x, y float64) r2.Point {
	return r2.Point(f)
}

func TestClusterFollowsFlow(t *testing.T) {
	fx := newFixture(t, 2)
	c := fx.factory.NewCluster(r2.Point{X: 640, Y: 360}, r2.Point{}, 40, grey)
	ctx := fx.moveContext(NewPopulation(c))

	before := c.Pos
	c.ApplyFlow(constantFlow{X: 1, Y: 0}, fx.cfg.Cluster.FlowScale)
	fx.solver.Integrate()
	c.Move(ctx)

	if c.Vel.X <= 0 {
		t.Errorf("cluster vel = %v, want pushed along +x", c.Vel)
	}
	if math.Abs(c.Vel.Y) > 1e-6 {
		t.Errorf("cluster vel.y = %v, want no sideways drift", c.Vel.Y)
	}
	if c.Pos.X <= before.X {
		t.Errorf("cluster moved from %v to %v, want along +x", before, c.Pos)
	}
}
