package slime

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
)

// newTestSimulation returns a simulation with an empty population.
func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	sim := New(config.Default(), 1)
	for _, a := range sim.Population().Agents() {
		a.Release()
	}
	sim.Population().Replace(nil)
	return sim
}

func addBasic(sim *Simulation, x, y, r float64, shape components.Shape) *Basic {
	b := sim.Factory().NewBasic(r2.Point{X: x, Y: y}, r2.Point{}, r, grey, shape)
	sim.Population().Add(b)
	return b
}

func TestNewSeedsPopulation(t *testing.T) {
	sim := New(config.Default(), 3)
	cfg := sim.Config()
	pop := sim.Population()

	if pop.Len() != cfg.Population.Initial {
		t.Fatalf("population = %d, want %d", pop.Len(), cfg.Population.Initial)
	}
	for _, a := range pop.Agents() {
		b := a.State()
		if b.R < cfg.Population.MinRadius || b.R >= cfg.Population.MaxRadius {
			t.Errorf("agent %d radius %v out of range", b.ID, b.R)
		}
		if !inBounds(b, sim.Bounds()) {
			t.Errorf("agent %d seeded outside the world at %v", b.ID, b.Pos)
		}
		if a.Kind() == components.KindBlackHole {
			t.Errorf("agent %d seeded as a black hole", b.ID)
		}
		if b.Color.A != cfg.Population.Alpha {
			t.Errorf("agent %d alpha = %v, want %v", b.ID, b.Color.A, cfg.Population.Alpha)
		}
	}
}

func TestStepKeepsAgentsInside(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		sim := New(config.Default(), seed)
		pointer := &r2.Point{X: 640, Y: 360}
		for frame := 0; frame < 300; frame++ {
			sim.Step(FrameInput{Pointer: pointer})
			for _, a := range sim.Population().Agents() {
				if !inBounds(a.State(), sim.Bounds()) {
					t.Fatalf("seed %d frame %d: %v agent %d at %v r %v outside the world",
						seed, frame, a.Kind(), a.State().ID, a.State().Pos, a.State().R)
				}
			}
		}
		if sim.Frame() != 300 {
			t.Errorf("Frame() = %d, want 300", sim.Frame())
		}
	}
}

func TestStepReleasesRemovedClusters(t *testing.T) {
	sim := New(config.Default(), 4)
	for frame := 0; frame < 600; frame++ {
		sim.Step(FrameInput{})
	}

	want := 0
	for _, a := range sim.Population().Agents() {
		if c, ok := a.(*Cluster); ok {
			want += c.SoftBody().ParticleCount()
		}
	}
	if particles, _ := sim.Solver().Counts(); particles != want {
		t.Errorf("solver holds %d particles, live clusters own %d", particles, want)
	}
}

func TestStepAppliesGravity(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Population().Add(sim.Factory().NewBlackHole(r2.Point{X: 700, Y: 300}, 150))
	prey := addBasic(sim, 300, 300, 20, components.ShapeCircle)

	for i := 0; i < 30; i++ {
		sim.Step(FrameInput{})
	}
	if prey.Pos.X <= 300 {
		t.Errorf("prey at %v, want pulled toward the black hole", prey.Pos)
	}
}

func TestStepPushesClustersAlongFlow(t *testing.T) {
	sim := newTestSimulation(t)
	c := sim.Factory().NewCluster(r2.Point{X: 640, Y: 360}, r2.Point{}, 40, grey)
	sim.Population().Add(c)

	var flow r2.Point
	for _, p := range c.SoftBody().Points() {
		flow = flow.Add(sim.Field().Lookup(p.X, p.Y))
	}
	if flow.Norm() == 0 {
		t.Fatal("flow cancels over the cluster")
	}

	sim.Step(FrameInput{})
	if c.Vel.Dot(flow) <= 0 {
		t.Errorf("cluster vel = %v, want along the summed flow %v", c.Vel, flow)
	}
}

func TestClickSplitsTopmost(t *testing.T) {
	sim := newTestSimulation(t)
	bottom := addBasic(sim, 300, 300, 40, components.ShapeCircle)
	top := addBasic(sim, 310, 300, 30, components.ShapeSquare)
	other := addBasic(sim, 900, 300, 20, components.ShapeCircle)

	out := sim.Click(305, 300)

	if out.Kind != ClickSplit || out.Parent != top.ID {
		t.Fatalf("Click = %+v, want split of %d", out, top.ID)
	}
	pop := sim.Population()
	if pop.Len() != 4 {
		t.Fatalf("population = %d, want 4", pop.Len())
	}
	if _, ok := pop.Find(top.ID); ok {
		t.Error("split parent still in population")
	}
	// Children go on top of the draw order
	if pop.At(2) != out.Children[0] || pop.At(3) != out.Children[1] {
		t.Error("children were not appended")
	}
	if pop.At(0) != Agent(bottom) || pop.At(1) != Agent(other) {
		t.Error("untouched agents changed order")
	}
}

func TestClickTooSmall(t *testing.T) {
	sim := newTestSimulation(t)
	tiny := addBasic(sim, 300, 300, 5, components.ShapeCircle)
	addBasic(sim, 500, 300, 3, components.ShapeCircle)

	for _, p := range []r2.Point{{X: 300, Y: 300}, {X: 500, Y: 300}} {
		out := sim.Click(p.X, p.Y)
		if out.Kind != ClickNoSplit {
			t.Errorf("Click(%v) = %v, want no split", p, out.Kind)
		}
	}
	if sim.Population().Len() != 2 || tiny.R != 5 {
		t.Errorf("population = %d, radius = %v, want unchanged", sim.Population().Len(), tiny.R)
	}
}

func TestClickEmptySpace(t *testing.T) {
	sim := newTestSimulation(t)
	if out := sim.Click(100, 100); out.Kind != ClickNone {
		t.Errorf("Click = %v, want none", out.Kind)
	}
}

func TestClickCannon(t *testing.T) {
	sim := newTestSimulation(t)
	l := sim.Launcher()
	cc := sim.Config().Cannon

	for i := 0; i < 40; i++ {
		out := sim.Click(l.Center.X, l.Center.Y)
		if out.Kind != ClickLaunched || len(out.Children) != 1 {
			t.Fatalf("Click = %+v, want one launch", out)
		}
		shot := out.Children[0].State()
		if shot.Pos != l.Nozzle() {
			t.Errorf("shot at %v, want nozzle %v", shot.Pos, l.Nozzle())
		}
		if shot.Vel.Y != cc.LaunchVY || shot.Vel.X < -cc.SpreadX || shot.Vel.X >= cc.SpreadX {
			t.Errorf("shot velocity = %v", shot.Vel)
		}
		if shot.R < cc.MinRadius || shot.R >= cc.MaxRadius {
			t.Errorf("shot radius = %v", shot.R)
		}
		switch shot.Shape {
		case components.ShapeBomb, components.ShapeKiller, components.ShapeBlackHole:
			t.Errorf("cannon fired a %v", shot.Shape)
		}
	}
	if sim.Population().Len() != 40 {
		t.Errorf("population = %d, want 40", sim.Population().Len())
	}
}

func TestCannonTakesPrecedence(t *testing.T) {
	sim := newTestSimulation(t)
	l := sim.Launcher()
	over := addBasic(sim, l.Center.X, l.Center.Y, 40, components.ShapeCircle)

	if out := sim.Click(l.Center.X, l.Center.Y); out.Kind != ClickLaunched {
		t.Errorf("Click = %v, want launch", out.Kind)
	}
	if _, ok := sim.Population().Find(over.ID); !ok {
		t.Error("agent over the cannon was split")
	}
}

func TestLauncherHitBox(t *testing.T) {
	cfg := config.Default()
	l := NewLauncher(cfg.Cannon, systems.Bounds{Width: 1000, Height: 600})
	// Center (500, 570), barrel 100x60, hit box 120 wide
	tests := []struct {
		x, y float64
		want bool
	}{
		{500, 570, true},
		{559, 570, true},
		{561, 570, false},
		{500, 541, true},
		{500, 539, false},
		{500, 629, true},
		{500, 300, false},
	}
	for _, tt := range tests {
		if got := l.IsClicked(tt.x, tt.y); got != tt.want {
			t.Errorf("IsClicked(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if n := l.Nozzle(); n != (r2.Point{X: 500, Y: 540}) {
		t.Errorf("Nozzle() = %v, want (500, 540)", n)
	}
}

func TestRegenerateField(t *testing.T) {
	sim := newTestSimulation(t)
	seed := sim.Field().Seed()
	sim.RegenerateField()
	if sim.Field().Seed() == seed {
		t.Error("RegenerateField kept the old seed")
	}
}
