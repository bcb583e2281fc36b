package slime

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

func TestSplitChannelRoundTrip(t *testing.T) {
	rng := systems.NewRNG(42)
	for p := 0.0; p <= 255; p += 0.5 {
		for trial := 0; trial < 20; trial++ {
			c1, c2 := SplitChannel(p, rng)
			if c1 < 0 || c1 > 255 || c2 < 0 || c2 > 255 {
				t.Fatalf("SplitChannel(%v) = %v, %v, out of range", p, c1, c2)
			}
			merged := MergeColor(
				components.Color{R: c1}, 1,
				components.Color{R: c2}, 1,
			).R
			if math.Abs(merged-p) > eps {
				t.Fatalf("SplitChannel(%v) re-merges to %v", p, merged)
			}
		}
	}
}

func TestSplitColorKeepsAlpha(t *testing.T) {
	rng := systems.NewRNG(1)
	parent := components.Color{R: 10, G: 250, B: 128, A: 77}
	c1, c2 := SplitColor(parent, rng)
	if c1.A != 77 || c2.A != 77 {
		t.Errorf("alpha = %v, %v, want 77", c1.A, c2.A)
	}
}

func TestSplitChildren(t *testing.T) {
	shapes := []components.Shape{
		components.ShapeCircle, components.ShapeArrow, components.ShapeKiller, components.ShapeCluster,
	}
	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				fx := newFixture(t, seed)
				parent := fx.factory.NewFromShape(r2.Point{X: 400, Y: 300}, r2.Point{X: 1, Y: 0}, 50, grey, shape)
				parent.State().Color = components.Color{R: 200, G: 40, B: 120, A: 60}

				children := parent.Split(fx.factory)
				if len(children) != 2 {
					t.Fatalf("seed %d: %d children, want 2", seed, len(children))
				}
				a, b := children[0].State(), children[1].State()
				if children[0].Intersects(children[1]) {
					t.Errorf("seed %d: children intersect at distance %v", seed, systems.Dist(a.Pos, b.Pos))
				}
				if math.Abs(a.R*a.R+b.R*b.R-2500) > 1e-6 {
					t.Errorf("seed %d: child areas do not sum to parent area", seed)
				}
				mid := a.Pos.Add(b.Pos).Mul(0.5)
				if !near(mid, r2.Point{X: 400, Y: 300}) {
					t.Errorf("seed %d: children centred on %v", seed, mid)
				}
				merged := MergeColor(a.Color, 1, b.Color, 1)
				if math.Abs(merged.R-200) > eps || math.Abs(merged.G-40) > eps || math.Abs(merged.B-120) > eps {
					t.Errorf("seed %d: child colours average to %+v", seed, merged)
				}

				wantKind := components.KindBasic
				if shape == components.ShapeCluster {
					wantKind = components.KindCluster
				}
				for _, c := range children {
					if c.Kind() != wantKind {
						t.Errorf("seed %d: child kind = %v, want %v", seed, c.Kind(), wantKind)
					}
				}
				// Split leaves the parent alone
				if parent.State().R != 50 {
					t.Errorf("seed %d: parent radius changed to %v", seed, parent.State().R)
				}
			}
		})
	}
}

func TestSplitKicks(t *testing.T) {
	fx := newFixture(t, 9)
	kick := fx.cfg.Split.Kick

	basic := fx.basic(400, 300, 40, components.ShapeCircle)
	basic.Vel = r2.Point{X: 3, Y: 3}
	children := basic.Split(fx.factory)
	// Basic children carry the bare kick
	for _, c := range children {
		if math.Abs(c.State().Vel.Norm()-kick) > eps {
			t.Errorf("basic child speed = %v, want %v", c.State().Vel.Norm(), kick)
		}
	}

	cluster := fx.factory.NewCluster(r2.Point{X: 400, Y: 300}, r2.Point{X: 3, Y: 3}, 40, grey)
	children = cluster.Split(fx.factory)
	// Cluster children keep the parent velocity plus the kick
	sum := children[0].State().Vel.Add(children[1].State().Vel)
	if !near(sum, r2.Point{X: 6, Y: 6}) {
		t.Errorf("cluster children velocity sum = %v, want (6, 6)", sum)
	}
}

func TestSplitTooSmall(t *testing.T) {
	fx := newFixture(t, 10)
	for _, shape := range []components.Shape{components.ShapeCircle, components.ShapeKiller, components.ShapeCluster} {
		a := fx.factory.NewFromShape(r2.Point{X: 400, Y: 300}, r2.Point{}, 5, grey, shape)
		if children := a.Split(fx.factory); children != nil {
			t.Errorf("%v of radius 5 split into %d children", shape, len(children))
		}
	}
	// r/sqrt(2) just below the minimum child radius
	a := fx.basic(400, 300, 14, components.ShapeCircle)
	if children := a.Split(fx.factory); children != nil {
		t.Errorf("radius 14 split into %d children", len(children))
	}
}

func TestSplitCanFormBlackHole(t *testing.T) {
	fx := newFixture(t, 11)
	fx.cfg.Split.BlackHoleChance = 1

	small := fx.basic(400, 300, 50, components.ShapeCircle)
	for _, c := range small.Split(fx.factory) {
		if c.Kind() == components.KindBlackHole {
			t.Fatal("radius 50 produced a black hole")
		}
	}

	big := fx.basic(400, 300, 80, components.ShapeCircle)
	children := big.Split(fx.factory)
	if len(children) != 2 {
		t.Fatalf("%d children, want 2", len(children))
	}
	hole := children[1]
	if hole.Kind() != components.KindBlackHole {
		t.Fatalf("second child kind = %v, want blackhole", hole.Kind())
	}
	if math.Abs(hole.State().R-80/math.Sqrt2) > eps {
		t.Errorf("black hole radius = %v, want %v", hole.State().R, 80/math.Sqrt2)
	}
	if hole.State().Vel != (r2.Point{}) || hole.State().Color != components.Black {
		t.Errorf("black hole state = %+v", hole.State())
	}
	if n := len(hole.(*BlackHole).Orbits()); n != fx.cfg.BlackHole.OrbitCount {
		t.Errorf("orbits = %d, want %d", n, fx.cfg.BlackHole.OrbitCount)
	}
}

func TestBlackHoleCannotSplit(t *testing.T) {
	fx := newFixture(t, 12)
	hole := fx.factory.NewBlackHole(r2.Point{X: 400, Y: 300}, 100)
	if children := hole.Split(fx.factory); children != nil {
		t.Errorf("black hole split into %d children", len(children))
	}
}
