package renderer

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
	"github.com/pthm-cable/slime/systems"
)

func TestOutlineCircleStaysNearRadius(t *testing.T) {
	noise := systems.NewNoise(1)
	for _, shape := range []components.Shape{components.ShapeCircle, components.ShapeBomb, components.ShapeKiller} {
		b := &slime.Body{R: 40, Shape: shape, NoiseSeed: 12.5}
		for frame := int64(0); frame < 200; frame += 50 {
			pts := Outline(b, noise, frame)
			// 0, 0.1, ... 6.2
			if len(pts) != 63 {
				t.Fatalf("%v outline has %d points, want 63", shape, len(pts))
			}
			for _, p := range pts {
				d := p.Norm()
				if d < 40*(1-circleWobble)-1e-9 || d > 40*(1+circleWobble)+1e-9 {
					t.Errorf("%v frame %d: vertex at distance %v", shape, frame, d)
				}
			}
		}
	}
}

func TestOutlineCornerShapes(t *testing.T) {
	noise := systems.NewNoise(2)
	tests := []struct {
		shape   components.Shape
		corners int
	}{
		{components.ShapeSquare, 4},
		{components.ShapeTriangle, 3},
		{components.ShapeArrow, 7},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			b := &slime.Body{R: 30, Shape: tt.shape, NoiseSeed: 3}
			pts := Outline(b, noise, 10)
			if len(pts) != tt.corners*curveSegments {
				t.Errorf("outline has %d points, want %d", len(pts), tt.corners*curveSegments)
			}
			// Jittered corners stay within the wobble envelope of the shape
			limit := 30 * (1.3 + 2*cornerWobble)
			for _, p := range pts {
				if p.Norm() > limit*1.5 {
					t.Errorf("vertex %v far outside the body", p)
				}
			}
		})
	}
}

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	curve := CatmullRom(pts, 4)
	if len(curve) != 16 {
		t.Fatalf("len = %d, want 16", len(curve))
	}
	for i, p := range pts {
		got := curve[i*4]
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("curve[%d] = %v, want control point %v", i*4, got, p)
		}
	}

	// Too few points to smooth
	two := []r2.Point{{X: 1}, {X: 2}}
	if got := CatmullRom(two, 4); len(got) != 2 {
		t.Errorf("CatmullRom of 2 points = %v", got)
	}
}

func TestClusterHullOrdersByAngle(t *testing.T) {
	center := r2.Point{X: 100, Y: 100}
	// Scrambled ring
	var pts []r2.Point
	for _, a := range []float64{3, 0.5, 5, 1.5, 4, 2.5} {
		pts = append(pts, center.Add(systems.FromAngle(a, 20)))
	}

	hull := ClusterHull(pts, center)

	prev := -1.0
	for i := 0; i < len(hull); i += curveSegments {
		a := positiveAngle(hull[i])
		if a <= prev {
			t.Fatalf("control point %d at angle %v after %v", i/curveSegments, a, prev)
		}
		prev = a
		if math.Abs(hull[i].Norm()-20) > 1e-9 {
			t.Errorf("control point %d not relative to center: %v", i/curveSegments, hull[i])
		}
	}
}

func TestSquashStretch(t *testing.T) {
	tests := []struct {
		name        string
		vel         r2.Point
		wantAngle   float64
		wantStretch float64
	}{
		{"still", r2.Point{}, 0, 1},
		{"half speed", r2.Point{X: 1.5}, 0, 1.175},
		{"full speed down", r2.Point{Y: 3}, 90, 1.35},
		{"overspeed clamps", r2.Point{X: -6}, 180, 1.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle, stretch, squash := SquashStretch(tt.vel, 3)
			if math.Abs(angle-tt.wantAngle) > 1e-9 {
				t.Errorf("angle = %v, want %v", angle, tt.wantAngle)
			}
			if math.Abs(stretch-tt.wantStretch) > 1e-9 {
				t.Errorf("stretch = %v, want %v", stretch, tt.wantStretch)
			}
			if math.Abs(stretch*squash-1) > 1e-9 {
				t.Errorf("squash %v does not preserve area", squash)
			}
		})
	}
}

func TestDashes(t *testing.T) {
	dashes := Dashes(r2.Point{}, r2.Point{X: 40}, 8, 8)
	want := [][2]float64{{0, 8}, {16, 24}, {32, 40}}
	if len(dashes) != len(want) {
		t.Fatalf("%d dashes, want %d", len(dashes), len(want))
	}
	for i, w := range want {
		if dashes[i][0].X != w[0] || dashes[i][1].X != w[1] {
			t.Errorf("dash %d = %v, want %v", i, dashes[i], w)
		}
	}

	clipped := Dashes(r2.Point{}, r2.Point{Y: 20}, 8, 8)
	if last := clipped[len(clipped)-1]; last[1].Y != 20 {
		t.Errorf("last dash ends at %v, want clipped to 20", last[1])
	}

	if Dashes(r2.Point{X: 1}, r2.Point{X: 1}, 8, 8) != nil {
		t.Error("zero-length segment should have no dashes")
	}
}
