package systems

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

const eps = 1e-9

func TestLimit(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Point
		max  float64
		want float64
	}{
		{"under limit", r2.Point{X: 1, Y: 0}, 2, 1},
		{"over limit", r2.Point{X: 3, Y: 4}, 2, 2},
		{"zero vector", r2.Point{}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Limit(tt.v, tt.max).Norm()
			if math.Abs(got-tt.want) > eps {
				t.Errorf("|Limit(%v, %v)| = %v, want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestSetMagZero(t *testing.T) {
	if got := SetMag(r2.Point{}, 5); got.Norm() != 0 {
		t.Errorf("SetMag of zero vector = %v, want zero", got)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		v, inLo, inHi, outLo, outHi, want float64
	}{
		{10, 10, 50, 8, 16, 8},
		{50, 10, 50, 8, 16, 16},
		{30, 10, 50, 8, 16, 12},
		{0, 0, 100, 0, 3, 0},
		{5, 5, 5, 1, 2, 1}, // degenerate input range
	}
	for _, tt := range tests {
		got := MapRange(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("MapRange(%v, %v, %v, %v, %v) = %v, want %v", tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi, got, tt.want)
		}
	}
}

func TestSeekAndFlee(t *testing.T) {
	pos := r2.Point{X: 0, Y: 0}
	target := r2.Point{X: 10, Y: 0}

	seek := Seek(pos, r2.Point{}, target, 3, 0.5)
	if seek.X <= 0 || math.Abs(seek.Y) > eps {
		t.Errorf("Seek = %v, want force along +x", seek)
	}
	if seek.Norm() > 0.5+eps {
		t.Errorf("|Seek| = %v, exceeds max force", seek.Norm())
	}

	flee := Flee(pos, r2.Point{}, target, 3, 0.5)
	if flee.X >= 0 {
		t.Errorf("Flee = %v, want force along -x", flee)
	}
}

func TestArriveSlowsInsideRadius(t *testing.T) {
	pos := r2.Point{}
	// Moving toward a close target at full speed should brake
	vel := r2.Point{X: 3, Y: 0}

	far := Arrive(pos, vel, r2.Point{X: 500, Y: 0}, 3, 10, 100)
	if far.Norm() > eps {
		t.Errorf("Arrive far away at max speed = %v, want zero force", far)
	}

	near := Arrive(pos, vel, r2.Point{X: 50, Y: 0}, 3, 10, 100)
	// desired speed is 1.5, so steering is -1.5 along x
	if math.Abs(near.X+1.5) > eps {
		t.Errorf("Arrive near = %v, want x = -1.5", near)
	}
}

func TestFollow(t *testing.T) {
	got := Follow(r2.Point{}, r2.Point{X: 0, Y: 1}, 3, 0.1)
	if math.Abs(got.Norm()-0.1) > eps || got.Y <= 0 {
		t.Errorf("Follow = %v, want 0.1 along +y", got)
	}
}
