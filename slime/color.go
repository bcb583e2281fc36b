package slime

import (
	"math"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/systems"
)

// SplitChannel divides parent channel p into two valid channels whose mean
// is exactly p. c1 is drawn uniformly from the range that keeps c2 in [0, 255].
func SplitChannel(p float64, rng *systems.RNG) (c1, c2 float64) {
	lo := math.Max(0, 2*p-255)
	hi := math.Min(255, 2*p)
	c1 = rng.Range(lo, hi)
	c2 = 2*p - c1
	return c1, c2
}

// SplitColor splits each RGB channel independently. Alpha is copied.
func SplitColor(c components.Color, rng *systems.RNG) (components.Color, components.Color) {
	r1, r2 := SplitChannel(c.R, rng)
	g1, g2 := SplitChannel(c.G, rng)
	b1, b2 := SplitChannel(c.B, rng)
	return components.Color{R: r1, G: g1, B: b1, A: c.A},
		components.Color{R: r2, G: g2, B: b2, A: c.A}
}

// MergeColor is the area-weighted RGB average. Alpha comes from a.
func MergeColor(a components.Color, areaA float64, b components.Color, areaB float64) components.Color {
	total := areaA + areaB
	return components.Color{
		R: (a.R*areaA + b.R*areaB) / total,
		G: (a.G*areaA + b.G*areaB) / total,
		B: (a.B*areaA + b.B*areaB) / total,
		A: a.A,
	}
}
