package renderer

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
	"github.com/pthm-cable/slime/systems"
)

// Outline jitter. Amplitudes are fractions of the radius.
const (
	wobbleSpeed   = 0.01 // Noise time per frame
	noiseScale    = 0.05 // Corner position to noise space
	circleWobble  = 0.2
	cornerWobble  = 0.4
	circleNoise   = 0.5 // Extent of the noise loop sampled around a circle
	circleStep    = 0.1 // Radians between circle vertices
	curveSegments = 6   // Spline samples per control point
	maxStretch    = 1.35
)

// Outline returns the body outline in local space, centred on the origin
// and unrotated. The shape breathes with the noise field over frames.
func Outline(b *slime.Body, noise *systems.Noise, frame int64) []r2.Point {
	t := b.NoiseSeed + float64(frame)*wobbleSpeed
	r := b.R

	switch b.Shape {
	case components.ShapeSquare:
		corners := []r2.Point{{X: -r, Y: -r}, {X: r, Y: -r}, {X: r, Y: r}, {X: -r, Y: r}}
		return CatmullRom(jitter(corners, r, t, 0, 100, noise), curveSegments)
	case components.ShapeTriangle:
		corners := []r2.Point{{X: 0, Y: -r * 1.15}, {X: -r, Y: r * 0.85}, {X: r, Y: r * 0.85}}
		return CatmullRom(jitter(corners, r, t, 0, 200, noise), curveSegments)
	case components.ShapeArrow:
		corners := []r2.Point{
			{X: r * 1.3, Y: 0},
			{X: 0, Y: -r},
			{X: -r * 0.4, Y: -r * 0.5},
			{X: -r * 0.8, Y: -r * 0.5},
			{X: -r * 0.8, Y: r * 0.5},
			{X: -r * 0.4, Y: r * 0.5},
			{X: 0, Y: r},
		}
		return CatmullRom(jitter(corners, r, t, 300, 400, noise), curveSegments)
	}

	// Circle, bomb and killer share the wobbling disk
	var pts []r2.Point
	for a := 0.0; a < 2*math.Pi; a += circleStep {
		xoff := systems.MapRange(math.Cos(a), -1, 1, 0, circleNoise)
		yoff := systems.MapRange(math.Sin(a), -1, 1, 0, circleNoise)
		rr := r + systems.MapRange(noise.Noise3D(xoff, yoff, t), 0, 1, -r*circleWobble, r*circleWobble)
		pts = append(pts, systems.FromAngle(a, rr))
	}
	return pts
}

// jitter displaces each corner by noise sampled at the corner itself.
// The y offset samples at the already shifted x.
func jitter(pts []r2.Point, r, t, offX, offY float64, noise *systems.Noise) []r2.Point {
	amp := r * cornerWobble
	for i := range pts {
		p := &pts[i]
		p.X += systems.MapRange(noise.Noise3D(p.X*noiseScale, p.Y*noiseScale, t+offX), 0, 1, -amp, amp)
		p.Y += systems.MapRange(noise.Noise3D(p.X*noiseScale, p.Y*noiseScale, t+offY), 0, 1, -amp, amp)
	}
	return pts
}

// CatmullRom samples a closed uniform Catmull-Rom spline through pts.
// The result passes through every control point, at index i*segments.
func CatmullRom(pts []r2.Point, segments int) []r2.Point {
	n := len(pts)
	if n < 3 || segments < 1 {
		return pts
	}
	out := make([]r2.Point, 0, n*segments)
	for i := 0; i < n; i++ {
		p0 := pts[(i-1+n)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		p3 := pts[(i+2)%n]
		for s := 0; s < segments; s++ {
			t := float64(s) / float64(segments)
			t2, t3 := t*t, t*t*t
			a := p1.Mul(2)
			b := p2.Sub(p0).Mul(t)
			c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)
			d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)
			out = append(out, a.Add(b).Add(c).Add(d).Mul(0.5))
		}
	}
	return out
}

// ClusterHull orders soft-body points by angle around center and returns
// them relative to center, smoothed into a closed curve.
func ClusterHull(points []r2.Point, center r2.Point) []r2.Point {
	local := make([]r2.Point, len(points))
	for i, p := range points {
		local[i] = p.Sub(center)
	}
	sort.Slice(local, func(i, j int) bool {
		return positiveAngle(local[i]) < positiveAngle(local[j])
	})
	return CatmullRom(local, curveSegments)
}

func positiveAngle(p r2.Point) float64 {
	a := systems.Heading(p)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// SquashStretch returns the heading in degrees and the axis scales for a
// body moving at vel. Faster bodies stretch along their heading.
func SquashStretch(vel r2.Point, maxSpeed float64) (angle, stretch, squash float64) {
	if maxSpeed <= 0 {
		return 0, 1, 1
	}
	stretch = systems.Clamp(systems.MapRange(vel.Norm(), 0, maxSpeed, 1, maxStretch), 1, maxStretch)
	return systems.Heading(vel) * 180 / math.Pi, stretch, 1 / stretch
}

// Dashes splits the segment a-b into dash segments separated by gaps.
// The last dash is clipped at b.
func Dashes(a, b r2.Point, dash, gap float64) [][2]r2.Point {
	length := systems.Dist(a, b)
	if length == 0 || dash <= 0 {
		return nil
	}
	dir := b.Sub(a).Mul(1 / length)
	var out [][2]r2.Point
	for d := 0.0; d < length; d += dash + gap {
		end := math.Min(d+dash, length)
		out = append(out, [2]r2.Point{a.Add(dir.Mul(d)), a.Add(dir.Mul(end))})
	}
	return out
}

// OrbitPoints returns the decorative particle positions around a black hole.
func OrbitPoints(h *slime.BlackHole) []r2.Point {
	orbits := h.Orbits()
	pts := make([]r2.Point, len(orbits))
	for i, o := range orbits {
		pts[i] = h.Pos.Add(systems.FromAngle(o.Angle, o.Dist))
	}
	return pts
}
