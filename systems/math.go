package systems

import (
	"math"

	"github.com/golang/geo/r2"
)

// Clamp functions for common value ranges

// Clamp clamps v between minVal and maxVal.
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// MapRange linearly maps v from [inLo, inHi] to [outLo, outHi] without clamping.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

// Vector helpers

// Limit caps the magnitude of v at maxMag.
func Limit(v r2.Point, maxMag float64) r2.Point {
	n := v.Norm()
	if n > maxMag && n > 0 {
		return v.Mul(maxMag / n)
	}
	return v
}

// SetMag scales v to magnitude mag. The zero vector stays zero.
func SetMag(v r2.Point, mag float64) r2.Point {
	return v.Normalize().Mul(mag)
}

// FromAngle returns a vector of magnitude mag pointing at angle radians.
func FromAngle(angle, mag float64) r2.Point {
	return r2.Point{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
}

// Heading returns the angle of v in radians.
func Heading(v r2.Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// CircleArea returns the area of a disk of radius r.
func CircleArea(r float64) float64 {
	return math.Pi * r * r
}

// RadiusForArea inverts CircleArea.
func RadiusForArea(area float64) float64 {
	return math.Sqrt(area / math.Pi)
}
