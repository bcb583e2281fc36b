package systems

import "github.com/golang/geo/r2"

// Steering force calculators. Every force is desired velocity minus current
// velocity, capped at maxForce.

// Seek steers toward target at full speed.
func Seek(pos, vel, target r2.Point, maxSpeed, maxForce float64) r2.Point {
	desired := SetMag(target.Sub(pos), maxSpeed)
	return Limit(desired.Sub(vel), maxForce)
}

// Flee steers directly away from threat at full speed.
func Flee(pos, vel, threat r2.Point, maxSpeed, maxForce float64) r2.Point {
	desired := SetMag(pos.Sub(threat), maxSpeed)
	return Limit(desired.Sub(vel), maxForce)
}

// Arrive seeks target but ramps the desired speed linearly down to zero
// once inside slowRadius.
func Arrive(pos, vel, target r2.Point, maxSpeed, maxForce, slowRadius float64) r2.Point {
	offset := target.Sub(pos)
	d := offset.Norm()
	speed := maxSpeed
	if d < slowRadius {
		speed = MapRange(d, 0, slowRadius, 0, maxSpeed)
	}
	desired := SetMag(offset, speed)
	return Limit(desired.Sub(vel), maxForce)
}

// Follow steers along a flow vector.
func Follow(vel, flow r2.Point, maxSpeed, maxForce float64) r2.Point {
	desired := flow.Mul(maxSpeed)
	return Limit(desired.Sub(vel), maxForce)
}

// Wander returns a force of magnitude mag along heading.
func Wander(heading, mag float64) r2.Point {
	return FromAngle(heading, mag)
}
