// Package components defines the shared data types of the simulation: agent
// tags, colours and the ECS components used by short-lived effects.
package components

// Kind is the closed set of agent variants.
type Kind uint8

const (
	KindBasic     Kind = iota // Wanders on noise, or chases the pointer when arrow-shaped
	KindKiller                // Predator steering
	KindCluster               // Soft-body aggregate
	KindBlackHole             // Stationary consumer
)

// Shape is the drawing tag carried by every agent.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeBomb
	ShapeArrow
	ShapeKiller
	ShapeCluster
	ShapeBlackHole
)

// Expression is the facial expression drawn on an agent.
type Expression uint8

const (
	ExprDefault Expression = iota
	ExprHappy
	ExprWink
	ExprSurprised
)

// ShapeNames returns the display names for all shapes.
// The order matches the Shape constants.
func ShapeNames() []string {
	return []string{"circle", "square", "triangle", "bomb", "arrow", "killer", "cluster", "blackhole"}
}

// String returns the name of the shape.
func (s Shape) String() string {
	names := ShapeNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ParseShape resolves a shape name. The second result is false for unknown names.
func ParseShape(name string) (Shape, bool) {
	for i, n := range ShapeNames() {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeCircle, false
}

// KindNames returns the display names for all kinds.
func KindNames() []string {
	return []string{"basic", "killer", "cluster", "blackhole"}
}

// String returns the name of the kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindCount returns the number of agent kinds.
func KindCount() int {
	return len(KindNames())
}

// ExpressionCount returns the number of expressions.
func ExpressionCount() int {
	return 4
}

// String returns the name of the expression.
func (e Expression) String() string {
	switch e {
	case ExprHappy:
		return "happy"
	case ExprWink:
		return "wink"
	case ExprSurprised:
		return "surprised"
	default:
		return "default"
	}
}

// Color is an RGBA colour with channels in [0, 255].
// Channels stay float64 so split and merge arithmetic is exact.
type Color struct {
	R, G, B, A float64
}

// Black is the colour of every black hole.
var Black = Color{0, 0, 0, 255}

// Scale multiplies the RGB channels by f, leaving alpha unchanged.
func (c Color) Scale(f float64) Color {
	return Color{R: clampChannel(c.R * f), G: clampChannel(c.G * f), B: clampChannel(c.B * f), A: c.A}
}

// Lerp blends c toward o by t in [0, 1], alpha included.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// RGBA8 returns the channels rounded to bytes.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(clampChannel(c.R) + 0.5), uint8(clampChannel(c.G) + 0.5),
		uint8(clampChannel(c.B) + 0.5), uint8(clampChannel(c.A) + 0.5)
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
