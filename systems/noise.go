package systems

import (
	"github.com/ojrac/opensimplex-go"
)

// Noise generates coherent noise values in [0, 1].
// Agents sample it for wander headings; the renderer uses it for outline wobble.
type Noise struct {
	gen opensimplex.Noise
}

// NewNoise creates a noise generator for the given seed.
func NewNoise(seed int64) *Noise {
	return &Noise{gen: opensimplex.NewNormalized(seed)}
}

// Noise1D samples a 1D slice of the field. Different y values give
// independent curves.
func (n *Noise) Noise1D(t, y float64) float64 {
	return n.gen.Eval2(t, y)
}

// Noise2D samples the field at (x, y).
func (n *Noise) Noise2D(x, y float64) float64 {
	return n.gen.Eval2(x, y)
}

// Noise3D samples the field at (x, y, z).
func (n *Noise) Noise3D(x, y, z float64) float64 {
	return n.gen.Eval3(x, y, z)
}
