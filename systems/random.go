package systems

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
)

// RNG is the simulation's random source. The same source feeds gonum
// distributions so a seed reproduces every draw.
type RNG struct {
	*rand.Rand
	src rand.Source
}

// NewRNG creates a seeded random source.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &RNG{Rand: rand.New(src), src: src}
}

// Range returns a uniform value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Sign returns -1 or +1 with equal probability.
func (r *RNG) Sign() float64 {
	if r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// UnitVector returns a uniformly oriented unit vector.
func (r *RNG) UnitVector() r2.Point {
	return FromAngle(r.Float64()*2*math.Pi, 1)
}

// Normal draws from a gaussian with the given mean and standard deviation.
func (r *RNG) Normal(mu, sigma float64) float64 {
	if sigma <= 0 {
		return mu
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: r.src}.Rand()
}

// Source exposes the underlying source for other gonum consumers.
func (r *RNG) Source() rand.Source {
	return r.src
}

// ShapeTable draws shapes with fixed relative weights.
type ShapeTable struct {
	shapes []components.Shape
	dist   distuv.Categorical
}

// NewShapeTable builds a table from config weights. It panics on an empty
// table or an unknown shape name; both are configuration bugs.
func NewShapeTable(weights []config.ShapeWeight, rng *RNG) *ShapeTable {
	if len(weights) == 0 {
		panic("systems: empty shape table")
	}
	shapes := make([]components.Shape, len(weights))
	w := make([]float64, len(weights))
	for i, sw := range weights {
		shape, ok := components.ParseShape(sw.Name)
		if !ok {
			panic(fmt.Sprintf("systems: unknown shape %q", sw.Name))
		}
		shapes[i] = shape
		w[i] = sw.Weight
	}
	return &ShapeTable{
		shapes: shapes,
		dist:   distuv.NewCategorical(w, rng.Source()),
	}
}

// Pick draws a shape.
func (t *ShapeTable) Pick() components.Shape {
	return t.shapes[int(t.dist.Rand())]
}

// Shapes returns the shapes the table can produce.
func (t *ShapeTable) Shapes() []components.Shape {
	return t.shapes
}
