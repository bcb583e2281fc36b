package systems

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/config"
)

// FlowSampler provides flow vectors at world positions.
type FlowSampler interface {
	Lookup(x, y float64) r2.Point
}

// FlowField is a coarse grid of unit direction vectors generated from
// Perlin noise. It is read-only between explicit regenerations.
type FlowField struct {
	cfg        config.FlowFieldConfig
	cols, rows int
	resolution float64
	field      []r2.Point
	seed       int64
}

// NewFlowField creates a field covering a width x height world and fills it.
func NewFlowField(width, height float64, cfg config.FlowFieldConfig, seed int64) *FlowField {
	res := float64(cfg.Resolution)
	cols := int(width / res)
	rows := int(height / res)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	f := &FlowField{
		cfg:        cfg,
		cols:       cols,
		rows:       rows,
		resolution: res,
		field:      make([]r2.Point, cols*rows),
	}
	f.Regenerate(seed)
	return f
}

// Regenerate recomputes every cell from a fresh noise field.
func (f *FlowField) Regenerate(seed int64) {
	f.seed = seed
	octaves := int32(f.cfg.Octaves)
	if octaves < 1 {
		octaves = 1
	}
	noise := perlin.NewPerlin(f.cfg.Alpha, f.cfg.Beta, octaves, seed)

	xoff := 0.0
	for i := 0; i < f.cols; i++ {
		yoff := 0.0
		for j := 0; j < f.rows; j++ {
			// Noise2D is roughly [-1, 1]; shift to [0, 1] before scaling to an angle
			n := Clamp((noise.Noise2D(xoff, yoff)+1)/2, 0, 1)
			angle := n * 2 * math.Pi * f.cfg.Turns
			f.field[i*f.rows+j] = FromAngle(angle, 1)
			yoff += f.cfg.Step
		}
		xoff += f.cfg.Step
	}
}

// Lookup returns the vector of the cell containing (x, y). Coordinates
// outside the world are clamped to the nearest edge cell.
func (f *FlowField) Lookup(x, y float64) r2.Point {
	col := int(Clamp(math.Floor(x/f.resolution), 0, float64(f.cols-1)))
	row := int(Clamp(math.Floor(y/f.resolution), 0, float64(f.rows-1)))
	return f.field[col*f.rows+row]
}

// At returns the vector of cell (col, row). Used for debug drawing.
func (f *FlowField) At(col, row int) r2.Point {
	return f.field[col*f.rows+row]
}

// Size returns the grid dimensions.
func (f *FlowField) Size() (cols, rows int) {
	return f.cols, f.rows
}

// Resolution returns the cell size in world units.
func (f *FlowField) Resolution() float64 {
	return f.resolution
}

// Seed returns the seed of the current field.
func (f *FlowField) Seed() int64 {
	return f.seed
}
