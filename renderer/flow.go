// Package renderer draws the slime population, its effects and the flow
// field with raylib. Outline geometry lives in pure functions so it can be
// tested without a window.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/systems"
)

var flowColor = rl.Color{R: 150, G: 150, B: 150, A: 100}

// FlowRenderer draws the flow field as one short line per cell.
type FlowRenderer struct {
	// Cached segment endpoints, rebuilt when the field seed changes
	segments []rl.Vector2
	seed     int64
	built    bool
}

// NewFlowRenderer creates a new flow renderer.
func NewFlowRenderer() *FlowRenderer {
	return &FlowRenderer{}
}

// Draw renders the field vectors from each cell's corner.
func (r *FlowRenderer) Draw(field *systems.FlowField) {
	if field == nil {
		return
	}
	if !r.built || field.Seed() != r.seed {
		r.rebuild(field)
	}
	for i := 0; i+1 < len(r.segments); i += 2 {
		rl.DrawLineV(r.segments[i], r.segments[i+1], flowColor)
	}
}

func (r *FlowRenderer) rebuild(field *systems.FlowField) {
	cols, rows := field.Size()
	res := field.Resolution()
	length := res - 2

	r.segments = r.segments[:0]
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := field.At(col, row)
			x, y := float64(col)*res, float64(row)*res
			r.segments = append(r.segments,
				rl.Vector2{X: float32(x), Y: float32(y)},
				rl.Vector2{X: float32(x + v.X*length), Y: float32(y + v.Y*length)},
			)
		}
	}
	r.seed = field.Seed()
	r.built = true
}

// Invalidate forces a rebuild on the next Draw. Needed when the field is
// replaced by one that shares the previous seed.
func (r *FlowRenderer) Invalidate() {
	r.built = false
}

// Unload frees resources.
func (r *FlowRenderer) Unload() {
	r.segments = nil
	r.built = false
}
