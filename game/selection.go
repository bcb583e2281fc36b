package game

import (
	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/slime"
)

// updatePointer tracks the cursor in world coordinates. A nil pointer means
// the cursor is off the window, which leaves arrows to wander.
func (g *Game) updatePointer(x, y float32, onScreen bool) {
	if !onScreen {
		g.pointer = nil
		g.hovered = 0
		return
	}
	g.pointer = &r2.Point{X: float64(x), Y: float64(y)}

	g.hovered = 0
	if _, a, ok := g.sim.Population().TopmostAt(g.pointer.X, g.pointer.Y); ok {
		g.hovered = a.State().ID
	}
}

// hoveredAgent resolves the agent under the cursor, if it still exists.
func (g *Game) hoveredAgent() (slime.Agent, bool) {
	if g.hovered == 0 {
		return nil, false
	}
	return g.sim.Population().Find(g.hovered)
}
