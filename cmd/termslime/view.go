package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
)

// Viewport maps world coordinates onto a grid of terminal cells.
type Viewport struct {
	Cols, Rows     int
	WorldW, WorldH float64
}

// CellCenter returns the world position sampled for cell (col, row).
func (v Viewport) CellCenter(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * v.WorldW / float64(v.Cols)
	y = (float64(row) + 0.5) * v.WorldH / float64(v.Rows)
	return x, y
}

// ToWorld maps a terminal cell to world coordinates. Used for mouse clicks.
func (v Viewport) ToWorld(col, row int) (x, y float64, ok bool) {
	if col < 0 || row < 0 || col >= v.Cols || row >= v.Rows {
		return 0, 0, false
	}
	x, y = v.CellCenter(col, row)
	return x, y, true
}

// Glyph returns the rune used to draw an agent of the given shape.
func Glyph(shape components.Shape) rune {
	switch shape {
	case components.ShapeBomb:
		return '*'
	case components.ShapeArrow:
		return '>'
	case components.ShapeKiller:
		return 'X'
	case components.ShapeCluster:
		return '%'
	case components.ShapeBlackHole:
		return '@'
	case components.ShapeTriangle:
		return '^'
	case components.ShapeSquare:
		return '#'
	}
	return 'o'
}

// Cell is one rendered terminal cell.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var (
	emptyCell  = Cell{Rune: ' ', Style: tcell.StyleDefault}
	cannonCell = Cell{Rune: '=', Style: tcell.StyleDefault.Foreground(tcell.ColorGray)}
)

// Rasterize samples the simulation at every cell centre. The topmost agent
// covering a centre wins, matching the click order.
func Rasterize(sim *slime.Simulation, v Viewport) []Cell {
	cells := make([]Cell, v.Cols*v.Rows)
	pop := sim.Population()
	launcher := sim.Launcher()
	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			x, y := v.CellCenter(col, row)
			c := emptyCell
			if _, a, ok := pop.TopmostAt(x, y); ok {
				b := a.State()
				c = Cell{Rune: Glyph(b.Shape), Style: agentStyle(b.Color)}
			} else if launcher.IsClicked(x, y) {
				c = cannonCell
			}
			cells[row*v.Cols+col] = c
		}
	}
	return cells
}

// agentStyle draws agents in their own colour at full opacity since
// terminals have no alpha.
func agentStyle(c components.Color) tcell.Style {
	fg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	return tcell.StyleDefault.Foreground(fg).Bold(true)
}
