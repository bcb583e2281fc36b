package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
)

// Inspector renders a card for a single agent.
type Inspector struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
	fields   []components.FieldDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(anchor PanelAnchor, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		anchor:   anchor,
		width:    width,
		fields:   components.AgentFieldDescriptors(),
	}
}

// InspectorRow is one resolved field of the card.
type InspectorRow struct {
	Field components.FieldDescriptor
	Value float64
}

// Rows resolves the fields that apply to agent a. Fields the agent does not
// have are skipped, as are zero values unless the field asks to be shown.
func Rows(fields []components.FieldDescriptor, a slime.Agent, pop *slime.Population) []InspectorRow {
	var rows []InspectorRow
	for _, fd := range fields {
		v, ok := slime.FieldValue(a, fd.ID, pop)
		if !ok || (v == 0 && !fd.ShowWhenZero) {
			continue
		}
		rows = append(rows, InspectorRow{Field: fd, Value: v})
	}
	return rows
}

// Draw renders the card for agent a.
func (ins *Inspector) Draw(a slime.Agent, pop *slime.Population, screenW, screenH int32) {
	r := ins.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	b := a.State()

	rows := Rows(ins.fields, a, pop)
	const previewHeight = 60
	height := padding*3 + previewHeight + lineHeight*int32(3+len(rows)) + 2*int32(len(rows))

	x, y := ins.anchor.Place(ins.width, height, screenW, screenH, 10)
	r.DrawPanel(x, y, ins.width, height)
	x += padding
	y += padding
	content := ins.width - padding*2

	ins.drawPreview(x, y, content, previewHeight, b)
	y += previewHeight + padding

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("#%d %s", b.ID, a.Kind()))
	y = r.DrawLabelValue(x, y, "Shape", b.Shape.String())
	red, green, blue, alpha := b.Color.RGBA8()
	y = r.DrawColorSwatch(x, y, "Color", rl.Color{R: red, G: green, B: blue, A: alpha})

	for _, row := range rows {
		y = r.DrawField(x, y, row.Field, row.Value, content)
	}
}

// drawPreview shows the agent's colour as a disc sized relative to the
// largest spawnable radius, with its expression name underneath.
func (ins *Inspector) drawPreview(x, y, width, height int32, b *slime.Body) {
	rl.DrawRectangle(x, y, width, height, rl.Color{R: 25, G: 30, B: 35, A: 255})
	rl.DrawRectangleLines(x, y, width, height, ins.renderer.Theme.PanelBorder)

	red, green, blue, _ := b.Color.RGBA8()
	maxR := float32(height)/2 - 6
	radius := float32(b.R) / 4
	if radius > maxR {
		radius = maxR
	}
	if radius < 3 {
		radius = 3
	}
	center := rl.Vector2{X: float32(x + width/2), Y: float32(y + height/2)}
	rl.DrawCircleV(center, radius, rl.Color{R: red, G: green, B: blue, A: 255})
	rl.DrawText(b.Expression.String(), x+4, y+height-14, 10, ins.renderer.Theme.MutedColor)
}
