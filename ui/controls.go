package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsAction reports the buttons pressed in a controls frame.
type ControlsAction struct {
	RegenerateField bool
	ClearPaint      bool
}

// ControlsPanel renders the overlay toggles and field buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel, so
// clicks on it are not forwarded to the simulation.
func (c *ControlsPanel) Contains(x, y float32, overlays *OverlayRegistry) bool {
	if !c.visible {
		return false
	}
	h := c.height(overlays)
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+h)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	items := len(overlays.All()) + len(overlays.Categories())
	// Title, items, two buttons
	return t.Padding*3 + t.LineHeight + int32(items)*(t.LineHeight+2) + 2*24
}

// Draw renders the panel and applies checkbox changes to overlays.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) ControlsAction {
	var action ControlsAction
	if !c.visible {
		return action
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))
	y := c.y + padding

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			bounds := rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 12, Height: 12}
			was := overlays.IsEnabled(desc.ID)
			if now := gui.CheckBox(bounds, desc.Name, was); now != was {
				overlays.SetEnabled(desc.ID, now)
			}
			if desc.KeyLabel != "" {
				keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
				keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
				rl.DrawText(keyText, c.x+c.width-padding-keyWidth, y, r.Theme.FontSize, r.Theme.MutedColor)
			}
			y += lineHeight + 2
		}
	}

	y += padding / 2
	buttonW := float32(c.width - padding*2)
	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonW, Height: 20}, "New flow field [Space]") {
		action.RegenerateField = true
	}
	y += 24
	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonW, Height: 20}, "Clear paint [C]") {
		action.ClearPaint = true
	}

	return action
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	case "audio":
		return "Audio"
	default:
		return cat
	}
}
