package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.sim.RegenerateField()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.background.ClearPaint()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	g.handleOverlayKeys()

	mouse := rl.GetMousePosition()
	g.updatePointer(mouse.X, mouse.Y, rl.IsCursorOnScreen())

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && g.pointer != nil &&
		!g.controls.Contains(mouse.X, mouse.Y, g.overlays) {
		g.Click(g.pointer.X, g.pointer.Y)
	}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}
