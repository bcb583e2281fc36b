package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/renderer"
	"github.com/pthm-cable/slime/ui"
)

const controlsLegend = "Click: split / fire | Space: new field | Enter: pause | , .: speed | C: clear paint | Tab: controls | P D G I F M: overlays"

// Draw renders the scene layer, then the UI on top of it.
func (g *Game) Draw() {
	sim := g.sim
	frame := sim.Frame()

	rl.BeginDrawing()

	// Droplets go onto the paint canvas before the scene samples it
	g.particles.Stamp(sim.Effects(), g.background)

	g.background.BeginScene(g.overlays.IsEnabled(ui.OverlayPainter))
	if g.overlays.IsEnabled(ui.OverlayFlowField) {
		g.flow.Draw(sim.Field())
	}
	g.particles.Draw(sim.Effects())
	g.slimes.ShowGaze = g.overlays.IsEnabled(ui.OverlayGaze)
	g.slimes.Draw(sim.Population(), frame)
	renderer.DrawCannon(sim.Launcher())
	g.background.EndScene()

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	w, h := int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)

	g.hud.Draw(ui.HUDData{
		Title:       "Slime",
		CountByKind: g.sim.Population().CountByKind(),
		Effects:     g.sim.Effects().Count(),
		Frame:       g.sim.Frame(),
		Speed:       g.stepsPerUpdate,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		Painter:     g.overlays.IsEnabled(ui.OverlayPainter),
		Muted:       g.audio.Muted(),
	})

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if a, ok := g.hoveredAgent(); ok {
			g.inspector.Draw(a, g.sim.Population(), w, h)
		}
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), w, h)
	}

	action := g.controls.Draw(g.overlays)
	if action.RegenerateField {
		g.sim.RegenerateField()
	}
	if action.ClearPaint {
		g.background.ClearPaint()
	}

	g.hud.DrawControls(h, controlsLegend)
}
