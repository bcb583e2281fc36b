package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/telemetry"
)

var hudText = rl.Color{R: 40, G: 40, B: 60, A: 255}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	CountByKind []int // Indexed by components.Kind
	Effects     int
	Frame       int64
	Speed       int
	FPS         int32
	Paused      bool
	Painter     bool
	Muted       bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, hudText)

	total := 0
	for _, n := range data.CountByKind {
		total += n
	}
	counts := fmt.Sprintf("Slimes: %d", total)
	for k, n := range data.CountByKind {
		counts += fmt.Sprintf(" | %s: %d", components.Kind(k), n)
	}
	rl.DrawText(counts, 10, 35, 16, hudText)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | Speed: %dx | FPS: %d | Effects: %d", data.Frame, data.Speed, data.FPS, data.Effects),
		10, 55, 16, hudText,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Painter {
		status += " | Painter"
	}
	if data.Muted {
		status += " | Muted"
	}
	rl.DrawText(status, 10, 75, 16, rl.Maroon)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders tick timing by simulation phase.
type PerfPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(anchor PanelAnchor, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		anchor:   anchor,
		width:    width,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, screenW, screenH int32) {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	height := padding*2 + lineHeight*int32(3+len(telemetry.Phases))

	x, y := p.anchor.Place(p.width, height, screenW, screenH, 10)
	r.DrawPanel(x, y, p.width, height)
	x += padding
	y += padding

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += lineHeight + 4

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%s (%.0f/s)",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.1f", stats.FPS))

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		if pct > 40 {
			color = r.Theme.HotColor
		} else if pct > 20 {
			color = r.Theme.WarnColor
		}
		rl.DrawText(
			fmt.Sprintf("%-11s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += lineHeight
	}
}
