// Flow field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/flowpreview [--config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/renderer"
	"github.com/pthm-cable/slime/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 640
	previewH     = 480
	panelWidth   = windowWidth - previewW - 30
)

var paper = rl.Color{R: 230, G: 240, B: 255, A: 255}

// slider describes one tunable flow field parameter.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.FlowFieldConfig) float32
	set      func(*config.FlowFieldConfig, float32)
}

var sliders = []slider{
	{
		label: "Resolution (cell size px)", min: 5, max: 80, format: "%.0f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Resolution) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Resolution = int(v) },
	},
	{
		label: "Step (noise offset per cell)", min: 0.005, max: 0.5, format: "%.3f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Step) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Step = float64(v) },
	},
	{
		label: "Turns (angle range)", min: 0.25, max: 8, format: "%.2f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Turns) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Turns = float64(v) },
	},
	{
		label: "Alpha (persistence divisor)", min: 1, max: 4, format: "%.2f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Alpha) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Alpha = float64(v) },
	},
	{
		label: "Beta (frequency multiplier)", min: 1, max: 4, format: "%.2f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Beta) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Beta = float64(v) },
	},
	{
		label: "Octaves", min: 1, max: 8, format: "%.0f",
		get: func(c *config.FlowFieldConfig) float32 { return float32(c.Octaves) },
		set: func(c *config.FlowFieldConfig, v float32) { c.Octaves = int(v) },
	},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := cfg.FlowField
	params := defaults
	var seed int64 = 12345

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	field := systems.NewFlowField(previewW, previewH, params, seed)
	flow := renderer.NewFlowRenderer()
	defer flow.Unload()
	showHeat := true
	needsRegen := false

	camera := rl.Camera2D{Offset: rl.Vector2{X: 10, Y: 10}, Zoom: 1}

	for !rl.WindowShouldClose() {
		if needsRegen {
			if params.Resolution < 1 {
				params.Resolution = 1
			}
			field = systems.NewFlowField(previewW, previewH, params, seed)
			flow.Invalidate()
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginMode2D(camera)
		rl.DrawRectangle(0, 0, previewW, previewH, paper)
		if showHeat {
			drawHeat(field)
		}
		flow.Draw(field)
		rl.EndMode2D()
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		cols, rows := field.Size()
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Cells: %dx%d  Seed: %d", cols, rows, seed), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Mean heading: %.1f deg", meanHeading(field)), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get(&params)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(s.format, s.min), fmt.Sprintf(s.format, s.max),
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&params, next)
				// Integer parameters only regenerate when the rounded value moves
				if s.get(&params) != cur {
					needsRegen = true
				}
			}
			panelY += 35
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showHeat, "Hide Heat", "Show Heat")) {
			showHeat = !showHeat
		}
		panelY += 50

		// Output YAML
		out := flowYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// flowYAML renders params as a flow_field block ready to paste into config.yaml.
func flowYAML(params config.FlowFieldConfig) string {
	data, err := yaml.Marshal(map[string]config.FlowFieldConfig{"flow_field": params})
	if err != nil {
		return "flow_field: {}\n"
	}
	return string(data)
}

// drawHeat shades each cell by its heading so large scale structure is
// visible behind the vector lines.
func drawHeat(field *systems.FlowField) {
	cols, rows := field.Size()
	res := int32(field.Resolution())
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			v := field.At(col, row)
			angle := math.Atan2(v.Y, v.X)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			hue := float32(angle * 180 / math.Pi)
			c := rl.ColorFromHSV(hue, 0.35, 1)
			c.A = 90
			rl.DrawRectangle(int32(col)*res, int32(row)*res, res, res, c)
		}
	}
}

// meanHeading returns the direction of the summed field vectors in degrees.
func meanHeading(field *systems.FlowField) float64 {
	cols, rows := field.Size()
	var sx, sy float64
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			v := field.At(col, row)
			sx += v.X
			sy += v.Y
		}
	}
	return math.Atan2(sy, sx) * 180 / math.Pi
}
