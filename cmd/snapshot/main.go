// Snapshot tool - runs the simulation offscreen and writes the final frame
// to a PNG file for inspection.
//
// Usage: go run ./cmd/snapshot -frames 600 -seed 7 -out frame.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/renderer"
	"github.com/pthm-cable/slime/slime"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = embedded defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	frames := flag.Int("frames", 600, "Frames to simulate before capturing")
	seed := flag.Int64("seed", 1, "Simulation seed")
	painter := flag.Bool("painter", true, "Leave motion trails (painter mode)")
	flow := flag.Bool("flow", false, "Draw the flow field")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(w, h, "Slime Snapshot")
	defer rl.CloseWindow()

	sim := slime.New(cfg, *seed)
	background := renderer.NewBackgroundRenderer(w, h, renderer.Paper)
	background.Init()
	defer background.Unload()
	particles := renderer.NewParticleRenderer()
	slimes := renderer.NewSlimeRenderer(sim.Noise(), cfg.Motion.MaxSpeed)
	flowRenderer := renderer.NewFlowRenderer()
	defer flowRenderer.Unload()

	// Every frame is drawn so painter trails and droplets build up as they
	// would on screen.
	for i := 0; i < *frames; i++ {
		sim.Step(slime.FrameInput{})

		rl.BeginDrawing()
		particles.Stamp(sim.Effects(), background)
		background.BeginScene(*painter)
		if *flow {
			flowRenderer.Draw(sim.Field())
		}
		particles.Draw(sim.Effects())
		slimes.Draw(sim.Population(), sim.Frame())
		renderer.DrawCannon(sim.Launcher())
		background.EndScene()
		rl.EndDrawing()
	}

	// Get image from the scene layer and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(background.SceneTexture())
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)
	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image: %s\n", *outPath)
		os.Exit(1)
	}

	counts := sim.Population().CountByKind()
	slog.Info("snapshot written",
		"path", *outPath,
		"frames", sim.Frame(),
		"population", sim.Population().Len(),
		"counts", counts,
	)
}
