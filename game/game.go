// Package game wires the slime simulation to input, rendering, audio and
// telemetry. Headless runs skip everything that needs a window.
package game

import (
	"log/slog"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/audio"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/renderer"
	"github.com/pthm-cable/slime/slime"
	"github.com/pthm-cable/slime/telemetry"
	"github.com/pthm-cable/slime/ui"
)

// maxStepsPerUpdate caps the speed multiplier.
const maxStepsPerUpdate = 10

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool   // Log window stats and bookmarks via slog
	OutputDir      string // CSV and config output, empty to disable
	Headless       bool
	StepsPerUpdate int
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	sim     *slime.Simulation
	rngSeed int64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	audio    *audio.Player
	overlays *ui.OverlayRegistry

	// Rendering, nil when headless
	background *renderer.BackgroundRenderer
	slimes     *renderer.SlimeRenderer
	flow       *renderer.FlowRenderer
	particles  *renderer.ParticleRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	inspector  *ui.Inspector
	controls   *ui.ControlsPanel

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	pointer        *r2.Point
	hovered        uint64 // Agent under the cursor, 0 for none
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:              cfg,
		sim:              slime.New(cfg, opts.Seed),
		rngSeed:          opts.Seed,
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		audio:            audio.NewPlayer(cfg.Audio),
		overlays:         ui.NewOverlayRegistry(),
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
	}
	g.sim.SetPhaseTimer(g.perfCollector)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if !cfg.Audio.Enabled || opts.Headless {
		g.overlays.SetEnabled(ui.OverlayAudio, false)
	}
	g.audio.SetMuted(!g.overlays.IsEnabled(ui.OverlayAudio))

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"world_w", cfg.Derived.WorldW,
		"world_h", cfg.Derived.WorldH,
		"population", g.sim.Population().Len(),
		"headless", opts.Headless,
	)
	return g
}

// initGraphics builds the renderers and starts the speaker. It must run
// after the raylib window exists.
func (g *Game) initGraphics() {
	w, h := int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)

	g.background = renderer.NewBackgroundRenderer(w, h, renderer.Paper)
	g.background.Init()
	g.slimes = renderer.NewSlimeRenderer(g.sim.Noise(), g.cfg.Motion.MaxSpeed)
	g.flow = renderer.NewFlowRenderer()
	g.particles = renderer.NewParticleRenderer()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(ui.AnchorTopRight, 300)
	g.inspector = ui.NewInspector(ui.AnchorTopRight, 240)
	g.controls = ui.NewControlsPanel(10, 100, 220)

	if g.cfg.Audio.Enabled {
		if err := g.audio.Initialize(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
	}
}

// Update processes input and advances the simulation (graphical mode).
func (g *Game) Update() {
	g.handleInput()
	g.audio.SetMuted(!g.overlays.IsEnabled(ui.OverlayAudio))

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}
	g.perfCollector.RecordFrame()
}

// UpdateHeadless advances the simulation without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs one simulation frame with perf timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()

	rep := g.sim.Step(slime.FrameInput{Pointer: g.pointer})

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordReport(rep)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Click applies a click at world coordinates and records its outcome.
func (g *Game) Click(x, y float64) slime.ClickOutcome {
	out := g.sim.Click(x, y)
	g.recordClick(out)
	return out
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *slime.Simulation {
	return g.sim
}

// Tick returns the number of simulated frames.
func (g *Game) Tick() int64 {
	return g.sim.Frame()
}

// Unload releases resources and flushes output files.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
	g.audio.Close()

	if g.background != nil {
		g.background.Unload()
		g.background = nil
	}
	if g.flow != nil {
		g.flow.Unload()
		g.flow = nil
	}
}
