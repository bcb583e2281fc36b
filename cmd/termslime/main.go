// Terminal viewer - runs the simulation in a terminal with tcell.
//
// Usage: go run ./cmd/termslime [--seed N] [--sound]
//
// Mouse clicks split slimes or fire the cannon. Space draws a new flow
// field, f fires the cannon, p pauses, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/slime/audio"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/slime"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

type viewer struct {
	screen tcell.Screen
	sim    *slime.Simulation
	audio  *audio.Player
	view   Viewport
	paused bool
	status string

	// tcell reports motion with the button held, so only the press edge clicks
	mouseDown bool
}

func newViewer(cfg *config.Config, seed int64, sound bool) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	v := &viewer{
		screen: screen,
		sim:    slime.New(cfg, seed),
		audio:  audio.NewPlayer(cfg.Audio),
	}
	if sound && cfg.Audio.Enabled {
		if err := v.audio.Initialize(); err != nil {
			// Non-fatal, the viewer runs without sound
			slog.Warn("audio init failed", "error", err)
			v.audio.SetMuted(true)
		}
	} else {
		v.audio.SetMuted(true)
	}
	v.resize()
	return v, nil
}

func (v *viewer) resize() {
	cols, rows := v.screen.Size()
	rows-- // status line
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	b := v.sim.Bounds()
	v.view = Viewport{Cols: cols, Rows: rows, WorldW: b.Width, WorldH: b.Height}
}

func (v *viewer) click(x, y float64) {
	out := v.sim.Click(x, y)
	switch out.Kind {
	case slime.ClickLaunched:
		v.audio.Play(audio.CueLaunch, out.Children[0].State().R)
		v.status = "fired"
	case slime.ClickSplit:
		v.audio.Play(audio.CueSplit, out.Children[0].State().R)
		v.status = fmt.Sprintf("split #%d", out.Parent)
	case slime.ClickNoSplit:
		v.status = "too small to split"
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.sim.RegenerateField()
			v.status = "new flow field"
		case 'p':
			v.paused = !v.paused
		case 'f':
			l := v.sim.Launcher()
			v.click(l.Center.X, l.Center.Y)
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.mouseDown {
			col, row := ev.Position()
			if x, y, ok := v.view.ToWorld(col, row); ok {
				v.click(x, y)
			}
		}
		v.mouseDown = down

	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

func (v *viewer) step() {
	rep := v.sim.Step(slime.FrameInput{})
	for _, ev := range rep.Events {
		switch ev.Kind {
		case slime.EventMerge:
			v.audio.Play(audio.CueMerge, ev.Size)
		case slime.EventConsume:
			v.audio.Play(audio.CueConsume, ev.Size)
		case slime.EventDetonate:
			v.audio.Play(audio.CueDetonate, ev.Size)
		}
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	cells := Rasterize(v.sim, v.view)
	for row := 0; row < v.view.Rows; row++ {
		for col := 0; col < v.view.Cols; col++ {
			c := cells[row*v.view.Cols+col]
			if c.Rune != ' ' {
				v.screen.SetContent(col, row, c.Rune, nil, c.Style)
			}
		}
	}

	line := fmt.Sprintf(" frame %d | slimes %d | %s", v.sim.Frame(), v.sim.Population().Len(), v.status)
	if v.paused {
		line += " | PAUSED"
	}
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(line) {
		if i >= v.view.Cols {
			break
		}
		v.screen.SetContent(i, v.view.Rows, r, nil, style)
	}
	v.screen.Show()
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(v.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused {
				v.step()
			}
			v.draw()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or done
// is closed.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (v *viewer) cleanup() {
	v.audio.Close()
	v.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = embedded defaults)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Simulation seed")
	sound := flag.Bool("sound", false, "Play audio cues")
	flag.Parse()

	// tcell owns the terminal; only errors reach stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(config.Cfg(), *seed, *sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
}
