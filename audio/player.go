package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/slime/config"
)

// Player mixes cues onto the speaker. Every method is safe to call before
// Initialize or after it failed, in which case cues are dropped.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [cueCount]int
}

// NewPlayer creates a player. Call Initialize to open the speaker.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
	}
}

// Initialize opens the speaker and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	slog.Debug("audio initialized", "sample_rate", p.cfg.SampleRate)
	return nil
}

// Play queues a cue pitched for an agent of radius r.
func (p *Player) Play(cue Cue, r float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted {
		return
	}
	p.played[cue]++
	if !p.initialized {
		return
	}

	s := Synthesize(cue, Pitch(r), p.cfg)
	if s == nil {
		return
	}
	// The speaker goroutine reads the mixer
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// SetMuted silences or resumes cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether cues are silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many times a cue was requested while unmuted.
func (p *Player) Played(cue Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Close clears pending cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
