// Package audio synthesizes short sound cues for population events.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/slime/config"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueMerge Cue = iota
	CueSplit
	CueDetonate
	CueConsume
	CueLaunch
	cueCount
)

var cueNames = [...]string{"merge", "split", "detonate", "consume", "launch"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. Zero gain is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Pitch maps a radius to a frequency multiplier. Bigger slimes sound lower.
func Pitch(r float64) float64 {
	if r <= 0 {
		return 1
	}
	return math.Max(0.5, math.Min(2, 30/r))
}

// tone is a shaped oscillator lasting d.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, d/10, d/2, rate)
}

// Synthesize builds the streamer for a cue at the given pitch multiplier.
// It returns nil for an unknown cue.
func Synthesize(cue Cue, pitch float64, cfg config.AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := time.Duration(cfg.CueMillis) * time.Millisecond

	var s beep.Streamer
	switch cue {
	case CueMerge:
		// Soft blop, fifth above the root
		s = beep.Mix(
			newVolume(tone(220*pitch, d, WaveSine, rate), 0.7),
			newVolume(tone(330*pitch, d, WaveSine, rate), 0.3),
		)
	case CueSplit:
		s = beep.Seq(
			tone(440*pitch, d/2, WaveSquare, rate),
			tone(660*pitch, d/2, WaveSquare, rate),
		)
	case CueDetonate:
		long := 3 * d
		s = beep.Mix(
			newVolume(tone(0, long, WaveNoise, rate), 0.5),
			newVolume(tone(60*pitch, long, WaveSine, rate), 0.8),
		)
	case CueConsume:
		s = beep.Seq(
			tone(330*pitch, d/2, WaveSaw, rate),
			tone(165*pitch, d, WaveSaw, rate),
		)
	case CueLaunch:
		s = tone(0, d, WaveNoise, rate)
	default:
		return nil
	}
	return newVolume(s, cfg.Volume)
}
