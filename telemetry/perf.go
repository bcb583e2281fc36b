package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step, in execution order.
const (
	PhaseForces     = "forces"
	PhaseSolver     = "solver"
	PhaseCollisions = "collisions"
	PhaseMovement   = "movement"
	PhaseEffects    = "effects"
	PhaseTelemetry  = "telemetry"
)

// Phases lists every step phase in execution order.
var Phases = []string{
	PhaseForces, PhaseSolver, PhaseCollisions,
	PhaseMovement, PhaseEffects, PhaseTelemetry,
}

// frameSmoothing is the weight of the newest frame in the FPS average.
const frameSmoothing = 0.1

// tickSample is the timing of one simulation tick.
type tickSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector times simulation ticks and their phases over a ring of the
// most recent ticks. Phase sums are kept incrementally so Stats does not
// rescan every phase map.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	phaseSum map[string]time.Duration
	tickSum  time.Duration

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring:     make([]tickSample, window),
		phaseSum: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{phases: make(map[string]time.Duration, len(Phases))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and pushes it into the ring, evicting the oldest.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""
	p.cur.total = now.Sub(p.tickStart)

	if p.count == len(p.ring) {
		old := p.ring[p.next]
		p.tickSum -= old.total
		for name, d := range old.phases {
			p.phaseSum[name] -= d
		}
	} else {
		p.count++
	}
	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)

	p.tickSum += p.cur.total
	for name, d := range p.cur.phases {
		p.phaseSum[name] += d
	}
}

// RecordFrame marks the end of a rendered frame. The frame time is an
// exponential moving average so the HUD does not flicker.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		d := now.Sub(p.lastFrame)
		if p.frameDur == 0 {
			p.frameDur = d
		} else {
			p.frameDur += time.Duration(frameSmoothing * float64(d-p.frameDur))
		}
	}
	p.lastFrame = now
}

// PerfStats is a snapshot of the collector's window.
type PerfStats struct {
	Ticks int

	AvgTickDuration time.Duration
	P50TickDuration time.Duration
	P95TickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average tick, 0-100

	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Ticks:         p.count,
		PhaseAvg:      make(map[string]time.Duration, len(p.phaseSum)),
		PhasePct:      make(map[string]float64, len(p.phaseSum)),
		FrameDuration: p.frameDur,
	}
	if p.frameDur > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.count == 0 {
		return s
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = p.tickSum / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}

	for name, sum := range p.phaseSum {
		if sum <= 0 {
			continue
		}
		avg := sum / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}

	totals := make([]float64, p.count)
	for i := 0; i < p.count; i++ {
		totals[i] = float64(p.ring[i].total)
	}
	sort.Float64s(totals)
	s.P50TickDuration = time.Duration(stat.Quantile(0.5, stat.Empirical, totals, nil))
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	return s
}

// LogStats logs the snapshot at Info, phases in execution order.
func (s PerfStats) LogStats() {
	attrs := []any{
		"ticks", s.Ticks,
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p50_tick_us", s.P50TickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	P50TickUS     int64   `csv:"p50_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	ForcesPct     float64 `csv:"forces_pct"`
	SolverPct     float64 `csv:"solver_pct"`
	CollisionsPct float64 `csv:"collisions_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	EffectsPct    float64 `csv:"effects_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the snapshot for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		P50TickUS:     s.P50TickDuration.Microseconds(),
		P95TickUS:     s.P95TickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		ForcesPct:     s.PhasePct[PhaseForces],
		SolverPct:     s.PhasePct[PhaseSolver],
		CollisionsPct: s.PhasePct[PhaseCollisions],
		MovementPct:   s.PhasePct[PhaseMovement],
		EffectsPct:    s.PhasePct[PhaseEffects],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
