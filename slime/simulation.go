package slime

import (
	"log/slog"

	"github.com/golang/geo/r2"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/systems"
	"github.com/pthm-cable/slime/telemetry"
)

// PhaseTimer receives phase boundaries during Step. *telemetry.PerfCollector
// satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// FrameInput is the per-frame external input.
type FrameInput struct {
	Pointer *r2.Point // nil when the pointer is outside the world
}

// ClickKind classifies what a click did.
type ClickKind uint8

const (
	ClickNone     ClickKind = iota // Nothing under the pointer
	ClickLaunched                  // Cannon fired
	ClickSplit                     // Agent replaced by its children
	ClickNoSplit                   // Agent hit but too small or immune
)

// ClickOutcome reports the effect of a click.
type ClickOutcome struct {
	Kind     ClickKind
	Parent   uint64  // Clicked agent, for ClickSplit and ClickNoSplit
	Children []Agent // Launched agent or split children
}

// Simulation owns the population and everything that acts on it. All
// methods must be called from one goroutine.
type Simulation struct {
	cfg    *config.Config
	bounds systems.Bounds
	rng    *systems.RNG

	solver   *systems.PhysicsSystem
	factory  *Factory
	pop      *Population
	field    *systems.FlowField
	noise    *systems.Noise
	effects  *systems.ParticleSystem
	launcher *Launcher
	resolver *Resolver

	phases PhaseTimer
	frame  int64
}

// New builds a seeded simulation with its initial population.
func New(cfg *config.Config, seed int64) *Simulation {
	bounds := systems.Bounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH}
	rng := systems.NewRNG(seed)
	solver := systems.NewPhysicsSystem(bounds, cfg.Solver)
	factory := NewFactory(cfg, rng, solver)
	effects := systems.NewParticleSystem(cfg.Effects, rng)

	s := &Simulation{
		cfg:      cfg,
		bounds:   bounds,
		rng:      rng,
		solver:   solver,
		factory:  factory,
		field:    systems.NewFlowField(bounds.Width, bounds.Height, cfg.FlowField, rng.Int64()),
		noise:    systems.NewNoise(rng.Int64()),
		effects:  effects,
		launcher: NewLauncher(cfg.Cannon, bounds),
		resolver: NewResolver(factory, effects),
	}
	s.pop = NewPopulation(factory.Seed(bounds)...)
	return s
}

// SetPhaseTimer installs a timer notified at every phase of Step.
func (s *Simulation) SetPhaseTimer(t PhaseTimer) {
	s.phases = t
}

func (s *Simulation) phase(name string) {
	if s.phases != nil {
		s.phases.StartPhase(name)
	}
}

// Step advances one frame: global forces, solver, collision resolution,
// movement, effects.
func (s *Simulation) Step(in FrameInput) Report {
	s.phase(telemetry.PhaseForces)
	s.applyForces()

	s.phase(telemetry.PhaseSolver)
	s.solver.Integrate()

	s.phase(telemetry.PhaseCollisions)
	rep := s.resolver.Resolve(s.pop)

	s.phase(telemetry.PhaseMovement)
	ctx := &MoveContext{
		Cfg:        s.cfg,
		Bounds:     s.bounds,
		Flow:       s.field,
		Pointer:    in.Pointer,
		Population: s.pop,
		Noise:      s.noise,
		RNG:        s.rng,
	}
	for _, a := range s.pop.Agents() {
		a.Move(ctx)
	}

	s.phase(telemetry.PhaseEffects)
	s.effects.Update()

	s.frame++
	return rep
}

// applyForces pushes cluster particles along the flow field and pulls every
// agent toward each black hole.
func (s *Simulation) applyForces() {
	flowScale := s.cfg.Cluster.FlowScale
	var holes []*Body
	for _, a := range s.pop.Agents() {
		switch a.Kind() {
		case components.KindCluster:
			a.(*Cluster).ApplyFlow(s.field, flowScale)
		case components.KindBlackHole:
			holes = append(holes, a.State())
		}
	}
	if len(holes) == 0 {
		return
	}

	bc := s.cfg.BlackHole
	for _, a := range s.pop.Agents() {
		if a.Kind() == components.KindBlackHole {
			continue
		}
		b := a.State()
		for _, h := range holes {
			dv := Gravity(h.Pos, h.R, b.Pos, b.R, bc)
			if a.Kind() == components.KindCluster {
				a.(*Cluster).AddVelocity(dv)
			} else {
				b.Vel = b.Vel.Add(dv)
			}
		}
	}
}

// Gravity returns the velocity change a black hole at holePos imparts on an
// agent at pos. Radius stands in for mass.
func Gravity(holePos r2.Point, holeR float64, pos r2.Point, r float64, cfg config.BlackHoleConfig) r2.Point {
	dir := holePos.Sub(pos)
	d := systems.Clamp(dir.Norm(), cfg.MinDistance, cfg.MaxDistance)
	strength := cfg.G * holeR * r / (d * d)
	return systems.SetMag(dir, strength)
}

// Click handles a pointer press: the cannon first, then the topmost agent.
func (s *Simulation) Click(x, y float64) ClickOutcome {
	if s.launcher.IsClicked(x, y) {
		shot := s.launcher.Fire(s.factory)
		s.pop.Add(shot)
		return ClickOutcome{Kind: ClickLaunched, Children: []Agent{shot}}
	}

	i, a, ok := s.pop.TopmostAt(x, y)
	if !ok {
		return ClickOutcome{Kind: ClickNone}
	}
	parent := a.State()
	if parent.R <= s.cfg.Split.ClickMinRadius {
		return ClickOutcome{Kind: ClickNoSplit, Parent: parent.ID}
	}
	children := a.Split(s.factory)
	if len(children) == 0 {
		return ClickOutcome{Kind: ClickNoSplit, Parent: parent.ID}
	}

	s.pop.Add(children...)
	s.pop.RemoveAt(i)
	a.Release()

	slog.Debug("split", "parent", parent.ID, "kind", a.Kind().String(), "radius", parent.R)
	for _, c := range children {
		if c.Kind() == components.KindBlackHole {
			slog.Debug("black hole formed", "id", c.State().ID, "radius", c.State().R)
		}
	}
	return ClickOutcome{Kind: ClickSplit, Parent: parent.ID, Children: children}
}

// RegenerateField recomputes the flow field from a fresh seed.
func (s *Simulation) RegenerateField() {
	s.field.Regenerate(s.rng.Int64())
}

// Population returns the live population.
func (s *Simulation) Population() *Population {
	return s.pop
}

// Field returns the flow field.
func (s *Simulation) Field() *systems.FlowField {
	return s.field
}

// Effects returns the explosion particle system.
func (s *Simulation) Effects() *systems.ParticleSystem {
	return s.effects
}

// Launcher returns the cannon.
func (s *Simulation) Launcher() *Launcher {
	return s.launcher
}

// Noise returns the shared noise generator.
func (s *Simulation) Noise() *systems.Noise {
	return s.noise
}

// Solver returns the soft-body solver.
func (s *Simulation) Solver() *systems.PhysicsSystem {
	return s.solver
}

// Factory returns the agent factory.
func (s *Simulation) Factory() *Factory {
	return s.factory
}

// Bounds returns the world bounds.
func (s *Simulation) Bounds() systems.Bounds {
	return s.bounds
}

// Config returns the simulation config.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Frame returns the number of completed frames.
func (s *Simulation) Frame() int64 {
	return s.frame
}
