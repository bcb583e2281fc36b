package systems

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/config"
)

// dropletLife bounds how long an undrained droplet may linger, so a headless
// run without a paint canvas does not accumulate them.
const dropletLife = 30

// ParticleSystem manages explosion shards and paint droplets as ECS entities.
type ParticleSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Effect]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Effect]
	cfg    config.EffectsConfig
	rng    *RNG

	toRemove []ecs.Entity
	count    int
}

// NewParticleSystem creates a particle system with its own ECS world.
func NewParticleSystem(cfg config.EffectsConfig, rng *RNG) *ParticleSystem {
	world := ecs.NewWorld()
	return &ParticleSystem{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Effect](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Effect](world),
		cfg:    cfg,
		rng:    rng,
	}
}

// EmitExplosion spawns a burst of shards plus a paint splatter at center.
// size is the combined radius of the detonating pair; c1 and c2 their colours.
func (s *ParticleSystem) EmitExplosion(center r2.Point, size float64, c1, c2 components.Color) {
	mixed := c1.Lerp(c2, 0.5)

	for i := 0; i < s.cfg.ShardCount; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := s.rng.Range(0.3, 1) * s.cfg.ShardSpeed
		life := int32(s.cfg.ShardLife/2 + s.rng.IntN(s.cfg.ShardLife/2+1))
		shardColor := c1
		if i%2 == 1 {
			shardColor = c2
		}
		shardColor.A = 255
		s.spawn(center, FromAngle(angle, speed), components.Effect{
			Kind:    components.EffectShard,
			Life:    life,
			MaxLife: life,
			Size:    float32(s.rng.Range(2, 5)),
			Color:   shardColor,
		})
	}

	n := int(Clamp(MapRange(size, s.cfg.MinSplashSize, s.cfg.MaxSplashSize, s.cfg.MinDroplets, s.cfg.MaxDroplets),
		s.cfg.MinDroplets, s.cfg.MaxDroplets))
	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		dist := math.Abs(s.rng.Normal(0, size*s.cfg.SpreadScale))
		col := mixed
		col.A = s.rng.Range(s.cfg.MinDropletAlpha, s.cfg.MaxDropletAlpha)
		s.spawn(center.Add(FromAngle(angle, dist)), r2.Point{}, components.Effect{
			Kind:    components.EffectDroplet,
			Life:    dropletLife,
			MaxLife: dropletLife,
			Size:    float32(s.rng.Range(s.cfg.MinDropletSize, s.cfg.MaxDropletSize)),
			Color:   col,
		})
	}
}

func (s *ParticleSystem) spawn(pos, vel r2.Point, effect components.Effect) {
	p := components.Position{X: float32(pos.X), Y: float32(pos.Y)}
	v := components.Velocity{X: float32(vel.X), Y: float32(vel.Y)}
	s.mapper.NewEntity(&p, &v, &effect)
	s.count++
}

// Update ages every particle by one frame and removes expired ones.
func (s *ParticleSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, eff := query.Get()

		eff.Life--
		if eff.Life <= 0 {
			s.toRemove = append(s.toRemove, query.Entity())
			continue
		}

		if eff.Kind == components.EffectShard {
			// Drag
			vel.X *= 0.94
			vel.Y *= 0.94
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
	s.flush()
}

// Each visits every live shard.
func (s *ParticleSystem) Each(fn func(pos components.Position, eff components.Effect)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, eff := query.Get()
		if eff.Kind == components.EffectShard {
			fn(*pos, *eff)
		}
	}
}

// DrainDroplets visits and removes every pending paint droplet.
func (s *ParticleSystem) DrainDroplets(fn func(pos components.Position, eff components.Effect)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, eff := query.Get()
		if eff.Kind == components.EffectDroplet {
			fn(*pos, *eff)
			s.toRemove = append(s.toRemove, query.Entity())
		}
	}
	s.flush()
}

// flush removes collected entities once the query has finished.
func (s *ParticleSystem) flush() {
	for _, e := range s.toRemove {
		s.world.RemoveEntity(e)
	}
	s.count -= len(s.toRemove)
	s.toRemove = s.toRemove[:0]
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return s.count
}
