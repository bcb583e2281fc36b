// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Motion     MotionConfig     `yaml:"motion"`
	Killer     KillerConfig     `yaml:"killer"`
	Split      SplitConfig      `yaml:"split"`
	Cluster    ClusterConfig    `yaml:"cluster"`
	Solver     SolverConfig     `yaml:"solver"`
	BlackHole  BlackHoleConfig  `yaml:"black_hole"`
	FlowField  FlowFieldConfig  `yaml:"flow_field"`
	Cannon     CannonConfig     `yaml:"cannon"`
	Effects    EffectsConfig    `yaml:"effects"`
	Shapes     []ShapeWeight    `yaml:"shapes"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Audio      AudioConfig      `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PopulationConfig holds initial seeding parameters.
type PopulationConfig struct {
	Initial      int     `yaml:"initial"`
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	MinChannel   float64 `yaml:"min_channel"` // Per-channel RGB lower bound
	MaxChannel   float64 `yaml:"max_channel"`
	Alpha        float64 `yaml:"alpha"`
	InitialSpeed float64 `yaml:"initial_speed"`
}

// MotionConfig holds basic agent movement parameters.
type MotionConfig struct {
	Drag          float64 `yaml:"drag"` // Velocity multiplier per frame
	MaxSpeed      float64 `yaml:"max_speed"`
	MaxForce      float64 `yaml:"max_force"`    // Flow-follow steering limit
	WanderForce   float64 `yaml:"wander_force"` // Noise heading acceleration magnitude
	NoiseTurns    float64 `yaml:"noise_turns"`  // Heading = noise * 2pi * turns
	NoiseStep     float64 `yaml:"noise_step"`   // Noise phase advance per frame
	ArrowAccel    float64 `yaml:"arrow_accel"`
	ArrowMaxSpeed float64 `yaml:"arrow_max_speed"`
}

// KillerConfig holds predator steering parameters.
type KillerConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	MaxForce       float64 `yaml:"max_force"`
	FleeDistance   float64 `yaml:"flee_distance"`   // Added to own radius
	SlowdownRadius float64 `yaml:"slowdown_radius"` // Arrive ramp distance
	FleeWeight     float64 `yaml:"flee_weight"`
	WanderForce    float64 `yaml:"wander_force"`
	FlowWeight     float64 `yaml:"flow_weight"`
}

// SplitConfig holds split parameters.
type SplitConfig struct {
	MinChildRadius     float64 `yaml:"min_child_radius"`
	ClickMinRadius     float64 `yaml:"click_min_radius"` // Clicks on smaller agents are ignored
	Kick               float64 `yaml:"kick"`
	Gap                float64 `yaml:"gap"`
	BlackHoleChance    float64 `yaml:"black_hole_chance"`
	BlackHoleMinRadius float64 `yaml:"black_hole_min_radius"`
}

// ClusterConfig holds soft-body aggregate parameters.
type ClusterConfig struct {
	MinParticles   int     `yaml:"min_particles"`
	MaxParticles   int     `yaml:"max_particles"`
	MinRadius      float64 `yaml:"min_radius"` // Radius mapped to MinParticles
	MaxRadius      float64 `yaml:"max_radius"` // Radius mapped to MaxParticles
	RingScale      float64 `yaml:"ring_scale"`
	ConnectScale   float64 `yaml:"connect_scale"` // Springs join particles closer than r * this
	SpringStrength float64 `yaml:"spring_strength"`
	FlowScale      float64 `yaml:"flow_scale"`
}

// SolverConfig holds constraint solver parameters.
type SolverConfig struct {
	DT            float64 `yaml:"dt"`
	Iterations    int     `yaml:"iterations"`
	Damping       float64 `yaml:"damping"` // Fraction of velocity kept per second of solver time
	GravityX      float64 `yaml:"gravity_x"`
	GravityY      float64 `yaml:"gravity_y"`
	ParticleMass  float64 `yaml:"particle_mass"`
	SpringDamping float64 `yaml:"spring_damping"`
}

// BlackHoleConfig holds black hole gravity and decoration parameters.
type BlackHoleConfig struct {
	G             float64 `yaml:"g"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	OrbitCount    int     `yaml:"orbit_count"`
	OrbitMinSpeed float64 `yaml:"orbit_min_speed"`
	OrbitMaxSpeed float64 `yaml:"orbit_max_speed"`
	OrbitReach    float64 `yaml:"orbit_reach"` // Orbit distance in [r, r*reach]
}

// FlowFieldConfig holds flow field generation parameters.
type FlowFieldConfig struct {
	Resolution int     `yaml:"resolution"` // Cell size in pixels
	Step       float64 `yaml:"step"`       // Noise offset per cell
	Turns      float64 `yaml:"turns"`      // Angle = noise * 2pi * turns
	Alpha      float64 `yaml:"alpha"`      // Perlin persistence divisor
	Beta       float64 `yaml:"beta"`       // Perlin frequency multiplier
	Octaves    int     `yaml:"octaves"`
}

// CannonConfig holds launcher parameters.
type CannonConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	HitScale  float64 `yaml:"hit_scale"` // Hit box width = Width * this
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	SpreadX   float64 `yaml:"spread_x"`
	LaunchVY  float64 `yaml:"launch_vy"`
}

// EffectsConfig holds explosion and paint splatter parameters.
type EffectsConfig struct {
	ShardCount      int     `yaml:"shard_count"`
	ShardLife       int     `yaml:"shard_life"` // Frames
	ShardSpeed      float64 `yaml:"shard_speed"`
	MinDroplets     float64 `yaml:"min_droplets"`
	MaxDroplets     float64 `yaml:"max_droplets"`
	MinSplashSize   float64 `yaml:"min_splash_size"` // Size mapped to MinDroplets
	MaxSplashSize   float64 `yaml:"max_splash_size"`
	SpreadScale     float64 `yaml:"spread_scale"` // Gaussian sigma = size * this
	MinDropletSize  float64 `yaml:"min_droplet_size"`
	MaxDropletSize  float64 `yaml:"max_droplet_size"`
	MinDropletAlpha float64 `yaml:"min_droplet_alpha"`
	MaxDropletAlpha float64 `yaml:"max_droplet_alpha"`
}

// ShapeWeight is one entry of the weighted shape tables.
type ShapeWeight struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
	Seed   bool    `yaml:"seed"`   // Eligible for initial seeding
	Split  bool    `yaml:"split"`  // Eligible for split children
	Launch bool    `yaml:"launch"` // Eligible for cannon shots
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Frames per window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
	BookmarkHistory     int `yaml:"bookmark_history"` // Windows kept for bookmark detection
}

// AudioConfig holds sound cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Gain applied to every cue
	CueMillis  int     `yaml:"cue_millis"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64
	WorldH       float64
	SeedShapes   []ShapeWeight
	SplitShapes  []ShapeWeight
	LaunchShapes []ShapeWeight
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Split.MinChildRadius <= 0 {
		return fmt.Errorf("split.min_child_radius must be positive, got %v", c.Split.MinChildRadius)
	}
	if c.FlowField.Resolution <= 0 {
		return fmt.Errorf("flow_field.resolution must be positive, got %d", c.FlowField.Resolution)
	}
	if c.Cluster.MinParticles < 3 || c.Cluster.MaxParticles < c.Cluster.MinParticles {
		return fmt.Errorf("cluster particle range [%d, %d] is invalid", c.Cluster.MinParticles, c.Cluster.MaxParticles)
	}
	if c.BlackHole.MinDistance <= 0 || c.BlackHole.MaxDistance < c.BlackHole.MinDistance {
		return fmt.Errorf("black_hole distance range [%v, %v] is invalid", c.BlackHole.MinDistance, c.BlackHole.MaxDistance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.SeedShapes = c.Derived.SeedShapes[:0]
	c.Derived.SplitShapes = c.Derived.SplitShapes[:0]
	c.Derived.LaunchShapes = c.Derived.LaunchShapes[:0]
	for _, s := range c.Shapes {
		if s.Weight <= 0 {
			continue
		}
		if s.Seed {
			c.Derived.SeedShapes = append(c.Derived.SeedShapes, s)
		}
		if s.Split {
			c.Derived.SplitShapes = append(c.Derived.SplitShapes, s)
		}
		if s.Launch {
			// Cannon shots pick uniformly among eligible shapes
			s.Weight = 1
			c.Derived.LaunchShapes = append(c.Derived.LaunchShapes, s)
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
