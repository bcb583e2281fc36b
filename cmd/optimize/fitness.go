package main

import (
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/game"
	"github.com/pthm-cable/slime/telemetry"
)

// Headless runs have no player, so a scripted clicker splits and launches
// to keep the population turning over.
const (
	clickEvery      = 30  // Frames between clicks
	cannonShare     = 0.3 // Fraction of clicks aimed at the cannon
	minViablePop    = 3   // Below this the run counts as collapsed
	collapseGrace   = 600 // Frames below minViablePop before the run ends
	statsWindowSize = 300
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	configPath string

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run reloads its config
// from configPath so parallel seeds never share state.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int64                   // ticks before collapse (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality[idx] = computeQuality(result.windowStats)
			fitness[idx] = computeFitness(result.survivalTicks, quality[idx])
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes a single headless run until collapse or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		// The path was validated at startup
		panic(err)
	}
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindow = statsWindowSize

	result := &runResult{}
	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Unload()

	clicker := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	sim := g.Simulation()
	bounds := sim.Bounds()
	var below int64

	for g.Tick() < fe.maxTicks {
		if g.Tick()%clickEvery == 0 {
			if clicker.Float64() < cannonShare {
				l := sim.Launcher()
				g.Click(l.Center.X, l.Center.Y)
			} else {
				g.Click(clicker.Float64()*bounds.Width, clicker.Float64()*bounds.Height)
			}
		}

		g.UpdateHeadless()

		if sim.Population().Len() < minViablePop {
			below++
		} else {
			below = 0
		}
		if below >= collapseGrace {
			result.survivalTicks = g.Tick()
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int64, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + qualityBonus*quality))
}

// qualityBonus is the largest fractional bonus quality adds to survival.
const qualityBonus = 0.2

// Quality component weights.
const (
	qualityWeightDiversity = 0.40
	qualityWeightStability = 0.35
	qualityWeightActivity  = 0.25

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	targetEventsPerAgent = 0.5
)

// computeQuality scores a run in [0, 1]: several kinds alive at once, a
// steady population and a steady flow of merges and splits.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var diversitySum, activitySum float64
	counts := make([]float64, 0, len(valid))

	for _, w := range valid {
		counts = append(counts, float64(w.Population))

		kinds := 0
		for _, n := range []int{w.Basic, w.Killers, w.Clusters, w.BlackHoles} {
			if n > 0 {
				kinds++
			}
		}
		diversitySum += float64(kinds) / 4

		if w.Population > 0 {
			perAgent := float64(w.Merges+w.Splits+w.Consumptions+w.Detonations) / float64(w.Population)
			activitySum += 1 - math.Exp(-perAgent/targetEventsPerAgent)
		}
	}

	n := float64(len(valid))
	stability := 0.0
	if len(counts) >= 2 {
		mean, std := stat.MeanStdDev(counts, nil)
		if mean > 0 {
			cv := std / mean
			stability = math.Exp(-cv * cv)
		}
	}

	quality := qualityWeightDiversity*diversitySum/n +
		qualityWeightStability*stability +
		qualityWeightActivity*activitySum/n

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
