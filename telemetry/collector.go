// Package telemetry provides population health tracking, bookmarking and
// performance measurement for the slime simulation.
package telemetry

import "github.com/pthm-cable/slime/components"

// Collector accumulates events within frame windows and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStartFrame int64

	// Event counters for current window
	merges          int
	killerMerges    int
	clusterMerges   int
	consumptions    int
	detonations     int
	splits          int
	failedSplits    int
	launches        int
	spawns          int
	blackHoleBirths int
}

// NewCollector creates a new stats collector.
// windowFrames: how many frames each stats window lasts.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// RecordMerge records a merge producing an agent of the given kind.
func (c *Collector) RecordMerge(result components.Kind) {
	c.merges++
	c.spawns++
	switch result {
	case components.KindKiller:
		c.killerMerges++
	case components.KindCluster:
		c.clusterMerges++
	}
}

// RecordConsumption records an agent swallowed by a black hole.
func (c *Collector) RecordConsumption() {
	c.consumptions++
}

// RecordDetonation records a bomb collision.
func (c *Collector) RecordDetonation() {
	c.detonations++
}

// RecordSplit records a successful split into the given children.
func (c *Collector) RecordSplit(children []components.Kind) {
	c.splits++
	c.spawns += len(children)
	for _, k := range children {
		if k == components.KindBlackHole {
			c.blackHoleBirths++
		}
	}
}

// RecordFailedSplit records a click on an agent that could not split.
func (c *Collector) RecordFailedSplit() {
	c.failedSplits++
}

// RecordLaunch records a cannon shot.
func (c *Collector) RecordLaunch() {
	c.launches++
	c.spawns++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStartFrame >= c.windowFrames
}

// PopulationSample is the population state observed at window end.
type PopulationSample struct {
	CountByKind []int // Indexed by components.Kind
	Radii       []float64
	TotalArea   float64
	Effects     int // Live effect particles
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int64, sample PopulationSample) WindowStats {
	mean, std, p10, p50, p90 := ComputeRadiusStats(sample.Radii)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,

		Population: len(sample.Radii),
		TotalArea:  sample.TotalArea,
		Effects:    sample.Effects,

		Merges:          c.merges,
		KillerMerges:    c.killerMerges,
		ClusterMerges:   c.clusterMerges,
		Consumptions:    c.consumptions,
		Detonations:     c.detonations,
		Splits:          c.splits,
		FailedSplits:    c.failedSplits,
		Launches:        c.launches,
		Spawns:          c.spawns,
		BlackHoleBirths: c.blackHoleBirths,

		RadiusMean: mean,
		RadiusStd:  std,
		RadiusP10:  p10,
		RadiusP50:  p50,
		RadiusP90:  p90,
	}
	if len(sample.CountByKind) > 0 {
		counts := make([]int, components.KindCount())
		copy(counts, sample.CountByKind)
		stats.Basic = counts[components.KindBasic]
		stats.Killers = counts[components.KindKiller]
		stats.Clusters = counts[components.KindCluster]
		stats.BlackHoles = counts[components.KindBlackHole]
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.merges = 0
	c.killerMerges = 0
	c.clusterMerges = 0
	c.consumptions = 0
	c.detonations = 0
	c.splits = 0
	c.failedSplits = 0
	c.launches = 0
	c.spawns = 0
	c.blackHoleBirths = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
