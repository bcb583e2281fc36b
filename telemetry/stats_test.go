package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/slime/components"
)

func TestComputeRadiusStats(t *testing.T) {
	values := []float64{10, 3, 8, 1, 6, 5, 2, 9, 4, 7}
	mean, std, p10, p50, p90 := ComputeRadiusStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("percentiles = %v, %v, %v, want 1, 5, 9", p10, p50, p90)
	}
	// Input order must be preserved
	if values[0] != 10 {
		t.Error("ComputeRadiusStats sorted its input")
	}
}

func TestComputeRadiusStatsSmall(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{42}, 42, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, _, p50, _ := ComputeRadiusStats(tt.values)
			if mean != tt.wantMean || p50 != tt.wantP50 || std != 0 {
				t.Errorf("got mean %v std %v p50 %v, want %v 0 %v", mean, std, p50, tt.wantMean, tt.wantP50)
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	c.RecordMerge(components.KindBasic)
	c.RecordMerge(components.KindKiller)
	c.RecordMerge(components.KindCluster)
	c.RecordConsumption()
	c.RecordDetonation()
	c.RecordSplit([]components.Kind{components.KindBasic, components.KindBlackHole})
	c.RecordFailedSplit()
	c.RecordLaunch()

	if c.ShouldFlush(99) {
		t.Error("ShouldFlush(99) = true before the window ended")
	}
	if !c.ShouldFlush(100) {
		t.Error("ShouldFlush(100) = false at window end")
	}

	stats := c.Flush(100, PopulationSample{
		CountByKind: []int{3, 1, 2, 1},
		Radii:       []float64{10, 20, 30, 40, 50, 60, 70},
		TotalArea:   1234,
	})

	if stats.Merges != 3 || stats.KillerMerges != 1 || stats.ClusterMerges != 1 {
		t.Errorf("merges = %d/%d/%d, want 3/1/1", stats.Merges, stats.KillerMerges, stats.ClusterMerges)
	}
	if stats.Consumptions != 1 || stats.Detonations != 1 || stats.Splits != 1 || stats.FailedSplits != 1 {
		t.Errorf("event counts = %+v", stats)
	}
	// Three merge results, two split children, one shot
	if stats.Spawns != 6 || stats.Launches != 1 || stats.BlackHoleBirths != 1 {
		t.Errorf("spawns = %d, launches = %d, black holes = %d, want 6, 1, 1",
			stats.Spawns, stats.Launches, stats.BlackHoleBirths)
	}
	if stats.Population != 7 || stats.Basic != 3 || stats.Killers != 1 || stats.Clusters != 2 || stats.BlackHoles != 1 {
		t.Errorf("population = %+v", stats)
	}
	if stats.RadiusP50 != 40 {
		t.Errorf("radius p50 = %v, want 40", stats.RadiusP50)
	}

	// Counters reset for the next window
	next := c.Flush(200, PopulationSample{})
	if next.Merges != 0 || next.Spawns != 0 || next.WindowStartFrame != 100 {
		t.Errorf("second window = %+v, want reset counters starting at 100", next)
	}
}
