package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/slime/config"
	"github.com/pthm-cable/slime/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %v round-tripped to %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := pv.DefaultVector()
	values[0] = 100 // motion.max_speed above its bound
	pv.ApplyToConfig(cfg, values)

	if cfg.Motion.MaxSpeed != pv.Specs[0].Max {
		t.Errorf("max_speed = %v, want clamped to %v", cfg.Motion.MaxSpeed, pv.Specs[0].Max)
	}
	if cfg.BlackHole.G != 6 {
		t.Errorf("black_hole.g = %v, want default 6", cfg.BlackHole.G)
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	for _, spec := range NewParamVector().Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
		if spec.Set == nil {
			t.Errorf("%s has no setter", spec.Name)
		}
	}
}

func TestComputeQuality(t *testing.T) {
	steady := make([]telemetry.WindowStats, 6)
	for i := range steady {
		steady[i] = telemetry.WindowStats{
			Population: 20, Basic: 14, Killers: 2, Clusters: 3, BlackHoles: 1,
			Merges: 10, Splits: 10,
		}
	}
	dull := make([]telemetry.WindowStats, 6)
	for i := range dull {
		dull[i] = telemetry.WindowStats{Population: 20 - 3*i, Basic: 20 - 3*i}
	}

	high := computeQuality(steady)
	low := computeQuality(dull)
	if high <= low {
		t.Errorf("steady mixed run scored %v, not above dull run %v", high, low)
	}
	if high < 0.9 || high > 1 {
		t.Errorf("steady mixed run quality = %v, want in [0.9, 1]", high)
	}
	if q := computeQuality(steady[:2]); q != 0 {
		t.Errorf("warmup-only quality = %v, want 0", q)
	}
}

func TestComputeFitness(t *testing.T) {
	if a, b := computeFitness(1000, 0), computeFitness(1000, 1); b >= a {
		t.Errorf("quality should lower fitness: %v vs %v", a, b)
	}
	if a, b := computeFitness(1000, 1), computeFitness(2000, 0); b >= a {
		t.Errorf("survival should dominate: %v vs %v", a, b)
	}
}
