package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a frame window.
type WindowStats struct {
	WindowStartFrame int64 `csv:"-"`
	WindowEndFrame   int64 `csv:"window_end"`

	// Population at window end
	Population int     `csv:"population"`
	Basic      int     `csv:"basic"`
	Killers    int     `csv:"killers"`
	Clusters   int     `csv:"clusters"`
	BlackHoles int     `csv:"black_holes"`
	TotalArea  float64 `csv:"total_area"`
	Effects    int     `csv:"effects"`

	// Events during window
	Merges          int `csv:"merges"`
	KillerMerges    int `csv:"killer_merges"`
	ClusterMerges   int `csv:"cluster_merges"`
	Consumptions    int `csv:"consumptions"`
	Detonations     int `csv:"detonations"`
	Splits          int `csv:"splits"`
	FailedSplits    int `csv:"failed_splits"`
	Launches        int `csv:"launches"`
	Spawns          int `csv:"spawns"`
	BlackHoleBirths int `csv:"black_hole_births"`

	// Radius distribution (sampled at window end)
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`
}

// ComputeRadiusStats calculates mean, standard deviation and percentiles.
// Percentiles use the empirical CDF, so each one is an observed radius.
func ComputeRadiusStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		// Sample std is undefined for a single value
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Int("population", s.Population),
		slog.Int("basic", s.Basic),
		slog.Int("killers", s.Killers),
		slog.Int("clusters", s.Clusters),
		slog.Int("black_holes", s.BlackHoles),
		slog.Float64("total_area", s.TotalArea),
		slog.Int("merges", s.Merges),
		slog.Int("consumptions", s.Consumptions),
		slog.Int("detonations", s.Detonations),
		slog.Int("splits", s.Splits),
		slog.Int("launches", s.Launches),
		slog.Int("black_hole_births", s.BlackHoleBirths),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_p50", s.RadiusP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"population", s.Population,
		"basic", s.Basic,
		"killers", s.Killers,
		"clusters", s.Clusters,
		"black_holes", s.BlackHoles,
		"total_area", s.TotalArea,
		"effects", s.Effects,
		"merges", s.Merges,
		"killer_merges", s.KillerMerges,
		"cluster_merges", s.ClusterMerges,
		"consumptions", s.Consumptions,
		"detonations", s.Detonations,
		"splits", s.Splits,
		"failed_splits", s.FailedSplits,
		"launches", s.Launches,
		"spawns", s.Spawns,
		"black_hole_births", s.BlackHoleBirths,
		"radius_mean", s.RadiusMean,
		"radius_std", s.RadiusStd,
		"radius_p10", s.RadiusP10,
		"radius_p50", s.RadiusP50,
		"radius_p90", s.RadiusP90,
	)
}
