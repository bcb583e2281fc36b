package game

import (
	"log/slog"

	"github.com/pthm-cable/slime/audio"
	"github.com/pthm-cable/slime/components"
	"github.com/pthm-cable/slime/slime"
	"github.com/pthm-cable/slime/telemetry"
)

// recordReport feeds one frame's collision events to the collector and
// plays their cues.
func (g *Game) recordReport(rep slime.Report) {
	for _, ev := range rep.Events {
		switch ev.Kind {
		case slime.EventMerge:
			g.collector.RecordMerge(ev.ResultKind)
			g.audio.Play(audio.CueMerge, ev.Size)
		case slime.EventConsume:
			g.collector.RecordConsumption()
			g.audio.Play(audio.CueConsume, ev.Size)
		case slime.EventDetonate:
			g.collector.RecordDetonation()
			g.audio.Play(audio.CueDetonate, ev.Size)
		}
		slog.Debug("collision",
			"frame", g.sim.Frame(),
			"kind", ev.Kind.String(),
			"a", ev.A,
			"b", ev.B,
			"result", ev.Result,
			"size", ev.Size,
		)
	}
}

// recordClick records a click outcome and plays its cue.
func (g *Game) recordClick(out slime.ClickOutcome) {
	switch out.Kind {
	case slime.ClickLaunched:
		g.collector.RecordLaunch()
		g.audio.Play(audio.CueLaunch, out.Children[0].State().R)
	case slime.ClickSplit:
		kinds := make([]components.Kind, len(out.Children))
		for i, c := range out.Children {
			kinds[i] = c.Kind()
		}
		g.collector.RecordSplit(kinds)
		g.audio.Play(audio.CueSplit, out.Children[0].State().R)
	case slime.ClickNoSplit:
		g.collector.RecordFailedSplit()
	}
}

// samplePopulation captures the population state for a window flush.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	pop := g.sim.Population()
	return telemetry.PopulationSample{
		CountByKind: pop.CountByKind(),
		Radii:       pop.Radii(),
		TotalArea:   pop.TotalArea(),
		Effects:     g.sim.Effects().Count(),
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	frame := g.sim.Frame()
	if !g.collector.ShouldFlush(frame) {
		return
	}

	stats := g.collector.Flush(frame, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
