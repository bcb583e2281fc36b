package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationBoom     BookmarkType = "population_boom"
	BookmarkPopulationCollapse BookmarkType = "population_collapse"
	BookmarkMergeFrenzy        BookmarkType = "merge_frenzy"
	BookmarkBlackHoleFeast     BookmarkType = "black_hole_feast"
	BookmarkEquilibrium        BookmarkType = "equilibrium"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int64        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPeak   int // peak population since the last collapse
	stableStreak int // consecutive windows with a steady population
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for equilibrium detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		checks := []func(WindowStats) *Bookmark{
			bd.checkPopulationBoom,
			bd.checkPopulationCollapse,
			bd.checkMergeFrenzy,
			bd.checkBlackHoleFeast,
			bd.checkEquilibrium,
		}
		for _, check := range checks {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)
	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// recent returns the last n windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	history := bd.getHistory()
	if n > len(history) {
		n = len(history)
	}
	out := make([]WindowStats, n)
	for i := range out {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

// average returns the mean of field over the history.
func (bd *BookmarkDetector) average(field func(WindowStats) float64) float64 {
	history := bd.getHistory()
	if len(history) == 0 {
		return 0
	}
	values := make([]float64, len(history))
	for i, h := range history {
		values[i] = field(h)
	}
	return stat.Mean(values, nil)
}

func (bd *BookmarkDetector) checkPopulationBoom(stats WindowStats) *Bookmark {
	if len(bd.getHistory()) < 3 {
		return nil
	}
	avg := bd.average(func(h WindowStats) float64 { return float64(h.Population) })
	if avg == 0 {
		return nil
	}

	if float64(stats.Population) > avg*2.0 && stats.Population >= 20 {
		return &Bookmark{
			Type:        BookmarkPopulationBoom,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population %d is %.1fx average (%.1f)", stats.Population, float64(stats.Population)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCollapse(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population <= bd.recentPeak-5 {
		// Reset peak after a collapse
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCollapse,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkMergeFrenzy(stats WindowStats) *Bookmark {
	if len(bd.getHistory()) < 3 {
		return nil
	}
	avg := bd.average(func(h WindowStats) float64 { return float64(h.Merges) })
	if avg == 0 {
		return nil
	}

	if float64(stats.Merges) > avg*2.0 && stats.Merges >= 5 {
		return &Bookmark{
			Type:        BookmarkMergeFrenzy,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("%d merges is %.1fx average (%.1f)", stats.Merges, float64(stats.Merges)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkBlackHoleFeast(stats WindowStats) *Bookmark {
	if stats.Consumptions < 5 {
		return nil
	}
	avg := bd.average(func(h WindowStats) float64 { return float64(h.Consumptions) })

	// First feast after a quiet history always counts
	if avg == 0 || float64(stats.Consumptions) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkBlackHoleFeast,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("%d black holes swallowed %d agents", stats.BlackHoles, stats.Consumptions),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkEquilibrium(stats WindowStats) *Bookmark {
	if stats.Population < 5 {
		bd.stableStreak = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	recent := make([]float64, len(window))
	for i, h := range window {
		recent[i] = float64(h.Population)
	}
	mean, variance := stat.PopMeanVariance(recent, nil)

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.stableStreak++
	} else {
		bd.stableStreak = 0
	}

	if bd.stableStreak == 5 { // trigger exactly once per streak
		return &Bookmark{
			Type:        BookmarkEquilibrium,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Population steady around %d over 5+ windows", stats.Population),
		}
	}
	return nil
}
