package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSteadyState     BookmarkType = "steady_state"
	BookmarkDivergenceSpike BookmarkType = "divergence_spike"
	BookmarkEnergyCollapse  BookmarkType = "energy_collapse"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Step        int64        `csv:"step"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"step", b.Step,
		"description", b.Description,
	)
}

// stableWindows is the number of windows a steady state must span.
const stableWindows = 4

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentEnergyPeak float64
	steadyReported   bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableWindows {
		historySize = stableWindows
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Any edit restarts the search for a steady state
	if stats.Placed+stats.Deleted+stats.Filled+stats.Resets > 0 {
		bd.steadyReported = false
	}
	if stats.Resets > 0 {
		bd.recentEnergyPeak = 0
	}

	if b := bd.checkDivergenceSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkEnergyCollapse(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkSteadyState(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.KineticEnergy > bd.recentEnergyPeak {
		bd.recentEnergyPeak = stats.KineticEnergy
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

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	n = min(n, size)
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

// checkDivergenceSpike fires when the window's worst residual exceeds four
// times the rolling mean residual.
func (bd *BookmarkDetector) checkDivergenceSpike(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.MeanMaxDiv
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.PeakMaxDiv > avg*4 && stats.PeakMaxDiv > 1e-3 {
		return &Bookmark{
			Type:        BookmarkDivergenceSpike,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Residual %.3g is %.1fx average (%.3g)", stats.PeakMaxDiv, stats.PeakMaxDiv/avg, avg),
		}
	}
	return nil
}

// checkEnergyCollapse fires when kinetic energy falls below half its
// recent peak.
func (bd *BookmarkDetector) checkEnergyCollapse(stats WindowStats) *Bookmark {
	if bd.recentEnergyPeak <= 0 {
		return nil
	}

	drop := 1 - stats.KineticEnergy/bd.recentEnergyPeak
	if drop > 0.5 {
		oldPeak := bd.recentEnergyPeak
		bd.recentEnergyPeak = stats.KineticEnergy

		return &Bookmark{
			Type:        BookmarkEnergyCollapse,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Kinetic energy fell %.0f%% from peak %.3g to %.3g", drop*100, oldPeak, stats.KineticEnergy),
		}
	}
	return nil
}

// checkSteadyState fires once when kinetic energy has varied by less than
// 1% (coefficient of variation) over stableWindows windows.
func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	window := bd.recent(stableWindows)
	if len(window) < stableWindows || stats.KineticEnergy <= 0 {
		return nil
	}

	energies := make([]float64, len(window))
	for i, h := range window {
		energies[i] = h.KineticEnergy
	}
	mean, std := stat.PopMeanStdDev(energies, nil)

	if std >= 0.01*mean {
		bd.steadyReported = false
		return nil
	}

	if !bd.steadyReported {
		bd.steadyReported = true
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Kinetic energy settled at %.3g over %d windows", mean, stableWindows),
		}
	}
	return nil
}
