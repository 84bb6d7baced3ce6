package game

import (
	"log/slog"
	"os"

	"github.com/pthm-cable/flume/telemetry"
)

// flushTelemetry closes the stats window when it is full and checks it for
// bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.step) {
		return
	}

	stats := g.collector.Flush(g.step, g.sampleField())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		bm.LogBookmark()
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		// Keep the grid at the bookmarked step
		if err := g.outputManager.WriteDump(g.step, g.solver.Dump); err != nil {
			slog.Error("failed to write bookmark dump", "error", err)
		}
	}
}

// sampleField captures the solver state for the closing window.
func (g *Game) sampleField() telemetry.FieldSnapshot {
	return telemetry.FieldSnapshot{
		Speeds:        g.solver.SpeedField(),
		MaxDiv:        g.solver.MaxDivergence(),
		DivL2:         g.solver.DivergenceNorm(),
		KineticEnergy: g.solver.KineticEnergy(),
		Boundaries:    len(g.solver.Boundaries()),
		Pruned:        g.solver.Pruned(),
		CellVisits:    g.solver.Stats().CellVisits,
		Tracers:       g.tracers.Len(),
	}
}

// writeDump saves a text dump of the grid every dumpEvery steps, to the
// output directory when one is set and to stdout otherwise.
func (g *Game) writeDump() {
	if g.dumpEvery <= 0 || g.step%int64(g.dumpEvery) != 0 {
		return
	}
	var err error
	if g.outputManager == nil {
		err = g.solver.Dump(os.Stdout)
	} else {
		err = g.outputManager.WriteDump(g.step, g.solver.Dump)
	}
	if err != nil {
		slog.Error("failed to write grid dump", "error", err, "step", g.step)
	}
}
