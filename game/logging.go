package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// logWriter is the destination for console output.
var logWriter io.Writer

// SetLogWriter sets the console output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted console line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logSolverState emits a structured summary of the solver.
func (g *Game) logSolverState(msg string) {
	stats := g.solver.Stats()
	slog.Info(msg,
		"step", g.step,
		"solver_steps", stats.Steps,
		"max_div", g.solver.MaxDivergence(),
		"kinetic_energy", g.solver.KineticEnergy(),
		"boundaries", len(g.solver.Boundaries()),
		"pruned", g.solver.Pruned(),
	)
}

// logFramePerf prints the frame section breakdown.
func (g *Game) logFramePerf() {
	total := g.framePerf.Total()
	Logf("=== Frame @ Step %d (%d steps/update) | FPS: %d ===", g.step, g.stepsPerUpdate, rl.GetFPS())
	Logf("Total frame time: %s", total.Round(time.Microsecond))

	for _, name := range g.framePerf.SortedNames() {
		avg := g.framePerf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-12s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}

	solver := g.perfCollector.Stats()
	Logf("  solver tick avg %s (std %s)",
		solver.AvgTickDuration.Round(time.Microsecond), solver.StdTickDuration.Round(time.Microsecond))
	Logf("")
}
