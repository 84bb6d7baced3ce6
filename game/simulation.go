package game

import (
	"github.com/pthm-cable/flume/fluid"
	"github.com/pthm-cable/flume/telemetry"
)

// stepOptions builds the stage selection from the live controls.
func (g *Game) stepOptions() fluid.StepOptions {
	st := g.controls.Stages
	return fluid.StepOptions{
		Advect:  st[0],
		Confine: st[1],
		Enforce: st[2],
		Project: st[3],
		OnPhase: g.perfCollector.StartPhase,
	}
}

// stagesFrom maps a stage selection onto the panel toggles.
func stagesFrom(o fluid.StepOptions) [4]bool {
	return [4]bool{o.Advect, o.Confine, o.Enforce, o.Project}
}

// applyControls pushes slider values into the solver.
func (g *Game) applyControls() {
	g.solver.SetOverrelaxation(g.controls.Overrelaxation)
	g.solver.SetConfinement(g.controls.Confinement)
}

// simulationStep advances the solver and tracers by one timestep.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.solver.Step(g.stepOptions())

	g.perfCollector.StartPhase(telemetry.PhaseTracers)
	g.tracers.Update(g.solver)
	g.tracers.Spawn(g.solver)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.step++
	g.collector.RecordStep(g.solver.MaxDivergence(), g.solver.KineticEnergy())
	g.flushTelemetry()
	g.writeDump()

	g.perfCollector.EndTick()
}

// UpdateHeadless runs StepsPerUpdate steps without input or drawing.
func (g *Game) UpdateHeadless() {
	if g.controls.Paused {
		return
	}
	g.applyControls()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Reset restores the initial layout, zeroes the fields and clears tracers.
func (g *Game) Reset() {
	g.solver.Reset()
	g.tracers.Clear()
	g.collector.RecordReset()
	g.warmup()
}

// PaintStroke rasterizes a brush stroke between two grid positions and
// places Static walls, or returns cells to Fluid when erase is set. It
// returns the number of cells whose classification changed.
func (g *Game) PaintStroke(from, to fluid.Vec2, erase bool) int {
	changed := 0
	for _, c := range StrokeCells(from, to, g.controls.BrushSize) {
		if !g.solver.InBounds(c.X, c.Y) {
			continue
		}
		cell := g.solver.Cell(c.X, c.Y)
		if erase {
			if cell.IsFluid() {
				continue
			}
			g.solver.DeleteBoundary(c.X, c.Y)
		} else {
			if cell.IsStatic() && !cell.Pruned {
				continue
			}
			g.solver.PlaceBoundary(c.X, c.Y)
		}
		changed++
	}

	if erase {
		g.collector.RecordDelete(changed)
	} else {
		g.collector.RecordPlace(changed)
	}
	return changed
}

// FillAt prunes the Fluid region containing (x, y).
func (g *Game) FillAt(x, y int) int {
	n := g.solver.FillRegion(x, y)
	if n > 0 {
		g.collector.RecordFill(n)
	}
	return n
}
