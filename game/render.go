package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/renderer"
	"github.com/pthm-cable/flume/ui"
)

const controlsHelp = "Space pause  S step  R reset  1-4 stages  LMB wall  RMB erase  F fill  Wheel/arrows view  Home fit  C/V/D field  K/T/G overlays  P perf"

// fieldModes maps field overlays to grid colouring.
var fieldModes = map[ui.OverlayID]renderer.FieldMode{
	ui.OverlaySpeed:      renderer.FieldSpeed,
	ui.OverlayVorticity:  renderer.FieldVorticity,
	ui.OverlayDivergence: renderer.FieldDivergence,
}

var legendLabels = []string{"Wall", "Filled", "Inlet", "Mirror"}

var legendColors = []rl.Color{
	renderer.ColorStatic, renderer.ColorPruned, renderer.ColorSource, renderer.ColorClone,
}

// Draw renders the grid, overlays and side panel.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	g.perfCollector.RecordFrame()

	speedLimit := float32(g.cfg.Solver.SourceVelocity) * 1.5
	style := renderer.FieldStyle{
		SpeedLimit:      speedLimit,
		VorticityLimit:  speedLimit / 4,
		DivergenceLimit: 1,
		ShowKinds:       g.overlays.IsEnabled(ui.OverlayKinds),
	}
	g.framePerf.Measure(SectionTextures, func() {
		g.grid.Update(g.solver, fieldModes[g.overlays.ActiveField()], style)
	})

	start := time.Now()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginScissorMode(0, 0, int32(g.camera.ViewportW), int32(g.camera.ViewportH))
	g.grid.Draw(g.camera)
	if g.overlays.IsEnabled(ui.OverlayVectors) {
		g.grid.DrawVectors(g.solver, g.camera, 4, speedLimit)
	}
	if g.overlays.IsEnabled(ui.OverlayTracers) {
		g.tracerDraw.Draw(g.tracers, g.camera)
	}
	rl.EndScissorMode()

	g.drawPanel()
	g.hud.DrawControls(int32(g.cfg.Derived.ScreenHeight), controlsHelp)

	rl.EndDrawing()
	g.framePerf.Record(SectionDraw, time.Since(start))
}

// drawPanel draws the controls, stats and legend down the right side.
func (g *Game) drawPanel() {
	act, y := g.panel.Draw(&g.controls, g.overlays)
	if act.Step {
		g.pendingStep = true
	}
	if act.Reset {
		g.pendingReset = true
	}

	pad := int32(10)
	x := int32(g.cfg.Derived.GridW32) + pad
	width := int32(g.cfg.Screen.PanelWidth) - 2*pad

	y = g.hud.Draw(x, y, width, g.hudData())
	g.hud.DrawLegend(x, y+6, legendLabels, legendColors)
}

// hudData gathers the values shown in the stats block.
func (g *Game) hudData() ui.HUDData {
	data := ui.HUDData{
		Step:          g.step,
		SimTime:       float64(g.step) * g.cfg.Solver.Timestep,
		FPS:           rl.GetFPS(),
		Paused:        g.controls.Paused,
		MaxDiv:        g.solver.MaxDivergence(),
		KineticEnergy: g.solver.KineticEnergy(),
		Boundaries:    len(g.solver.Boundaries()),
		Pruned:        g.solver.Pruned(),
		Tracers:       g.tracers.Len(),
		CellVisits:    g.solver.Stats().CellVisits,
	}

	mouse := rl.GetMousePosition()
	if pos, ok := g.ScreenToGrid(mouse.X, mouse.Y); ok {
		cx, cy := int(pos.X), int(pos.Y)
		vel := g.solver.CellVelocity(cx, cy)
		data.Cursor = fmt.Sprintf("(%d,%d) %s |v|=%.1f", cx, cy, g.solver.Cell(cx, cy).Kind, vel.Magnitude())
		data.CursorCurl = g.solver.ComputeVorticity()[cy*g.solver.Width()+cx]
	}
	return data
}
