package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/fluid"
)

// stageKeys toggle the pipeline stages in ui.StageNames order.
var stageKeys = [4]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}

// Update handles input and advances the simulation for one frame.
func (g *Game) Update() {
	g.framePerf.Measure(SectionInput, g.handleInput)
	g.applyControls()

	if g.pendingReset {
		g.pendingReset = false
		g.Reset()
	}

	steps := g.stepsPerUpdate
	if g.controls.Paused {
		steps = 0
		if g.pendingStep {
			steps = 1
		}
	}
	g.pendingStep = false

	if steps > 0 {
		g.framePerf.Measure(SectionSimulate, func() {
			for i := 0; i < steps; i++ {
				g.simulationStep()
			}
		})
	}
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.controls.Paused = !g.controls.Paused
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.pendingStep = true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.pendingReset = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.logFramePerf()
	}
	for i, key := range stageKeys {
		if rl.IsKeyPressed(key) {
			g.controls.Stages[i] = !g.controls.Stages[i]
		}
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	g.handleCamera()
	g.handlePointer()
}

// handleCamera zooms with the wheel or +/- and pans with the arrow keys.
func (g *Game) handleCamera() {
	panSpeed := 400 * rl.GetFrameTime()
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}

	// Zoom toward the cursor over the grid, toward the view center otherwise
	mouse := rl.GetMousePosition()
	if !g.camera.InViewport(mouse.X, mouse.Y) {
		mouse = rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomAt(1+wheel*0.1, mouse.X, mouse.Y)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomAt(1.25, mouse.X, mouse.Y)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomAt(0.8, mouse.X, mouse.Y)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handlePointer paints, erases or fills cells under the mouse.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	if g.panel.Contains(mouse.X, mouse.Y) || !g.camera.InViewport(mouse.X, mouse.Y) {
		g.stroke = false
		return
	}
	pos := fluid.Vec2{}
	pos.X, pos.Y = g.camera.ScreenToWorld(mouse.X, mouse.Y)

	if rl.IsKeyPressed(rl.KeyF) {
		if n := g.FillAt(int(pos.X), int(pos.Y)); n > 0 {
			slog.Info("region filled", "x", int(pos.X), "y", int(pos.Y), "cells", n)
		}
	}

	paint := rl.IsMouseButtonDown(rl.MouseLeftButton)
	erase := rl.IsMouseButtonDown(rl.MouseRightButton)
	if !paint && !erase {
		g.stroke = false
		return
	}

	from := pos
	if g.stroke {
		from = g.lastPointer
	}
	g.PaintStroke(from, pos, erase)
	g.stroke = true
	g.lastPointer = pos
}
