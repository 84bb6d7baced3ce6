// Package game wires the solver, tracers, telemetry and UI into a runnable
// simulation, headless or windowed.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/flume/camera"
	"github.com/pthm-cable/flume/config"
	"github.com/pthm-cable/flume/fluid"
	"github.com/pthm-cable/flume/renderer"
	"github.com/pthm-cable/flume/telemetry"
	"github.com/pthm-cable/flume/tracers"
	"github.com/pthm-cable/flume/ui"
)

// Options configures a Game beyond the loaded config.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64          // Tracer seed override, 0 keeps the config value
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	DumpEvery      int // Write a grid dump every N steps, 0 disables
}

// Game holds the complete run state.
type Game struct {
	cfg     *config.Config
	solver  *fluid.Solver
	tracers *tracers.System

	controls       ui.ControlsState
	step           int64
	headless       bool
	stepsPerUpdate int
	dumpEvery      int
	logStats       bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	framePerf        *PerfStats
	lastStats        telemetry.WindowStats

	camera *camera.Camera

	// Rendering (nil when headless)
	grid        *renderer.GridRenderer
	tracerDraw  *renderer.TracerRenderer
	overlays    *ui.OverlayRegistry
	panel       *ui.ControlsPanel
	hud         *ui.HUD
	stroke      bool
	lastPointer fluid.Vec2

	// Set by keys or panel buttons, consumed by the next Update
	pendingStep  bool
	pendingReset bool
}

// NewGameWithOptions builds the solver, applies the warm-up projection steps
// and prepares telemetry output.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	solver, err := fluid.New(cfg.SolverParams())
	if err != nil {
		return nil, fmt.Errorf("creating solver: %w", err)
	}

	seed := cfg.Tracers.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		cfg:    cfg,
		solver: solver,
		tracers: tracers.NewSystem(tracers.Config{
			Count:        cfg.Tracers.Count,
			SpawnPerStep: cfg.Tracers.SpawnPerStep,
			MaxAge:       float32(cfg.Tracers.MaxAge),
			Seed:         seed,
		}),
		controls: ui.ControlsState{
			Stages:         stagesFrom(cfg.StepOptions()),
			Overrelaxation: float32(cfg.Solver.Overrelaxation),
			Confinement:    float32(cfg.Solver.Confinement),
			BrushSize:      cfg.Brush.Size,
		},
		headless:         opts.Headless,
		stepsPerUpdate:   stepsPerUpdate,
		dumpEvery:        opts.DumpEvery,
		logStats:         opts.LogStats,
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, float32(cfg.Solver.Timestep)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		framePerf:        NewPerfStats(),
		camera:           camera.New(cfg.Solver.Width, cfg.Solver.Height, cfg.Screen.CellSize),
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g.warmup()

	if !opts.Headless {
		g.grid = renderer.NewGridRenderer()
		g.tracerDraw = renderer.NewTracerRenderer()
		g.overlays = ui.NewOverlayRegistry()
		g.panel = ui.NewControlsPanel(int32(cfg.Derived.GridW32), 0,
			int32(cfg.Screen.PanelWidth), int32(cfg.Derived.ScreenHeight))
		g.hud = ui.NewHUD()
	}

	return g, nil
}

// warmup runs projection-only steps so the first frame starts from a
// near divergence-free field. Warm-up steps are not counted.
func (g *Game) warmup() {
	for i := 0; i < g.cfg.Pipeline.WarmupSteps; i++ {
		g.solver.Step(fluid.StepOptions{Project: true})
	}
	g.logSolverState("warmup complete")
}

// Solver returns the underlying solver.
func (g *Game) Solver() *fluid.Solver { return g.solver }

// Tracers returns the tracer system.
func (g *Game) Tracers() *tracers.System { return g.tracers }

// Camera returns the grid view.
func (g *Game) Camera() *camera.Camera { return g.camera }

// ScreenToGrid converts a screen position to grid coordinates. ok is false
// when the position is outside the grid view or the grid.
func (g *Game) ScreenToGrid(sx, sy float32) (pos fluid.Vec2, ok bool) {
	if !g.camera.InViewport(sx, sy) {
		return fluid.Vec2{}, false
	}
	pos.X, pos.Y = g.camera.ScreenToWorld(sx, sy)
	return pos, g.solver.InBounds(int(pos.X), int(pos.Y))
}

// Tick returns the number of simulation steps taken since start.
func (g *Game) Tick() int64 { return g.step }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.controls.Paused }

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) { g.controls.Paused = p }

// SetStage enables or disables a pipeline stage by index in ui.StageNames.
func (g *Game) SetStage(i int, on bool) {
	if i >= 0 && i < len(g.controls.Stages) {
		g.controls.Stages[i] = on
	}
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.grid != nil {
		g.grid.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
