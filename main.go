package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/config"
	"github.com/pthm-cable/flume/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and grid dumps")
	seed := flag.Int64("seed", 0, "Tracer RNG seed (0 = use config)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Solver steps per update call (higher = faster headless runs)")
	dumpEvery := flag.Int("dump", 0, "Write a text dump of the grid every N steps (0 = off)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		DumpEvery:      *dumpEvery,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"grid", []int{cfg.Solver.Width, cfg.Solver.Height},
			"layout", cfg.Boundary.Layout,
			"max_steps", *maxSteps,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxSteps > 0 && g.Tick() >= int64(*maxSteps) {
				slog.Info("max steps reached", "step", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Derived.ScreenWidth), int32(cfg.Derived.ScreenHeight), "Flume")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxSteps > 0 && g.Tick() >= int64(*maxSteps) {
			break
		}
	}
}
