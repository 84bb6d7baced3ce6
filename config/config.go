// Package config provides configuration loading and access for the solver.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pthm-cable/flume/fluid"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all solver and application configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Solver    SolverConfig    `yaml:"solver"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Brush     BrushConfig     `yaml:"brush"`
	Tracers   TracersConfig   `yaml:"tracers"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	CellSize   int `yaml:"cell_size"` // Pixels per grid cell
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel to the right of the grid
	MinHeight  int `yaml:"min_height"`  // Window height floor so the panel fits
}

// SolverConfig holds grid and numerical parameters.
type SolverConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Overrelaxation float64 `yaml:"overrelaxation"`
	Iterations     int     `yaml:"iterations"`
	Timestep       float64 `yaml:"timestep"`
	GridSpacing    float64 `yaml:"grid_spacing"`
	SourceVelocity float64 `yaml:"source_velocity"`
	Confinement    float64 `yaml:"confinement"`   // 0 disables vorticity confinement
	ResyncClones   bool    `yaml:"resync_clones"` // Re-copy mirrored edges after projection
}

// BoundaryConfig holds the initial boundary layout.
type BoundaryConfig struct {
	Layout   string         `yaml:"layout"` // "open" or "closed"
	Obstacle ObstacleConfig `yaml:"obstacle"`
}

// ObstacleConfig describes an optional circular obstacle. Radius 0 disables it.
type ObstacleConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Radius int `yaml:"radius"`
}

// PipelineConfig selects which stages run each step.
type PipelineConfig struct {
	Advect      bool `yaml:"advect"`
	Confine     bool `yaml:"confine"`
	Enforce     bool `yaml:"enforce"`
	Project     bool `yaml:"project"`
	WarmupSteps int  `yaml:"warmup_steps"` // Projection-only steps run before the first frame
}

// BrushConfig holds boundary painting settings.
type BrushConfig struct {
	Size int `yaml:"size"` // Square brush half-extent in cells
}

// TracersConfig holds passive tracer particle settings.
type TracersConfig struct {
	Count        int     `yaml:"count"` // Maximum live tracers
	SpawnPerStep int     `yaml:"spawn_per_step"`
	MaxAge       float64 `yaml:"max_age"` // Seconds of simulated time before removal
	Seed         int64   `yaml:"seed"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // Steps per stats window
	PerfWindow          int `yaml:"perf_window"`           // Ticks in the rolling perf window
	BookmarkHistorySize int `yaml:"bookmark_history_size"` // Windows kept for bookmark detection
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridW32      float32 // Grid width in pixels
	GridH32      float32 // Grid height in pixels
	ScreenWidth  int     // Grid plus control panel
	ScreenHeight int
	Layout       fluid.Layout
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	switch c.Boundary.Layout {
	case "", "open":
		c.Derived.Layout = fluid.LayoutOpen
	case "closed":
		c.Derived.Layout = fluid.LayoutClosed
	default:
		return fmt.Errorf("unknown boundary layout %q", c.Boundary.Layout)
	}

	c.Derived.GridW32 = float32(c.Solver.Width * c.Screen.CellSize)
	c.Derived.GridH32 = float32(c.Solver.Height * c.Screen.CellSize)
	c.Derived.ScreenWidth = c.Solver.Width*c.Screen.CellSize + c.Screen.PanelWidth
	c.Derived.ScreenHeight = max(c.Solver.Height*c.Screen.CellSize, c.Screen.MinHeight)
	return nil
}

// SolverParams builds solver parameters from the solver and boundary sections.
func (c *Config) SolverParams() fluid.Params {
	s := c.Solver
	return fluid.Params{
		Width:          s.Width,
		Height:         s.Height,
		Overrelaxation: float32(s.Overrelaxation),
		Iterations:     s.Iterations,
		Timestep:       float32(s.Timestep),
		GridSpacing:    float32(s.GridSpacing),
		SourceVelocity: float32(s.SourceVelocity),
		Confinement:    float32(s.Confinement),
		ResyncClones:   s.ResyncClones,
		Layout:         c.Derived.Layout,
		Obstacle: fluid.Obstacle{
			X:      c.Boundary.Obstacle.X,
			Y:      c.Boundary.Obstacle.Y,
			Radius: c.Boundary.Obstacle.Radius,
		},
	}
}

// StepOptions builds the per-step stage selection from the pipeline section.
func (c *Config) StepOptions() fluid.StepOptions {
	return fluid.StepOptions{
		Advect:  c.Pipeline.Advect,
		Confine: c.Pipeline.Confine,
		Enforce: c.Pipeline.Enforce,
		Project: c.Pipeline.Project,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
