// Package fluid implements a 2D incompressible flow solver on a staggered
// (MAC) grid: boundary registry, Gauss-Seidel pressure projection,
// semi-Lagrangian advection and vorticity confinement.
package fluid

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by New when solver parameters are unusable.
var ErrInvalidParams = errors.New("invalid solver parameters")

// Phase names reported through StepOptions.OnPhase.
const (
	PhaseAdvect  = "advect"
	PhaseConfine = "confine"
	PhaseEnforce = "enforce"
	PhaseProject = "project"
)

// Layout selects the boundary layout applied on construction and reset.
type Layout uint8

const (
	// LayoutOpen places a Source inlet on the left edge and Clone cells on
	// the remaining edges to emulate an unbounded channel.
	LayoutOpen Layout = iota
	// LayoutClosed surrounds the grid with Static walls.
	LayoutClosed
)

// Obstacle is an optional circular Static region. Disabled when Radius <= 0.
type Obstacle struct {
	X, Y   int
	Radius int
}

// Params configures a Solver.
type Params struct {
	Width, Height  int
	Overrelaxation float32
	Iterations     int
	Timestep       float32
	GridSpacing    float32 // cell size in world units
	SourceVelocity float32 // inlet velocity of the open layout
	Confinement    float32 // vorticity confinement strength, 0 disables

	// ResyncClones copies Clone faces again after projection so mirrored
	// edges track the corrected interior.
	ResyncClones bool

	Layout   Layout
	Obstacle Obstacle
}

// Validate checks that the parameters describe a usable solver.
func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("grid %dx%d: %w", p.Width, p.Height, ErrInvalidParams)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("iterations %d: %w", p.Iterations, ErrInvalidParams)
	}
	if p.Timestep <= 0 {
		return fmt.Errorf("timestep %g: %w", p.Timestep, ErrInvalidParams)
	}
	if p.GridSpacing <= 0 {
		return fmt.Errorf("grid spacing %g: %w", p.GridSpacing, ErrInvalidParams)
	}
	return nil
}

// StepOptions gates the stages of one simulation step.
type StepOptions struct {
	Advect  bool
	Confine bool
	Enforce bool
	Project bool

	// OnPhase, if set, is called with the phase name before each stage runs.
	// It must not change the geometry: Place, Remove and FillRegion panic
	// while a step is running.
	OnPhase func(phase string)
}

// FullStep runs every stage.
var FullStep = StepOptions{Advect: true, Confine: true, Enforce: true, Project: true}

// Stats holds cumulative work counters.
type Stats struct {
	Steps      int64
	CellVisits int64 // grid cells swept by projection, summed over iterations
}

// Solver owns the velocity fields, cell classification and boundary registry.
// It is not safe for concurrent use.
type Solver struct {
	p Params

	x, y int

	u, v   []float32 // live staggered velocities
	nu, nv []float32 // advection scratch

	cells      []Cell
	boundaries *Registry
	vort       []float32
	pruned     int

	stats  Stats
	inStep bool
}

// New creates a solver and applies the initial boundary layout.
func New(p Params) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{p: p, x: p.Width, y: p.Height}
	s.alloc()
	s.ApplyInitialConditions()
	return s, nil
}

func (s *Solver) alloc() {
	uLen := s.y * (s.x + 1)
	vLen := (s.y + 1) * s.x
	s.u = make([]float32, uLen)
	s.v = make([]float32, vLen)
	s.nu = make([]float32, uLen)
	s.nv = make([]float32, vLen)
	s.cells = make([]Cell, s.x*s.y)
	s.vort = make([]float32, s.x*s.y)
	s.boundaries = NewRegistry(s.x, s.y)
	s.pruned = 0
}

// Reset zeroes all fields, clears the registry and re-applies the initial
// boundary layout. Stats are cumulative and survive a reset.
func (s *Solver) Reset() {
	s.mustBeIdle("Reset")
	s.alloc()
	s.ApplyInitialConditions()
}

// Step advances the simulation by one timestep.
// Stages run in the order advect, confine, enforce, project.
func (s *Solver) Step(opts StepOptions) {
	s.inStep = true
	defer func() { s.inStep = false }()

	phase := func(name string) {
		if opts.OnPhase != nil {
			opts.OnPhase(name)
		}
	}

	if opts.Advect {
		phase(PhaseAdvect)
		s.Advect()
	}
	if opts.Confine && s.p.Confinement != 0 {
		phase(PhaseConfine)
		s.Confine()
	}
	if opts.Enforce {
		phase(PhaseEnforce)
		s.Enforce()
	}
	if opts.Project {
		phase(PhaseProject)
		s.Project()
		if s.p.ResyncClones {
			s.syncClones()
		}
	}
	s.stats.Steps++
}

// mustBeIdle panics when the geometry is edited from inside Step.
func (s *Solver) mustBeIdle(op string) {
	if s.inStep {
		panic("fluid: " + op + " called while a step is in flight")
	}
}

// Width returns the number of cell columns.
func (s *Solver) Width() int { return s.x }

// Height returns the number of cell rows.
func (s *Solver) Height() int { return s.y }

// Params returns the current parameters.
func (s *Solver) Params() Params { return s.p }

// Stats returns the cumulative work counters.
func (s *Solver) Stats() Stats { return s.stats }

// SetOverrelaxation changes the projection relaxation factor.
func (s *Solver) SetOverrelaxation(w float32) { s.p.Overrelaxation = w }

// SetConfinement changes the vorticity confinement strength.
func (s *Solver) SetConfinement(eps float32) { s.p.Confinement = eps }

// InBounds reports whether (x, y) is a grid cell.
func (s *Solver) InBounds(x, y int) bool {
	return x >= 0 && x < s.x && y >= 0 && y < s.y
}

// Cell returns the classification of (x, y), or Static outside the grid.
func (s *Solver) Cell(x, y int) Cell {
	if !s.InBounds(x, y) {
		return Static()
	}
	return s.cells[y*s.x+x]
}

// U returns the horizontal velocity on the left face of cell (x, y).
// x ranges over [0, Width], y over [0, Height).
func (s *Solver) U(x, y int) float32 { return s.u[y*(s.x+1)+x] }

// V returns the vertical velocity on the top face of cell (x, y).
// x ranges over [0, Width), y over [0, Height].
func (s *Solver) V(x, y int) float32 { return s.v[y*s.x+x] }

// SetU overwrites the horizontal velocity on the left face of cell (x, y).
func (s *Solver) SetU(x, y int, val float32) { s.u[y*(s.x+1)+x] = val }

// SetV overwrites the vertical velocity on the top face of cell (x, y).
func (s *Solver) SetV(x, y int, val float32) { s.v[y*s.x+x] = val }

// Vorticity returns the most recently computed vorticity field in row-major
// order. The slice is owned by the solver.
func (s *Solver) Vorticity() []float32 { return s.vort }

// Boundaries returns a copy of the boundary registry in insertion order.
func (s *Solver) Boundaries() []Coord {
	out := make([]Coord, s.boundaries.Len())
	copy(out, s.boundaries.Coords())
	return out
}

// Pruned returns the number of cells currently converted by FillRegion.
func (s *Solver) Pruned() int { return s.pruned }
