package fluid

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func testParams(w, h int, layout Layout) Params {
	return Params{
		Width:          w,
		Height:         h,
		Overrelaxation: 1.0,
		Iterations:     10,
		Timestep:       0.04,
		GridSpacing:    1.0,
		SourceVelocity: 60,
		ResyncClones:   true,
		Layout:         layout,
	}
}

func newTestSolver(t testing.TB, p Params) *Solver {
	t.Helper()
	s, err := New(p)
	if err != nil {
		t.Fatalf("New(%+v): %v", p, err)
	}
	return s
}

// randomize fills every face with values in [-1, 1).
func randomize(s *Solver, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range s.u {
		s.u[i] = rng.Float32()*2 - 1
	}
	for i := range s.v {
		s.v[i] = rng.Float32()*2 - 1
	}
}

func approx(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestNewRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"negative height", func(p *Params) { p.Height = -3 }},
		{"negative iterations", func(p *Params) { p.Iterations = -1 }},
		{"zero timestep", func(p *Params) { p.Timestep = 0 }},
		{"zero spacing", func(p *Params) { p.GridSpacing = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams(8, 8, LayoutOpen)
			tc.mutate(&p)
			_, err := New(p)
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestFieldShapes(t *testing.T) {
	s := newTestSolver(t, testParams(7, 5, LayoutClosed))

	if len(s.u) != 5*8 {
		t.Errorf("u has %d samples, want %d", len(s.u), 5*8)
	}
	if len(s.v) != 6*7 {
		t.Errorf("v has %d samples, want %d", len(s.v), 6*7)
	}
	if len(s.nu) != len(s.u) || len(s.nv) != len(s.v) {
		t.Error("scratch arrays must match field shapes")
	}
}

func TestOpenLayout(t *testing.T) {
	s := newTestSolver(t, testParams(10, 6, LayoutOpen))

	for y := 1; y < 5; y++ {
		c := s.Cell(0, y)
		if c.Kind != KindSource || c.Velocity != (Vec2{X: 60}) {
			t.Errorf("inlet (0,%d) = %v, want Emitter(60,0)", y, c)
		}
		if c := s.Cell(9, y); c.Kind != KindClone || c.Offset != (Coord{X: -1}) {
			t.Errorf("outlet (9,%d) = %v, want Match(-1,0)", y, c)
		}
	}
	for x := 0; x < 10; x++ {
		if c := s.Cell(x, 0); c.Kind != KindClone || c.Offset != (Coord{Y: 1}) {
			t.Errorf("top (%d,0) = %v, want Match(0,1)", x, c)
		}
		if c := s.Cell(x, 5); c.Kind != KindClone || c.Offset != (Coord{Y: -1}) {
			t.Errorf("bottom (%d,5) = %v, want Match(0,-1)", x, c)
		}
	}

	// perimeter of a 10x6 grid
	if got := len(s.Boundaries()); got != 2*10+2*4 {
		t.Errorf("registry has %d entries, want %d", got, 28)
	}
}

func TestSourceScenario(t *testing.T) {
	p := testParams(4, 4, LayoutClosed)
	p.Iterations = 1
	s := newTestSolver(t, p)

	s.Place(0, 1, Source(2, 0))
	s.Enforce()

	f := s.readFaces(0, 1)
	if f.left != 2 || f.right != 2 {
		t.Errorf("source left/right = %g/%g, want 2/2", f.left, f.right)
	}
	if f.up != 0 || f.down != 0 {
		t.Errorf("source up/down = %g/%g, want 0/0", f.up, f.down)
	}

	before := s.MaxDivergence()
	if before != 2 {
		t.Fatalf("expected max divergence 2 before projection, got %g", before)
	}

	s.Project()

	after := s.MaxDivergence()
	if after >= before {
		t.Errorf("max divergence did not decrease: before=%g after=%g", before, after)
	}
	if f := s.readFaces(0, 1); f.left != 2 || f.right != 2 {
		t.Errorf("projection modified source faces: %+v", f)
	}
}

func TestProjectionConverges(t *testing.T) {
	for _, omega := range []float32{1.0, 1.7} {
		p := testParams(12, 12, LayoutClosed)
		p.Iterations = 1
		p.Overrelaxation = omega
		s := newTestSolver(t, p)
		randomize(s, 42)
		s.Enforce()

		checkpoints := []int{0, 10, 100, 400}
		norms := make([]float64, 0, len(checkpoints))
		done := 0
		for _, cp := range checkpoints {
			for ; done < cp; done++ {
				s.Project()
			}
			norms = append(norms, s.DivergenceNorm())
		}

		for i := 1; i < len(norms); i++ {
			if norms[i] >= norms[i-1] {
				t.Errorf("omega %g: divergence norm did not decrease between %d and %d iterations: %g -> %g",
					omega, checkpoints[i-1], checkpoints[i], norms[i-1], norms[i])
			}
		}
		if norms[len(norms)-1] >= norms[0]*1e-3 {
			t.Errorf("omega %g: expected norm below 1e-3 of initial %g, got %g",
				omega, norms[0], norms[len(norms)-1])
		}
	}
}

func TestProjectionSkipsEnclosedCell(t *testing.T) {
	s := newTestSolver(t, testParams(3, 3, LayoutClosed))

	// (1,1) is the only Fluid cell and has no permeable neighbour
	s.u[1*4+1] = 5
	s.Project()

	if s.u[1*4+1] != 5 {
		t.Errorf("enclosed cell was corrected: u=%g", s.u[1*4+1])
	}
	if got := s.Stats().CellVisits; got != 10*9 {
		t.Errorf("expected %d cell visits, got %d", 90, got)
	}
}

func TestBoundaryInvariantsAcrossSteps(t *testing.T) {
	p := testParams(40, 20, LayoutOpen)
	p.Obstacle = Obstacle{X: 20, Y: 10, Radius: 4}
	p.Confinement = 5
	s := newTestSolver(t, p)

	for step := 0; step < 20; step++ {
		s.Step(FullStep)

		for _, c := range s.Boundaries() {
			cell := s.Cell(c.X, c.Y)
			f := s.readFaces(c.X, c.Y)
			switch cell.Kind {
			case KindStatic:
				if f != (cellFaces{}) {
					t.Fatalf("step %d: static (%d,%d) faces %+v", step, c.X, c.Y, f)
				}
			case KindSource:
				vx, vy := cell.Velocity.X, cell.Velocity.Y
				want := cellFaces{right: vx, left: vx, down: vy, up: vy}
				if f != want {
					t.Fatalf("step %d: source (%d,%d) faces %+v, want %+v", step, c.X, c.Y, f, want)
				}
			}
		}
	}

	if got := s.Stats().Steps; got != 20 {
		t.Errorf("expected 20 steps, got %d", got)
	}
}

func TestCloneCopiesReference(t *testing.T) {
	s := newTestSolver(t, testParams(6, 6, LayoutClosed))
	randomize(s, 7)

	s.Place(3, 3, Clone(-1, 0))
	want := s.readFaces(2, 3)
	s.matchClone(3, 3, Coord{X: -1})

	if got := s.readFaces(3, 3); got != want {
		t.Errorf("clone faces %+v, want %+v", got, want)
	}

	// The shared face is read before it is overwritten: the clone's left
	// face is the reference's right face, so it must take the reference's
	// original left value.
	randomize(s, 8)
	ref := s.readFaces(2, 3)
	s.Enforce()
	if got := s.face(3, 3, -1, 0); got != ref.left {
		t.Errorf("clone left face %g, want reference left %g", got, ref.left)
	}
}

func TestCloneOutsideGridIsSkipped(t *testing.T) {
	s := newTestSolver(t, testParams(4, 4, LayoutClosed))
	s.Remove(0, 1)
	s.Place(0, 1, Clone(-1, 0))
	s.u[1*5+1] = 3

	s.Enforce()

	if s.u[1*5+1] != 3 {
		t.Errorf("clone with out-of-grid reference wrote faces: %g", s.u[1*5+1])
	}
}

func TestOutOfBoundsPlacementIsNoop(t *testing.T) {
	s := newTestSolver(t, testParams(5, 5, LayoutClosed))
	before := s.Boundaries()

	s.PlaceBoundary(-1, 2)
	s.PlaceBoundary(5, 0)
	s.DeleteBoundary(2, 99)
	s.Place(-4, -4, Source(1, 1))

	after := s.Boundaries()
	if len(after) != len(before) {
		t.Fatalf("registry changed from %d to %d entries", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("entry %d changed from %v to %v", i, before[i], after[i])
		}
	}
}

func TestRegistryBijection(t *testing.T) {
	s := newTestSolver(t, testParams(16, 10, LayoutOpen))
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 500; i++ {
		x, y := rng.Intn(18)-1, rng.Intn(12)-1
		switch rng.Intn(4) {
		case 0:
			s.PlaceBoundary(x, y)
		case 1:
			s.DeleteBoundary(x, y)
		case 2:
			s.Place(x, y, Source(1, 0))
		case 3:
			s.Place(x, y, Clone(1, 0))
		}
	}

	seen := make(map[Coord]int)
	for _, c := range s.Boundaries() {
		seen[c]++
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := Coord{X: x, Y: y}
			registered := seen[c]
			if s.Cell(x, y).IsFluid() {
				if registered != 0 {
					t.Errorf("fluid cell %v is registered", c)
				}
			} else if registered != 1 {
				t.Errorf("boundary cell %v registered %d times", c, registered)
			}
		}
	}
}

func TestResetRestoresLayout(t *testing.T) {
	p := testParams(12, 8, LayoutOpen)
	s := newTestSolver(t, p)
	want := s.Boundaries()

	s.Step(FullStep)
	s.PlaceCircle(6, 4, 2)
	s.FillRegion(3, 3)
	s.Reset()

	got := s.Boundaries()
	if len(got) != len(want) {
		t.Fatalf("registry has %d entries after reset, want %d", len(got), len(want))
	}
	if s.Pruned() != 0 {
		t.Errorf("expected pruned count 0 after reset, got %d", s.Pruned())
	}
	if s.Stats().Steps != 1 {
		t.Errorf("expected stats to survive reset, got %d steps", s.Stats().Steps)
	}
}

func TestStepReportsPhases(t *testing.T) {
	p := testParams(8, 8, LayoutOpen)
	p.Confinement = 1
	s := newTestSolver(t, p)

	var phases []string
	opts := FullStep
	opts.OnPhase = func(name string) { phases = append(phases, name) }
	s.Step(opts)

	want := []string{PhaseAdvect, PhaseConfine, PhaseEnforce, PhaseProject}
	if strings.Join(phases, ",") != strings.Join(want, ",") {
		t.Errorf("phases %v, want %v", phases, want)
	}

	phases = phases[:0]
	s.SetConfinement(0)
	opts.Advect = false
	s.Step(opts)
	if strings.Join(phases, ",") != PhaseEnforce+","+PhaseProject {
		t.Errorf("phases %v, want [enforce project]", phases)
	}
}

func TestGeometryLockedDuringStep(t *testing.T) {
	edits := map[string]func(s *Solver){
		"Place":      func(s *Solver) { s.PlaceBoundary(4, 4) },
		"Remove":     func(s *Solver) { s.DeleteBoundary(0, 3) },
		"FillRegion": func(s *Solver) { s.FillRegion(4, 4) },
		"Reset":      func(s *Solver) { s.Reset() },
	}
	for name, edit := range edits {
		s := newTestSolver(t, testParams(8, 8, LayoutOpen))
		boundaries := len(s.Boundaries())

		var panicked any
		opts := FullStep
		opts.OnPhase = func(phase string) {
			if phase != PhaseProject {
				return
			}
			defer func() { panicked = recover() }()
			edit(s)
		}
		s.Step(opts)

		msg, ok := panicked.(string)
		if !ok || !strings.HasPrefix(msg, "fluid: "+name+" called while a step is in flight") {
			t.Errorf("%s during step: panic value %v", name, panicked)
		}
		if !s.Cell(4, 4).IsFluid() || len(s.Boundaries()) != boundaries || s.Pruned() != 0 {
			t.Errorf("%s during step changed the geometry", name)
		}

		// the lock is released once Step returns
		s.PlaceBoundary(4, 4)
		if !s.Cell(4, 4).IsStatic() {
			t.Errorf("PlaceBoundary after a step (%s case) had no effect", name)
		}
	}
}

func TestNeighborDirectionPanics(t *testing.T) {
	s := newTestSolver(t, testParams(4, 4, LayoutClosed))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for diagonal direction")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "fluid: invalid neighbor direction") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	s.face(1, 1, 1, 1)
}

func TestSampleFieldSelectorPanics(t *testing.T) {
	s := newTestSolver(t, testParams(4, 4, LayoutClosed))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for unknown field")
		}
	}()
	s.sample(field(9), 1, 1)
}

func TestVecNormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("normalize of zero vector = %v", got)
	}
	n := Vec2{X: 3, Y: 4}.Normalize()
	if !approx(n.Magnitude(), 1, 1e-6) {
		t.Errorf("expected unit length, got %g", n.Magnitude())
	}
}

func TestKindNames(t *testing.T) {
	names := map[Kind]string{
		KindFluid:  "Fluid",
		KindStatic: "Solid",
		KindSource: "Emitter",
		KindClone:  "Match",
	}
	for k, want := range names {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
