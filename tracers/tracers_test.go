package tracers

import (
	"math"
	"testing"

	"github.com/pthm-cable/flume/fluid"
)

func newSolver(t *testing.T, w, h int, layout fluid.Layout) *fluid.Solver {
	t.Helper()
	s, err := fluid.New(fluid.Params{
		Width:          w,
		Height:         h,
		Overrelaxation: 1,
		Iterations:     10,
		Timestep:       0.04,
		GridSpacing:    1,
		SourceVelocity: 5,
		Layout:         layout,
	})
	if err != nil {
		t.Fatalf("fluid.New: %v", err)
	}
	return s
}

func collect(s *System) []Tracer {
	var out []Tracer
	s.Each(func(tr Tracer) { out = append(out, tr) })
	return out
}

func TestSpawnAlongInlet(t *testing.T) {
	sol := newSolver(t, 20, 10, fluid.LayoutOpen)
	sys := NewSystem(Config{Count: 100, SpawnPerStep: 12, MaxAge: 5, Seed: 1})

	if n := sys.Spawn(sol); n != 12 {
		t.Fatalf("Spawn added %d, want 12", n)
	}
	if sys.Len() != 12 {
		t.Errorf("Len = %d, want 12", sys.Len())
	}
	for _, tr := range collect(sys) {
		if tr.X < 1 || tr.X >= 2 {
			t.Errorf("tracer x %.3f outside inlet column", tr.X)
		}
		if tr.Y < 1 || tr.Y >= 9 {
			t.Errorf("tracer y %.3f outside interior rows", tr.Y)
		}
	}
}

func TestSpawnRespectsCapacity(t *testing.T) {
	sol := newSolver(t, 20, 10, fluid.LayoutOpen)
	sys := NewSystem(Config{Count: 5, SpawnPerStep: 12, MaxAge: 5, Seed: 1})

	sys.Spawn(sol)
	sys.Spawn(sol)
	if sys.Len() != 5 {
		t.Errorf("Len = %d, want capacity 5", sys.Len())
	}
}

func TestUpdateFollowsFlow(t *testing.T) {
	sol := newSolver(t, 10, 6, fluid.LayoutClosed)
	for y := 0; y < 6; y++ {
		for x := 0; x <= 10; x++ {
			sol.SetU(x, y, 1)
		}
	}

	sys := NewSystem(Config{Count: 10, MaxAge: 5})
	sys.Add(4.5, 3.5)
	if removed := sys.Update(sol); removed != 0 {
		t.Fatalf("Update removed %d tracers", removed)
	}

	got := collect(sys)
	if len(got) != 1 {
		t.Fatalf("expected 1 tracer, got %d", len(got))
	}
	tr := got[0]
	if math.Abs(float64(tr.X-4.54)) > 1e-5 || math.Abs(float64(tr.Y-3.5)) > 1e-5 {
		t.Errorf("tracer at (%.4f, %.4f), want (4.54, 3.5)", tr.X, tr.Y)
	}
	if tr.Trail.Len != 1 || tr.Trail.X[0] != 4.5 || tr.Trail.Y[0] != 3.5 {
		t.Errorf("trail %+v should hold the previous position", tr.Trail)
	}
}

func TestUpdateRetiresStaticAndOutOfGrid(t *testing.T) {
	sol := newSolver(t, 10, 6, fluid.LayoutClosed)
	sys := NewSystem(Config{Count: 10, MaxAge: 5})

	sys.Add(0.5, 0.5) // wall
	sys.Add(-2, 3)    // off grid
	sys.Add(4.5, 3.5) // still fluid

	if removed := sys.Update(sol); removed != 2 {
		t.Errorf("Update removed %d, want 2", removed)
	}
	if sys.Len() != 1 {
		t.Errorf("Len = %d, want 1", sys.Len())
	}
}

func TestUpdateRetiresByAge(t *testing.T) {
	sol := newSolver(t, 10, 6, fluid.LayoutClosed)
	sys := NewSystem(Config{Count: 10, MaxAge: 0.1})
	sys.Add(4.5, 3.5)

	sys.Update(sol)
	sys.Update(sol)
	if sys.Len() != 1 {
		t.Fatalf("tracer retired early at age 0.08")
	}
	if life := collect(sys)[0].Life; life < 0.79 || life > 0.81 {
		t.Errorf("Life = %.3f, want 0.8", life)
	}

	sys.Update(sol)
	if sys.Len() != 0 {
		t.Errorf("tracer survived past MaxAge")
	}
}

func TestTrailIsBounded(t *testing.T) {
	sol := newSolver(t, 10, 6, fluid.LayoutClosed)
	sys := NewSystem(Config{Count: 1, MaxAge: 100})
	sys.Add(4.5, 3.5)

	for i := 0; i < TrailLen*2; i++ {
		sys.Update(sol)
	}
	if tr := collect(sys)[0]; tr.Trail.Len != TrailLen {
		t.Errorf("trail length %d, want %d", tr.Trail.Len, TrailLen)
	}
}

func TestClear(t *testing.T) {
	sol := newSolver(t, 20, 10, fluid.LayoutOpen)
	sys := NewSystem(Config{Count: 50, SpawnPerStep: 20, MaxAge: 5, Seed: 7})
	sys.Spawn(sol)

	sys.Clear()
	if sys.Len() != 0 || len(collect(sys)) != 0 {
		t.Errorf("Clear left %d tracers", sys.Len())
	}
	if n := sys.Spawn(sol); n != 20 {
		t.Errorf("Spawn after Clear added %d, want 20", n)
	}
}
