// Package tracers moves passive marker particles through a fluid solver's
// velocity field. Tracers live in an ark ECS world and never feed back into
// the flow.
package tracers

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flume/fluid"
)

// TrailLen is the number of past positions remembered per tracer.
const TrailLen = 8

// Position is a tracer's location in cell units from the grid's top-left
// corner. Cell (x, y) covers [x, x+1) x [y, y+1).
type Position struct {
	X, Y float32
}

// Trail holds recent positions, most recent first.
type Trail struct {
	X, Y [TrailLen]float32
	Len  uint8
}

// Age is simulated time since spawn, in seconds.
type Age struct {
	Seconds float32
}

// Config controls spawning and lifetime.
type Config struct {
	Count        int     // Maximum live tracers
	SpawnPerStep int     // Spawn attempts per Spawn call
	MaxAge       float32 // Seconds before a tracer is retired
	Seed         int64
}

// Tracer is a read-only view handed to Each.
type Tracer struct {
	Position
	Trail Trail
	Life  float32 // Age as a fraction of MaxAge, in [0, 1)
}

// System owns the tracer world.
type System struct {
	cfg Config
	rng *rand.Rand

	world  *ecs.World
	mapper *ecs.Map3[Position, Trail, Age]
	filter *ecs.Filter3[Position, Trail, Age]

	alive   int
	pending []ecs.Entity
}

// NewSystem creates an empty tracer system.
func NewSystem(cfg Config) *System {
	world := ecs.NewWorld()
	return &System{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		world:  world,
		mapper: ecs.NewMap3[Position, Trail, Age](world),
		filter: ecs.NewFilter3[Position, Trail, Age](world),
	}
}

// Len returns the number of live tracers.
func (s *System) Len() int { return s.alive }

// Add places a tracer at (x, y). It returns false when the system is full.
func (s *System) Add(x, y float32) bool {
	if s.alive >= s.cfg.Count {
		return false
	}
	pos := Position{X: x, Y: y}
	trail := Trail{}
	age := Age{}
	s.mapper.NewEntity(&pos, &trail, &age)
	s.alive++
	return true
}

// Spawn seeds up to SpawnPerStep tracers along the inlet column, just inside
// the left edge. Candidates landing on a non-Fluid cell are dropped. It
// returns the number of tracers added.
func (s *System) Spawn(sol *fluid.Solver) int {
	h := sol.Height()
	if sol.Width() < 2 || h < 3 {
		return 0
	}

	added := 0
	for i := 0; i < s.cfg.SpawnPerStep; i++ {
		x := 1 + s.rng.Float32()
		y := 1 + s.rng.Float32()*float32(h-2)
		if !sol.Cell(int(x), int(y)).IsFluid() {
			continue
		}
		if !s.Add(x, y) {
			break
		}
		added++
	}
	return added
}

// Update advances every tracer by one solver timestep and retires tracers
// that left the grid, entered a Static cell or outlived MaxAge. It returns
// the number retired.
func (s *System) Update(sol *fluid.Solver) int {
	p := sol.Params()
	scale := p.Timestep / p.GridSpacing

	s.pending = s.pending[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, trail, age := query.Get()

		copy(trail.X[1:], trail.X[:TrailLen-1])
		copy(trail.Y[1:], trail.Y[:TrailLen-1])
		trail.X[0], trail.Y[0] = pos.X, pos.Y
		if trail.Len < TrailLen {
			trail.Len++
		}

		vel := sol.SampleVelocity(pos.X, pos.Y)
		pos.X += vel.X * scale
		pos.Y += vel.Y * scale
		age.Seconds += p.Timestep

		if s.expired(sol, pos, age) {
			s.pending = append(s.pending, query.Entity())
		}
	}

	for _, e := range s.pending {
		s.mapper.Remove(e)
	}
	s.alive -= len(s.pending)
	return len(s.pending)
}

func (s *System) expired(sol *fluid.Solver, pos *Position, age *Age) bool {
	if age.Seconds >= s.cfg.MaxAge {
		return true
	}
	cx := int(math.Floor(float64(pos.X)))
	cy := int(math.Floor(float64(pos.Y)))
	if !sol.InBounds(cx, cy) {
		return true
	}
	return sol.Cell(cx, cy).IsStatic()
}

// Each calls fn for every live tracer.
func (s *System) Each(fn func(t Tracer)) {
	maxAge := s.cfg.MaxAge
	query := s.filter.Query()
	for query.Next() {
		pos, trail, age := query.Get()
		life := float32(0)
		if maxAge > 0 {
			life = age.Seconds / maxAge
		}
		fn(Tracer{Position: *pos, Trail: *trail, Life: life})
	}
}

// Clear removes every tracer.
func (s *System) Clear() {
	s.pending = s.pending[:0]
	query := s.filter.Query()
	for query.Next() {
		s.pending = append(s.pending, query.Entity())
	}
	for _, e := range s.pending {
		s.mapper.Remove(e)
	}
	s.alive = 0
}
