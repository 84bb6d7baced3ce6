package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DivergenceField returns the divergence of every Fluid cell in row-major
// order. Non-Fluid cells report zero.
func (s *Solver) DivergenceField() []float64 {
	out := make([]float64, s.x*s.y)
	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			if s.cells[y*s.x+x].IsFluid() {
				out[y*s.x+x] = float64(s.divergence(x, y))
			}
		}
	}
	return out
}

// MaxDivergence returns the largest absolute divergence over Fluid cells.
func (s *Solver) MaxDivergence() float64 {
	div := s.DivergenceField()
	return math.Max(math.Abs(floats.Max(div)), math.Abs(floats.Min(div)))
}

// DivergenceNorm returns the L2 norm of the divergence over Fluid cells.
func (s *Solver) DivergenceNorm() float64 {
	return floats.Norm(s.DivergenceField(), 2)
}

// CellVelocity returns the velocity at the centre of cell (x, y), averaged
// from its four faces.
func (s *Solver) CellVelocity(x, y int) Vec2 {
	return Vec2{X: s.centerU(x, y), Y: s.centerV(x, y)}
}

// SpeedField returns the cell-centred speed of every cell in row-major order.
func (s *Solver) SpeedField() []float64 {
	out := make([]float64, s.x*s.y)
	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			out[y*s.x+x] = float64(s.CellVelocity(x, y).Magnitude())
		}
	}
	return out
}

// KineticEnergy returns half the sum of squared cell-centred speeds over
// Fluid cells.
func (s *Solver) KineticEnergy() float64 {
	speed := s.SpeedField()
	for i, c := range s.cells {
		if !c.IsFluid() {
			speed[i] = 0
		}
	}
	return 0.5 * floats.Dot(speed, speed)
}

// SampleVelocity interpolates the velocity at continuous grid position
// (x, y), measured in cells from the top-left corner.
func (s *Solver) SampleVelocity(x, y float32) Vec2 {
	return Vec2{X: s.sample(fieldU, x, y), Y: s.sample(fieldV, x, y)}
}
