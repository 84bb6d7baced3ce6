package fluid

import (
	"fmt"
	"math"
)

// Advect transports u and v along themselves with a semi-Lagrangian
// backtrace. Faces touching a non-Fluid cell keep their current value.
func (s *Solver) Advect() {
	copy(s.nu, s.u)
	copy(s.nv, s.v)

	scale := s.p.Timestep / s.p.GridSpacing
	stride := s.x + 1

	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			here := s.cells[y*s.x+x]
			if !here.IsFluid() {
				continue
			}

			// u sample on the left face, located at (x, y+0.5)
			if x >= 1 && y < s.y-1 && s.cells[y*s.x+x-1].IsFluid() {
				i := y*stride + x
				px := float32(x) - s.u[i]*scale
				py := float32(y) + 0.5 - s.avgV(x, y)*scale
				s.nu[i] = s.sample(fieldU, px, py)
			}

			// v sample on the top face, located at (x+0.5, y)
			if y >= 1 && x < s.x-1 && s.cells[(y-1)*s.x+x].IsFluid() {
				i := y*s.x + x
				px := float32(x) + 0.5 - s.avgU(x, y)*scale
				py := float32(y) - s.v[i]*scale
				s.nv[i] = s.sample(fieldV, px, py)
			}
		}
	}

	s.u, s.nu = s.nu, s.u
	s.v, s.nv = s.nv, s.v
}

// avgV is the mean of the four v samples around u-face (x, y).
func (s *Solver) avgV(x, y int) float32 {
	n := s.x
	return (s.v[y*n+x-1] + s.v[y*n+x] +
		s.v[(y+1)*n+x-1] + s.v[(y+1)*n+x]) * 0.25
}

// avgU is the mean of the four u samples around v-face (x, y).
func (s *Solver) avgU(x, y int) float32 {
	n := s.x + 1
	return (s.u[(y-1)*n+x] + s.u[(y-1)*n+x+1] +
		s.u[y*n+x] + s.u[y*n+x+1]) * 0.25
}

// sample bilinearly interpolates a staggered field at grid position (x, y),
// measured in cells from the top-left corner of the grid.
func (s *Solver) sample(fld field, x, y float32) float32 {
	var data []float32
	var cols, rows int
	switch fld {
	case fieldU:
		data, cols, rows = s.u, s.x+1, s.y
		y -= 0.5
	case fieldV:
		data, cols, rows = s.v, s.x, s.y+1
		x -= 0.5
	default:
		panic(fmt.Sprintf("fluid: invalid field selector %d", fld))
	}

	x = clamp(x, 0, float32(cols-1))
	y = clamp(y, 0, float32(rows-1))

	x0 := int(math.Floor(float64(x)))
	y0 := int(math.Floor(float64(y)))
	x1 := min(x0+1, cols-1)
	y1 := min(y0+1, rows-1)
	tx := x - float32(x0)
	ty := y - float32(y0)

	v00 := data[y0*cols+x0]
	v10 := data[y0*cols+x1]
	v01 := data[y1*cols+x0]
	v11 := data[y1*cols+x1]

	top := (1-tx)*v00 + tx*v10
	bottom := (1-tx)*v01 + tx*v11
	return (1-ty)*top + ty*bottom
}

func clamp(v, lo, hi float32) float32 {
	return max(min(v, hi), lo)
}
