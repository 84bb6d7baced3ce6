package fluid

// minGradient is the smallest |grad|w|| that produces a confinement force.
const minGradient = 1e-6

// ComputeVorticity fills the vorticity field from the current velocities.
// Only interior cells are computed; the outer ring stays zero.
func (s *Solver) ComputeVorticity() []float32 {
	clear(s.vort)
	for y := 1; y < s.y-1; y++ {
		for x := 1; x < s.x-1; x++ {
			dvdx := (s.centerV(x+1, y) - s.centerV(x-1, y)) * 0.5
			dudy := (s.centerU(x, y+1) - s.centerU(x, y-1)) * 0.5
			s.vort[y*s.x+x] = dvdx - dudy
		}
	}
	return s.vort
}

// Confine adds a vorticity confinement force pushing flow towards regions of
// high vorticity. Faces shared with a non-Fluid cell are never written.
func (s *Solver) Confine() {
	eps := s.p.Confinement
	dt := s.p.Timestep
	w := s.ComputeVorticity()
	stride := s.x + 1

	for y := 1; y < s.y-1; y++ {
		for x := 1; x < s.x-1; x++ {
			i := y*s.x + x
			if !s.cells[i].IsFluid() {
				continue
			}

			grad := Vec2{
				X: (abs32(w[i+1]) - abs32(w[i-1])) * 0.5,
				Y: (abs32(w[i+s.x]) - abs32(w[i-s.x])) * 0.5,
			}
			if grad.Magnitude() <= minGradient {
				continue
			}
			n := grad.Normalize()
			force := Vec2{X: n.Y * w[i], Y: -n.X * w[i]}.Scale(eps * dt)

			if s.cells[i-1].IsFluid() {
				s.u[y*stride+x] += force.X
			}
			if s.cells[i-s.x].IsFluid() {
				s.v[i] += force.Y
			}
		}
	}
}

func (s *Solver) centerU(x, y int) float32 {
	i := y*(s.x+1) + x
	return (s.u[i] + s.u[i+1]) * 0.5
}

func (s *Solver) centerV(x, y int) float32 {
	return (s.v[y*s.x+x] + s.v[(y+1)*s.x+x]) * 0.5
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
