package fluid

// Project runs Params.Iterations Gauss-Seidel sweeps of divergence
// correction over every Fluid cell.
func (s *Solver) Project() {
	for it := 0; it < s.p.Iterations; it++ {
		s.projectSweep()
	}
}

// projectSweep performs one in-place row-major sweep. Corrections made to
// earlier cells are visible to later cells in the same sweep.
func (s *Solver) projectSweep() {
	relax := s.p.Overrelaxation
	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			if !s.cells[y*s.x+x].IsFluid() {
				continue
			}

			div := s.divergence(x, y)
			sides := s.openSides(x, y)
			if sides == 0 {
				continue // enclosed, nothing can be corrected
			}

			correction := -div / sides * relax
			s.distribute(x, y, correction)
		}
	}
	s.stats.CellVisits += int64(s.x * s.y)
}

// distribute applies a correction to the faces of (x, y) that border a
// permeable neighbour. Outflow faces (right, down) gain the correction,
// inflow faces (left, up) lose it.
func (s *Solver) distribute(x, y int, correction float32) {
	if s.neighbor(x, y, 1, 0).Permeable() {
		s.addFace(x, y, 1, 0, correction)
	}
	if s.neighbor(x, y, -1, 0).Permeable() {
		s.addFace(x, y, -1, 0, -correction)
	}
	if s.neighbor(x, y, 0, 1).Permeable() {
		s.addFace(x, y, 0, 1, correction)
	}
	if s.neighbor(x, y, 0, -1).Permeable() {
		s.addFace(x, y, 0, -1, -correction)
	}
}
