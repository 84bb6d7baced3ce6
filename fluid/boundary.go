package fluid

// Place sets the classification of (x, y). Non-Fluid cells are registered
// once; placing Fluid removes the cell from the registry.
// Coordinates outside the grid are ignored.
func (s *Solver) Place(x, y int, c Cell) {
	s.mustBeIdle("Place")
	if !s.InBounds(x, y) {
		return
	}
	if c.IsFluid() {
		s.Remove(x, y)
		return
	}
	i := y*s.x + x
	if s.cells[i].Pruned {
		s.pruned--
	}
	c.Pruned = false
	s.cells[i] = c
	s.boundaries.Add(x, y)
}

// Remove resets (x, y) to Fluid and drops it from the registry.
// Coordinates outside the grid are ignored.
func (s *Solver) Remove(x, y int) {
	s.mustBeIdle("Remove")
	if !s.InBounds(x, y) {
		return
	}
	i := y*s.x + x
	if s.cells[i].Pruned {
		s.pruned--
	}
	s.cells[i] = Fluid()
	s.boundaries.Remove(x, y)
}

// PlaceBoundary marks (x, y) as a Static wall.
func (s *Solver) PlaceBoundary(x, y int) {
	s.Place(x, y, Static())
}

// DeleteBoundary returns (x, y) to Fluid.
func (s *Solver) DeleteBoundary(x, y int) {
	s.Remove(x, y)
}

// Enforce re-asserts every registered boundary condition in registry order.
func (s *Solver) Enforce() {
	for _, c := range s.boundaries.Coords() {
		cell := s.cells[c.Y*s.x+c.X]
		switch cell.Kind {
		case KindStatic:
			s.writeFaces(c.X, c.Y, cellFaces{})
		case KindSource:
			vx, vy := cell.Velocity.X, cell.Velocity.Y
			s.writeFaces(c.X, c.Y, cellFaces{right: vx, left: vx, down: vy, up: vy})
		case KindClone:
			s.matchClone(c.X, c.Y, cell.Offset)
		}
	}
}

// matchClone copies the faces of the cell at (x, y)+off onto (x, y).
// All four reference faces are read before any write.
func (s *Solver) matchClone(x, y int, off Coord) {
	rx, ry := x+off.X, y+off.Y
	if !s.InBounds(rx, ry) {
		return
	}
	s.writeFaces(x, y, s.readFaces(rx, ry))
}

// syncClones re-applies only the Clone conditions.
func (s *Solver) syncClones() {
	for _, c := range s.boundaries.Coords() {
		cell := s.cells[c.Y*s.x+c.X]
		if cell.Kind == KindClone {
			s.matchClone(c.X, c.Y, cell.Offset)
		}
	}
}

// ApplyInitialConditions places the configured edge layout and obstacle.
func (s *Solver) ApplyInitialConditions() {
	switch s.p.Layout {
	case LayoutClosed:
		for y := 0; y < s.y; y++ {
			for x := 0; x < s.x; x++ {
				if x == 0 || y == 0 || x == s.x-1 || y == s.y-1 {
					s.Place(x, y, Static())
				}
			}
		}
	default:
		for y := 0; y < s.y; y++ {
			for x := 0; x < s.x; x++ {
				// Later edges override earlier ones, so corners end up
				// mirroring vertically.
				if x == 0 {
					s.Place(x, y, Source(s.p.SourceVelocity, 0))
				}
				if x == s.x-1 {
					s.Place(x, y, Clone(-1, 0))
				}
				if y == 0 {
					s.Place(x, y, Clone(0, 1))
				}
				if y == s.y-1 {
					s.Place(x, y, Clone(0, -1))
				}
			}
		}
	}

	if s.p.Obstacle.Radius > 0 {
		s.PlaceCircle(s.p.Obstacle.X, s.p.Obstacle.Y, s.p.Obstacle.Radius)
	}

	s.Enforce()
}

// PlaceCircle marks every cell within radius of (cx, cy) as Static.
func (s *Solver) PlaceCircle(cx, cy, radius int) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				s.PlaceBoundary(x, y)
			}
		}
	}
}
