package fluid

// FillRegion converts the 4-connected Fluid region containing (x, y) into
// pruned Static cells and zeroes their faces. Pruned cells are not added to
// the boundary registry. It returns the number of cells converted; seeds
// outside the grid or on a non-Fluid cell convert nothing.
func (s *Solver) FillRegion(x, y int) int {
	s.mustBeIdle("FillRegion")
	if !s.InBounds(x, y) || !s.cells[y*s.x+x].IsFluid() {
		return 0
	}

	filled := 0
	stack := []Coord{{x, y}}
	s.cells[y*s.x+x] = Cell{Kind: KindStatic, Pruned: true}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.writeFaces(c.X, c.Y, cellFaces{})
		filled++

		for _, d := range Directions {
			n := c.Add(d)
			if !s.InBounds(n.X, n.Y) {
				continue
			}
			i := n.Y*s.x + n.X
			if s.cells[i].IsFluid() {
				// mark on push so a cell is never queued twice
				s.cells[i] = Cell{Kind: KindStatic, Pruned: true}
				stack = append(stack, n)
			}
		}
	}

	s.pruned += filled
	return filled
}
