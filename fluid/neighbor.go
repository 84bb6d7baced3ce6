package fluid

import "fmt"

// field selects one of the staggered velocity arrays.
type field uint8

const (
	fieldU field = iota
	fieldV
)

// faceIndex resolves the face shared by cell (x, y) and its neighbour in
// direction (dx, dy) to an index into u or v.
//
//	(1, 0)  right face  u(x+1, y)
//	(-1, 0) left face   u(x, y)
//	(0, 1)  down face   v(x, y+1)
//	(0, -1) up face     v(x, y)
func (s *Solver) faceIndex(x, y, dx, dy int) (field, int) {
	switch {
	case dx == 1 && dy == 0:
		return fieldU, y*(s.x+1) + x + 1
	case dx == -1 && dy == 0:
		return fieldU, y*(s.x+1) + x
	case dx == 0 && dy == 1:
		return fieldV, (y+1)*s.x + x
	case dx == 0 && dy == -1:
		return fieldV, y*s.x + x
	}
	panic(fmt.Sprintf("fluid: invalid neighbor direction (%d,%d) at cell (%d,%d)", dx, dy, x, y))
}

func (s *Solver) faces(fld field) []float32 {
	switch fld {
	case fieldU:
		return s.u
	case fieldV:
		return s.v
	}
	panic(fmt.Sprintf("fluid: invalid field selector %d", fld))
}

// neighbor returns the classification of the cell at (x+dx, y+dy).
// Cells outside the grid read as Static.
func (s *Solver) neighbor(x, y, dx, dy int) Cell {
	nx, ny := x+dx, y+dy
	if !s.InBounds(nx, ny) {
		return Static()
	}
	return s.cells[ny*s.x+nx]
}

func (s *Solver) face(x, y, dx, dy int) float32 {
	fld, i := s.faceIndex(x, y, dx, dy)
	return s.faces(fld)[i]
}

func (s *Solver) setFace(x, y, dx, dy int, val float32) {
	fld, i := s.faceIndex(x, y, dx, dy)
	s.faces(fld)[i] = val
}

func (s *Solver) addFace(x, y, dx, dy int, delta float32) {
	fld, i := s.faceIndex(x, y, dx, dy)
	s.faces(fld)[i] += delta
}

// cellFaces holds the four face samples of one cell.
type cellFaces struct {
	right, left, down, up float32
}

func (s *Solver) readFaces(x, y int) cellFaces {
	return cellFaces{
		right: s.face(x, y, 1, 0),
		left:  s.face(x, y, -1, 0),
		down:  s.face(x, y, 0, 1),
		up:    s.face(x, y, 0, -1),
	}
}

func (s *Solver) writeFaces(x, y int, f cellFaces) {
	s.setFace(x, y, 1, 0, f.right)
	s.setFace(x, y, -1, 0, f.left)
	s.setFace(x, y, 0, 1, f.down)
	s.setFace(x, y, 0, -1, f.up)
}

// divergence is the net outflow through the four faces of (x, y).
func (s *Solver) divergence(x, y int) float32 {
	return s.face(x, y, 1, 0) -
		s.face(x, y, -1, 0) +
		s.face(x, y, 0, 1) -
		s.face(x, y, 0, -1)
}

// openSides counts the permeable neighbours of (x, y).
func (s *Solver) openSides(x, y int) float32 {
	var sides float32
	for _, d := range Directions {
		if s.neighbor(x, y, d.X, d.Y).Permeable() {
			sides++
		}
	}
	return sides
}
