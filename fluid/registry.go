package fluid

// Registry is the ordered set of boundary cell coordinates.
// Membership is an O(1) lookup in a dense per-cell position index.
type Registry struct {
	width  int
	height int
	coords []Coord
	pos    []int32 // position in coords + 1, 0 when absent
}

// NewRegistry creates an empty registry for a width x height grid.
func NewRegistry(width, height int) *Registry {
	return &Registry{
		width:  width,
		height: height,
		pos:    make([]int32, width*height),
	}
}

// Len returns the number of registered coordinates.
func (r *Registry) Len() int { return len(r.coords) }

func (r *Registry) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Contains reports whether (x, y) is registered.
func (r *Registry) Contains(x, y int) bool {
	return r.inBounds(x, y) && r.pos[y*r.width+x] != 0
}

// Add appends (x, y) if not already present and reports whether it was added.
// Coordinates outside the grid are never added.
func (r *Registry) Add(x, y int) bool {
	if !r.inBounds(x, y) {
		return false
	}
	i := y*r.width + x
	if r.pos[i] != 0 {
		return false
	}
	r.coords = append(r.coords, Coord{X: x, Y: y})
	r.pos[i] = int32(len(r.coords))
	return true
}

// Remove deletes (x, y) if present, keeping the order of the remaining
// entries, and reports whether it was removed.
func (r *Registry) Remove(x, y int) bool {
	if !r.inBounds(x, y) {
		return false
	}
	i := y*r.width + x
	p := int(r.pos[i])
	if p == 0 {
		return false
	}
	r.pos[i] = 0
	idx := p - 1
	copy(r.coords[idx:], r.coords[idx+1:])
	r.coords = r.coords[:len(r.coords)-1]
	for j := idx; j < len(r.coords); j++ {
		c := r.coords[j]
		r.pos[c.Y*r.width+c.X] = int32(j + 1)
	}
	return true
}

// Clear removes every coordinate.
func (r *Registry) Clear() {
	for _, c := range r.coords {
		r.pos[c.Y*r.width+c.X] = 0
	}
	r.coords = r.coords[:0]
}

// Coords returns the registered coordinates in insertion order.
// The slice is owned by the registry and must not be modified.
func (r *Registry) Coords() []Coord { return r.coords }
