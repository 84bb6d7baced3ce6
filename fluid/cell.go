package fluid

import "fmt"

// Kind identifies how a cell participates in the simulation.
type Kind uint8

const (
	KindFluid  Kind = iota // Freely simulated
	KindStatic             // Impermeable obstacle, all faces zero
	KindSource             // Faces pinned to a fixed velocity
	KindClone              // Faces copied from the cell at Offset
)

// String returns the display name of the kind. Names follow the grid dump
// legend (Solid, Emitter, Match) rather than the Kind identifiers.
func (k Kind) String() string {
	switch k {
	case KindFluid:
		return "Fluid"
	case KindStatic:
		return "Solid"
	case KindSource:
		return "Emitter"
	case KindClone:
		return "Match"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Cell is the classification of one grid cell.
// Velocity is only meaningful for KindSource, Offset only for KindClone.
type Cell struct {
	Kind     Kind
	Velocity Vec2
	Offset   Coord

	// Pruned marks Static cells produced by FillRegion. They are not
	// tracked by the boundary registry.
	Pruned bool
}

// Fluid returns a freely simulated cell.
func Fluid() Cell { return Cell{Kind: KindFluid} }

// Static returns a solid wall cell.
func Static() Cell { return Cell{Kind: KindStatic} }

// Source returns an inflow/outflow cell holding velocity (vx, vy).
func Source(vx, vy float32) Cell {
	return Cell{Kind: KindSource, Velocity: Vec2{X: vx, Y: vy}}
}

// Clone returns a cell mirroring the cell at relative offset (dx, dy).
func Clone(dx, dy int) Cell {
	return Cell{Kind: KindClone, Offset: Coord{X: dx, Y: dy}}
}

// IsFluid reports whether the cell is simulated by projection and advection.
func (c Cell) IsFluid() bool { return c.Kind == KindFluid }

// IsStatic reports whether the cell is a wall.
func (c Cell) IsStatic() bool { return c.Kind == KindStatic }

// Permeable reports whether flux into the cell contributes to divergence.
// Fluid and Clone cells are permeable.
func (c Cell) Permeable() bool {
	return c.Kind == KindFluid || c.Kind == KindClone
}

// String formats the cell with its payload.
func (c Cell) String() string {
	switch c.Kind {
	case KindSource:
		return fmt.Sprintf("%s(%g,%g)", c.Kind, c.Velocity.X, c.Velocity.Y)
	case KindClone:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.Offset.X, c.Offset.Y)
	}
	return c.Kind.String()
}
