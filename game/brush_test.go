package game

import (
	"testing"

	"github.com/pthm-cable/flume/fluid"
)

func TestStrokeCellsSinglePoint(t *testing.T) {
	cells := StrokeCells(fluid.Vec2{X: 4.2, Y: 3.9}, fluid.Vec2{X: 4.6, Y: 3.1}, 0)
	if len(cells) != 1 || cells[0] != (fluid.Coord{X: 4, Y: 3}) {
		t.Errorf("short stroke should stamp the end cell, got %v", cells)
	}
}

func TestStrokeCellsLine(t *testing.T) {
	cells := StrokeCells(fluid.Vec2{X: 0.5, Y: 2.5}, fluid.Vec2{X: 3.5, Y: 2.5}, 0)
	want := []fluid.Coord{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
	if len(cells) != len(want) {
		t.Fatalf("got %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, cells[i], want[i])
		}
	}
}

func TestStrokeCellsDiagonalIsConnected(t *testing.T) {
	cells := StrokeCells(fluid.Vec2{X: 0.5, Y: 0.5}, fluid.Vec2{X: 10.5, Y: 7.5}, 0)
	for i := 1; i < len(cells); i++ {
		dx := cells[i].X - cells[i-1].X
		dy := cells[i].Y - cells[i-1].Y
		if dx < 0 || dx > 1 || dy < 0 || dy > 1 {
			t.Fatalf("gap between %v and %v", cells[i-1], cells[i])
		}
	}
	last := cells[len(cells)-1]
	if last != (fluid.Coord{X: 10, Y: 7}) {
		t.Errorf("stroke ends at %v, want (10, 7)", last)
	}
}

func TestStrokeCellsBrushSize(t *testing.T) {
	cells := StrokeCells(fluid.Vec2{X: 5.5, Y: 5.5}, fluid.Vec2{X: 5.5, Y: 5.5}, 1)
	if len(cells) != 9 {
		t.Fatalf("size 1 brush stamped %d cells, want 9", len(cells))
	}
	for _, c := range cells {
		if c.X < 4 || c.X > 6 || c.Y < 4 || c.Y > 6 {
			t.Errorf("cell %v outside 3x3 stamp", c)
		}
	}

	// overlapping stamps along a stroke are not repeated
	cells = StrokeCells(fluid.Vec2{X: 5.5, Y: 5.5}, fluid.Vec2{X: 7.5, Y: 5.5}, 1)
	if len(cells) != 15 {
		t.Errorf("stroke with size 1 brush covered %d cells, want 15", len(cells))
	}
}
