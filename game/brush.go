package game

import (
	"math"

	"github.com/pthm-cable/flume/fluid"
)

// StrokeCells rasterizes a brush stroke from one grid position to another.
// Points are sampled at unit spacing along the segment and each stamps a
// square of half-extent size. Cells are returned once, in stroke order.
// Bounds are not checked.
func StrokeCells(from, to fluid.Vec2, size int) []fluid.Coord {
	if size < 0 {
		size = 0
	}

	d := fluid.Vec2{X: to.X - from.X, Y: to.Y - from.Y}
	steps := int(d.Magnitude())

	points := []fluid.Vec2{to}
	if steps >= 1 {
		points = make([]fluid.Vec2, 0, steps+1)
		for i := 0; i <= steps; i++ {
			t := float32(i) / float32(steps)
			points = append(points, from.Add(d.Scale(t)))
		}
	}

	seen := make(map[fluid.Coord]struct{})
	var cells []fluid.Coord
	for _, p := range points {
		cx := int(math.Floor(float64(p.X)))
		cy := int(math.Floor(float64(p.Y)))
		for dy := -size; dy <= size; dy++ {
			for dx := -size; dx <= size; dx++ {
				c := fluid.Coord{X: cx + dx, Y: cy + dy}
				if _, ok := seen[c]; ok {
					continue
				}
				seen[c] = struct{}{}
				cells = append(cells, c)
			}
		}
	}
	return cells
}
