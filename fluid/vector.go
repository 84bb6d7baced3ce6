package fluid

import "math"

// Vec2 is a 2-component velocity or continuous grid position.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return v
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Coord is an integer grid coordinate or relative offset.
type Coord struct {
	X, Y int
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Directions lists the four face-sharing neighbour offsets.
// Direction (0, 1) points down (increasing y).
var Directions = [4]Coord{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}
