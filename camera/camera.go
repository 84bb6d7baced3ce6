// Package camera provides pan and zoom over the cell grid.
package camera

// Camera maps grid coordinates (in cells) to screen pixels. The view is
// kept inside the grid; at zoom 1 the whole grid fills the viewport.
type Camera struct {
	// Position is the view center in grid coordinates
	X, Y float32

	// Zoom level (1.0 = whole grid, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// Grid dimensions in cells and the base pixels per cell
	GridW, GridH float32
	CellSize     float32

	MinZoom, MaxZoom float32
}

// New creates a camera showing the full gridW by gridH grid at cellSize
// pixels per cell.
func New(gridW, gridH, cellSize int) *Camera {
	c := &Camera{
		Zoom:      1,
		ViewportW: float32(gridW * cellSize),
		ViewportH: float32(gridH * cellSize),
		GridW:     float32(gridW),
		GridH:     float32(gridH),
		CellSize:  float32(cellSize),
		MinZoom:   1,
		MaxZoom:   8,
	}
	c.Reset()
	return c
}

// Scale returns the current pixels per cell.
func (c *Camera) Scale() float32 {
	return c.CellSize * c.Zoom
}

// WorldToScreen converts grid coordinates to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	return c.ViewportW/2 + (wx-c.X)*s, c.ViewportH/2 + (wy-c.Y)*s
}

// ScreenToWorld converts screen pixels to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	return c.X + (sx-c.ViewportW/2)/s, c.Y + (sy-c.ViewportH/2)/s
}

// InViewport reports whether a screen point lies over the grid view.
func (c *Camera) InViewport(sx, sy float32) bool {
	return sx >= 0 && sy >= 0 && sx < c.ViewportW && sy < c.ViewportH
}

// IsVisible returns true if a circle at (wx, wy) with the given radius in
// cells could be on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Pan moves the view by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomAt multiplies the zoom by factor, keeping the grid point under the
// screen position (sx, sy) fixed where the bounds allow.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	s := c.Scale()
	c.X = wx - (sx-c.ViewportW/2)/s
	c.Y = wy - (sy-c.ViewportH/2)/s
	c.clampCenter()
}

// Reset shows the whole grid.
func (c *Camera) Reset() {
	c.Zoom = 1
	c.X = c.GridW / 2
	c.Y = c.GridH / 2
}

// VisibleWorldBounds returns the grid-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampCenter keeps the visible area inside the grid.
func (c *Camera) clampCenter() {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	c.X = clampAxis(c.X, halfW, c.GridW)
	c.Y = clampAxis(c.Y, halfH, c.GridH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
