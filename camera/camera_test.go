package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestNew(t *testing.T) {
	cam := New(100, 50, 4)

	if cam.X != 50 || cam.Y != 25 {
		t.Errorf("expected camera at (50, 25), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.ViewportW != 400 || cam.ViewportH != 200 {
		t.Errorf("viewport = %vx%v, want 400x200", cam.ViewportW, cam.ViewportH)
	}
}

func TestWorldToScreenAtZoomOne(t *testing.T) {
	cam := New(100, 50, 4)

	// At zoom 1 the grid origin is the screen origin
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("origin maps to (%f, %f), want (0, 0)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(10.5, 3)
	if !near(sx, 42) || !near(sy, 12) {
		t.Errorf("(10.5, 3) maps to (%f, %f), want (42, 12)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(100, 50, 4)
	cam.SetZoom(3)
	cam.Pan(60, -20)

	testCases := []struct{ sx, sy float32 }{
		{200, 100},
		{10, 10},
		{390, 190},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip (%v, %v) -> (%v, %v) -> (%v, %v)", tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamping(t *testing.T) {
	cam := New(100, 50, 4)

	cam.SetZoom(0.25)
	if cam.Zoom != 1 {
		t.Errorf("zoom below minimum should clamp to 1, got %f", cam.Zoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above maximum should clamp to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestPanStaysInsideGrid(t *testing.T) {
	cam := New(100, 50, 4)

	// No room to pan at zoom 1
	cam.Pan(500, 500)
	if cam.X != 50 || cam.Y != 25 {
		t.Errorf("pan at zoom 1 moved the view to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(10000, -10000)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(maxX, 100) || !near(minY, 0) {
		t.Errorf("view should stop at the grid edge, got x<=%f y>=%f", maxX, minY)
	}
	if !near(maxX-minX, 50) || !near(maxY-minY, 25) {
		t.Errorf("visible area %fx%f, want 50x25", maxX-minX, maxY-minY)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	cam := New(100, 50, 4)

	wx, wy := cam.ScreenToWorld(200, 100)
	cam.ZoomAt(2, 200, 100)
	gx, gy := cam.ScreenToWorld(200, 100)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("point under cursor moved from (%f, %f) to (%f, %f)", wx, wy, gx, gy)
	}
	if cam.Zoom != 2 {
		t.Errorf("zoom = %f, want 2", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(100, 50, 4)
	cam.SetZoom(4)
	cam.Pan(-10000, -10000)

	if !cam.IsVisible(5, 5, 0) {
		t.Error("(5, 5) should be visible at the top-left")
	}
	if cam.IsVisible(80, 40, 1) {
		t.Error("(80, 40) should be culled")
	}
	// Radius extends visibility past the edge
	if !cam.IsVisible(25.5, 5, 1) {
		t.Error("circle overlapping the right edge should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(100, 50, 4)
	cam.ZoomAt(3, 10, 10)
	cam.Reset()
	if cam.Zoom != 1 || cam.X != 50 || cam.Y != 25 {
		t.Errorf("reset left zoom %f at (%f, %f)", cam.Zoom, cam.X, cam.Y)
	}
}
