package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/camera"
	"github.com/pthm-cable/flume/fluid"
)

// FieldMode selects the scalar field painted under the cells.
type FieldMode uint8

const (
	FieldNone FieldMode = iota
	FieldSpeed
	FieldVorticity
	FieldDivergence
)

// FieldStyle scales the colour maps.
type FieldStyle struct {
	SpeedLimit      float32 // Speed rendered fully red
	VorticityLimit  float32
	DivergenceLimit float32
	ShowKinds       bool // Paint non-Fluid cells with their kind colour
}

// FillPixels writes one colour per cell into dst, row-major.
// dst must hold Width*Height entries.
func FillPixels(dst []color.RGBA, s *fluid.Solver, mode FieldMode, style FieldStyle) {
	w, h := s.Width(), s.Height()

	var field []float64
	limit := float32(1)
	switch mode {
	case FieldSpeed:
		field = s.SpeedField()
		limit = style.SpeedLimit
	case FieldVorticity:
		vort := s.ComputeVorticity()
		field = make([]float64, len(vort))
		for i, v := range vort {
			field[i] = float64(v)
		}
		limit = style.VorticityLimit
	case FieldDivergence:
		field = s.DivergenceField()
		limit = style.DivergenceLimit
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			c := s.Cell(x, y)
			if style.ShowKinds && !c.IsFluid() {
				dst[i] = KindColor(c)
				continue
			}
			switch mode {
			case FieldSpeed:
				dst[i] = SpeedColor(float32(field[i]), limit)
			case FieldVorticity, FieldDivergence:
				dst[i] = SignedColor(float32(field[i]), limit)
			default:
				dst[i] = ColorFluid
			}
		}
	}
}

// GridRenderer paints one texel per cell and scales the texture to the
// camera view with point filtering.
type GridRenderer struct {
	tex         rl.Texture2D
	pixels      []color.RGBA
	texW, texH  int
	initialized bool
}

// NewGridRenderer creates a grid renderer.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

// Init allocates the GPU texture (must be called after the raylib window
// is created).
func (r *GridRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}
	r.texW = gridW
	r.texH = gridH
	r.pixels = make([]color.RGBA, gridW*gridH)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update recolours the texture from the solver state.
func (r *GridRenderer) Update(s *fluid.Solver, mode FieldMode, style FieldStyle) {
	if !r.initialized {
		r.Init(s.Width(), s.Height())
	}
	FillPixels(r.pixels, s, mode, style)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw blits the grid through the camera.
func (r *GridRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	ox, oy := cam.WorldToScreen(0, 0)
	s := cam.Scale()
	src := rl.Rectangle{Width: float32(r.texW), Height: float32(r.texH)}
	dst := rl.Rectangle{X: ox, Y: oy, Width: float32(r.texW) * s, Height: float32(r.texH) * s}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// DrawVectors draws a normalized velocity arrow from the centre of every
// spacing-th visible Fluid cell, coloured by speed.
func (r *GridRenderer) DrawVectors(s *fluid.Solver, cam *camera.Camera, spacing int, speedLimit float32) {
	if spacing < 1 {
		spacing = 1
	}
	length := cam.Scale() * 2.5
	for y := 0; y < s.Height(); y += spacing {
		for x := 0; x < s.Width(); x += spacing {
			cx, cy := float32(x)+0.5, float32(y)+0.5
			if !s.Cell(x, y).IsFluid() || !cam.IsVisible(cx, cy, 2.5) {
				continue
			}
			vel := s.CellVelocity(x, y)
			col := SpeedColor(vel.Magnitude(), speedLimit)
			dir := vel.Normalize().Scale(length)

			sx, sy := cam.WorldToScreen(cx, cy)
			start := rl.Vector2{X: sx, Y: sy}
			end := rl.Vector2{X: start.X + dir.X, Y: start.Y + dir.Y}
			rl.DrawLineEx(start, end, 1, col)
			rl.DrawCircleV(end, 1.5, col)
		}
	}
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
