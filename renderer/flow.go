package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/camera"
	"github.com/pthm-cable/flume/tracers"
)

// TracerRenderer renders tracer particles with fading trails.
type TracerRenderer struct {
	color rl.Color
}

// NewTracerRenderer creates a tracer renderer.
func NewTracerRenderer() *TracerRenderer {
	return &TracerRenderer{color: rl.Color{R: 200, G: 220, B: 255}}
}

// Draw renders all visible tracers with additive blending.
func (r *TracerRenderer) Draw(sys *tracers.System, cam *camera.Camera) {
	rl.BeginBlendMode(rl.BlendAdditive)
	width := cam.Zoom

	sys.Each(func(t tracers.Tracer) {
		if t.Trail.Len < 1 || !cam.IsVisible(t.X, t.Y, 2) {
			return
		}

		// Fade in over the first 10% of life, out over the last 30%
		fadeIn := float32(math.Min(float64(t.Life)*10, 1))
		fadeOut := float32(math.Min(float64(1-t.Life)/0.3, 1))
		baseAlpha := 160 * fadeIn * fadeOut
		if baseAlpha < 2 {
			return
		}

		prev := toScreen(cam, t.X, t.Y)
		for j := uint8(0); j < t.Trail.Len; j++ {
			trailFade := 1 - float32(j)/float32(tracers.TrailLen)
			trailFade *= trailFade // Quadratic falloff

			alpha := baseAlpha * trailFade
			if alpha < 1 {
				break
			}

			next := toScreen(cam, t.Trail.X[j], t.Trail.Y[j])
			col := r.color
			col.A = uint8(alpha)
			rl.DrawLineEx(prev, next, (1.5*trailFade+0.5)*width, col)
			prev = next
		}
	})

	rl.EndBlendMode()
}

func toScreen(cam *camera.Camera, x, y float32) rl.Vector2 {
	sx, sy := cam.WorldToScreen(x, y)
	return rl.Vector2{X: sx, Y: sy}
}
