// Package renderer draws the flow grid, its overlays and tracer particles.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flume/fluid"
)

// speedCurve skews the hue ramp so low speeds get more colour resolution.
const speedCurve = 1.6

// Cell kind colours.
var (
	ColorFluid  = rl.Color{R: 0, G: 0, B: 0, A: 255}
	ColorStatic = rl.Color{R: 40, G: 40, B: 44, A: 255}
	ColorPruned = rl.Color{R: 64, G: 56, B: 48, A: 255}
	ColorSource = rl.Color{R: 0x1b, G: 0x85, B: 0xb8, A: 255}
	ColorClone  = rl.Color{R: 0x55, G: 0x9e, B: 0x83, A: 255}
)

// KindColor returns the fill colour for a non-Fluid cell.
func KindColor(c fluid.Cell) rl.Color {
	switch c.Kind {
	case fluid.KindStatic:
		if c.Pruned {
			return ColorPruned
		}
		return ColorStatic
	case fluid.KindSource:
		return ColorSource
	case fluid.KindClone:
		return ColorClone
	default:
		return ColorFluid
	}
}

// SpeedColor maps a speed onto a blue-to-red hue ramp. Speeds at or above
// limit saturate at red.
func SpeedColor(speed, limit float32) rl.Color {
	t := float32(0)
	if limit > 0 {
		t = min(max(speed/limit, 0), 1)
	}
	t = float32(math.Pow(float64(t), speedCurve))
	return HSVToRGB(240*(1-t), 1, 1)
}

// SignedColor maps a signed value onto a diverging ramp: blue for negative,
// red for positive, black at zero.
func SignedColor(value, limit float32) rl.Color {
	t := float32(0)
	if limit > 0 {
		t = min(float32(math.Abs(float64(value)))/limit, 1)
	}
	mag := uint8(t * 255)
	if value < 0 {
		return rl.Color{R: mag / 4, G: mag / 2, B: mag, A: 255}
	}
	return rl.Color{R: mag, G: mag / 3, B: mag / 6, A: 255}
}

// HSVToRGB converts hue in degrees and saturation/value in [0, 1] to an
// opaque colour.
func HSVToRGB(h, s, v float32) rl.Color {
	h = float32(math.Mod(float64(h), 360))
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - float32(math.Abs(math.Mod(float64(h/60), 2)-1)))
	m := v - c

	var r, g, b float32
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return rl.Color{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
