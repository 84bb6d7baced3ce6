package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// StageNames labels the four pipeline stages in step order.
var StageNames = [4]string{"Advect", "Confine", "Enforce", "Project"}

// ControlsState is the user-adjustable state shown in the controls panel.
// Draw edits it in place.
type ControlsState struct {
	Paused         bool
	Stages         [4]bool // advect, confine, enforce, project
	Overrelaxation float32
	Confinement    float32
	BrushSize      int
}

// ControlsActions reports one-shot buttons pressed during a frame.
type ControlsActions struct {
	Step  bool
	Reset bool
}

// ControlsPanel renders the right-side panel with stage toggles, solver
// sliders and overlay switches.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width, height int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// Contains reports whether a screen point lies over the panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.height)
}

// Draw renders the controls and applies any edits to state.
// It returns the y position below the last control.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) (ControlsActions, int32) {
	var act ControlsActions
	r := c.renderer
	pad := r.Theme.Padding
	x := float32(c.x + pad)
	w := float32(c.width - pad*2)

	r.DrawPanel(c.x, c.y, c.width, c.height)

	y := c.y + pad
	rl.DrawText("Flume", c.x+pad, y, 20, rl.White)
	y += 28

	half := (w - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 22}, toggleText(state.Paused, "Run", "Pause")) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 22}, "Step") {
		act.Step = true
	}
	y += 28
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 22}, "Reset") {
		act.Reset = true
	}
	y += 32

	y = r.DrawSectionHeader(c.x+pad, y, "Stages")
	for i, name := range StageNames {
		label := fmt.Sprintf("%d %s: %s", i+1, name, toggleText(state.Stages[i], "on", "off"))
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 20}, label) {
			state.Stages[i] = !state.Stages[i]
		}
		y += 24
	}
	y += 6

	y = r.DrawSectionHeader(c.x+pad, y, "Solver")
	y = c.slider(x, y, w, "Overrelaxation", &state.Overrelaxation, 0.1, 1.99, "%.2f")
	y = c.slider(x, y, w, "Confinement", &state.Confinement, 0, 50, "%.1f")
	brush := float32(state.BrushSize)
	y = c.slider(x, y, w, "Brush", &brush, 0, 8, "%.0f")
	state.BrushSize = int(brush + 0.5)
	y += 4

	y = r.DrawSectionHeader(c.x+pad, y, "Overlays")
	for _, desc := range overlays.All() {
		c.drawToggle(c.x+pad, y, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
		y += r.Theme.LineHeight
	}

	return act, y + pad
}

// slider draws a labelled raygui slider bound to value.
func (c *ControlsPanel) slider(x float32, y int32, w float32, label string, value *float32, lo, hi float32, format string) int32 {
	r := c.renderer
	rl.DrawText(label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+w-40), y, r.Theme.FontSize, r.Theme.ValueColor)
	y += 14
	*value = gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 14}, "", "", *value, lo, hi)
	return y + 22
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func toggleText(on bool, whenOn, whenOff string) string {
	if on {
		return whenOn
	}
	return whenOff
}
