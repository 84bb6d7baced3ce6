package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the run statistics shown under the controls.
type HUDData struct {
	Step          int64
	SimTime       float64
	FPS           int32
	Paused        bool
	MaxDiv        float64
	KineticEnergy float64
	Boundaries    int
	Pruned        int
	Tracers       int
	CellVisits    int64
	Cursor        string  // Description of the cell under the mouse
	CursorCurl    float32 // Vorticity at the cell under the mouse
}

// HUD renders run statistics.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the statistics block starting at (x, y).
func (h *HUD) Draw(x, y, width int32, data HUDData) int32 {
	r := h.renderer

	y = r.DrawSectionHeader(x, y, "Stats")

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight

	y = r.DrawLabelValue(x, y, "Step", fmt.Sprintf("%d", data.Step))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.2fs", data.SimTime))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawResidualBar(x, y, "Max div", data.MaxDiv, 1e-4, 10, width)
	y = r.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.1f", data.KineticEnergy))
	y = r.DrawLabelValue(x, y, "Walls", fmt.Sprintf("%d (+%d pruned)", data.Boundaries, data.Pruned))
	y = r.DrawLabelValue(x, y, "Tracers", fmt.Sprintf("%d", data.Tracers))
	y = r.DrawLabelValue(x, y, "Visits", fmt.Sprintf("%.2e", float64(data.CellVisits)))
	if data.Cursor != "" {
		y = r.DrawLabelValue(x, y, "Cursor", data.Cursor)
		y = r.DrawCenteredBar(x, y, "Curl", data.CursorCurl, 5, width)
	}
	return y
}

// DrawLegend draws a labelled swatch per entry, one per line.
func (h *HUD) DrawLegend(x, y int32, labels []string, colors []rl.Color) int32 {
	for i, label := range labels {
		y = h.renderer.DrawColorSwatch(x, y, label, colors[i])
	}
	return y
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}
