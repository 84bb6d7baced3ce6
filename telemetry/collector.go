package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldSnapshot is the solver state sampled when a window is flushed.
type FieldSnapshot struct {
	Speeds        []float64 // Cell-centred speed per cell
	MaxDiv        float64
	DivL2         float64
	KineticEnergy float64
	Boundaries    int
	Pruned        int
	CellVisits    int64
	Tracers       int
}

// Collector accumulates per-step residuals and edit events within windows of
// steps and produces WindowStats.
type Collector struct {
	windowSteps int64
	dt          float32

	// Current window tracking
	windowStartStep int64

	// Per-step samples for current window
	maxDiv []float64
	energy []float64

	// Event counters for current window
	placed  int
	deleted int
	filled  int
	resets  int
}

// NewCollector creates a new stats collector.
// windowSteps: how many solver steps each stats window spans
// dt: simulated seconds per step
func NewCollector(windowSteps int, dt float32) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: int64(windowSteps),
		dt:          dt,
		maxDiv:      make([]float64, 0, windowSteps),
		energy:      make([]float64, 0, windowSteps),
	}
}

// RecordStep records the residual and energy after one solver step.
func (c *Collector) RecordStep(maxDiv, kineticEnergy float64) {
	c.maxDiv = append(c.maxDiv, maxDiv)
	c.energy = append(c.energy, kineticEnergy)
}

// RecordPlace records cells painted as boundaries.
func (c *Collector) RecordPlace(cells int) {
	c.placed += cells
}

// RecordDelete records boundary cells erased back to fluid.
func (c *Collector) RecordDelete(cells int) {
	c.deleted += cells
}

// RecordFill records cells converted by a region fill.
func (c *Collector) RecordFill(cells int) {
	c.filled += cells
}

// RecordReset records a solver reset.
func (c *Collector) RecordReset() {
	c.resets++
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentStep int64) bool {
	return currentStep-c.windowStartStep >= c.windowSteps
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentStep int64, snap FieldSnapshot) WindowStats {
	speedMean, speedStd, speedP50, speedP90, speedMax := ComputeSpeedStats(snap.Speeds)

	var meanMaxDiv, peakMaxDiv, meanEnergy float64
	if len(c.maxDiv) > 0 {
		meanMaxDiv = stat.Mean(c.maxDiv, nil)
		peakMaxDiv = floats.Max(c.maxDiv)
		meanEnergy = stat.Mean(c.energy, nil)
	}

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   currentStep,
		SimTimeSec:      float64(currentStep) * float64(c.dt),

		MaxDiv:     snap.MaxDiv,
		DivL2:      snap.DivL2,
		MeanMaxDiv: meanMaxDiv,
		PeakMaxDiv: peakMaxDiv,

		KineticEnergy:     snap.KineticEnergy,
		MeanKineticEnergy: meanEnergy,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
		SpeedMax:  speedMax,

		Boundaries: snap.Boundaries,
		Pruned:     snap.Pruned,

		Placed:  c.placed,
		Deleted: c.deleted,
		Filled:  c.filled,
		Resets:  c.resets,

		CellVisits: snap.CellVisits,
		Tracers:    snap.Tracers,
	}

	// Reset for next window
	c.windowStartStep = currentStep
	c.maxDiv = c.maxDiv[:0]
	c.energy = c.energy[:0]
	c.placed = 0
	c.deleted = 0
	c.filled = 0
	c.resets = 0

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int64 {
	return c.windowSteps
}
