// Package telemetry collects windowed flow statistics and writes run output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated flow statistics for a window of steps.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Incompressibility at window end
	MaxDiv float64 `csv:"max_div"`
	DivL2  float64 `csv:"div_l2"`

	// Per-step residuals over the window
	MeanMaxDiv float64 `csv:"mean_max_div"`
	PeakMaxDiv float64 `csv:"peak_max_div"`

	// Energy
	KineticEnergy     float64 `csv:"kinetic_energy"`
	MeanKineticEnergy float64 `csv:"mean_kinetic_energy"`

	// Speed distribution over cells (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Geometry
	Boundaries int `csv:"boundaries"`
	Pruned     int `csv:"pruned"`

	// Edits during window
	Placed  int `csv:"placed"`
	Deleted int `csv:"deleted"`
	Filled  int `csv:"filled"`
	Resets  int `csv:"resets"`

	// Work
	CellVisits int64 `csv:"cell_visits"` // Cumulative projection cell visits
	Tracers    int   `csv:"tracers"`
}

// Quantile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(min(max(p, 0), 1), stat.Empirical, sorted, nil)
}

// ComputeSpeedStats calculates mean, std, median, p90 and max of cell speeds.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90, peak float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Quantile(sorted, 0.50)
	p90 = Quantile(sorted, 0.90)
	peak = sorted[n-1]

	return mean, std, p50, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartStep),
		slog.Int64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("max_div", s.MaxDiv),
		slog.Float64("div_l2", s.DivL2),
		slog.Float64("mean_max_div", s.MeanMaxDiv),
		slog.Float64("peak_max_div", s.PeakMaxDiv),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("mean_kinetic_energy", s.MeanKineticEnergy),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("boundaries", s.Boundaries),
		slog.Int("pruned", s.Pruned),
		slog.Int("placed", s.Placed),
		slog.Int("deleted", s.Deleted),
		slog.Int("filled", s.Filled),
		slog.Int("resets", s.Resets),
		slog.Int64("cell_visits", s.CellVisits),
		slog.Int("tracers", s.Tracers),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"max_div", s.MaxDiv,
		"div_l2", s.DivL2,
		"mean_max_div", s.MeanMaxDiv,
		"kinetic_energy", s.KineticEnergy,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"boundaries", s.Boundaries,
		"pruned", s.Pruned,
		"placed", s.Placed,
		"deleted", s.Deleted,
		"filled", s.Filled,
		"cell_visits", s.CellVisits,
		"tracers", s.Tracers,
	)
}
