package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flume/config"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVectorClampKeepsOmegaBelowTwo(t *testing.T) {
	pv := NewParamVector()
	if got := pv.Clamp([]float64{2.5})[0]; got >= 2 {
		t.Errorf("clamped overrelaxation %v should stay below 2", got)
	}
	if got := pv.Clamp([]float64{-1})[0]; got <= 0 {
		t.Errorf("clamped overrelaxation %v should stay positive", got)
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{1.6})
	if cfg.Solver.Overrelaxation != 1.6 {
		t.Errorf("overrelaxation = %v, want 1.6", cfg.Solver.Overrelaxation)
	}
	if got := pv.FromConfig(cfg); got[0] != 1.6 {
		t.Errorf("FromConfig = %v, want [1.6]", got)
	}
}
