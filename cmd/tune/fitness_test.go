package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flume/config"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Solver.Width = 40
	cfg.Solver.Height = 16
	cfg.Solver.SourceVelocity = 10
	cfg.Boundary.Obstacle = config.ObstacleConfig{X: 12, Y: 8, Radius: 3}
	cfg.Pipeline.WarmupSteps = 0
	return cfg
}

func TestEvaluateIsFinite(t *testing.T) {
	e := NewEvaluator(NewParamVector(), 10, smallConfig(t))
	f := e.Evaluate([]float64{1.0})
	if math.IsNaN(f) || math.IsInf(f, 0) {
		t.Fatalf("fitness %v is not finite", f)
	}
	if e.LastResidual() <= 0 {
		t.Errorf("residual %v should be positive with an inlet", e.LastResidual())
	}
}

func TestEvaluatePrefersRelaxation(t *testing.T) {
	e := NewEvaluator(NewParamVector(), 10, smallConfig(t))
	under := e.Evaluate([]float64{0.1})
	plain := e.Evaluate([]float64{1.0})
	if plain >= under {
		t.Errorf("omega 1.0 fitness %.3f should beat omega 0.1 fitness %.3f", plain, under)
	}
}

func TestEvaluateDoesNotMutateBase(t *testing.T) {
	cfg := smallConfig(t)
	e := NewEvaluator(NewParamVector(), 4, cfg)
	e.Evaluate([]float64{1.7})
	if cfg.Solver.Overrelaxation != 1.0 || cfg.Solver.SourceVelocity != 10 {
		t.Errorf("base config changed: %+v", cfg.Solver)
	}
}
