package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/flume/config"
	"github.com/pthm-cable/flume/game"
)

// residualFloor keeps log10 finite for fully converged runs.
const residualFloor = 1e-9

// Evaluator runs headless simulations and scores how well projection
// removes divergence.
type Evaluator struct {
	params     *ParamVector
	steps      int
	inlets     []float64 // source velocity multipliers, one run each
	baseConfig *config.Config

	mu           sync.Mutex
	lastResidual float64
}

// NewEvaluator creates an evaluator that runs each scenario for steps
// solver steps.
func NewEvaluator(params *ParamVector, steps int, baseCfg *config.Config) *Evaluator {
	return &Evaluator{
		params:     params,
		steps:      steps,
		inlets:     []float64{0.5, 1, 2},
		baseConfig: baseCfg,
	}
}

// LastResidual returns the mean relative residual of the most recent
// Evaluate call.
func (e *Evaluator) LastResidual() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResidual
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// log10 of the mean residual divergence relative to the inlet speed.
func (e *Evaluator) Evaluate(x []float64) float64 {
	residuals := make([]float64, len(e.inlets))
	var wg sync.WaitGroup
	for i, scale := range e.inlets {
		wg.Add(1)
		go func(idx int, scale float64) {
			defer wg.Done()
			residuals[idx] = e.runScenario(x, scale)
		}(i, scale)
	}
	wg.Wait()

	var total float64
	for _, r := range residuals {
		total += r
	}
	mean := total / float64(len(residuals))

	e.mu.Lock()
	e.lastResidual = mean
	e.mu.Unlock()

	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return math.Inf(1)
	}
	return math.Log10(mean + residualFloor)
}

// runScenario runs one headless simulation and returns the mean maximum
// divergence over its second half, divided by the inlet speed.
func (e *Evaluator) runScenario(x []float64, inletScale float64) float64 {
	cfg := e.copyConfig()
	e.params.ApplyToConfig(cfg, x)
	cfg.Solver.SourceVelocity *= inletScale

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		return math.Inf(1)
	}
	defer g.Unload()

	var sum float64
	var n int
	for g.Tick() < int64(e.steps) {
		g.UpdateHeadless()
		if g.Tick() > int64(e.steps/2) {
			sum += g.Solver().MaxDivergence()
			n++
		}
	}
	if n == 0 || cfg.Solver.SourceVelocity == 0 {
		return 0
	}
	return sum / float64(n) / math.Abs(cfg.Solver.SourceVelocity)
}

// copyConfig returns a copy of the base config with tracers disabled.
func (e *Evaluator) copyConfig() *config.Config {
	cfg := *e.baseConfig
	cfg.Tracers.Count = 0
	return &cfg
}
