// Package engine provides the contagion model and the step loop driving it.
package engine

import (
	"log/slog"
	"time"
)

// Stepper is anything the engine can advance one step at a time.
type Stepper interface {
	Step()
}

// Engine drives a simulation for a fixed number of steps.
type Engine struct {
	Steps int // Steps to run (exactly; no early exit)

	// Called after each step with the 0-based index of the step just run.
	OnStep func(step int)
}

// NewEngine creates an engine that runs the given number of steps.
func NewEngine(steps int) *Engine {
	return &Engine{Steps: steps}
}

// Run advances sim Steps times, calling OnStep after each one.
func (e *Engine) Run(sim Stepper) {
	start := time.Now()
	slog.Info("simulation engine started", "steps", e.Steps)

	for step := 0; step < e.Steps; step++ {
		sim.Step()
		if e.OnStep != nil {
			e.OnStep(step)
		}
	}

	slog.Info("simulation engine stopped",
		"steps", e.Steps,
		"elapsed", time.Since(start).Round(time.Microsecond),
	)
}
