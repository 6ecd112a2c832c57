package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Reporter receives the population count and per-step infected counts.
type Reporter interface {
	Population(n int)
	Step(step, infected int)
}

// LogReporter writes reports as slog records.
type LogReporter struct {
	Logger *slog.Logger
	Total  int // Grid cells, for the infected share; 0 omits it
}

// NewLogReporter creates a reporter writing to logger (slog.Default if nil).
func NewLogReporter(logger *slog.Logger, totalCells int) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{Logger: logger, Total: totalCells}
}

// Population logs the initial population.
func (r *LogReporter) Population(n int) {
	attrs := []any{"population", n, "population_display", humanize.Comma(int64(n))}
	if r.Total > 0 {
		attrs = append(attrs, "occupancy", fmt.Sprintf("%.3f", float64(n)/float64(r.Total)))
	}
	r.Logger.Info("population initialized", attrs...)
}

// Step logs the infected count after a step.
func (r *LogReporter) Step(step, infected int) {
	r.Logger.Info("step complete",
		"step", step,
		"infected", infected,
		"infected_display", humanize.Comma(int64(infected)),
	)
}

// StepRecord is one per-step report.
type StepRecord struct {
	Step     int `json:"step"`
	Infected int `json:"infected"`
}

// Recorder keeps every report in memory.
type Recorder struct {
	PopulationCount int
	Steps           []StepRecord
}

// Population records the population count.
func (r *Recorder) Population(n int) {
	r.PopulationCount = n
}

// Step records a per-step infected count.
func (r *Recorder) Step(step, infected int) {
	r.Steps = append(r.Steps, StepRecord{Step: step, Infected: infected})
}

// InfectedSeries returns the infected counts in step order.
func (r *Recorder) InfectedSeries() []int {
	out := make([]int, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Infected
	}
	return out
}

// Peak returns the earliest step at which the infected count reached its
// maximum, and that count. Returns (-1, 0) when no steps were recorded.
func (r *Recorder) Peak() (step, infected int) {
	step = -1
	for _, s := range r.Steps {
		if step < 0 || s.Infected > infected {
			step, infected = s.Step, s.Infected
		}
	}
	return step, infected
}

// MultiReporter fans reports out to several reporters.
type MultiReporter []Reporter

// Population forwards to every reporter.
func (m MultiReporter) Population(n int) {
	for _, r := range m {
		r.Population(n)
	}
}

// Step forwards to every reporter.
func (m MultiReporter) Step(step, infected int) {
	for _, r := range m {
		r.Step(step, infected)
	}
}

// Run initializes sim, reports its population, then runs steps and reports
// InfectedCount after each one.
func Run(sim *Simulation, steps int, rep Reporter) error {
	pop, err := sim.Initialize()
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	rep.Population(pop)

	eng := NewEngine(steps)
	eng.OnStep = func(step int) {
		rep.Step(step, sim.InfectedCount())
	}
	eng.Run(sim)
	return nil
}
