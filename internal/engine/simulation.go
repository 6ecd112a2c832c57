// Simulation ties together the grid, the agent population and the random
// source, and advances the contagion one step at a time.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/contagion/internal/agents"
	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/world"
)

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("simulation already initialized")

// Simulation holds the complete model state.
type Simulation struct {
	Params Params

	grid        *world.Grid
	agents      []*agents.Agent // Registry in creation order
	spawner     *agents.Spawner
	src         entropy.Source
	initialized bool
	step        int // Steps completed

	stats Stats
}

// Stats tracks aggregate population statistics.
type Stats struct {
	Step             int     `json:"step"` // Steps completed
	Population       int     `json:"population"`
	Infected         int     `json:"infected"`
	Clean            int     `json:"clean"`
	InfectedFraction float64 `json:"infected_fraction"`
}

// NewSimulation validates p and creates an empty simulation drawing all
// randomness from src.
func NewSimulation(p Params, src entropy.Source) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfig)
	}

	grid, err := world.NewGrid(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Simulation{
		Params:  p,
		grid:    grid,
		spawner: agents.NewSpawner(),
		src:     src,
	}, nil
}

// Initialize populates the grid. Every cell, in grid order, hosts a new agent
// with probability PopulationDensity (modulated by Clustering); each new agent
// starts Infected with probability InitialInfectionRate. Returns the number of
// agents created.
func (s *Simulation) Initialize() (int, error) {
	if s.initialized {
		return 0, ErrAlreadyInitialized
	}
	s.initialized = true

	var field *world.DensityField
	if s.Params.Clustering > 0 {
		cfg := world.DefaultDensityConfig(s.src.Int63(), s.Params.Clustering)
		field = world.NewDensityField(s.grid, cfg)
	}

	infectionWeights := []float64{1 - s.Params.InitialInfectionRate, s.Params.InitialInfectionRate}

	for c, occ := range s.grid.Cells() {
		if occ != nil {
			continue
		}
		if s.src.Float64() >= field.Probability(c, s.Params.PopulationDensity) {
			continue
		}

		state := agents.Clean
		if s.src.Choice(infectionWeights) == 1 {
			state = agents.Infected
		}

		a := s.spawner.Spawn(state)
		if err := s.grid.Place(a, c); err != nil {
			return len(s.agents), fmt.Errorf("place agent %d: %w", a.ID, err)
		}
		s.agents = append(s.agents, a)
	}

	s.updateStats()
	slog.Debug("population placed",
		"grid", s.grid.String(),
		"population", len(s.agents),
		"infected", s.stats.Infected,
	)
	return len(s.agents), nil
}

// Step activates every agent exactly once in a freshly shuffled order. Agents
// act on the live grid, so an agent infected earlier in the order spreads in
// the same step.
func (s *Simulation) Step() {
	opts := agents.SpreadOptions{
		TransferRate: s.Params.TransferRate,
		FromClean:    s.Params.SpreadFromClean,
	}

	newInfections := 0
	for _, a := range Schedule(s.src, s.agents) {
		newInfections += agents.Spread(a, s.grid, s.src, opts)
	}

	s.step++
	s.updateStats()
	slog.Debug("step activated",
		"step", s.step-1,
		"activations", len(s.agents),
		"new_infections", newInfections,
	)
}

// InfectedCount walks the grid and counts Infected agents.
func (s *Simulation) InfectedCount() int {
	n := 0
	for _, occ := range s.grid.Cells() {
		if a, ok := occ.(*agents.Agent); ok && a.IsInfected() {
			n++
		}
	}
	return n
}

// Agents returns the agent registry in creation order.
func (s *Simulation) Agents() []*agents.Agent {
	return s.agents
}

// Grid returns the simulation grid.
func (s *Simulation) Grid() *world.Grid {
	return s.grid
}

// StepsCompleted returns the number of steps run so far.
func (s *Simulation) StepsCompleted() int {
	return s.step
}

// Stats returns the statistics as of the last Initialize or Step.
func (s *Simulation) Stats() Stats {
	return s.stats
}

func (s *Simulation) updateStats() {
	infected := s.InfectedCount()
	pop := len(s.agents)

	s.stats = Stats{
		Step:       s.step,
		Population: pop,
		Infected:   infected,
		Clean:      pop - infected,
	}
	if pop > 0 {
		s.stats.InfectedFraction = float64(infected) / float64(pop)
	}
}
