package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when simulation parameters are out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Params holds the simulation parameters. They are fixed once the simulation
// is constructed.
type Params struct {
	PopulationDensity    float64 `json:"population_density"`     // Chance a cell hosts an agent
	DeathRate            float64 `json:"death_rate"`             // Validated but has no effect
	TransferRate         float64 `json:"transfer_rate"`          // Per-neighbor infection chance
	InitialInfectionRate float64 `json:"initial_infection_rate"` // Chance a new agent starts Infected
	Width                int     `json:"width"`
	Height               int     `json:"height"`

	Steps int   `json:"steps"` // Steps the driver runs
	Seed  int64 `json:"seed"`  // 0 = random

	// Clustering scales opensimplex noise over the placement probability.
	// 0 keeps placement uniform.
	Clustering float64 `json:"clustering"`

	// SpreadFromClean reproduces legacy runs, where Clean agents spread
	// infection exactly like Infected ones.
	SpreadFromClean bool `json:"spread_from_clean"`
}

// DefaultParams returns the reference scenario: a 20x20 half-populated grid
// run for ten steps.
func DefaultParams() Params {
	return Params{
		PopulationDensity:    0.5,
		DeathRate:            0.02,
		TransferRate:         0.3,
		InitialInfectionRate: 0.02,
		Width:                20,
		Height:               20,
		Steps:                10,
	}
}

// Validate checks every parameter and returns an ErrInvalidConfig-wrapped
// error describing the first problem found.
func (p Params) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"population_density", p.PopulationDensity},
		{"death_rate", p.DeathRate},
		{"transfer_rate", p.TransferRate},
		{"initial_infection_rate", p.InitialInfectionRate},
		{"clustering", p.Clustering},
	}
	for _, r := range rates {
		if math.IsNaN(r.v) || r.v < 0 || r.v > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalidConfig, r.name, r.v)
		}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidConfig, p.Width, p.Height)
	}
	if p.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidConfig, p.Steps)
	}
	return nil
}
