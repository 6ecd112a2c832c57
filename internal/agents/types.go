// Package agents provides the agent data model and per-step behavior.
package agents

import (
	"fmt"

	"github.com/talgya/contagion/internal/world"
)

// AgentID is a unique identifier for an agent. IDs are never reused.
type AgentID uint64

// InfectionState is an agent's health with respect to the contagion.
// The only transition is Clean → Infected; Infected is terminal.
type InfectionState uint8

const (
	Clean    InfectionState = 0
	Infected InfectionState = 1
)

// String returns the state name.
func (s InfectionState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Infected:
		return "infected"
	default:
		return fmt.Sprintf("InfectionState(%d)", uint8(s))
	}
}

// Agent is a single inhabitant of one grid cell.
type Agent struct {
	ID       AgentID        `json:"id"`
	Position world.Coord    `json:"position"` // Matches the agent's grid slot
	State    InfectionState `json:"state"`
}

// SetPosition records the cell the agent was placed on. Called by the grid.
func (a *Agent) SetPosition(c world.Coord) {
	a.Position = c
}

// IsInfected reports whether the agent is Infected.
func (a *Agent) IsInfected() bool {
	return a.State == Infected
}

// Infect moves a Clean agent to Infected. Returns true if the state changed.
func (a *Agent) Infect() bool {
	if a.State == Infected {
		return false
	}
	a.State = Infected
	return true
}

// String returns a short description of the agent.
func (a *Agent) String() string {
	return fmt.Sprintf("Agent#%d@%s[%s]", a.ID, a.Position, a.State)
}

// AgentAt returns the agent occupying c, or nil if the cell is empty.
func AgentAt(g *world.Grid, c world.Coord) *Agent {
	a, _ := g.OccupantAt(c).(*Agent)
	return a
}
