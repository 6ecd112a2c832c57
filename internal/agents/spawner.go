// Agent spawning: sequential identifiers for the initial population.
package agents

// Spawner creates agents with sequential IDs.
type Spawner struct {
	nextID AgentID
}

// NewSpawner creates a spawner whose first agent gets ID 0.
func NewSpawner() *Spawner {
	return &Spawner{}
}

// Spawn creates an agent in the given state. It is not yet placed.
func (s *Spawner) Spawn(state InfectionState) *Agent {
	id := s.nextID
	s.nextID++
	return &Agent{ID: id, State: state}
}
