package engine

import (
	"github.com/talgya/contagion/internal/agents"
	"github.com/talgya/contagion/internal/entropy"
)

// Schedule returns a new activation order for one step: a uniform random
// permutation of the registry. The registry itself is left untouched.
func Schedule(src entropy.Source, registry []*agents.Agent) []*agents.Agent {
	order := make([]*agents.Agent, len(registry))
	for i, j := range src.Perm(len(registry)) {
		order[i] = registry[j]
	}
	return order
}
