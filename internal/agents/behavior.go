// Per-step agent behavior: probabilistic spread to Moore neighbors.
package agents

import (
	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/world"
)

// SpreadOptions controls an agent's spread behavior.
type SpreadOptions struct {
	TransferRate float64 // Per-neighbor infection probability
	// FromClean lets Clean agents spread too. Legacy runs never checked
	// the spreader's state; only set this to reproduce their outputs.
	FromClean bool
}

// CanSpread reports whether a would attempt to spread under opts.
func CanSpread(a *Agent, opts SpreadOptions) bool {
	return opts.FromClean || a.IsInfected()
}

// Spread runs one activation: for each neighbor in grid order, an occupied
// neighbor costs one draw, and a draw below TransferRate infects it if Clean.
// Empty neighbors consume no draw. Returns the number of newly infected agents.
func Spread(a *Agent, g *world.Grid, src entropy.Source, opts SpreadOptions) int {
	if !CanSpread(a, opts) {
		return 0
	}

	infected := 0
	for _, nc := range g.Neighbors(a.Position) {
		if g.IsEmpty(nc) {
			continue
		}
		if src.Float64() >= opts.TransferRate {
			continue
		}
		if target := AgentAt(g, nc); target != nil && target.Infect() {
			infected++
		}
	}
	return infected
}
