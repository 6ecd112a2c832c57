package agents

import (
	"testing"

	"github.com/talgya/contagion/internal/world"
)

// scriptedSource replays fixed Float64 draws and counts how many were taken.
type scriptedSource struct {
	draws []float64
	taken int
}

func (s *scriptedSource) Float64() float64 {
	v := s.draws[s.taken%len(s.draws)]
	s.taken++
	return v
}

func (s *scriptedSource) Choice(weights []float64) int { return 0 }
func (s *scriptedSource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}
func (s *scriptedSource) Int63() int64 { return 1 }

func newTestGrid(t *testing.T, w, h int) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func place(t *testing.T, g *world.Grid, sp *Spawner, state InfectionState, c world.Coord) *Agent {
	t.Helper()
	a := sp.Spawn(state)
	if err := g.Place(a, c); err != nil {
		t.Fatalf("Place %s: %v", c, err)
	}
	return a
}

func TestSpreadInfectsAllNeighborsWhenDrawsSucceed(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	sp := NewSpawner()
	src := &scriptedSource{draws: []float64{0.0}}

	var center *Agent
	for c := range g.Cells() {
		state := Clean
		if c == (world.Coord{X: 1, Y: 1}) {
			state = Infected
		}
		a := place(t, g, sp, state, c)
		if state == Infected {
			center = a
		}
	}

	n := Spread(center, g, src, SpreadOptions{TransferRate: 0.5})
	if n != 8 {
		t.Errorf("expected 8 new infections, got %d", n)
	}
	if src.taken != 8 {
		t.Errorf("expected 8 draws for 8 occupied neighbors, got %d", src.taken)
	}
	for _, occ := range g.Cells() {
		if !occ.(*Agent).IsInfected() {
			t.Errorf("expected every agent infected, %s is not", occ)
		}
	}
}

func TestSpreadSkipsEmptyCellsWithoutDrawing(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	sp := NewSpawner()
	src := &scriptedSource{draws: []float64{0.0}}

	spreader := place(t, g, sp, Infected, world.Coord{X: 2, Y: 2})
	target := place(t, g, sp, Clean, world.Coord{X: 3, Y: 3})

	Spread(spreader, g, src, SpreadOptions{TransferRate: 1})
	if src.taken != 1 {
		t.Errorf("expected 1 draw for the single occupied neighbor, got %d", src.taken)
	}
	if !target.IsInfected() {
		t.Errorf("expected neighbor to be infected")
	}
}

func TestSpreadFailsWhenDrawAtOrAboveRate(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	sp := NewSpawner()
	src := &scriptedSource{draws: []float64{0.3}}

	spreader := place(t, g, sp, Infected, world.Coord{X: 0, Y: 0})
	target := place(t, g, sp, Clean, world.Coord{X: 0, Y: 1})

	if n := Spread(spreader, g, src, SpreadOptions{TransferRate: 0.3}); n != 0 {
		t.Errorf("expected no infections, got %d", n)
	}
	if target.IsInfected() {
		t.Errorf("expected target to stay clean")
	}
}

func TestSpreadConsumesDrawForInfectedNeighbor(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	sp := NewSpawner()
	src := &scriptedSource{draws: []float64{0.0}}

	spreader := place(t, g, sp, Infected, world.Coord{X: 1, Y: 1})
	place(t, g, sp, Infected, world.Coord{X: 0, Y: 0})

	if n := Spread(spreader, g, src, SpreadOptions{TransferRate: 1}); n != 0 {
		t.Errorf("expected 0 new infections, got %d", n)
	}
	if src.taken != 1 {
		t.Errorf("expected 1 draw, got %d", src.taken)
	}
}

// A Clean spreader is inert by default and spreads only in legacy mode.
func TestCleanSpreaderBehavior(t *testing.T) {
	tests := []struct {
		name      string
		fromClean bool
		want      bool
	}{
		{"infected only", false, false},
		{"from clean", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 3, 3)
			sp := NewSpawner()
			src := &scriptedSource{draws: []float64{0.0}}

			spreader := place(t, g, sp, Clean, world.Coord{X: 1, Y: 1})
			target := place(t, g, sp, Clean, world.Coord{X: 2, Y: 2})

			Spread(spreader, g, src, SpreadOptions{TransferRate: 1, FromClean: tt.fromClean})
			if target.IsInfected() != tt.want {
				t.Errorf("expected target infected=%v, got %v", tt.want, target.IsInfected())
			}
			if !tt.fromClean && src.taken != 0 {
				t.Errorf("expected an inert spreader to take no draws, got %d", src.taken)
			}
		})
	}
}

func TestSingleCellGridHasNoTransmission(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	sp := NewSpawner()
	src := &scriptedSource{draws: []float64{0.0}}

	a := place(t, g, sp, Clean, world.Coord{})
	Spread(a, g, src, SpreadOptions{TransferRate: 1, FromClean: true})
	if a.IsInfected() {
		t.Errorf("expected lone agent to stay clean")
	}
}

func TestInfectIsMonotonic(t *testing.T) {
	a := &Agent{State: Clean}
	if !a.Infect() {
		t.Errorf("expected first Infect to change state")
	}
	if a.Infect() {
		t.Errorf("expected second Infect to be a no-op")
	}
	if a.State != Infected {
		t.Errorf("expected state infected, got %s", a.State)
	}
}

func TestSpawnerSequentialIDs(t *testing.T) {
	sp := NewSpawner()
	for want := AgentID(0); want < 5; want++ {
		if got := sp.Spawn(Clean).ID; got != want {
			t.Errorf("expected ID %d, got %d", want, got)
		}
	}
}
