package world

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrInvalidPlacement is returned when placing onto an occupied cell.
var ErrInvalidPlacement = errors.New("invalid placement")

// Occupant is anything that can sit in a grid cell.
// The grid records the occupant's position when it is placed.
type Occupant interface {
	SetPosition(c Coord)
}

// Grid is a fixed-size toroidal grid holding at most one occupant per cell.
// The grid owns slot bookkeeping only; occupant lifetime belongs to the caller.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	cells    []Occupant // Indexed by x*Height + y
	occupied int
}

// NewGrid creates an empty toroidal grid. Width and height must be positive.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Occupant, width*height),
	}, nil
}

// Wrap normalizes c into [0,Width) x [0,Height).
func (g *Grid) Wrap(c Coord) Coord {
	return Coord{X: mod(c.X, g.Width), Y: mod(c.Y, g.Height)}
}

func (g *Grid) index(c Coord) int {
	c = g.Wrap(c)
	return c.X*g.Height + c.Y
}

// Place puts o at c (wrapped) and records the position on o.
func (g *Grid) Place(o Occupant, c Coord) error {
	c = g.Wrap(c)
	i := g.index(c)
	if g.cells[i] != nil {
		return fmt.Errorf("%w: cell %s already occupied", ErrInvalidPlacement, c)
	}
	g.cells[i] = o
	g.occupied++
	o.SetPosition(c)
	return nil
}

// IsEmpty returns true if no occupant is at c (wrapped).
func (g *Grid) IsEmpty(c Coord) bool {
	return g.cells[g.index(c)] == nil
}

// OccupantAt returns the occupant at c (wrapped), or nil if the cell is empty.
func (g *Grid) OccupantAt(c Coord) Occupant {
	return g.cells[g.index(c)]
}

// Neighbors returns the wrapped Moore neighborhood of c in MooreDirections
// order. On grids of at least 3x3 this is always eight cells. On smaller grids
// wrapping folds offsets together, so duplicates and c itself are dropped.
func (g *Grid) Neighbors(c Coord) []Coord {
	c = g.Wrap(c)
	result := make([]Coord, 0, len(MooreDirections))
	for _, dir := range MooreDirections {
		n := g.Wrap(c.Add(dir))
		if n == c || slices.Contains(result, n) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// Cells yields every cell exactly once with its occupant (nil when empty),
// x outer and y inner. The sequence can be ranged over any number of times.
func (g *Grid) Cells() iter.Seq2[Coord, Occupant] {
	return func(yield func(Coord, Occupant) bool) {
		for x := 0; x < g.Width; x++ {
			for y := 0; y < g.Height; y++ {
				if !yield(Coord{X: x, Y: y}, g.cells[x*g.Height+y]) {
					return
				}
			}
		}
	}
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	return g.occupied
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, occupied=%d)", g.Width, g.Height, g.Occupied())
}
