// Package world provides the toroidal grid and spatial data structures.
// Coordinates are (x, y) with x in [0, width) and y in [0, height).
package world

import (
	"fmt"
	"math"
)

// Coord is a cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinate offset by d. The result is not wrapped.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// MooreDirections defines the eight neighbor offsets, ordered with dx varying
// slowest. Neighbor enumeration always follows this order so that a seeded run
// consumes random draws in the same sequence.
var MooreDirections = [8]Coord{
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

// mod returns a modulo m in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// torusPoint maps a cell onto two circles so that noise sampled at the
// result wraps seamlessly. Radius scales with the axis length and frequency.
func torusPoint(c Coord, width, height int, frequency float64) (x, y, z, w float64) {
	ax := 2 * math.Pi * float64(c.X) / float64(width)
	ay := 2 * math.Pi * float64(c.Y) / float64(height)
	rx := float64(width) * frequency / (2 * math.Pi)
	ry := float64(height) * frequency / (2 * math.Pi)
	return rx * math.Cos(ax), rx * math.Sin(ax), ry * math.Cos(ay), ry * math.Sin(ay)
}
