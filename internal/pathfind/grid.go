// Package pathfind finds minimum-cost routes across a weighted tile grid.
package pathfind

import (
	"fmt"
	"math"
)

// Coord is a tile position.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Terrain is the class of a tile. It decides what entering the tile costs.
type Terrain int

const (
	TerrainOpen      Terrain = 0
	TerrainDifficult Terrain = 1
	TerrainHazard    Terrain = 2
	TerrainWall      Terrain = 3 // impassable
)

// TileCost returns the cost of entering a tile of class t. Unknown classes are
// impassable and cost +Inf.
func TileCost(t Terrain) float64 {
	switch t {
	case TerrainOpen:
		return 1
	case TerrainDifficult:
		return 10
	case TerrainHazard:
		return 50
	default:
		return math.Inf(1)
	}
}

// neighborOffsets is the expansion order: up, down, left, right.
var neighborOffsets = [4]Coord{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Grid is a width × height terrain map indexed [x][y].
type Grid struct {
	Width  int
	Height int
	cells  [][]Terrain
}

// NewGrid returns a grid with every tile set to TerrainOpen. Negative sizes
// are treated as zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]Terrain, width)
	for x := range cells {
		cells[x] = make([]Terrain, height)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At returns the terrain at c. Off-grid tiles read as impassable.
func (g *Grid) At(c Coord) Terrain {
	if !g.InBounds(c) {
		return Terrain(-1)
	}
	return g.cells[c.X][c.Y]
}

// Set changes the terrain at c. Off-grid writes are ignored.
func (g *Grid) Set(c Coord, t Terrain) {
	if g.InBounds(c) {
		g.cells[c.X][c.Y] = t
	}
}

// Neighbors returns the in-bounds 4-neighbours of c in the order up, down,
// left, right.
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Coord{X: c.X + d.X, Y: c.Y + d.Y}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Heuristic is the Manhattan distance between a and b.
func Heuristic(a, b Coord) float64 {
	return math.Abs(float64(a.X-b.X)) + math.Abs(float64(a.Y-b.Y))
}

func (g *Grid) index(c Coord) int {
	return c.X*g.Height + c.Y
}
