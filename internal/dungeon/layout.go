// Package dungeon wires room placement, triangulation, spanning-tree
// reduction and corridor pathfinding into complete dungeon layouts.
package dungeon

import (
	"strings"

	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/pathfind"
	"dungeon-generator/internal/rooms"
)

// TileKind is what a tile of the finished dungeon holds.
type TileKind int

const (
	TileVoid TileKind = iota
	TileRoom
	TileCorridor
)

// String returns the tile's ASCII glyph.
func (k TileKind) String() string {
	switch k {
	case TileRoom:
		return "#"
	case TileCorridor:
		return "."
	default:
		return " "
	}
}

// Corridor is the tile path carved for one graph edge.
type Corridor struct {
	Edge  geometry.Edge
	Path  []pathfind.Coord
	Extra bool // edge came from the extra-edge sample, not the tree
}

// Layout is the result of one generation. It is built once and never reused
// by later generations.
type Layout struct {
	Seed    int64 // seed the successful attempt ran with
	Attempt int   // zero-based index of the successful attempt
	Width   int
	Height  int

	Rooms       []rooms.Room
	Triangles   []geometry.Triangle
	Tree        []geometry.Edge
	Extra       []geometry.Edge
	Corridors   []Corridor
	Unreachable []geometry.Edge

	Tiles [][]TileKind // [x][y]
}

// Summary is a compact description of a layout.
type Summary struct {
	Seed          int64 `json:"seed" yaml:"seed"`
	Attempt       int   `json:"attempt" yaml:"attempt"`
	Width         int   `json:"width" yaml:"width"`
	Height        int   `json:"height" yaml:"height"`
	Rooms         int   `json:"rooms" yaml:"rooms"`
	Triangles     int   `json:"triangles" yaml:"triangles"`
	TreeEdges     int   `json:"treeEdges" yaml:"tree_edges"`
	ExtraEdges    int   `json:"extraEdges" yaml:"extra_edges"`
	Unreachable   int   `json:"unreachable" yaml:"unreachable"`
	CorridorTiles int   `json:"corridorTiles" yaml:"corridor_tiles"`
}

func newTiles(width, height int) [][]TileKind {
	tiles := make([][]TileKind, width)
	for x := range tiles {
		tiles[x] = make([]TileKind, height)
	}
	return tiles
}

// At returns the tile at (x, y); off-map tiles are void.
func (l *Layout) At(x, y int) TileKind {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return TileVoid
	}
	return l.Tiles[x][y]
}

// Count returns how many tiles hold kind.
func (l *Layout) Count(kind TileKind) int {
	n := 0
	for x := range l.Tiles {
		for _, k := range l.Tiles[x] {
			if k == kind {
				n++
			}
		}
	}
	return n
}

// Edges returns the tree edges followed by the extra edges.
func (l *Layout) Edges() []geometry.Edge {
	edges := make([]geometry.Edge, 0, len(l.Tree)+len(l.Extra))
	edges = append(edges, l.Tree...)
	return append(edges, l.Extra...)
}

// Summary returns the layout's counts.
func (l *Layout) Summary() Summary {
	return Summary{
		Seed:          l.Seed,
		Attempt:       l.Attempt,
		Width:         l.Width,
		Height:        l.Height,
		Rooms:         len(l.Rooms),
		Triangles:     len(l.Triangles),
		TreeEdges:     len(l.Tree),
		ExtraEdges:    len(l.Extra),
		Unreachable:   len(l.Unreachable),
		CorridorTiles: l.Count(TileCorridor),
	}
}

// WalkGrid returns a grid over the finished dungeon where room and corridor
// tiles are open and void tiles are walls.
func (l *Layout) WalkGrid() *pathfind.Grid {
	grid := pathfind.NewGrid(l.Width, l.Height)
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			if l.Tiles[x][y] == TileVoid {
				grid.Set(pathfind.Coord{X: x, Y: y}, pathfind.TerrainWall)
			}
		}
	}
	return grid
}

// Route finds the cheapest walk between two tiles of the finished dungeon.
func (l *Layout) Route(from, to pathfind.Coord) ([]pathfind.Coord, bool) {
	return pathfind.FindPath(l.WalkGrid(), from, to)
}

// ASCII renders the tile map one row per line, top row first.
func (l *Layout) ASCII() string {
	var sb strings.Builder
	sb.Grow((l.Width + 1) * l.Height)

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			sb.WriteString(l.Tiles[x][y].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
