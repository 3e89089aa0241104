// Package rooms places disjoint rectangular rooms on a tile grid.
package rooms

import (
	"math"

	"dungeon-generator/internal/geometry"
)

// Room is an axis-aligned rectangle in tile units. It covers the tiles
// [X, X+Width) × [Y, Y+Height).
type Room struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Center returns the room's midpoint in tile space.
func (r Room) Center() geometry.Point {
	return geometry.Point{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// CenterTile returns the tile holding the room's center.
func (r Room) CenterTile() (x, y int) {
	return TileOf(r.Center())
}

// Rect returns the room's area as a closed rectangle in tile space.
func (r Room) Rect() geometry.Rect {
	return geometry.Rect{
		MinX: float64(r.X),
		MinY: float64(r.Y),
		MaxX: float64(r.X + r.Width),
		MaxY: float64(r.Y + r.Height),
	}
}

// Contains reports whether p falls inside or on the border of the room.
func (r Room) Contains(p geometry.Point) bool {
	return r.Rect().Contains(p)
}

// Overlaps reports whether the two rooms overlap once r is inflated by margin
// tiles on every side.
func (r Room) Overlaps(other Room, margin int) bool {
	return r.X-margin < other.X+other.Width &&
		other.X < r.X+r.Width+margin &&
		r.Y-margin < other.Y+other.Height &&
		other.Y < r.Y+r.Height+margin
}

// Tiles calls fn for every tile the room covers.
func (r Room) Tiles(fn func(x, y int)) {
	for i := 0; i < r.Width; i++ {
		for j := 0; j < r.Height; j++ {
			fn(r.X+i, r.Y+j)
		}
	}
}

// Centers returns the center of every room, in room order.
func Centers(rooms []Room) []geometry.Point {
	centers := make([]geometry.Point, 0, len(rooms))
	for _, r := range rooms {
		centers = append(centers, r.Center())
	}
	return centers
}

// TileOf returns the tile containing a tile-space point.
func TileOf(p geometry.Point) (x, y int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}
