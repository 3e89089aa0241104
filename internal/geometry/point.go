// Package geometry holds the planar primitives shared by the triangulator,
// the connectivity reducer and the exporters.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a position in the plane. It is a comparable value type, so it can
// be used directly as a map or set key.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return math.Sqrt(p.DistanceSq(other))
}

// DistanceSq returns the squared Euclidean distance between two points
func (p Point) DistanceSq(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Less orders points by X, then by Y.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// Orb converts the point to an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// FromOrb converts an orb.Point back into a Point.
func FromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// BoundingBox computes the axis-aligned bounding box of a point set.
// An empty input yields the zero bound.
func BoundingBox(points []Point) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}

	mp := make(orb.MultiPoint, 0, len(points))
	for _, p := range points {
		mp = append(mp, p.Orb())
	}
	return mp.Bound()
}

// Unique returns the points with duplicates removed, keeping the first
// occurrence of each and the original order otherwise.
func Unique(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
