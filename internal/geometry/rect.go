package geometry

import "github.com/paulmach/orb"

// Rect is a closed axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectFromBound converts an orb.Bound into a Rect.
func RectFromBound(b orb.Bound) Rect {
	return Rect{MinX: b.Min.X(), MinY: b.Min.Y(), MaxX: b.Max.X(), MaxY: b.Max.Y()}
}

// Bound converts the rectangle to an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{r.MinX, r.MinY}, Max: orb.Point{r.MaxX, r.MaxY}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether p lies inside or on the border of the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Corners returns the four corners in counter-clockwise order starting at the
// minimum corner.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// IntersectsSegment checks if the segment ab touches the rectangle, either by
// having an endpoint inside it or by crossing one of its sides.
func (r Rect) IntersectsSegment(a, b Point) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}

	// Cheap reject on the segment's bounding box
	if max(a.X, b.X) < r.MinX || min(a.X, b.X) > r.MaxX ||
		max(a.Y, b.Y) < r.MinY || min(a.Y, b.Y) > r.MaxY {
		return false
	}

	seg := LineSegment{P1: a, P2: b}
	corners := r.Corners()
	for i := range corners {
		side := LineSegment{P1: corners[i], P2: corners[(i+1)%len(corners)]}
		if DoSegmentsIntersect(seg, side) {
			return true
		}
	}
	return false
}
