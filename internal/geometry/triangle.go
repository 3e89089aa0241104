package geometry

import "math"

// Triangle is three points plus its derived circumcircle.
//
// When the vertices are collinear there is no circumcircle: HasCircumcenter
// reports false and RadiusSq is +Inf, so InCircumcircle never reports a
// point as contained.
type Triangle struct {
	A, B, C Point

	center    Point
	hasCenter bool
	radiusSq  float64
}

// NewTriangle creates a triangle and computes its circumcircle.
func NewTriangle(a, b, c Point) Triangle {
	t := Triangle{A: a, B: b, C: c, radiusSq: math.Inf(1)}

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return t
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y

	ux := (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d
	uy := (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d

	t.center = Point{X: ux, Y: uy}
	t.hasCenter = true
	t.radiusSq = t.center.DistanceSq(a)
	return t
}

// Vertices returns the three corners in construction order.
func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

// Edges returns the three pairwise edges.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{
		NewEdge(t.A, t.B),
		NewEdge(t.B, t.C),
		NewEdge(t.C, t.A),
	}
}

// Circumcenter returns the circumcircle center, or false for a degenerate
// triangle.
func (t Triangle) Circumcenter() (Point, bool) {
	return t.center, t.hasCenter
}

// HasCircumcenter reports whether the vertices are not collinear.
func (t Triangle) HasCircumcenter() bool {
	return t.hasCenter
}

// RadiusSq returns the squared circumradius (+Inf when degenerate).
func (t Triangle) RadiusSq() float64 {
	return t.radiusSq
}

// InCircumcircle reports whether p lies strictly inside the circumcircle.
func (t Triangle) InCircumcircle(p Point) bool {
	if !t.hasCenter {
		return false
	}
	return t.center.DistanceSq(p) < t.radiusSq
}

// HasVertex reports whether p is one of the corners.
func (t Triangle) HasVertex(p Point) bool {
	return t.A == p || t.B == p || t.C == p
}

// SharesVertex reports whether the two triangles have any corner in common.
func (t Triangle) SharesVertex(other Triangle) bool {
	return t.HasVertex(other.A) || t.HasVertex(other.B) || t.HasVertex(other.C)
}

// ContainsPoint reports whether p lies strictly inside the triangle.
func (t Triangle) ContainsPoint(p Point) bool {
	d1 := direction(t.A, t.B, p)
	d2 := direction(t.B, t.C, p)
	d3 := direction(t.C, t.A, p)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	hasZero := d1 == 0 || d2 == 0 || d3 == 0
	return !(hasNeg && hasPos) && !hasZero
}
