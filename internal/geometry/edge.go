package geometry

import "sort"

// Edge is an undirected connection between two points.
//
// Endpoints are stored in canonical order, so Edge values built from the same
// pair compare equal with == and hash to the same map key regardless of the
// order they were passed to NewEdge.
type Edge struct {
	A Point `json:"a" yaml:"a"`
	B Point `json:"b" yaml:"b"`
}

// NewEdge creates the undirected edge between a and b.
func NewEdge(a, b Point) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 {
	return e.A.Distance(e.B)
}

// Has reports whether p is one of the edge's endpoints.
func (e Edge) Has(p Point) bool {
	return e.A == p || e.B == p
}

// Other returns the endpoint opposite to p. The result is meaningless when p
// is not an endpoint.
func (e Edge) Other(p Point) Point {
	if e.A == p {
		return e.B
	}
	return e.A
}

// Less orders edges by their first endpoint, then by their second.
func (e Edge) Less(other Edge) bool {
	if e.A != other.A {
		return e.A.Less(other.A)
	}
	return e.B.Less(other.B)
}

// Segment returns the edge as a line segment.
func (e Edge) Segment() LineSegment {
	return LineSegment{P1: e.A, P2: e.B}
}

// SortEdges sorts edges in place into canonical order.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Less(edges[j])
	})
}
