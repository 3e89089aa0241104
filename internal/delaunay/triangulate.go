// Package delaunay builds a Delaunay triangulation of a point set by
// incremental Bowyer-Watson insertion.
package delaunay

import (
	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/logger"
)

// DefaultScale is the super-triangle size as a multiple of the larger
// bounding box dimension.
const DefaultScale = 20.0

// Triangulator performs Bowyer-Watson triangulation.
type Triangulator struct {
	// Scale sizes the bootstrap super-triangle. Values <= 1 fall back to
	// DefaultScale.
	Scale float64
}

// New creates a triangulator with the given super-triangle scale.
func New(scale float64) *Triangulator {
	return &Triangulator{Scale: scale}
}

// Triangulate runs a triangulator with DefaultScale.
func Triangulate(points []geometry.Point) []geometry.Triangle {
	return New(DefaultScale).Triangulate(points)
}

// Triangulate returns triangles covering the convex hull of points such that
// no input point lies strictly inside any triangle's circumcircle.
//
// Duplicate points are dropped before insertion, keeping the first
// occurrence. Fewer than three distinct points produce no triangles.
func (t *Triangulator) Triangulate(points []geometry.Point) []geometry.Triangle {
	points = geometry.Unique(points)
	if len(points) < 3 {
		return nil
	}

	scale := t.Scale
	if scale <= 1 {
		scale = DefaultScale
	}

	super := SuperTriangle(points, scale)
	triangles := []geometry.Triangle{super}

	for _, p := range points {
		triangles = insert(triangles, p)
	}

	result := make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		if tri.SharesVertex(super) {
			continue
		}
		result = append(result, tri)
	}

	logger.Debug("triangulation complete",
		"points", len(points),
		"triangles", len(result),
		"discarded", len(triangles)-len(result))

	return result
}

// insert adds p to the triangulation and returns the new triangle set.
func insert(triangles []geometry.Triangle, p geometry.Point) []geometry.Triangle {
	invalid := make([]geometry.Triangle, 0)
	kept := make([]geometry.Triangle, 0, len(triangles)+2)

	for _, tri := range triangles {
		if tri.InCircumcircle(p) {
			invalid = append(invalid, tri)
		} else {
			kept = append(kept, tri)
		}
	}

	for _, edge := range HoleBoundary(invalid) {
		kept = append(kept, geometry.NewTriangle(p, edge.A, edge.B))
	}

	return kept
}

// SuperTriangle builds a triangle centred on the midpoint of the points'
// bounding box and sized to scale times the larger box dimension, so it
// strictly contains every point.
func SuperTriangle(points []geometry.Point, scale float64) geometry.Triangle {
	box := geometry.RectFromBound(geometry.BoundingBox(points))

	size := max(box.Width(), box.Height())
	if size == 0 {
		size = 1
	}
	d := size * scale

	midX := (box.MinX + box.MaxX) / 2
	midY := (box.MinY + box.MaxY) / 2

	return geometry.NewTriangle(
		geometry.Point{X: midX - d, Y: midY - d},
		geometry.Point{X: midX + d, Y: midY - d},
		geometry.Point{X: midX, Y: midY + d},
	)
}

// InvalidTriangles returns the triangles whose circumcircle strictly contains
// p, in their original order.
func InvalidTriangles(triangles []geometry.Triangle, p geometry.Point) []geometry.Triangle {
	var invalid []geometry.Triangle
	for _, tri := range triangles {
		if tri.InCircumcircle(p) {
			invalid = append(invalid, tri)
		}
	}
	return invalid
}

// HoleBoundary returns the polygonal boundary of the hole left by removing
// the invalid triangles: the edges that occur exactly once among them, in
// first-seen order. Edges shared by two invalid triangles are interior.
func HoleBoundary(invalid []geometry.Triangle) []geometry.Edge {
	counts := make(map[geometry.Edge]int)
	order := make([]geometry.Edge, 0, len(invalid)*3)

	for _, tri := range invalid {
		for _, edge := range tri.Edges() {
			if counts[edge] == 0 {
				order = append(order, edge)
			}
			counts[edge]++
		}
	}

	boundary := make([]geometry.Edge, 0, len(order))
	for _, edge := range order {
		if counts[edge] == 1 {
			boundary = append(boundary, edge)
		}
	}
	return boundary
}
