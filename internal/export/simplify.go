package export

import (
	"math"

	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/pathfind"
)

// TileCenters converts a tile path into the polyline through the tile centers.
func TileCenters(path []pathfind.Coord) []geometry.Point {
	points := make([]geometry.Point, len(path))
	for i, c := range path {
		points[i] = geometry.Point{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
	}
	return points
}

// SimplifyCorridor reduces a corridor path to its turning points using the
// Douglas-Peucker algorithm. With epsilon 0 only collinear interior points are
// dropped, so the polyline still covers exactly the same tiles.
func SimplifyCorridor(path []pathfind.Coord, epsilon float64) []geometry.Point {
	return douglasPeucker(TileCenters(path), epsilon)
}

// douglasPeucker implements the Douglas-Peucker line simplification algorithm
func douglasPeucker(points []geometry.Point, epsilon float64) []geometry.Point {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from line between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(points[0:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)

		// Combine results (removing duplicate point at index)
		result := make([]geometry.Point, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []geometry.Point{points[0], points[end]}
}

// perpendicularDistance calculates the distance from point to the line
// through lineStart and lineEnd. A degenerate line measures to lineStart.
func perpendicularDistance(point, lineStart, lineEnd geometry.Point) float64 {
	dx := lineEnd.X - lineStart.X
	dy := lineEnd.Y - lineStart.Y

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := point.X - lineStart.X
	pvy := point.Y - lineStart.Y

	// Project pv onto the normalized direction
	pvdot := dx*pvx + dy*pvy

	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
