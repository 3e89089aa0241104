// Package connectivity reduces a triangulation to a level graph: a minimum
// spanning tree plus a random sample of extra edges that add cycles.
package connectivity

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeon-generator/internal/geometry"
)

// RandSource is the injectable random source for start-vertex choice and edge
// sampling. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Graph is the undirected adjacency graph derived from a triangulation.
type Graph struct {
	Vertices  []geometry.Point // sorted
	Adjacency map[geometry.Point]mapset.Set[geometry.Point]
}

// BuildGraph collects every triangle vertex and connects the endpoints of
// every triangle edge. Triangle identity is discarded.
func BuildGraph(triangles []geometry.Triangle) *Graph {
	g := &Graph{
		Adjacency: make(map[geometry.Point]mapset.Set[geometry.Point]),
	}

	for _, tri := range triangles {
		for _, edge := range tri.Edges() {
			g.addEdge(edge)
		}
	}

	g.Vertices = make([]geometry.Point, 0, len(g.Adjacency))
	for v := range g.Adjacency {
		g.Vertices = append(g.Vertices, v)
	}
	sortPoints(g.Vertices)

	return g
}

// GraphFromEdges builds a graph directly from an edge list.
func GraphFromEdges(edges []geometry.Edge) *Graph {
	g := &Graph{
		Adjacency: make(map[geometry.Point]mapset.Set[geometry.Point]),
	}
	for _, edge := range edges {
		g.addEdge(edge)
	}
	g.Vertices = make([]geometry.Point, 0, len(g.Adjacency))
	for v := range g.Adjacency {
		g.Vertices = append(g.Vertices, v)
	}
	sortPoints(g.Vertices)
	return g
}

func (g *Graph) addEdge(e geometry.Edge) {
	if e.A == e.B {
		return
	}
	g.neighborSet(e.A).Put(e.B)
	g.neighborSet(e.B).Put(e.A)
}

func (g *Graph) neighborSet(v geometry.Point) mapset.Set[geometry.Point] {
	set, ok := g.Adjacency[v]
	if !ok {
		set = mapset.New[geometry.Point]()
		g.Adjacency[v] = set
	}
	return set
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.Vertices)
}

// Neighbors returns the vertices adjacent to v in sorted order.
func (g *Graph) Neighbors(v geometry.Point) []geometry.Point {
	set, ok := g.Adjacency[v]
	if !ok {
		return nil
	}
	out := make([]geometry.Point, 0, set.Size())
	set.Each(func(w geometry.Point) {
		out = append(out, w)
	})
	sortPoints(out)
	return out
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b geometry.Point) bool {
	set, ok := g.Adjacency[a]
	return ok && set.Has(b)
}

// Edges returns every edge once, in canonical order.
func (g *Graph) Edges() []geometry.Edge {
	var edges []geometry.Edge
	for _, v := range g.Vertices {
		for _, w := range g.Neighbors(v) {
			if v.Less(w) {
				edges = append(edges, geometry.NewEdge(v, w))
			}
		}
	}
	return edges
}

// IsConnected reports whether edges connect every vertex in vertices,
// checked by breadth-first reachability from the first vertex.
func IsConnected(vertices []geometry.Point, edges []geometry.Edge) bool {
	if len(vertices) <= 1 {
		return true
	}

	g := GraphFromEdges(edges)
	visited := mapset.New[geometry.Point]()
	queue := []geometry.Point{vertices[0]}
	visited.Put(vertices[0])

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(current) {
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	for _, v := range vertices {
		if !visited.Has(v) {
			return false
		}
	}
	return true
}

func sortPoints(points []geometry.Point) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})
}
