package connectivity

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"dungeon-generator/internal/geometry"
)

// candidate is an edge waiting in Prim's frontier, directed from the tree
// towards a vertex that was unvisited when it was pushed.
type candidate struct {
	from   geometry.Point
	to     geometry.Point
	weight float64
}

// lessCandidate orders by weight; equal weights fall back to coordinates so
// the tree is reproducible for a fixed start vertex.
func lessCandidate(a, b candidate) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	if a.to != b.to {
		return a.to.Less(b.to)
	}
	return a.from.Less(b.from)
}

// MinimumSpanningTree extracts a minimum spanning tree with Prim's algorithm.
// The start vertex is drawn from the sorted vertex list through rng. For a
// connected graph the result holds exactly Len()-1 edges, in the order they
// joined the tree. Graphs with fewer than two vertices yield no edges.
func MinimumSpanningTree(g *Graph, rng RandSource) []geometry.Edge {
	if g == nil || g.Len() < 2 {
		return nil
	}

	start := g.Vertices[rng.Intn(g.Len())]

	visited := mapset.New[geometry.Point]()
	visited.Put(start)

	frontier := heap.New[candidate](lessCandidate)
	pushNeighbors(g, frontier, visited, start)

	tree := make([]geometry.Edge, 0, g.Len()-1)
	for frontier.Size() > 0 && visited.Size() < g.Len() {
		next, _ := frontier.Pop()
		if visited.Has(next.to) {
			continue
		}

		tree = append(tree, geometry.NewEdge(next.from, next.to))
		visited.Put(next.to)
		pushNeighbors(g, frontier, visited, next.to)
	}

	return tree
}

func pushNeighbors(g *Graph, frontier *heap.Heap[candidate], visited mapset.Set[geometry.Point], v geometry.Point) {
	for _, n := range g.Neighbors(v) {
		if visited.Has(n) {
			continue
		}
		frontier.Push(candidate{from: v, to: n, weight: v.Distance(n)})
	}
}
