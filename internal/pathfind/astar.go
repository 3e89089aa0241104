package pathfind

import (
	"container/heap"
	"math"
)

// node is the search record for one tile. Records live in an arena indexed
// like the grid; parent is an arena index or -1.
type node struct {
	tile   Coord
	g      float64 // cost from start to this tile
	h      float64 // heuristic cost from this tile to goal
	f      float64 // g + h
	parent int
	seq    int // push order, breaks f/h ties
	open   bool
	closed bool
	index  int // index in the heap
}

// priorityQueue implements heap.Interface for the A* frontier
type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	n := len(*pq)
	nd := x.(*node)
	nd.index = n
	*pq = append(*pq, nd)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	nd.index = -1
	*pq = old[0 : n-1]
	return nd
}

// FindPath computes the cheapest 4-connected path from start to goal with A*.
//
// Moving onto a tile costs the heuristic distance of the step plus the tile's
// TileCost; impassable tiles are never entered. The returned path runs from
// start to goal inclusive. If either endpoint is off the grid or no path
// exists, FindPath returns (nil, false).
func FindPath(grid *Grid, start, goal Coord) ([]Coord, bool) {
	if grid == nil || !grid.InBounds(start) || !grid.InBounds(goal) {
		return nil, false
	}
	if start == goal {
		return []Coord{start}, true
	}

	arena := make([]node, grid.Width*grid.Height)
	for i := range arena {
		arena[i].parent = -1
		arena[i].index = -1
	}

	openSet := &priorityQueue{}
	heap.Init(openSet)

	seq := 0
	startIdx := grid.index(start)
	first := &arena[startIdx]
	first.tile = start
	first.h = Heuristic(start, goal)
	first.f = first.h
	first.open = true
	heap.Push(openSet, first)

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*node)
		current.open = false
		current.closed = true

		// Check if we reached the goal
		if current.tile == goal {
			return reconstruct(arena, grid.index(goal)), true
		}

		currentIdx := grid.index(current.tile)
		for _, next := range grid.Neighbors(current.tile) {
			cost := TileCost(grid.At(next))
			if math.IsInf(cost, 1) {
				continue
			}

			nextIdx := grid.index(next)
			neighbor := &arena[nextIdx]
			if neighbor.closed {
				continue
			}

			tentativeG := current.g + Heuristic(current.tile, next) + cost

			if !neighbor.open {
				seq++
				neighbor.tile = next
				neighbor.g = tentativeG
				neighbor.h = Heuristic(next, goal)
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = currentIdx
				neighbor.seq = seq
				neighbor.open = true
				heap.Push(openSet, neighbor)
			} else if tentativeG < neighbor.g {
				// Found a better path to this neighbor
				neighbor.g = tentativeG
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = currentIdx
				heap.Fix(openSet, neighbor.index)
			}
		}
	}

	return nil, false
}

func reconstruct(arena []node, goalIdx int) []Coord {
	var reversed []Coord
	for i := goalIdx; i != -1; i = arena[i].parent {
		reversed = append(reversed, arena[i].tile)
	}

	path := make([]Coord, len(reversed))
	for i, c := range reversed {
		path[len(reversed)-1-i] = c
	}
	return path
}

// PathCost sums the step costs along path as FindPath charges them. A path
// with fewer than two tiles costs nothing.
func PathCost(grid *Grid, path []Coord) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Heuristic(path[i-1], path[i]) + TileCost(grid.At(path[i]))
	}
	return total
}
