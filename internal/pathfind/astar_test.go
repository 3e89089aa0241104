package pathfind

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dijkstraCost is a brute-force reference for the cheapest path cost.
func dijkstraCost(g *Grid, start, goal Coord) float64 {
	dist := make(map[Coord]float64)
	done := make(map[Coord]bool)
	dist[start] = 0

	for {
		best := Coord{}
		bestDist := math.Inf(1)
		for c, d := range dist {
			if !done[c] && d < bestDist {
				best, bestDist = c, d
			}
		}
		if math.IsInf(bestDist, 1) {
			return math.Inf(1)
		}
		if best == goal {
			return bestDist
		}
		done[best] = true
		for _, n := range g.Neighbors(best) {
			cost := TileCost(g.At(n))
			if math.IsInf(cost, 1) {
				continue
			}
			nd := bestDist + 1 + cost
			if old, ok := dist[n]; !ok || nd < old {
				dist[n] = nd
			}
		}
	}
}

func assertContiguous(t *testing.T, path []Coord) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1.0, Heuristic(path[i-1], path[i]), "step %d is not a 4-neighbour move", i)
	}
}

func TestFindPathStartIsGoal(t *testing.T) {
	g := NewGrid(10, 10)

	path, ok := FindPath(g, Coord{X: 3, Y: 3}, Coord{X: 3, Y: 3})

	require.True(t, ok)
	assert.Equal(t, []Coord{{X: 3, Y: 3}}, path)
}

func TestFindPathOpenGrid(t *testing.T) {
	g := NewGrid(10, 10)
	start, goal := Coord{X: 1, Y: 1}, Coord{X: 5, Y: 5}

	path, ok := FindPath(g, start, goal)

	require.True(t, ok)
	assert.Len(t, path, 9)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	assertContiguous(t, path)
	assert.Equal(t, 16.0, PathCost(g, path))
}

func TestFindPathOutOfBounds(t *testing.T) {
	g := NewGrid(10, 10)

	path, ok := FindPath(g, Coord{X: 1, Y: 1}, Coord{X: 100, Y: 100})
	assert.False(t, ok)
	assert.Nil(t, path)

	path, ok = FindPath(g, Coord{X: -1, Y: 0}, Coord{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Nil(t, path)

	_, ok = FindPath(nil, Coord{}, Coord{})
	assert.False(t, ok)
}

func TestFindPathWalledOffGoal(t *testing.T) {
	g := NewGrid(7, 7)
	goal := Coord{X: 5, Y: 5}
	for _, n := range g.Neighbors(goal) {
		g.Set(n, TerrainWall)
	}

	path, ok := FindPath(g, Coord{X: 0, Y: 0}, goal)

	assert.False(t, ok)
	assert.Nil(t, path)
}

func TestFindPathAvoidsCostlyTerrain(t *testing.T) {
	g := NewGrid(5, 3)
	g.Set(Coord{X: 2, Y: 1}, TerrainDifficult)

	path, ok := FindPath(g, Coord{X: 0, Y: 1}, Coord{X: 4, Y: 1})

	require.True(t, ok)
	assert.NotContains(t, path, Coord{X: 2, Y: 1})
	assert.Equal(t, 12.0, PathCost(g, path))
	assertContiguous(t, path)
}

func TestFindPathCrossesDifficultWhenCheaper(t *testing.T) {
	// A full column of difficult terrain has to be crossed somewhere
	g := NewGrid(5, 5)
	for y := 0; y < 5; y++ {
		g.Set(Coord{X: 2, Y: y}, TerrainDifficult)
	}
	g.Set(Coord{X: 2, Y: 0}, TerrainHazard)

	path, ok := FindPath(g, Coord{X: 0, Y: 0}, Coord{X: 4, Y: 0})

	require.True(t, ok)
	assert.NotContains(t, path, Coord{X: 2, Y: 0})
	assert.Equal(t, dijkstraCost(g, Coord{X: 0, Y: 0}, Coord{X: 4, Y: 0}), PathCost(g, path))
}

func TestFindPathMatchesDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	terrains := []Terrain{TerrainOpen, TerrainOpen, TerrainOpen, TerrainDifficult, TerrainHazard, Terrain(9)}

	for trial := 0; trial < 20; trial++ {
		g := NewGrid(12, 9)
		for x := 0; x < g.Width; x++ {
			for y := 0; y < g.Height; y++ {
				g.Set(Coord{X: x, Y: y}, terrains[rng.Intn(len(terrains))])
			}
		}
		start := Coord{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		goal := Coord{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}

		path, ok := FindPath(g, start, goal)
		want := dijkstraCost(g, start, goal)

		if math.IsInf(want, 1) {
			assert.False(t, ok, "trial %d", trial)
			continue
		}
		require.True(t, ok, "trial %d", trial)
		assertContiguous(t, path)
		assert.InDelta(t, want, PathCost(g, path), 1e-9, "trial %d", trial)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := NewGrid(20, 20)
	g.Set(Coord{X: 10, Y: 10}, TerrainHazard)

	a, okA := FindPath(g, Coord{X: 2, Y: 3}, Coord{X: 17, Y: 15})
	b, okB := FindPath(g, Coord{X: 2, Y: 3}, Coord{X: 17, Y: 15})

	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestNeighbors(t *testing.T) {
	g := NewGrid(10, 10)

	assert.Equal(t, []Coord{{X: 5, Y: 4}, {X: 5, Y: 6}, {X: 4, Y: 5}, {X: 6, Y: 5}}, g.Neighbors(Coord{X: 5, Y: 5}))
	assert.Len(t, g.Neighbors(Coord{X: 0, Y: 5}), 3)
	assert.Len(t, g.Neighbors(Coord{X: 5, Y: 9}), 3)
	assert.Len(t, g.Neighbors(Coord{X: 0, Y: 0}), 2)
	assert.Len(t, g.Neighbors(Coord{X: 9, Y: 9}), 2)
}

func TestTileCost(t *testing.T) {
	tests := []struct {
		terrain Terrain
		want    float64
	}{
		{TerrainOpen, 1},
		{TerrainDifficult, 10},
		{TerrainHazard, 50},
		{TerrainWall, math.Inf(1)},
		{Terrain(-1), math.Inf(1)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TileCost(tt.terrain), "terrain %d", tt.terrain)
	}
}

func TestGridAccess(t *testing.T) {
	g := NewGrid(4, 3)

	assert.Equal(t, TerrainOpen, g.At(Coord{X: 3, Y: 2}))
	g.Set(Coord{X: 3, Y: 2}, TerrainHazard)
	assert.Equal(t, TerrainHazard, g.At(Coord{X: 3, Y: 2}))

	g.Set(Coord{X: 4, Y: 0}, TerrainHazard)
	assert.Equal(t, math.Inf(1), TileCost(g.At(Coord{X: 4, Y: 0})))
	assert.False(t, g.InBounds(Coord{X: 0, Y: 3}))
	assert.Equal(t, 7.0, Heuristic(Coord{X: 0, Y: 0}, Coord{X: 3, Y: -4}))
}
