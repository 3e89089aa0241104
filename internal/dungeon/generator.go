package dungeon

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"dungeon-generator/internal/config"
	"dungeon-generator/internal/connectivity"
	"dungeon-generator/internal/delaunay"
	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/logger"
	"dungeon-generator/internal/pathfind"
	"dungeon-generator/internal/rooms"
)

// ErrGenerationFailed is returned when every attempt was rejected.
var ErrGenerationFailed = errors.New("dungeon generation failed")

// seedStride separates the seeds of consecutive attempts.
const seedStride = 1000

// Generator produces layouts from a fixed configuration and base seed.
type Generator struct {
	cfg  config.Generation
	seed int64
}

// NewGenerator creates a generator. Attempt n runs with seed + n*1000 so a
// given seed always yields the same layout.
func NewGenerator(cfg config.Generation, seed int64) *Generator {
	return &Generator{cfg: cfg, seed: seed}
}

// Generate runs attempts until one produces an acceptable layout.
func (g *Generator) Generate() (*Layout, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		seed := g.seed + int64(attempt*seedStride)

		layout, err := g.attempt(seed)
		if err != nil {
			logger.Debug("layout rejected",
				"seed", seed,
				"attempt", attempt,
				"error", err)
			lastErr = err
			continue
		}

		layout.Attempt = attempt
		logger.Info("dungeon generated",
			"seed", seed,
			"attempt", attempt,
			"rooms", len(layout.Rooms),
			"tree_edges", len(layout.Tree),
			"extra_edges", len(layout.Extra),
			"corridor_tiles", layout.Count(TileCorridor))
		return layout, nil
	}

	logger.Warning("dungeon generation failed",
		"seed", g.seed,
		"attempts", g.cfg.MaxAttempts,
		"error", lastErr)
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, g.cfg.MaxAttempts, lastErr)
}

func (g *Generator) placement() rooms.PlacementConfig {
	return rooms.PlacementConfig{
		GridWidth:  g.cfg.GridWidth,
		GridHeight: g.cfg.GridHeight,
		MinSize:    g.cfg.MinRoomSize,
		MaxSize:    g.cfg.MaxRoomSize,
		MaxRooms:   g.cfg.MaxRooms,
		Margin:     g.cfg.Margin,
	}
}

// attempt runs one full generation with a single seeded rng.
func (g *Generator) attempt(seed int64) (*Layout, error) {
	rng := rand.New(rand.NewSource(seed))

	placed, err := rooms.Place(g.placement(), rng)
	if err != nil {
		return nil, err
	}
	if len(placed) < g.cfg.MinRooms {
		return nil, fmt.Errorf("too few rooms: got %d, need %d", len(placed), g.cfg.MinRooms)
	}

	centers := rooms.Centers(placed)
	triangles := delaunay.New(g.cfg.SuperTriangleScale).Triangulate(centers)

	tree := connect(centers, triangles, rng)
	if !connectivity.IsConnected(centers, tree) {
		return nil, fmt.Errorf("spanning tree reaches fewer than %d rooms", len(centers))
	}

	extra := connectivity.ExtraEdges(g.cfg.ExtraEdgeChance, tree, triangles, placed, rng)

	layout := &Layout{
		Seed:      seed,
		Width:     g.cfg.GridWidth,
		Height:    g.cfg.GridHeight,
		Rooms:     placed,
		Triangles: triangles,
		Tree:      tree,
		Extra:     extra,
		Tiles:     newTiles(g.cfg.GridWidth, g.cfg.GridHeight),
	}

	grid := occupancy(layout)
	layout.carve(grid)

	if len(layout.Unreachable) > g.cfg.MaxUnreachable {
		return nil, fmt.Errorf("%d corridors unreachable, at most %d allowed",
			len(layout.Unreachable), g.cfg.MaxUnreachable)
	}
	return layout, nil
}

// connect returns the level's spanning edges. When the centers admit no
// triangulation (fewer than three, or all collinear) the sorted centers are
// chained, which is their minimum spanning tree.
func connect(centers []geometry.Point, triangles []geometry.Triangle, rng connectivity.RandSource) []geometry.Edge {
	if len(triangles) > 0 {
		return connectivity.MinimumSpanningTree(connectivity.BuildGraph(triangles), rng)
	}

	sorted := geometry.Unique(centers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	var chain []geometry.Edge
	for i := 1; i < len(sorted); i++ {
		chain = append(chain, geometry.NewEdge(sorted[i-1], sorted[i]))
	}
	return chain
}

// occupancy marks room tiles as difficult terrain so corridors prefer to run
// around rooms rather than through them.
func occupancy(l *Layout) *pathfind.Grid {
	grid := pathfind.NewGrid(l.Width, l.Height)
	for _, room := range l.Rooms {
		room.Tiles(func(x, y int) {
			grid.Set(pathfind.Coord{X: x, Y: y}, pathfind.TerrainDifficult)
			l.Tiles[x][y] = TileRoom
		})
	}
	return grid
}

// carve routes one corridor per edge between the tiles holding its endpoints.
// Only void tiles become corridor; room tiles keep their kind.
func (l *Layout) carve(grid *pathfind.Grid) {
	route := func(e geometry.Edge, extra bool) {
		sx, sy := rooms.TileOf(e.A)
		gx, gy := rooms.TileOf(e.B)

		path, ok := pathfind.FindPath(grid, pathfind.Coord{X: sx, Y: sy}, pathfind.Coord{X: gx, Y: gy})
		if !ok {
			logger.Debug("corridor unreachable", "from", e.A, "to", e.B)
			l.Unreachable = append(l.Unreachable, e)
			return
		}

		for _, c := range path {
			if l.Tiles[c.X][c.Y] == TileVoid {
				l.Tiles[c.X][c.Y] = TileCorridor
			}
		}
		l.Corridors = append(l.Corridors, Corridor{Edge: e, Path: path, Extra: extra})
	}

	for _, e := range l.Tree {
		route(e, false)
	}
	for _, e := range l.Extra {
		route(e, true)
	}
}
