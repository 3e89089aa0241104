package dungeon

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeon-generator/internal/config"
	"dungeon-generator/internal/connectivity"
	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/pathfind"
	"dungeon-generator/internal/rooms"
)

func TestGenerateDefaultConfig(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2024} {
		layout, err := NewGenerator(config.DefaultGeneration(), seed).Generate()
		require.NoError(t, err, "seed %d", seed)

		centers := rooms.Centers(layout.Rooms)
		assert.GreaterOrEqual(t, len(layout.Rooms), 3, "seed %d", seed)
		assert.Len(t, layout.Tree, len(layout.Rooms)-1, "seed %d", seed)
		assert.True(t, connectivity.IsConnected(centers, layout.Tree), "seed %d", seed)
		assert.Empty(t, layout.Unreachable, "seed %d", seed)
		assert.Len(t, layout.Corridors, len(layout.Tree)+len(layout.Extra), "seed %d", seed)
		assert.Equal(t, seed+int64(layout.Attempt*1000), layout.Seed)
	}
}

func TestGenerateCorridorsJoinRoomCenters(t *testing.T) {
	layout, err := NewGenerator(config.DefaultGeneration(), 99).Generate()
	require.NoError(t, err)

	for _, c := range layout.Corridors {
		require.NotEmpty(t, c.Path)

		sx, sy := rooms.TileOf(c.Edge.A)
		gx, gy := rooms.TileOf(c.Edge.B)
		assert.Equal(t, pathfind.Coord{X: sx, Y: sy}, c.Path[0])
		assert.Equal(t, pathfind.Coord{X: gx, Y: gy}, c.Path[len(c.Path)-1])

		for _, tile := range c.Path {
			assert.NotEqual(t, TileVoid, layout.At(tile.X, tile.Y), "corridor tile %v left void", tile)
		}
	}
}

func TestGenerateRoomTilesKeepTheirKind(t *testing.T) {
	layout, err := NewGenerator(config.DefaultGeneration(), 3).Generate()
	require.NoError(t, err)

	roomTiles := 0
	for _, room := range layout.Rooms {
		room.Tiles(func(x, y int) {
			roomTiles++
			assert.Equal(t, TileRoom, layout.At(x, y))
		})
	}
	assert.Equal(t, roomTiles, layout.Count(TileRoom))
	assert.Greater(t, layout.Count(TileCorridor), 0)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewGenerator(config.DefaultGeneration(), 1234).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(config.DefaultGeneration(), 1234).Generate()
	require.NoError(t, err)

	assert.Equal(t, a.Rooms, b.Rooms)
	assert.Equal(t, a.Tree, b.Tree)
	assert.Equal(t, a.Extra, b.Extra)
	assert.Equal(t, a.ASCII(), b.ASCII())
}

func TestGenerateFailsWhenRoomsCannotFit(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.GridWidth = 14
	cfg.GridHeight = 14
	cfg.MinRoomSize = 10
	cfg.MaxAttempts = 3

	layout, err := NewGenerator(cfg, 5).Generate()

	assert.Nil(t, layout)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Contains(t, err.Error(), "too few rooms")
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.MaxRoomSize = 1

	_, err := NewGenerator(cfg, 5).Generate()

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGenerateWithoutExtraEdges(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.ExtraEdgeChance = 0

	layout, err := NewGenerator(cfg, 11).Generate()
	require.NoError(t, err)

	assert.Empty(t, layout.Extra)
	for _, c := range layout.Corridors {
		assert.False(t, c.Extra)
	}
}

func TestConnectTwoRooms(t *testing.T) {
	a := geometry.Point{X: 5, Y: 5}
	b := geometry.Point{X: 20, Y: 8}

	edges := connect([]geometry.Point{b, a}, nil, rand.New(rand.NewSource(1)))

	assert.Equal(t, []geometry.Edge{geometry.NewEdge(a, b)}, edges)
}

func TestConnectCollinearRooms(t *testing.T) {
	points := []geometry.Point{{X: 30, Y: 5}, {X: 10, Y: 5}, {X: 20, Y: 5}}

	edges := connect(points, nil, rand.New(rand.NewSource(1)))

	require.Len(t, edges, 2)
	assert.True(t, connectivity.IsConnected(points, edges))
	assert.Contains(t, edges, geometry.NewEdge(geometry.Point{X: 10, Y: 5}, geometry.Point{X: 20, Y: 5}))
	assert.Contains(t, edges, geometry.NewEdge(geometry.Point{X: 20, Y: 5}, geometry.Point{X: 30, Y: 5}))
}

func TestConnectSingleRoom(t *testing.T) {
	assert.Empty(t, connect([]geometry.Point{{X: 1, Y: 1}}, nil, rand.New(rand.NewSource(1))))
	assert.Empty(t, connect(nil, nil, rand.New(rand.NewSource(1))))
}

func TestLayoutASCII(t *testing.T) {
	l := &Layout{Width: 4, Height: 2, Tiles: newTiles(4, 2)}
	l.Tiles[0][0] = TileRoom
	l.Tiles[1][0] = TileCorridor
	l.Tiles[3][1] = TileRoom

	assert.Equal(t, "#.  \n   #\n", l.ASCII())
	assert.Equal(t, TileVoid, l.At(-1, 0))
	assert.Equal(t, 2, l.Count(TileRoom))
}

func TestLayoutSummary(t *testing.T) {
	layout, err := NewGenerator(config.DefaultGeneration(), 8).Generate()
	require.NoError(t, err)

	s := layout.Summary()
	assert.Equal(t, len(layout.Rooms), s.Rooms)
	assert.Equal(t, len(layout.Tree), s.TreeEdges)
	assert.Equal(t, layout.Count(TileCorridor), s.CorridorTiles)
	assert.Len(t, layout.Edges(), s.TreeEdges+s.ExtraEdges)

	rows := strings.Split(strings.TrimSuffix(layout.ASCII(), "\n"), "\n")
	assert.Len(t, rows, layout.Height)
	assert.Len(t, rows[0], layout.Width)
}

func TestLayoutRoute(t *testing.T) {
	layout, err := NewGenerator(config.DefaultGeneration(), 64).Generate()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(layout.Rooms), 2)

	fx, fy := layout.Rooms[0].CenterTile()
	tx, ty := layout.Rooms[len(layout.Rooms)-1].CenterTile()

	path, ok := layout.Route(pathfind.Coord{X: fx, Y: fy}, pathfind.Coord{X: tx, Y: ty})

	require.True(t, ok, "carved corridors connect every room")
	for _, c := range path {
		assert.NotEqual(t, TileVoid, layout.At(c.X, c.Y))
	}

	// Void tiles are walls
	for x := 0; x < layout.Width; x++ {
		if layout.At(x, 0) == TileVoid {
			_, ok := layout.Route(pathfind.Coord{X: fx, Y: fy}, pathfind.Coord{X: x, Y: 0})
			assert.False(t, ok)
			break
		}
	}
}
