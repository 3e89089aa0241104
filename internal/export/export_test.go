package export

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeon-generator/internal/config"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/pathfind"
)

func generate(t *testing.T, seed int64) *dungeon.Layout {
	t.Helper()
	layout, err := dungeon.NewGenerator(config.DefaultGeneration(), seed).Generate()
	require.NoError(t, err)
	return layout
}

func TestSimplifyCorridor(t *testing.T) {
	c := func(x, y int) pathfind.Coord { return pathfind.Coord{X: x, Y: y} }

	tests := []struct {
		name string
		path []pathfind.Coord
		want []geometry.Point
	}{
		{"empty", nil, []geometry.Point{}},
		{"single tile", []pathfind.Coord{c(2, 3)}, []geometry.Point{{X: 2.5, Y: 3.5}}},
		{
			"straight run",
			[]pathfind.Coord{c(0, 0), c(1, 0), c(2, 0), c(3, 0)},
			[]geometry.Point{{X: 0.5, Y: 0.5}, {X: 3.5, Y: 0.5}},
		},
		{
			"one turn",
			[]pathfind.Coord{c(0, 0), c(1, 0), c(2, 0), c(2, 1), c(2, 2)},
			[]geometry.Point{{X: 0.5, Y: 0.5}, {X: 2.5, Y: 0.5}, {X: 2.5, Y: 2.5}},
		},
		{
			"staircase",
			[]pathfind.Coord{c(0, 0), c(1, 0), c(1, 1), c(2, 1)},
			[]geometry.Point{{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1.5}, {X: 2.5, Y: 1.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SimplifyCorridor(tt.path, 0))
		})
	}
}

func TestSimplifyCorridorWithTolerance(t *testing.T) {
	path := []pathfind.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}

	assert.Len(t, SimplifyCorridor(path, 1), 2)
}

func TestFeatureCollection(t *testing.T) {
	layout := generate(t, 42)

	data, err := FeatureCollection(layout).MarshalJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	layers := make(map[string]int)
	for _, f := range fc.Features {
		layers[f.Properties.MustString("layer")]++
	}

	assert.Equal(t, len(layout.Rooms), layers[LayerRoom])
	assert.Equal(t, len(layout.Tree), layers[LayerTree])
	assert.Equal(t, len(layout.Extra), layers[LayerExtra])
	assert.Equal(t, len(layout.Corridors), layers[LayerCorridor])
	assert.Greater(t, layers[LayerTriangle], len(layout.Tree))

	for _, f := range fc.Features {
		if f.Properties.MustString("layer") != LayerRoom {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		require.True(t, ok)
		assert.Len(t, poly[0], 5, "closed ring of a rectangle")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	layout := generate(t, 5)
	path := filepath.Join(t.TempDir(), "layout.geojson")

	require.NoError(t, WriteGeoJSON(layout, path))

	var buf bytes.Buffer
	require.NoError(t, EncodeGeoJSON(&buf, layout))
	assert.Contains(t, buf.String(), `"FeatureCollection"`)
}

func TestLines(t *testing.T) {
	e := geometry.NewEdge(geometry.Point{X: 3, Y: 1}, geometry.Point{X: 1, Y: 1})

	lines := Lines([]geometry.Edge{e})

	require.Len(t, lines, 1)
	assert.Equal(t, []geometry.Point{e.A, e.B}, lines[0])
	assert.Empty(t, Lines(nil))
}

func TestEncodeLayoutYAML(t *testing.T) {
	layout := generate(t, 17)

	var buf bytes.Buffer
	require.NoError(t, EncodeLayoutYAML(&buf, layout))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Dungeon layout - seed "))
	assert.Less(t, strings.Index(out, "room_00:"), strings.Index(out, "room_01:"))

	doc, err := DecodeLayoutYAML(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, layout.Seed, doc.Seed)
	assert.Len(t, doc.Rooms, len(layout.Rooms))
	assert.Len(t, doc.Edges, len(layout.Tree)+len(layout.Extra))
	assert.Len(t, doc.Corridors, len(layout.Corridors))
	assert.Len(t, doc.Map, layout.Height)

	// Every room is reachable, so every room lists at least one exit
	for id, room := range doc.Rooms {
		assert.NotEmpty(t, room.Exits, "room %s has no exits", id)
	}
}

func TestWriteLayoutYAML(t *testing.T) {
	layout := generate(t, 3)
	path := filepath.Join(t.TempDir(), "layout.yaml")

	require.NoError(t, WriteLayoutYAML(layout, path))
}

func TestEncodePNG(t *testing.T) {
	layout := generate(t, 9)

	for view := ViewRooms; view <= ViewCorridors; view++ {
		var buf bytes.Buffer
		require.NoError(t, EncodePNG(&buf, layout, 4, view))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, layout.Width*4, img.Bounds().Dx())
		assert.Equal(t, layout.Height*4, img.Bounds().Dy())
	}
}

func TestParseView(t *testing.T) {
	v, err := ParseView(3)
	require.NoError(t, err)
	assert.Equal(t, ViewTreeAndExtra, v)

	_, err = ParseView(5)
	assert.Error(t, err)
	_, err = ParseView(-1)
	assert.Error(t, err)
}

func TestWriteASCII(t *testing.T) {
	layout := generate(t, 21)

	var plain bytes.Buffer
	require.NoError(t, WriteASCII(&plain, layout, false))
	assert.Equal(t, layout.ASCII(), plain.String())

	var colored bytes.Buffer
	require.NoError(t, WriteASCII(&colored, layout, true))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Equal(t, layout.Height, strings.Count(colored.String(), "\n"))
}
