// Package export writes generated layouts as GeoJSON, YAML, PNG and text.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"dungeon-generator/internal/connectivity"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/geometry"
)

// Feature layers. Every feature carries one of these in its "layer" property.
const (
	LayerRoom        = "room"
	LayerTriangle    = "triangulation"
	LayerTree        = "tree"
	LayerExtra       = "extra"
	LayerCorridor    = "corridor"
	LayerUnreachable = "unreachable"
)

// FeatureCollection converts a layout to GeoJSON in tile coordinates.
//
// Rooms become polygons, graph edges become two-point line strings (edges
// shared by two triangles appear once) and corridors become line strings
// through the tile centers of their paths, simplified to their turning points.
func FeatureCollection(layout *dungeon.Layout) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, room := range layout.Rooms {
		f := geojson.NewFeature(room.Rect().Bound().ToPolygon())
		f.Properties["layer"] = LayerRoom
		f.Properties["id"] = RoomID(i)
		f.Properties["width"] = room.Width
		f.Properties["height"] = room.Height
		fc.Append(f)
	}

	for _, e := range connectivity.BuildGraph(layout.Triangles).Edges() {
		fc.Append(edgeFeature(e, LayerTriangle))
	}
	for _, e := range layout.Tree {
		fc.Append(edgeFeature(e, LayerTree))
	}
	for _, e := range layout.Extra {
		fc.Append(edgeFeature(e, LayerExtra))
	}
	for _, e := range layout.Unreachable {
		fc.Append(edgeFeature(e, LayerUnreachable))
	}

	for _, c := range layout.Corridors {
		f := geojson.NewFeature(lineString(SimplifyCorridor(c.Path, 0)))
		f.Properties["layer"] = LayerCorridor
		f.Properties["tiles"] = len(c.Path)
		f.Properties["extra"] = c.Extra
		fc.Append(f)
	}

	return fc
}

func edgeFeature(e geometry.Edge, layer string) *geojson.Feature {
	f := geojson.NewFeature(orb.LineString{e.A.Orb(), e.B.Orb()})
	f.Properties["layer"] = layer
	f.Properties["length"] = e.Length()
	return f
}

func lineString(points []geometry.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.Orb()
	}
	return ls
}

// EncodeGeoJSON writes the layout's feature collection to w.
func EncodeGeoJSON(w io.Writer, layout *dungeon.Layout) error {
	data, err := FeatureCollection(layout).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteGeoJSON writes the layout's feature collection to path.
func WriteGeoJSON(layout *dungeon.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return EncodeGeoJSON(f, layout)
}

// Lines returns edges as two-point line segments, for clients that draw the
// level graph without a GeoJSON parser.
func Lines(edges []geometry.Edge) [][]geometry.Point {
	lines := make([][]geometry.Point, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, []geometry.Point{e.A, e.B})
	}
	return lines
}
