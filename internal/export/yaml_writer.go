package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/geometry"
)

// LayoutYAML is the YAML form of a layout.
type LayoutYAML struct {
	Seed        int64                `yaml:"seed"`
	Attempt     int                  `yaml:"attempt"`
	Width       int                  `yaml:"width"`
	Height      int                  `yaml:"height"`
	Rooms       map[string]*RoomYAML `yaml:"rooms"`
	Edges       []EdgeYAML           `yaml:"edges"`
	Corridors   []CorridorYAML       `yaml:"corridors"`
	Unreachable []EdgeYAML           `yaml:"unreachable,omitempty"`
	Map         []string             `yaml:"map"`
}

// RoomYAML represents a room in YAML format
type RoomYAML struct {
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Center [2]float64 `yaml:"center,flow"`
	Exits  []string   `yaml:"exits,flow,omitempty"`
}

// EdgeYAML is a graph edge between two rooms.
type EdgeYAML struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Kind   string  `yaml:"kind"`
	Length float64 `yaml:"length"`
}

// CorridorYAML is a carved corridor reduced to its turning points.
type CorridorYAML struct {
	From      string       `yaml:"from"`
	To        string       `yaml:"to"`
	Tiles     int          `yaml:"tiles"`
	Waypoints [][2]float64 `yaml:"waypoints,flow"`
}

// RoomID generates a room ID from its index in the layout.
func RoomID(i int) string {
	return fmt.Sprintf("room_%02d", i)
}

// BuildLayoutYAML converts a layout to its YAML form.
func BuildLayoutYAML(layout *dungeon.Layout) *LayoutYAML {
	ids := make(map[geometry.Point]string, len(layout.Rooms))
	doc := &LayoutYAML{
		Seed:      layout.Seed,
		Attempt:   layout.Attempt,
		Width:     layout.Width,
		Height:    layout.Height,
		Rooms:     make(map[string]*RoomYAML, len(layout.Rooms)),
		Edges:     make([]EdgeYAML, 0, len(layout.Tree)+len(layout.Extra)),
		Corridors: make([]CorridorYAML, 0, len(layout.Corridors)),
	}

	for i, room := range layout.Rooms {
		id := RoomID(i)
		center := room.Center()
		ids[center] = id
		doc.Rooms[id] = &RoomYAML{
			X:      room.X,
			Y:      room.Y,
			Width:  room.Width,
			Height: room.Height,
			Center: [2]float64{center.X, center.Y},
		}
	}

	addEdge := func(e geometry.Edge, kind string) EdgeYAML {
		from, to := ids[e.A], ids[e.B]
		if r, ok := doc.Rooms[from]; ok {
			r.Exits = append(r.Exits, to)
		}
		if r, ok := doc.Rooms[to]; ok {
			r.Exits = append(r.Exits, from)
		}
		return EdgeYAML{From: from, To: to, Kind: kind, Length: e.Length()}
	}

	for _, e := range layout.Tree {
		doc.Edges = append(doc.Edges, addEdge(e, LayerTree))
	}
	for _, e := range layout.Extra {
		doc.Edges = append(doc.Edges, addEdge(e, LayerExtra))
	}
	for _, e := range layout.Unreachable {
		doc.Unreachable = append(doc.Unreachable, EdgeYAML{
			From: ids[e.A], To: ids[e.B], Kind: LayerUnreachable, Length: e.Length(),
		})
	}

	for _, c := range layout.Corridors {
		waypoints := SimplifyCorridor(c.Path, 0)
		cy := CorridorYAML{
			From:      ids[c.Edge.A],
			To:        ids[c.Edge.B],
			Tiles:     len(c.Path),
			Waypoints: make([][2]float64, len(waypoints)),
		}
		for i, p := range waypoints {
			cy.Waypoints[i] = [2]float64{p.X, p.Y}
		}
		doc.Corridors = append(doc.Corridors, cy)
	}

	doc.Map = strings.Split(strings.TrimSuffix(layout.ASCII(), "\n"), "\n")

	return doc
}

// orderedLayoutYAML is used for serialization with ordered rooms
type orderedLayoutYAML struct {
	Seed        int64          `yaml:"seed"`
	Attempt     int            `yaml:"attempt"`
	Width       int            `yaml:"width"`
	Height      int            `yaml:"height"`
	Rooms       yaml.Node      `yaml:"rooms"`
	Edges       []EdgeYAML     `yaml:"edges"`
	Corridors   []CorridorYAML `yaml:"corridors"`
	Unreachable []EdgeYAML     `yaml:"unreachable,omitempty"`
	Map         []string       `yaml:"map"`
}

// EncodeLayoutYAML writes the layout to w with a header comment and rooms in
// id order.
func EncodeLayoutYAML(w io.Writer, layout *dungeon.Layout) error {
	doc := BuildLayoutYAML(layout)

	// Write header comment
	fmt.Fprintf(w, "# Dungeon layout - seed %d\n", doc.Seed)
	fmt.Fprintf(w, "# Grid: %dx%d tiles\n", doc.Width, doc.Height)
	fmt.Fprintf(w, "# Rooms: %d, edges: %d\n\n", len(doc.Rooms), len(doc.Edges))

	rooms, err := sortRooms(doc.Rooms, len(layout.Rooms))
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	ordered := &orderedLayoutYAML{
		Seed:        doc.Seed,
		Attempt:     doc.Attempt,
		Width:       doc.Width,
		Height:      doc.Height,
		Rooms:       rooms,
		Edges:       doc.Edges,
		Corridors:   doc.Corridors,
		Unreachable: doc.Unreachable,
		Map:         doc.Map,
	}

	if err := encoder.Encode(ordered); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteLayoutYAML writes the layout as YAML to path.
func WriteLayoutYAML(layout *dungeon.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return EncodeLayoutYAML(f, layout)
}

// DecodeLayoutYAML parses a document written by EncodeLayoutYAML.
func DecodeLayoutYAML(r io.Reader) (*LayoutYAML, error) {
	var doc LayoutYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return &doc, nil
}

// sortRooms returns rooms as an ordered YAML mapping node
func sortRooms(rooms map[string]*RoomYAML, count int) (yaml.Node, error) {
	node := yaml.Node{
		Kind: yaml.MappingNode,
	}

	for i := 0; i < count; i++ {
		id := RoomID(i)
		room, ok := rooms[id]
		if !ok {
			continue
		}

		key := yaml.Node{Kind: yaml.ScalarNode, Value: id}
		var value yaml.Node
		if err := value.Encode(room); err != nil {
			return node, fmt.Errorf("failed to encode room %s: %w", id, err)
		}
		node.Content = append(node.Content, &key, &value)
	}

	return node, nil
}
