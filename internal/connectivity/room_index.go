package connectivity

import (
	"github.com/dhconnelly/rtreego"

	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/rooms"
)

// queryPad widens segment query boxes so rooms that only touch a segment are
// still returned as candidates; rtreego treats touching rectangles as disjoint.
const queryPad = 1e-6

// roomEntry wraps a room for R-tree storage
type roomEntry struct {
	room rooms.Room
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *roomEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// RoomIndex answers "which rooms does this corridor segment cut through".
type RoomIndex struct {
	tree *rtreego.Rtree
}

// NewRoomIndex builds an R-tree over the room rectangles. Rooms with a
// non-positive side are skipped.
func NewRoomIndex(list []rooms.Room) *RoomIndex {
	tree := rtreego.NewTree(2, 25, 50)

	for _, room := range list {
		bbox, err := rtreego.NewRect(
			rtreego.Point{float64(room.X), float64(room.Y)},
			[]float64{float64(room.Width), float64(room.Height)},
		)
		if err != nil {
			continue
		}
		tree.Insert(&roomEntry{room: room, bbox: bbox})
	}

	return &RoomIndex{tree: tree}
}

// Size returns the number of indexed rooms.
func (ri *RoomIndex) Size() int {
	return ri.tree.Size()
}

// Candidates returns the rooms whose bounding boxes meet the bounding box of
// the segment ab.
func (ri *RoomIndex) Candidates(a, b geometry.Point) []rooms.Room {
	minX, maxX := min(a.X, b.X)-queryPad, max(a.X, b.X)+queryPad
	minY, maxY := min(a.Y, b.Y)-queryPad, max(a.Y, b.Y)+queryPad

	bbox, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{maxX - minX, maxY - minY},
	)
	if err != nil {
		return nil
	}

	results := ri.tree.SearchIntersect(bbox)
	out := make([]rooms.Room, 0, len(results))
	for _, item := range results {
		out = append(out, item.(*roomEntry).room)
	}
	return out
}

// Collides reports whether edge e crosses any room other than the rooms that
// contain one of its endpoints.
func (ri *RoomIndex) Collides(e geometry.Edge) bool {
	for _, room := range ri.Candidates(e.A, e.B) {
		if room.Contains(e.A) || room.Contains(e.B) {
			continue
		}
		if room.Rect().IntersectsSegment(e.A, e.B) {
			return true
		}
	}
	return false
}
