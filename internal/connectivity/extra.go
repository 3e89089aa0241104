package connectivity

import (
	"github.com/zyedidia/generic/mapset"

	"dungeon-generator/internal/geometry"
	"dungeon-generator/internal/logger"
	"dungeon-generator/internal/rooms"
)

// ExtraEdges samples triangulation edges outside the spanning tree to add
// cycles to the level graph.
//
// Edges whose segment cuts through a room that does not hold one of their
// endpoints are never kept. Every other non-tree edge is kept with
// probability chance/100; chance is clamped to [0, 100]. Candidates are
// visited in canonical edge order so a fixed rng reproduces the same result.
func ExtraEdges(chance int, tree []geometry.Edge, triangles []geometry.Triangle, roomList []rooms.Room, rng RandSource) []geometry.Edge {
	chance = min(max(chance, 0), 100)
	if chance == 0 {
		return nil
	}

	inTree := mapset.New[geometry.Edge]()
	for _, e := range tree {
		inTree.Put(e)
	}

	index := NewRoomIndex(roomList)

	var extra []geometry.Edge
	colliding := 0
	for _, e := range BuildGraph(triangles).Edges() {
		if inTree.Has(e) {
			continue
		}
		if index.Collides(e) {
			colliding++
			continue
		}
		if chance == 100 || rng.Intn(100) < chance {
			extra = append(extra, e)
		}
	}

	logger.Debug("extra edges sampled",
		"chance", chance,
		"kept", len(extra),
		"colliding", colliding)

	return extra
}
