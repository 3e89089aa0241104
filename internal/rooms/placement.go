package rooms

import (
	"fmt"

	"dungeon-generator/internal/logger"
)

// attemptsPerRoom caps placement tries so a crowded grid cannot loop forever.
const attemptsPerRoom = 50

// Rand is the random source used for placement. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlacementConfig controls random room placement.
type PlacementConfig struct {
	GridWidth  int // dungeon width in tiles
	GridHeight int // dungeon height in tiles
	MinSize    int // minimum room side in tiles
	MaxSize    int // maximum room side in tiles
	MaxRooms   int // number of rooms to try to place
	Margin     int // minimum empty tiles around each room
}

// Validate checks that a room of MaxSize fits inside the grid with margins.
func (c PlacementConfig) Validate() error {
	if c.MinSize < 1 {
		return fmt.Errorf("min room size must be >= 1, got %d", c.MinSize)
	}
	if c.MaxSize < c.MinSize {
		return fmt.Errorf("max room size %d is smaller than min room size %d", c.MaxSize, c.MinSize)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must be >= 0, got %d", c.Margin)
	}
	if c.MaxRooms < 0 {
		return fmt.Errorf("max rooms must be >= 0, got %d", c.MaxRooms)
	}
	if c.GridWidth < c.MaxSize+2*c.Margin || c.GridHeight < c.MaxSize+2*c.Margin {
		return fmt.Errorf("grid %dx%d is too small for rooms up to %d tiles with margin %d",
			c.GridWidth, c.GridHeight, c.MaxSize, c.Margin)
	}
	return nil
}

// Place randomly places up to MaxRooms non-overlapping rooms. A candidate is
// rejected when its margin-inflated area overlaps a room already placed.
func Place(cfg PlacementConfig, rng Rand) ([]Room, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid placement config: %w", err)
	}

	rooms := make([]Room, 0, cfg.MaxRooms)
	maxTries := cfg.MaxRooms * attemptsPerRoom

	for tries := 0; len(rooms) < cfg.MaxRooms && tries < maxTries; tries++ {
		width := randRange(rng, cfg.MinSize, cfg.MaxSize)
		height := randRange(rng, cfg.MinSize, cfg.MaxSize)

		candidate := Room{
			X:      randRange(rng, cfg.Margin, cfg.GridWidth-width-cfg.Margin),
			Y:      randRange(rng, cfg.Margin, cfg.GridHeight-height-cfg.Margin),
			Width:  width,
			Height: height,
		}

		overlaps := false
		for _, existing := range rooms {
			if candidate.Overlaps(existing, cfg.Margin) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			rooms = append(rooms, candidate)
		}
	}

	if len(rooms) < cfg.MaxRooms {
		logger.Debug("room placement fell short",
			"placed", len(rooms),
			"requested", cfg.MaxRooms)
	}
	return rooms, nil
}

// randRange returns a uniform integer in [lo, hi].
func randRange(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
