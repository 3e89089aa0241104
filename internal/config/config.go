// Package config loads generator, renderer, server and logging settings from
// YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dungeon-generator/internal/logger"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration file.
type Config struct {
	Generation Generation    `yaml:"generation"`
	Render     Render        `yaml:"render"`
	Server     Server        `yaml:"server"`
	Logging    logger.Config `yaml:"logging"`
}

// Generation holds the dungeon generation parameters.
type Generation struct {
	// GridWidth and GridHeight are the dungeon size in tiles.
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`

	// MinRoomSize and MaxRoomSize bound room sides, inclusive.
	MinRoomSize int `yaml:"min_room_size"`
	MaxRoomSize int `yaml:"max_room_size"`

	// MaxRooms is the room count placement aims for.
	MaxRooms int `yaml:"max_rooms"`

	// Margin is the minimum gap in tiles between rooms and the grid border.
	Margin int `yaml:"margin"`

	// ExtraEdgeChance is the percent chance each non-tree edge is kept.
	ExtraEdgeChance int `yaml:"extra_edge_chance"`

	// SuperTriangleScale multiplies the point spread when sizing the
	// triangulation's enclosing triangle.
	SuperTriangleScale float64 `yaml:"super_triangle_scale"`

	// MaxAttempts caps how many layouts are tried before giving up.
	MaxAttempts int `yaml:"max_attempts"`

	// MinRooms rejects layouts with fewer placed rooms.
	MinRooms int `yaml:"min_rooms"`

	// MaxUnreachable rejects layouts with more corridors that found no path.
	MaxUnreachable int `yaml:"max_unreachable"`
}

// Render holds image output settings.
type Render struct {
	// TileSize is the pixel size of one tile.
	TileSize int `yaml:"tile_size"`

	// View selects what the PNG shows: 0 rooms, 1 triangulation, 2 tree,
	// 3 tree and extra edges, 4 corridors.
	View int `yaml:"view"`
}

// Server holds dungeond settings.
type Server struct {
	Addr string `yaml:"addr"`

	// ArchivePath is the sqlite file generated layouts are stored in.
	// Empty disables archiving.
	ArchivePath string `yaml:"archive_path"`
}

// DefaultConfig returns a Config matching the classic 60x40 dungeon.
func DefaultConfig() *Config {
	return &Config{
		Generation: DefaultGeneration(),
		Render: Render{
			TileSize: 16,
			View:     4,
		},
		Server: Server{
			Addr:        ":8080",
			ArchivePath: "",
		},
		Logging: logger.DefaultConfig(),
	}
}

// DefaultGeneration returns the default generation parameters.
func DefaultGeneration() Generation {
	return Generation{
		GridWidth:          60,
		GridHeight:         40,
		MinRoomSize:        2,
		MaxRoomSize:        10,
		MaxRooms:           12,
		Margin:             2,
		ExtraEdgeChance:    15,
		SuperTriangleScale: 20,
		MaxAttempts:        10,
		MinRooms:           3,
		MaxUnreachable:     0,
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, the defaults are returned. If it can't be parsed,
// the defaults are returned together with the error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if c.Render.TileSize <= 0 {
		return fmt.Errorf("%w: render.tile_size must be positive, got %d", ErrInvalidConfig, c.Render.TileSize)
	}
	if c.Render.View < 0 || c.Render.View > 4 {
		return fmt.Errorf("%w: render.view must be between 0 and 4, got %d", ErrInvalidConfig, c.Render.View)
	}
	return nil
}

// Validate checks the generation parameters.
func (g Generation) Validate() error {
	switch {
	case g.GridWidth <= 0 || g.GridHeight <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidConfig, g.GridWidth, g.GridHeight)
	case g.MinRoomSize <= 0:
		return fmt.Errorf("%w: min_room_size must be positive, got %d", ErrInvalidConfig, g.MinRoomSize)
	case g.MaxRoomSize < g.MinRoomSize:
		return fmt.Errorf("%w: max_room_size %d is below min_room_size %d", ErrInvalidConfig, g.MaxRoomSize, g.MinRoomSize)
	case g.MaxRooms <= 0:
		return fmt.Errorf("%w: max_rooms must be positive, got %d", ErrInvalidConfig, g.MaxRooms)
	case g.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative, got %d", ErrInvalidConfig, g.Margin)
	case g.MaxRoomSize+2*g.Margin > min(g.GridWidth, g.GridHeight):
		return fmt.Errorf("%w: rooms up to %d tiles with margin %d do not fit a %dx%d grid",
			ErrInvalidConfig, g.MaxRoomSize, g.Margin, g.GridWidth, g.GridHeight)
	case g.ExtraEdgeChance < 0 || g.ExtraEdgeChance > 100:
		return fmt.Errorf("%w: extra_edge_chance must be between 0 and 100, got %d", ErrInvalidConfig, g.ExtraEdgeChance)
	case g.MaxAttempts <= 0:
		return fmt.Errorf("%w: max_attempts must be positive, got %d", ErrInvalidConfig, g.MaxAttempts)
	case g.MinRooms < 0 || g.MinRooms > g.MaxRooms:
		return fmt.Errorf("%w: min_rooms must be between 0 and max_rooms, got %d", ErrInvalidConfig, g.MinRooms)
	case g.MaxUnreachable < 0:
		return fmt.Errorf("%w: max_unreachable must not be negative, got %d", ErrInvalidConfig, g.MaxUnreachable)
	}
	return nil
}
