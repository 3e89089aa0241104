package export

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"dungeon-generator/internal/connectivity"
	"dungeon-generator/internal/dungeon"
	"dungeon-generator/internal/geometry"
)

// View selects what a rendered image shows.
type View int

const (
	ViewRooms View = iota
	ViewTriangulation
	ViewTree
	ViewTreeAndExtra
	ViewCorridors
)

// ParseView converts a view number to a View.
func ParseView(n int) (View, error) {
	if n < int(ViewRooms) || n > int(ViewCorridors) {
		return ViewRooms, fmt.Errorf("unknown view %d, expected 0-4", n)
	}
	return View(n), nil
}

var (
	backgroundColor = [3]float64{37.0 / 255, 19.0 / 255, 26.0 / 255}
	roomColor       = [3]float64{0.55, 0.45, 0.35}
	corridorColor   = [3]float64{0.35, 0.30, 0.28}
	edgeColor       = [3]float64{57.0 / 255, 1, 20.0 / 255}
	extraColor      = [3]float64{1, 0.75, 0.1}
)

// Render draws the layout into a new context, tileSize pixels per tile.
//
// Every view draws the rooms. Graph views overlay their edges between room
// centers; the corridor view fills carved tiles instead.
func Render(layout *dungeon.Layout, tileSize int, view View) *gg.Context {
	if tileSize <= 0 {
		tileSize = 1
	}
	scale := float64(tileSize)
	c := gg.NewContext(layout.Width*tileSize, layout.Height*tileSize)

	setRGB(c, backgroundColor)
	c.DrawRectangle(0, 0, float64(c.Width()), float64(c.Height()))
	c.Fill()

	if view == ViewCorridors {
		setRGB(c, corridorColor)
		fillTiles(c, layout, dungeon.TileCorridor, scale)
	}

	setRGB(c, roomColor)
	fillTiles(c, layout, dungeon.TileRoom, scale)

	c.SetLineWidth(2)
	switch view {
	case ViewTriangulation:
		setRGB(c, edgeColor)
		strokeEdges(c, connectivity.BuildGraph(layout.Triangles).Edges(), scale)
	case ViewTree:
		setRGB(c, edgeColor)
		strokeEdges(c, layout.Tree, scale)
	case ViewTreeAndExtra:
		setRGB(c, edgeColor)
		strokeEdges(c, layout.Tree, scale)
		setRGB(c, extraColor)
		strokeEdges(c, layout.Extra, scale)
	}

	return c
}

// EncodePNG renders the layout and writes it to w as PNG.
func EncodePNG(w io.Writer, layout *dungeon.Layout, tileSize int, view View) error {
	if err := Render(layout, tileSize, view).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG renders the layout to a PNG file.
func SavePNG(layout *dungeon.Layout, tileSize int, view View, path string) error {
	if err := Render(layout, tileSize, view).SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return nil
}

func setRGB(c *gg.Context, rgb [3]float64) {
	c.SetRGB(rgb[0], rgb[1], rgb[2])
}

func fillTiles(c *gg.Context, layout *dungeon.Layout, kind dungeon.TileKind, scale float64) {
	for x := 0; x < layout.Width; x++ {
		for y := 0; y < layout.Height; y++ {
			if layout.At(x, y) == kind {
				c.DrawRectangle(float64(x)*scale, float64(y)*scale, scale, scale)
			}
		}
	}
	c.Fill()
}

func strokeEdges(c *gg.Context, edges []geometry.Edge, scale float64) {
	for _, e := range edges {
		c.DrawLine(e.A.X*scale, e.A.Y*scale, e.B.X*scale, e.B.Y*scale)
	}
	c.Stroke()
}
