package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"dungeon-generator/internal/dungeon"
)

// WriteASCII writes the layout's tile map to w. With color set, rooms and
// corridors are wrapped in ANSI colors for terminal output.
func WriteASCII(w io.Writer, layout *dungeon.Layout, color bool) error {
	if !color {
		_, err := io.WriteString(w, layout.ASCII())
		return err
	}

	bw := bufio.NewWriter(w)
	for _, row := range strings.Split(strings.TrimSuffix(layout.ASCII(), "\n"), "\n") {
		for _, r := range row {
			switch string(r) {
			case dungeon.TileRoom.String():
				bw.WriteString(aurora.Cyan(string(r)).String())
			case dungeon.TileCorridor.String():
				bw.WriteString(aurora.Yellow(string(r)).String())
			default:
				bw.WriteRune(r)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
