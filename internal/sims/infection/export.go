package infection

import (
	"bufio"
	"io"

	"goi/internal/core"
)

// WriteWorld renders the grid as ASCII, one row per line: '.' for dead cells
// and the faction digit otherwise. It is the export collaborator the watch
// mode and observer hooks use; it never touches simulation state.
func WriteWorld(w io.Writer, g *core.FactionGrid) error {
	bw := bufio.NewWriter(w)
	cells := g.Cells()
	for row := 0; row < g.Rows; row++ {
		base := row * g.Cols
		for col := 0; col < g.Cols; col++ {
			if err := bw.WriteByte(glyphFor(cells[base+col])); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
