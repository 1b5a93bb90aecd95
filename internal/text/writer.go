// Package text renders map blocks as a human-readable grid.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyuri/mulgen/internal/model"
)

// Writer handles writing map blocks as text.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new block text writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSummary writes the comment header describing the map file.
func (w *Writer) WriteSummary(path string, size int64, g model.Geometry, order model.BlockOrder) error {
	// Format:
	// # map0.mul: 392 bytes
	// # blocks: 2 x 1 (2), row-major
	// # cells: 16 x 8
	_, err := fmt.Fprintf(w.w, "# %s: %d bytes\n# blocks: %d x %d (%d), %s\n# cells: %d x %d\n\n",
		path, size, g.Columns, g.Rows, g.BlockCount(), order, g.Width, g.Height)
	return err
}

// WriteBlock writes one block as 8 lines of tile:alt cells.
func (w *Writer) WriteBlock(pos model.BlockPos, b *model.LandBlock) error {
	// Format:
	// # Block (x,y), 8x8 cells, format tile:alt
	// 0003:+5 0003:+5 ...
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Block (%d,%d), %dx%d cells, format tile:alt\n",
		pos.Column, pos.Row, model.BlockEdge, model.BlockEdge)
	for y := 0; y < model.BlockEdge; y++ {
		for x := 0; x < model.BlockEdge; x++ {
			c := b.Cells[y*model.BlockEdge+x]
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%04d:%+d", c.LandID, c.Elevation)
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w.w, sb.String())
	return err
}
