package text

import (
	"fmt"

	"github.com/dyuri/mulgen/internal/binary"
	"github.com/dyuri/mulgen/internal/model"
)

// DumpOptions selects what Dump renders.
type DumpOptions struct {
	Name      string // Shown in the summary line
	Order     model.BlockOrder
	AllBlocks bool // Otherwise only block (0,0)
}

// Dump renders blocks of a map file read through r. The file size must
// match the geometry exactly.
func (w *Writer) Dump(r *binary.Reader, g model.Geometry, opts DumpOptions) error {
	if r.Size() != g.MapSize() {
		return fmt.Errorf("map size %d bytes does not match %dx%d tiles (want %d bytes)",
			r.Size(), g.Width, g.Height, g.MapSize())
	}

	if err := w.WriteSummary(opts.Name, r.Size(), g, opts.Order); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	for i, pos := range g.Blocks(opts.Order) {
		b, err := r.ReadLandBlock(i)
		if err != nil {
			return fmt.Errorf("read block %d: %w", i, err)
		}
		if err := w.WriteBlock(pos, &b); err != nil {
			return fmt.Errorf("write block %d: %w", i, err)
		}
		if !opts.AllBlocks {
			break
		}
	}

	return nil
}
