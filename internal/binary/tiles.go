package binary

import (
	"fmt"
	"io"

	"github.com/dyuri/mulgen/internal/model"
)

// FacetEncoder writes the map file and the statics index of one facet.
type FacetEncoder struct {
	Geometry     model.Geometry
	Order        model.BlockOrder
	Fill         model.TileCell // Written into every cell
	AbsentLength int32          // Length field of each staidx record

	// Mark, if set, may modify a block after it is filled and before it is
	// written. Tests use it to stamp the block index into the map.
	Mark func(i int, pos model.BlockPos, b *model.LandBlock)
}

// FacetStats reports what Encode wrote.
type FacetStats struct {
	Blocks     int
	MapBytes   int64
	IndexBytes int64
}

// Encode writes block i to mapW and staidx record i to idxW in a single
// pass over the block sequence, so position i in both files always
// describes the same block.
func (e *FacetEncoder) Encode(mapW, idxW io.Writer) (FacetStats, error) {
	var stats FacetStats
	if e.Geometry.BlockCount() == 0 {
		return stats, fmt.Errorf("empty block grid %dx%d", e.Geometry.Columns, e.Geometry.Rows)
	}

	mw := NewWriter(mapW)
	iw := NewWriter(idxW)
	template := model.NewLandBlock(e.Fill)
	absent := model.AbsentRecord(e.AbsentLength)

	for i, pos := range e.Geometry.Blocks(e.Order) {
		block := &template
		if e.Mark != nil {
			b := template
			e.Mark(i, pos, &b)
			block = &b
		}

		if err := mw.WriteLandBlock(block); err != nil {
			return withSizes(stats, mw, iw), fmt.Errorf("write map block %d (%d,%d): %w", i, pos.Row, pos.Column, err)
		}
		if err := iw.WriteIndexRecord(absent); err != nil {
			return withSizes(stats, mw, iw), fmt.Errorf("write staidx record %d: %w", i, err)
		}
		stats.Blocks++
	}

	if err := mw.Flush(); err != nil {
		return withSizes(stats, mw, iw), fmt.Errorf("flush map: %w", err)
	}
	if err := iw.Flush(); err != nil {
		return withSizes(stats, mw, iw), fmt.Errorf("flush staidx: %w", err)
	}

	return withSizes(stats, mw, iw), nil
}

func withSizes(s FacetStats, mw, iw *Writer) FacetStats {
	s.MapBytes = mw.Written()
	s.IndexBytes = iw.Written()
	return s
}
