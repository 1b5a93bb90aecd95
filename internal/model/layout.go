package model

import (
	"fmt"
	"iter"
)

// Fixed sizes of the classic map format.
const (
	// BlockEdge is the number of tiles along one side of a block.
	BlockEdge     = 8
	CellsPerBlock = BlockEdge * BlockEdge

	// A land block is a reserved int32 header followed by 64 cells of
	// uint16 land id + int8 elevation, row-major inside the block.
	BlockHeaderSize = 4
	TileCellSize    = 3
	LandBlockSize   = BlockHeaderSize + CellsPerBlock*TileCellSize

	// IndexRecordSize is offset, length and extra, int32 each.
	IndexRecordSize = 12

	MaxFacet  = 255
	MaxLandID = 0x3FFF
)

// Geometry is the block grid of one facet.
type Geometry struct {
	Facet   int // Facet id, selects map{N}.mul etc.
	Width   int // Width in tiles
	Height  int // Height in tiles
	Columns int // Blocks across (Width / 8)
	Rows    int // Blocks down (Height / 8)
}

// NewGeometry validates tile dimensions and derives the block grid.
// Both dimensions must be positive multiples of BlockEdge.
func NewGeometry(facet, width, height int) (Geometry, error) {
	if err := checkDimension("map width", width); err != nil {
		return Geometry{}, err
	}
	if err := checkDimension("map height", height); err != nil {
		return Geometry{}, err
	}
	if facet < 0 || facet > MaxFacet {
		return Geometry{}, NewError(ErrInvalidParameter, "",
			fmt.Errorf("facet must be between 0 and %d, got %d", MaxFacet, facet))
	}

	return Geometry{
		Facet:   facet,
		Width:   width,
		Height:  height,
		Columns: width / BlockEdge,
		Rows:    height / BlockEdge,
	}, nil
}

func checkDimension(name string, v int) error {
	if v <= 0 {
		return NewError(ErrInvalidDimension, "", fmt.Errorf("%s must be > 0, got %d", name, v))
	}
	if v%BlockEdge != 0 {
		return NewError(ErrInvalidDimension, "",
			fmt.Errorf("%s must be a multiple of %d, got %d", name, BlockEdge, v))
	}
	return nil
}

// BlockCount returns the number of 8x8 blocks in the grid.
func (g Geometry) BlockCount() int {
	return g.Columns * g.Rows
}

// MapSize returns the exact size of the map file in bytes.
func (g Geometry) MapSize() int64 {
	return int64(g.BlockCount()) * LandBlockSize
}

// StaticsIndexSize returns the exact size of the statics index in bytes.
func (g Geometry) StaticsIndexSize() int64 {
	return int64(g.BlockCount()) * IndexRecordSize
}

// BlockPos addresses a block in the grid.
type BlockPos struct {
	Row    int
	Column int
}

// BlockOrder defines how blocks are laid out in the map file.
type BlockOrder int

const (
	RowMajor    BlockOrder = iota // All blocks of row 0 left to right, then row 1, ...
	ColumnMajor                   // All blocks of column 0 top to bottom, then column 1, ...
)

func (o BlockOrder) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return fmt.Sprintf("BlockOrder(%d)", int(o))
	}
}

// Blocks yields every block position with its file index, in the given order.
// The map file and the statics index are both written from this sequence.
func (g Geometry) Blocks(order BlockOrder) iter.Seq2[int, BlockPos] {
	return func(yield func(int, BlockPos) bool) {
		i := 0
		if order == ColumnMajor {
			for col := 0; col < g.Columns; col++ {
				for row := 0; row < g.Rows; row++ {
					if !yield(i, BlockPos{Row: row, Column: col}) {
						return
					}
					i++
				}
			}
			return
		}
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Columns; col++ {
				if !yield(i, BlockPos{Row: row, Column: col}) {
					return
				}
				i++
			}
		}
	}
}

// IndexOf returns the file index of pos under the given order.
func (g Geometry) IndexOf(pos BlockPos, order BlockOrder) int {
	if order == ColumnMajor {
		return pos.Column*g.Rows + pos.Row
	}
	return pos.Row*g.Columns + pos.Column
}

// TileCell is one map tile.
type TileCell struct {
	LandID    uint16
	Elevation int8
}

// LandBlock is an 8x8 patch of tiles with its reserved header.
type LandBlock struct {
	Header uint32
	Cells  [CellsPerBlock]TileCell
}

// NewLandBlock returns a block with every cell set to fill.
func NewLandBlock(fill TileCell) LandBlock {
	var b LandBlock
	for i := range b.Cells {
		b.Cells[i] = fill
	}
	return b
}

// IndexRecord is a 12-byte lookup entry in an index file.
type IndexRecord struct {
	Offset int32
	Length int32
	Extra  int32
}

// AbsentOffset marks an index record that points at nothing.
const AbsentOffset int32 = -1

// AbsentRecord returns the "nothing here" sentinel with the given length
// (0 or -1 depending on what the consuming loader expects).
func AbsentRecord(length int32) IndexRecord {
	return IndexRecord{Offset: AbsentOffset, Length: length}
}

// IsAbsent reports whether r is an absent sentinel.
func (r IndexRecord) IsAbsent() bool {
	return r.Offset == AbsentOffset && (r.Length == 0 || r.Length == -1) && r.Extra == 0
}
