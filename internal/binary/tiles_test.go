package binary

import (
	"bytes"
	"io"
	"testing"

	"github.com/dyuri/mulgen/internal/model"
)

func TestFacetEncoderSizes(t *testing.T) {
	dims := [][2]int{{8, 8}, {16, 8}, {64, 32}, {256, 256}}

	for _, d := range dims {
		g, err := model.NewGeometry(0, d[0], d[1])
		if err != nil {
			t.Fatalf("NewGeometry(%v) failed: %v", d, err)
		}

		var mapBuf, idxBuf bytes.Buffer
		enc := &FacetEncoder{Geometry: g, Fill: model.TileCell{LandID: 3, Elevation: 5}}
		stats, err := enc.Encode(&mapBuf, &idxBuf)
		if err != nil {
			t.Fatalf("Encode(%v) failed: %v", d, err)
		}

		want := (d[0] / 8) * (d[1] / 8)
		if stats.Blocks != want {
			t.Errorf("%v: Blocks = %d, want %d", d, stats.Blocks, want)
		}
		if int64(mapBuf.Len()) != int64(want)*196 || stats.MapBytes != int64(want)*196 {
			t.Errorf("%v: map size = %d (reported %d), want %d", d, mapBuf.Len(), stats.MapBytes, want*196)
		}
		if int64(idxBuf.Len()) != int64(want)*12 || stats.IndexBytes != int64(want)*12 {
			t.Errorf("%v: staidx size = %d (reported %d), want %d", d, idxBuf.Len(), stats.IndexBytes, want*12)
		}
	}
}

// TestFacetEncoderSmallMap decodes the 16x8 map cell by cell
func TestFacetEncoderSmallMap(t *testing.T) {
	g, _ := model.NewGeometry(0, 16, 8)
	fill := model.TileCell{LandID: 3, Elevation: 5}

	var mapBuf, idxBuf bytes.Buffer
	enc := &FacetEncoder{Geometry: g, Fill: fill}
	if _, err := enc.Encode(&mapBuf, &idxBuf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if mapBuf.Len() != 392 {
		t.Fatalf("map size = %d, want 392", mapBuf.Len())
	}
	if idxBuf.Len() != 24 {
		t.Fatalf("staidx size = %d, want 24", idxBuf.Len())
	}

	mr := NewReader(bytes.NewReader(mapBuf.Bytes()), int64(mapBuf.Len()))
	for i := 0; i < 2; i++ {
		b, err := mr.ReadLandBlock(i)
		if err != nil {
			t.Fatalf("ReadLandBlock(%d) failed: %v", i, err)
		}
		if b.Header != 0 {
			t.Errorf("block %d header = %d, want 0", i, b.Header)
		}
		for c, cell := range b.Cells {
			if cell != fill {
				t.Fatalf("block %d cell %d = %+v, want %+v", i, c, cell, fill)
			}
		}
	}

	ir := NewReader(bytes.NewReader(idxBuf.Bytes()), int64(idxBuf.Len()))
	for i := 0; i < 2; i++ {
		rec, _ := ir.ReadIndexRecord(i)
		if !rec.IsAbsent() || rec.Length != 0 {
			t.Errorf("staidx record %d = %+v, want {-1 0 0}", i, rec)
		}
	}
}

// TestFacetEncoderMarkerAlignment stamps every block with its index and
// checks that map block i and staidx record i describe the same position.
func TestFacetEncoderMarkerAlignment(t *testing.T) {
	for _, order := range []model.BlockOrder{model.RowMajor, model.ColumnMajor} {
		t.Run(order.String(), func(t *testing.T) {
			g, _ := model.NewGeometry(0, 40, 24) // 5 x 3 blocks

			positions := make(map[int]model.BlockPos)
			enc := &FacetEncoder{
				Geometry:     g,
				Order:        order,
				AbsentLength: -1,
				Mark: func(i int, pos model.BlockPos, b *model.LandBlock) {
					positions[i] = pos
					b.Cells[0].LandID = uint16(i + 1)
				},
			}

			var mapBuf, idxBuf bytes.Buffer
			if _, err := enc.Encode(&mapBuf, &idxBuf); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			mr := NewReader(bytes.NewReader(mapBuf.Bytes()), int64(mapBuf.Len()))
			ir := NewReader(bytes.NewReader(idxBuf.Bytes()), int64(idxBuf.Len()))
			if mr.LandBlocks() != ir.IndexRecords() {
				t.Fatalf("map has %d blocks, staidx has %d records", mr.LandBlocks(), ir.IndexRecords())
			}

			for i := 0; i < ir.IndexRecords(); i++ {
				rec, err := ir.ReadIndexRecord(i)
				if err != nil {
					t.Fatalf("ReadIndexRecord(%d) failed: %v", i, err)
				}
				if rec != model.AbsentRecord(-1) {
					t.Errorf("staidx record %d = %+v", i, rec)
				}

				b, _ := mr.ReadLandBlock(i)
				if int(b.Cells[0].LandID) != i+1 {
					t.Errorf("map block %d carries marker %d, want %d", i, b.Cells[0].LandID, i+1)
				}
				if got := g.IndexOf(positions[i], order); got != i {
					t.Errorf("block %d at %+v maps back to index %d", i, positions[i], got)
				}
				if b.Cells[1].LandID != 0 {
					t.Errorf("block %d cell 1 = %d, want unmarked 0", i, b.Cells[1].LandID)
				}
			}
		})
	}
}

func TestFacetEncoderEmptyGrid(t *testing.T) {
	enc := &FacetEncoder{Geometry: model.Geometry{}}
	if _, err := enc.Encode(io.Discard, io.Discard); err == nil {
		t.Fatal("Encode of an empty grid succeeded")
	}
}

func TestFacetEncoderWriteError(t *testing.T) {
	g, _ := model.NewGeometry(0, 512, 512)
	enc := &FacetEncoder{Geometry: g}
	if _, err := enc.Encode(failWriter{}, io.Discard); err == nil {
		t.Fatal("Encode succeeded on a failing map writer")
	}
}
