package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dyuri/mulgen/internal/model"
)

// Reader decodes records from a generated file.
type Reader struct {
	r      io.ReaderAt
	size   int64
	endian binary.ByteOrder
}

// NewReader creates a new reader over a file of the given size.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{
		r:      r,
		size:   size,
		endian: binary.LittleEndian,
	}
}

// Size returns the size passed to NewReader.
func (r *Reader) Size() int64 {
	return r.size
}

// IndexRecords returns the number of whole index records in the file.
func (r *Reader) IndexRecords() int {
	return int(r.size / model.IndexRecordSize)
}

// LandBlocks returns the number of whole land blocks in the file.
func (r *Reader) LandBlocks() int {
	return int(r.size / model.LandBlockSize)
}

func (r *Reader) readAt(buf []byte, off int64) error {
	if off < 0 || off+int64(len(buf)) > r.size {
		return fmt.Errorf("read %d bytes at 0x%x: beyond end of file (size %d)", len(buf), off, r.size)
	}
	n, err := r.r.ReadAt(buf, off)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return fmt.Errorf("read at 0x%x: %w", off, err)
	}
	return nil
}

// ReadIndexRecord reads the i-th index record.
func (r *Reader) ReadIndexRecord(i int) (model.IndexRecord, error) {
	var buf [model.IndexRecordSize]byte
	if err := r.readAt(buf[:], int64(i)*model.IndexRecordSize); err != nil {
		return model.IndexRecord{}, err
	}

	return model.IndexRecord{
		Offset: int32(r.endian.Uint32(buf[0:4])),
		Length: int32(r.endian.Uint32(buf[4:8])),
		Extra:  int32(r.endian.Uint32(buf[8:12])),
	}, nil
}

// ReadLandBlock reads the i-th land block.
func (r *Reader) ReadLandBlock(i int) (model.LandBlock, error) {
	var buf [model.LandBlockSize]byte
	if err := r.readAt(buf[:], int64(i)*model.LandBlockSize); err != nil {
		return model.LandBlock{}, err
	}

	var b model.LandBlock
	b.Header = r.endian.Uint32(buf[0:4])
	pos := model.BlockHeaderSize
	for c := range b.Cells {
		b.Cells[c] = model.TileCell{
			LandID:    r.endian.Uint16(buf[pos : pos+2]),
			Elevation: int8(buf[pos+2]),
		}
		pos += model.TileCellSize
	}

	return b, nil
}

// FirstNonZero scans the file and returns the offset of the first non-zero
// byte, or -1 if every byte is zero.
func (r *Reader) FirstNonZero() (int64, error) {
	buf := make([]byte, 32*1024)
	var off int64
	for off < r.size {
		n := int64(len(buf))
		if r.size-off < n {
			n = r.size - off
		}
		if err := r.readAt(buf[:n], off); err != nil {
			return 0, err
		}
		for i, b := range buf[:n] {
			if b != 0 {
				return off + int64(i), nil
			}
		}
		off += n
	}
	return -1, nil
}
