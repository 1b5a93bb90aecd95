// Package binary encodes the placeholder world files.
//
// Every encoder writes to an io.Writer and returns the number of bytes
// written, so it can be tested against a bytes.Buffer and the planner can
// compare the count with the size the layout promises.
package binary

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/dyuri/mulgen/internal/model"
)

// zeroChunk is reused for zero fills.
var zeroChunk [32 * 1024]byte

// Writer is a little-endian record writer that counts bytes.
type Writer struct {
	w      *bufio.Writer
	endian binary.ByteOrder
	n      int64
	buf    [model.LandBlockSize]byte
}

// NewWriter creates a new buffered record writer. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      bufio.NewWriterSize(w, 64*1024),
		endian: binary.LittleEndian,
	}
}

// Written returns the number of bytes written so far, including buffered ones.
func (w *Writer) Written() int64 {
	return w.n
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.n += int64(n)
	return err
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int64) error {
	for n > 0 {
		chunk := int64(len(zeroChunk))
		if n < chunk {
			chunk = n
		}
		if err := w.write(zeroChunk[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// WriteIndexRecord writes one 12-byte index record.
func (w *Writer) WriteIndexRecord(r model.IndexRecord) error {
	buf := w.buf[:model.IndexRecordSize]
	w.endian.PutUint32(buf[0:4], uint32(r.Offset))
	w.endian.PutUint32(buf[4:8], uint32(r.Length))
	w.endian.PutUint32(buf[8:12], uint32(r.Extra))
	return w.write(buf)
}

// WriteLandBlock writes one 196-byte land block.
func (w *Writer) WriteLandBlock(b *model.LandBlock) error {
	buf := w.buf[:model.LandBlockSize]
	w.endian.PutUint32(buf[0:4], b.Header)

	pos := model.BlockHeaderSize
	for _, c := range b.Cells {
		w.endian.PutUint16(buf[pos:pos+2], c.LandID)
		buf[pos+2] = byte(c.Elevation)
		pos += model.TileCellSize
	}

	return w.write(buf)
}
