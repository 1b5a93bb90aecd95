package binary

import (
	"fmt"
	"io"

	"github.com/dyuri/mulgen/internal/format"
)

// EncodeRegistry writes a zero-filled registry: every section's
// Count * Size bytes, in order. The output never depends on map geometry.
func EncodeRegistry(w io.Writer, reg format.Registry) (int64, error) {
	bw := NewWriter(w)

	for _, s := range reg.Sections {
		if err := bw.WriteZeros(s.Bytes()); err != nil {
			return bw.Written(), fmt.Errorf("write %s %s: %w", reg.File, s.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return bw.Written(), fmt.Errorf("flush %s: %w", reg.File, err)
	}

	return bw.Written(), nil
}
