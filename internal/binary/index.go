package binary

import (
	"fmt"
	"io"

	"github.com/dyuri/mulgen/internal/format"
	"github.com/dyuri/mulgen/internal/model"
)

// EncodeIndex writes pair.Entries absent records to the index writer.
// The data file of a pair is always empty, so nothing is written for it.
func EncodeIndex(w io.Writer, pair format.IndexPair) (int64, error) {
	bw := NewWriter(w)
	absent := model.AbsentRecord(pair.AbsentLength)

	for i := 0; i < pair.Entries; i++ {
		if err := bw.WriteIndexRecord(absent); err != nil {
			return bw.Written(), fmt.Errorf("write %s record %d: %w", pair.IndexFile, i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return bw.Written(), fmt.Errorf("flush %s: %w", pair.IndexFile, err)
	}

	return bw.Written(), nil
}
