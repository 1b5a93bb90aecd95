package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dyuri/mulgen/internal/binary"
	"github.com/dyuri/mulgen/internal/format"
	"github.com/dyuri/mulgen/internal/model"
)

// maxFindingsPerFile caps repeated record-level findings for one file.
const maxFindingsPerFile = 5

// Finding is one verification issue.
type Finding struct {
	File    string
	Message string
}

func (f Finding) String() string {
	return f.File + ": " + f.Message
}

// VerifyResult collects the outcome of Verify.
type VerifyResult struct {
	Dir      string
	Checked  []string
	Errors   []Finding
	Warnings []Finding
}

// OK reports whether no errors were found. With strict, warnings count too.
func (r *VerifyResult) OK(strict bool) bool {
	if len(r.Errors) > 0 {
		return false
	}
	return !strict || len(r.Warnings) == 0
}

func (r *VerifyResult) errorf(file, msg string, args ...interface{}) {
	r.Errors = append(r.Errors, Finding{File: file, Message: fmt.Sprintf(msg, args...)})
}

func (r *VerifyResult) warnf(file, msg string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Finding{File: file, Message: fmt.Sprintf(msg, args...)})
}

// Verify checks an output directory against the layout cfg describes:
// exact file sizes, zeroed registries, absent index records and uniformly
// filled map blocks. It never writes. The returned error is set only when
// cfg itself is invalid.
func Verify(cfg Config) (*VerifyResult, error) {
	geom, profile, err := Validate(cfg)
	if err != nil {
		return nil, err
	}
	pl := newPlan(cfg, geom, profile)
	res := &VerifyResult{Dir: pl.dir}

	for _, reg := range profile.Registries() {
		pl.verifyRegistry(res, reg)
	}
	for _, pair := range profile.IndexPairs() {
		pl.verifyIndex(res, pair.IndexFile, pair.Entries, pair.AbsentLength)
		pl.verifyEmpty(res, pair.DataFile)
	}

	mapFile, staticsFile, staidxFile := format.FacetFiles(geom.Facet)
	pl.verifyMap(res, mapFile, model.TileCell{LandID: cfg.LandID, Elevation: cfg.Elevation})
	pl.verifyIndex(res, staidxFile, geom.BlockCount(), profile.StaticsAbsentLength)
	pl.verifyEmpty(res, staticsFile)

	return res, nil
}

// open opens name and checks its size. The returned file is nil when
// verification of the file cannot continue.
func (pl *plan) open(res *VerifyResult, name string, want int64) (*os.File, *binary.Reader) {
	res.Checked = append(res.Checked, name)

	f, err := os.Open(filepath.Join(pl.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.errorf(name, "missing")
		} else {
			res.errorf(name, "open: %v", err)
		}
		return nil, nil
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		res.errorf(name, "stat: %v", err)
		return nil, nil
	}
	if stat.Size() != want {
		f.Close()
		res.errorf(name, "size %d bytes, want %d", stat.Size(), want)
		return nil, nil
	}

	return f, binary.NewReader(f, stat.Size())
}

func (pl *plan) verifyEmpty(res *VerifyResult, name string) {
	if f, _ := pl.open(res, name, 0); f != nil {
		f.Close()
	}
}

func (pl *plan) verifyRegistry(res *VerifyResult, reg format.Registry) {
	f, r := pl.open(res, reg.File, reg.Size())
	if f == nil {
		return
	}
	defer f.Close()

	off, err := r.FirstNonZero()
	if err != nil {
		res.errorf(reg.File, "%v", err)
		return
	}
	if off >= 0 {
		res.errorf(reg.File, "non-zero byte at offset 0x%x", off)
	}
}

func (pl *plan) verifyIndex(res *VerifyResult, name string, entries int, absentLength int32) {
	f, r := pl.open(res, name, int64(entries)*model.IndexRecordSize)
	if f == nil {
		return
	}
	defer f.Close()

	findings := 0
	for i := 0; i < entries && findings < maxFindingsPerFile; i++ {
		rec, err := r.ReadIndexRecord(i)
		if err != nil {
			res.errorf(name, "record %d: %v", i, err)
			return
		}
		switch {
		case !rec.IsAbsent():
			res.errorf(name, "record %d is not absent: offset=%d length=%d extra=%d",
				i, rec.Offset, rec.Length, rec.Extra)
			findings++
		case rec.Length != absentLength:
			res.warnf(name, "record %d has absent length %d, profile expects %d", i, rec.Length, absentLength)
			findings++
		}
	}
}

func (pl *plan) verifyMap(res *VerifyResult, name string, fill model.TileCell) {
	f, r := pl.open(res, name, pl.geometry.MapSize())
	if f == nil {
		return
	}
	defer f.Close()

	findings := 0
	for i := 0; i < pl.geometry.BlockCount() && findings < maxFindingsPerFile; i++ {
		b, err := r.ReadLandBlock(i)
		if err != nil {
			res.errorf(name, "block %d: %v", i, err)
			return
		}
		if b.Header != 0 {
			res.warnf(name, "block %d header is 0x%08x, want 0", i, b.Header)
			findings++
		}
		for c, cell := range b.Cells {
			if cell != fill {
				res.errorf(name, "block %d cell %d is %d:%+d, want %d:%+d",
					i, c, cell.LandID, cell.Elevation, fill.LandID, fill.Elevation)
				findings++
				break
			}
		}
	}
}
