// Package layout plans and runs a generation: it validates the request,
// derives the block grid and writes every file of the set in a fixed order.
package layout

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dyuri/mulgen/internal/binary"
	"github.com/dyuri/mulgen/internal/format"
	"github.com/dyuri/mulgen/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config is one generation request.
type Config struct {
	OutputDir string
	Facet     int
	Width     int // Tiles, multiple of 8
	Height    int // Tiles, multiple of 8
	LandID    uint16
	Elevation int8
	Overwrite bool

	Order   model.BlockOrder
	Profile *format.Profile // nil means format.Default()

	// Mark is passed through to the facet encoder.
	Mark func(i int, pos model.BlockPos, b *model.LandBlock)
}

// FileResult describes one written file.
type FileResult struct {
	Kind    format.Kind
	Name    string
	Path    string
	Bytes   int64
	Records int
}

// Report is the outcome of a successful run.
type Report struct {
	RunID    string
	Dir      string
	Geometry model.Geometry
	Order    model.BlockOrder
	Files    []FileResult
}

// TotalBytes returns the sum of all file sizes.
func (r *Report) TotalBytes() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Bytes
	}
	return n
}

// Planner runs generations.
type Planner struct {
	log logrus.FieldLogger
}

// NewPlanner creates a planner that logs to log. A nil logger discards.
func NewPlanner(log logrus.FieldLogger) *Planner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Planner{log: log}
}

// step writes one or more files. encode receives one writer per file,
// in the same order as files, and reports the records it wrote per file.
type step struct {
	kind   format.Kind
	files  []string
	encode func(ws []io.Writer) ([]int64, []int, error)
}

// plan holds everything derived from a validated config.
type plan struct {
	dir      string
	geometry model.Geometry
	profile  format.Profile
	steps    []step
}

// Validate checks cfg without touching the file system.
func Validate(cfg Config) (model.Geometry, format.Profile, error) {
	geom, err := model.NewGeometry(cfg.Facet, cfg.Width, cfg.Height)
	if err != nil {
		return model.Geometry{}, format.Profile{}, err
	}
	if cfg.LandID > model.MaxLandID {
		return model.Geometry{}, format.Profile{}, model.NewError(model.ErrInvalidParameter, "",
			fmt.Errorf("default land id must be between 0 and %d (0x%X), got %d", model.MaxLandID, model.MaxLandID, cfg.LandID))
	}
	if cfg.Order != model.RowMajor && cfg.Order != model.ColumnMajor {
		return model.Geometry{}, format.Profile{}, model.NewError(model.ErrInvalidParameter, "",
			fmt.Errorf("unknown block order %v", cfg.Order))
	}
	if cfg.OutputDir == "" {
		return model.Geometry{}, format.Profile{}, model.NewError(model.ErrInvalidParameter, "",
			errors.New("output directory is required"))
	}

	profile := format.Default()
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	if err := profile.Validate(); err != nil {
		return model.Geometry{}, format.Profile{}, model.NewError(model.ErrInvalidParameter, "", err)
	}

	return geom, profile, nil
}

// Generate writes the complete file set described by cfg.
//
// Nothing is written when cfg is invalid or, without Overwrite, when any
// target already exists. A failure while writing stops the run and leaves
// the files written so far in place.
func (p *Planner) Generate(cfg Config) (*Report, error) {
	geom, profile, err := Validate(cfg)
	if err != nil {
		return nil, err
	}

	pl := newPlan(cfg, geom, profile)
	runID := uuid.NewString()
	log := p.log.WithFields(logrus.Fields{
		"run":   runID,
		"dir":   pl.dir,
		"facet": geom.Facet,
	})

	if !cfg.Overwrite {
		if err := pl.checkConflicts(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(pl.dir, 0755); err != nil {
		return nil, model.NewError(model.ErrIOFailure, pl.dir, fmt.Errorf("create output directory: %w", err))
	}

	report := &Report{
		RunID:    runID,
		Dir:      pl.dir,
		Geometry: geom,
		Order:    cfg.Order,
	}

	for _, s := range pl.steps {
		results, err := pl.run(s, cfg.Overwrite)
		if err != nil {
			log.WithError(err).WithField("kind", s.kind).Error("generation stopped")
			return nil, err
		}
		for _, r := range results {
			log.WithFields(logrus.Fields{
				"file":    r.Name,
				"bytes":   r.Bytes,
				"records": r.Records,
			}).Debug("wrote file")
		}
		report.Files = append(report.Files, results...)
	}

	log.WithFields(logrus.Fields{
		"files":  len(report.Files),
		"bytes":  report.TotalBytes(),
		"blocks": geom.BlockCount(),
	}).Info("generation complete")

	return report, nil
}

func newPlan(cfg Config, geom model.Geometry, profile format.Profile) *plan {
	pl := &plan{
		dir:      filepath.Clean(cfg.OutputDir),
		geometry: geom,
		profile:  profile,
	}

	for _, reg := range profile.Registries() {
		pl.steps = append(pl.steps, step{
			kind:  reg.Kind,
			files: []string{reg.File},
			encode: func(ws []io.Writer) ([]int64, []int, error) {
				n, err := binary.EncodeRegistry(ws[0], reg)
				return []int64{n}, []int{reg.Records()}, err
			},
		})
	}

	for _, pair := range profile.IndexPairs() {
		pl.steps = append(pl.steps, step{
			kind:  pair.Kind,
			files: []string{pair.IndexFile, pair.DataFile},
			encode: func(ws []io.Writer) ([]int64, []int, error) {
				n, err := binary.EncodeIndex(ws[0], pair)
				return []int64{n, 0}, []int{pair.Entries, 0}, err
			},
		})
	}

	mapFile, staticsFile, staidxFile := format.FacetFiles(geom.Facet)
	enc := &binary.FacetEncoder{
		Geometry:     geom,
		Order:        cfg.Order,
		Fill:         model.TileCell{LandID: cfg.LandID, Elevation: cfg.Elevation},
		AbsentLength: profile.StaticsAbsentLength,
		Mark:         cfg.Mark,
	}
	pl.steps = append(pl.steps, step{
		kind:  format.Statics,
		files: []string{mapFile, staidxFile, staticsFile},
		encode: func(ws []io.Writer) ([]int64, []int, error) {
			stats, err := enc.Encode(ws[0], ws[1])
			return []int64{stats.MapBytes, stats.IndexBytes, 0},
				[]int{stats.Blocks, stats.Blocks, 0}, err
		},
	})

	return pl
}

// targets returns every file path the plan writes, in order.
func (pl *plan) targets() []string {
	var paths []string
	for _, s := range pl.steps {
		for _, f := range s.files {
			paths = append(paths, filepath.Join(pl.dir, f))
		}
	}
	return paths
}

// checkConflicts fails on the first target that already exists.
func (pl *plan) checkConflicts() error {
	for _, path := range pl.targets() {
		_, err := os.Lstat(path)
		if err == nil {
			return model.NewError(model.ErrDestinationConflict, path, nil)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return model.NewError(model.ErrIOFailure, path, fmt.Errorf("stat: %w", err))
		}
	}
	return nil
}

// run opens the step's files, encodes into them and closes them on every
// exit path.
func (pl *plan) run(s step, overwrite bool) (results []FileResult, err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	files := make([]*os.File, 0, len(s.files))
	defer func() {
		for _, f := range files {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = model.NewError(model.ErrIOFailure, f.Name(), fmt.Errorf("close: %w", cerr))
			}
		}
	}()

	for _, name := range s.files {
		path := filepath.Join(pl.dir, name)
		f, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return nil, model.NewError(model.ErrDestinationConflict, path, nil)
			}
			return nil, model.NewError(model.ErrIOFailure, path, fmt.Errorf("create: %w", err))
		}
		files = append(files, f)
	}

	ws := make([]io.Writer, len(files))
	for i, f := range files {
		ws[i] = f
	}

	sizes, records, err := s.encode(ws)
	if err != nil {
		return nil, model.NewError(model.ErrIOFailure, files[0].Name(), err)
	}

	for i, name := range s.files {
		results = append(results, FileResult{
			Kind:    s.kind,
			Name:    name,
			Path:    files[i].Name(),
			Bytes:   sizes[i],
			Records: records[i],
		})
	}

	return results, nil
}
