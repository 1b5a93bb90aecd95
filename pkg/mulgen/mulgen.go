// Package mulgen generates structurally valid, content-free world data
// files in the classic .mul layout.
//
// The generated set contains the fixed registries (hues.mul, tiledata.mul,
// radarcol.mul), the index/data pairs (art, texmaps, light, multi) and the
// map/statics triple of one facet. Every registry is zero-filled, every
// index record is the "absent" sentinel and every map tile carries the
// same default land id and elevation.
//
// Example usage:
//
//	report, err := mulgen.Generate(mulgen.Config{
//	    OutputDir: "ClientMin",
//	    Facet:     0,
//	    Width:     512,
//	    Height:    512,
//	    Overwrite: true,
//	})
//	if errors.Is(err, mulgen.ErrDestinationConflict) {
//	    // ...
//	}
package mulgen

import (
	"github.com/dyuri/mulgen/internal/format"
	"github.com/dyuri/mulgen/internal/layout"
	"github.com/dyuri/mulgen/internal/model"
	"github.com/sirupsen/logrus"
)

// BlockOrder defines how blocks are laid out in the map file.
type BlockOrder = model.BlockOrder

const (
	RowMajor    = model.RowMajor
	ColumnMajor = model.ColumnMajor
)

// Profile is the table of format constants (record counts and sentinel
// lengths). See DefaultProfile and LoadProfile.
type Profile = format.Profile

// Config describes one generation run.
type Config struct {
	OutputDir string // Created if missing
	Facet     int    // 0..255, selects map{N}.mul, staidx{N}.mul, statics{N}.mul
	Width     int    // Map width in tiles, positive multiple of 8
	Height    int    // Map height in tiles, positive multiple of 8
	LandID    uint16 // Default land tile id, 0..0x3FFF
	Elevation int8   // Default altitude
	Overwrite bool   // Replace existing files instead of failing

	Order   BlockOrder // Defaults to RowMajor
	Profile *Profile   // Defaults to DefaultProfile()

	// Logger receives per-file debug entries and a run summary.
	// Nil discards.
	Logger logrus.FieldLogger
}

// Report lists the files a successful run wrote.
type Report = layout.Report

// VerifyResult is the outcome of Verify.
type VerifyResult = layout.VerifyResult

// Generate writes the complete file set described by cfg.
//
// It fails with ErrInvalidDimension or ErrInvalidParameter before touching
// the file system, with ErrDestinationConflict before writing anything when
// a target exists and Overwrite is false, and with ErrIOFailure when a write
// fails. Files written before an ErrIOFailure are left in place.
func Generate(cfg Config) (*Report, error) {
	return layout.NewPlanner(cfg.Logger).Generate(cfg.internal())
}

// Verify checks a previously generated directory against cfg without
// writing anything. Overwrite and Logger are ignored.
func Verify(cfg Config) (*VerifyResult, error) {
	return layout.Verify(cfg.internal())
}

// DefaultProfile returns the classic client format constants.
func DefaultProfile() Profile {
	return format.Default()
}

// LoadProfile reads a YAML profile; missing keys keep their defaults.
func LoadProfile(path string) (Profile, error) {
	return format.Load(path)
}

func (c Config) internal() layout.Config {
	return layout.Config{
		OutputDir: c.OutputDir,
		Facet:     c.Facet,
		Width:     c.Width,
		Height:    c.Height,
		LandID:    c.LandID,
		Elevation: c.Elevation,
		Overwrite: c.Overwrite,
		Order:     c.Order,
		Profile:   c.Profile,
	}
}

// Error represents a mulgen error. Use errors.Is with the sentinels below
// to test the kind.
type Error = model.Error

// Common errors
var (
	ErrInvalidDimension    = model.ErrInvalidDimension
	ErrInvalidParameter    = model.ErrInvalidParameter
	ErrDestinationConflict = model.ErrDestinationConflict
	ErrIOFailure           = model.ErrIOFailure
)
