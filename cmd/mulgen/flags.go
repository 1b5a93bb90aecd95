package main

import (
	"fmt"
	"math"

	"github.com/dyuri/mulgen/pkg/mulgen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addLayoutFlags registers the flags that describe a file set. generate and
// verify share them so that a set can be checked with the same command line
// that produced it.
func addLayoutFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringP("out", "o", "ClientMin", "Output directory")
	fs.Int("facet", 0, "Facet number (0 -> map0.mul, staidx0.mul, statics0.mul)")
	fs.Int("map-width", 256, "Map width in tiles (multiple of 8)")
	fs.Int("map-height", 256, "Map height in tiles (multiple of 8)")
	fs.Int("default-land", 0, "Default land tile id to fill the map with (0-16383)")
	fs.Int("default-z", 0, "Default altitude to fill the map with (-128..127)")
	addProfileFlags(fs)
}

// addProfileFlags registers the flags that select and tweak format constants.
func addProfileFlags(fs *pflag.FlagSet) {
	fs.String("profile", "", "YAML file overriding format constants")
	fs.Int("artidx-entries", 0, "Number of artidx records, accepts hex like 0x14000 (default from profile)")
	fs.Int("hue-groups", 0, "Number of hue groups, 8 hues each (default from profile)")
	fs.Bool("column-major", false, "Lay out map blocks column by column instead of row by row")
}

// layoutConfig builds a generation config from the layout flags.
func layoutConfig(cmd *cobra.Command) (mulgen.Config, error) {
	fs := cmd.Flags()
	out, _ := fs.GetString("out")
	facet, _ := fs.GetInt("facet")
	width, _ := fs.GetInt("map-width")
	height, _ := fs.GetInt("map-height")
	land, _ := fs.GetInt("default-land")
	z, _ := fs.GetInt("default-z")

	if land < 0 || land > math.MaxUint16 {
		return mulgen.Config{}, fmt.Errorf("--default-land must be between 0 and 16383, got %d", land)
	}
	if z < math.MinInt8 || z > math.MaxInt8 {
		return mulgen.Config{}, fmt.Errorf("--default-z must be between -128 and 127, got %d", z)
	}

	profile, err := profileFromFlags(fs)
	if err != nil {
		return mulgen.Config{}, err
	}

	return mulgen.Config{
		OutputDir: out,
		Facet:     facet,
		Width:     width,
		Height:    height,
		LandID:    uint16(land),
		Elevation: int8(z),
		Order:     orderFromFlags(fs),
		Profile:   &profile,
	}, nil
}

// profileFromFlags loads --profile (or the defaults) and applies the
// individual overrides on top.
func profileFromFlags(fs *pflag.FlagSet) (mulgen.Profile, error) {
	path, _ := fs.GetString("profile")

	profile := mulgen.DefaultProfile()
	if path != "" {
		p, err := mulgen.LoadProfile(path)
		if err != nil {
			return mulgen.Profile{}, err
		}
		profile = p
	}

	if fs.Changed("artidx-entries") {
		profile.Art.Entries, _ = fs.GetInt("artidx-entries")
	}
	if fs.Changed("hue-groups") {
		profile.HueGroups, _ = fs.GetInt("hue-groups")
	}

	return profile, nil
}

func orderFromFlags(fs *pflag.FlagSet) mulgen.BlockOrder {
	if columnMajor, _ := fs.GetBool("column-major"); columnMajor {
		return mulgen.ColumnMajor
	}
	return mulgen.RowMajor
}
