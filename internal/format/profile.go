// Package format holds the record counts, record sizes and sentinel
// conventions of every file in the generated set.
//
// All constants live in a Profile so that the one place where format
// accuracy matters can be overridden from YAML and tested on its own.
package format

import (
	"fmt"
	"os"

	"github.com/dyuri/mulgen/internal/model"
	"gopkg.in/yaml.v3"
)

// Record layouts of the fixed registries.
const (
	// hues.mul: DWORD group header, then 8 hues of 32 colors, table start,
	// table end and name[20].
	HueEntrySize     = 32*2 + 2 + 2 + 20
	HuesPerGroup     = 8
	HueGroupSize     = 4 + HuesPerGroup*HueEntrySize
	DefaultHueGroups = 375

	// tiledata.mul: DWORD group header, then 32 entries per group.
	// Land entry: flags, texture id, name[20].
	// Static entry: flags, weight, quality, unknown, unknown1, quantity,
	// anim id, unknown2, hue, unknown3, height, name[20].
	TilesPerGroup       = 32
	LandTileEntrySize   = 4 + 2 + 20
	StaticTileEntrySize = 4 + 1 + 1 + 2 + 1 + 1 + 2 + 1 + 1 + 2 + 1 + 20
	LandGroupSize       = 4 + TilesPerGroup*LandTileEntrySize
	StaticGroupSize     = 4 + TilesPerGroup*StaticTileEntrySize
	DefaultLandGroups   = 512
	DefaultStaticGroups = 2048

	// radarcol.mul: one ushort color per land and static tile.
	RadarColorSize     = 2
	DefaultRadarColors = 0x10000
)

// Kind identifies a file (or file pair) in the generated set.
type Kind string

const (
	Hues     Kind = "hues"
	TileData Kind = "tiledata"
	RadarCol Kind = "radarcol"
	Art      Kind = "art"
	TexMaps  Kind = "texmaps"
	Light    Kind = "light"
	Multi    Kind = "multi"
	Statics  Kind = "statics"
)

// IndexSettings configures one index/data pair.
type IndexSettings struct {
	Entries      int   `yaml:"entries"`
	AbsentLength int32 `yaml:"absent_length"`
}

// Profile is the table of format constants used for one generation run.
type Profile struct {
	HueGroups    int `yaml:"hue_groups"`
	LandGroups   int `yaml:"land_groups"`
	StaticGroups int `yaml:"static_groups"`
	RadarColors  int `yaml:"radar_colors"`

	Art     IndexSettings `yaml:"art"`
	TexMaps IndexSettings `yaml:"texmaps"`
	Light   IndexSettings `yaml:"light"`
	Multi   IndexSettings `yaml:"multi"`

	// StaticsAbsentLength is the length field of every staidx record.
	StaticsAbsentLength int32 `yaml:"statics_absent_length"`
}

// Default returns the classic client layout.
func Default() Profile {
	return Profile{
		HueGroups:    DefaultHueGroups,
		LandGroups:   DefaultLandGroups,
		StaticGroups: DefaultStaticGroups,
		RadarColors:  DefaultRadarColors,

		Art:     IndexSettings{Entries: 0x14000, AbsentLength: 0},
		TexMaps: IndexSettings{Entries: 0x4000, AbsentLength: -1},
		Light:   IndexSettings{Entries: 100, AbsentLength: -1},
		Multi:   IndexSettings{Entries: 0x2200, AbsentLength: -1},

		StaticsAbsentLength: 0,
	}
}

// Load reads a YAML profile. Keys missing from the file keep their
// default values.
func Load(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}

	return p, nil
}

// Marshal returns the profile as YAML.
func (p Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks that every count is positive and every absent length
// is one of the two sentinels loaders accept.
func (p Profile) Validate() error {
	counts := []struct {
		name string
		n    int
	}{
		{"hue_groups", p.HueGroups},
		{"land_groups", p.LandGroups},
		{"static_groups", p.StaticGroups},
		{"radar_colors", p.RadarColors},
		{"art.entries", p.Art.Entries},
		{"texmaps.entries", p.TexMaps.Entries},
		{"light.entries", p.Light.Entries},
		{"multi.entries", p.Multi.Entries},
	}
	for _, c := range counts {
		if c.n <= 0 {
			return fmt.Errorf("%s must be > 0, got %d", c.name, c.n)
		}
	}

	lengths := []struct {
		name string
		v    int32
	}{
		{"art.absent_length", p.Art.AbsentLength},
		{"texmaps.absent_length", p.TexMaps.AbsentLength},
		{"light.absent_length", p.Light.AbsentLength},
		{"multi.absent_length", p.Multi.AbsentLength},
		{"statics_absent_length", p.StaticsAbsentLength},
	}
	for _, l := range lengths {
		if l.v != 0 && l.v != -1 {
			return fmt.Errorf("%s must be 0 or -1, got %d", l.name, l.v)
		}
	}

	return nil
}

// Section is a run of identical zeroed records inside a registry.
type Section struct {
	Name  string
	Count int
	Size  int
}

// Bytes returns Count * Size.
func (s Section) Bytes() int64 {
	return int64(s.Count) * int64(s.Size)
}

// Registry describes one fixed-cardinality file.
type Registry struct {
	Kind     Kind
	File     string
	Sections []Section
}

// Size returns the exact file size in bytes.
func (r Registry) Size() int64 {
	var n int64
	for _, s := range r.Sections {
		n += s.Bytes()
	}
	return n
}

// Records returns the total record count over all sections.
func (r Registry) Records() int {
	n := 0
	for _, s := range r.Sections {
		n += s.Count
	}
	return n
}

// IndexPair describes an index file and its (empty) data file.
type IndexPair struct {
	Kind         Kind
	IndexFile    string
	DataFile     string
	Entries      int
	AbsentLength int32
}

// IndexSize returns the exact index file size in bytes.
func (p IndexPair) IndexSize() int64 {
	return int64(p.Entries) * model.IndexRecordSize
}

// Registries returns the fixed registries in generation order.
func (p Profile) Registries() []Registry {
	return []Registry{
		{
			Kind:     Hues,
			File:     "hues.mul",
			Sections: []Section{{Name: "hue groups", Count: p.HueGroups, Size: HueGroupSize}},
		},
		{
			Kind: TileData,
			File: "tiledata.mul",
			Sections: []Section{
				{Name: "land groups", Count: p.LandGroups, Size: LandGroupSize},
				{Name: "static groups", Count: p.StaticGroups, Size: StaticGroupSize},
			},
		},
		{
			Kind:     RadarCol,
			File:     "radarcol.mul",
			Sections: []Section{{Name: "colors", Count: p.RadarColors, Size: RadarColorSize}},
		},
	}
}

// IndexPairs returns the index/data pairs in generation order.
func (p Profile) IndexPairs() []IndexPair {
	return []IndexPair{
		{Kind: Art, IndexFile: "artidx.mul", DataFile: "art.mul",
			Entries: p.Art.Entries, AbsentLength: p.Art.AbsentLength},
		{Kind: TexMaps, IndexFile: "texidx.mul", DataFile: "texmaps.mul",
			Entries: p.TexMaps.Entries, AbsentLength: p.TexMaps.AbsentLength},
		{Kind: Light, IndexFile: "lightidx.mul", DataFile: "light.mul",
			Entries: p.Light.Entries, AbsentLength: p.Light.AbsentLength},
		{Kind: Multi, IndexFile: "multi.idx", DataFile: "multi.mul",
			Entries: p.Multi.Entries, AbsentLength: p.Multi.AbsentLength},
	}
}

// FacetFiles returns the map, statics data and statics index file names
// for a facet.
func FacetFiles(facet int) (mapFile, staticsFile, staidxFile string) {
	return fmt.Sprintf("map%d.mul", facet),
		fmt.Sprintf("statics%d.mul", facet),
		fmt.Sprintf("staidx%d.mul", facet)
}
