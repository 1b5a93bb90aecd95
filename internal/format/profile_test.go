package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRecordLayouts(t *testing.T) {
	assert.Equal(t, 88, HueEntrySize)
	assert.Equal(t, 708, HueGroupSize)
	assert.Equal(t, 26, LandTileEntrySize)
	assert.Equal(t, 37, StaticTileEntrySize)
	assert.Equal(t, 836, LandGroupSize)
	assert.Equal(t, 1188, StaticGroupSize)
}

func TestDefaultRegistrySizes(t *testing.T) {
	regs := Default().Registries()
	require.Len(t, regs, 3)

	want := map[Kind]int64{
		Hues:     375 * 708,
		TileData: 512*836 + 2048*1188,
		RadarCol: 0x10000 * 2,
	}
	for _, reg := range regs {
		assert.Equal(t, want[reg.Kind], reg.Size(), reg.File)
	}

	assert.Equal(t, "hues.mul", regs[0].File)
	assert.Equal(t, "tiledata.mul", regs[1].File)
	assert.Equal(t, "radarcol.mul", regs[2].File)
	assert.Equal(t, int64(2861056), regs[1].Size())
	assert.Equal(t, 512+2048, regs[1].Records())
}

func TestDefaultIndexPairs(t *testing.T) {
	pairs := Default().IndexPairs()
	require.Len(t, pairs, 4)

	assert.Equal(t, IndexPair{Kind: Art, IndexFile: "artidx.mul", DataFile: "art.mul", Entries: 0x14000, AbsentLength: 0}, pairs[0])
	assert.Equal(t, IndexPair{Kind: TexMaps, IndexFile: "texidx.mul", DataFile: "texmaps.mul", Entries: 0x4000, AbsentLength: -1}, pairs[1])
	assert.Equal(t, IndexPair{Kind: Light, IndexFile: "lightidx.mul", DataFile: "light.mul", Entries: 100, AbsentLength: -1}, pairs[2])
	assert.Equal(t, IndexPair{Kind: Multi, IndexFile: "multi.idx", DataFile: "multi.mul", Entries: 0x2200, AbsentLength: -1}, pairs[3])

	assert.Equal(t, int64(0x14000*12), pairs[0].IndexSize())
}

func TestFacetFiles(t *testing.T) {
	m, s, i := FacetFiles(2)
	assert.Equal(t, "map2.mul", m)
	assert.Equal(t, "statics2.mul", s)
	assert.Equal(t, "staidx2.mul", i)
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOverridesKeepDefaults(t *testing.T) {
	path := writeProfile(t, `
hue_groups: 100
art:
  entries: 65536
light:
  absent_length: 0
statics_absent_length: -1
`)

	p, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 100, p.HueGroups)
	assert.Equal(t, 65536, p.Art.Entries)
	assert.Equal(t, def.Art.AbsentLength, p.Art.AbsentLength)
	assert.Equal(t, def.Light.Entries, p.Light.Entries)
	assert.Equal(t, int32(0), p.Light.AbsentLength)
	assert.Equal(t, int32(-1), p.StaticsAbsentLength)
	assert.Equal(t, def.LandGroups, p.LandGroups)
	assert.Equal(t, def.Multi, p.Multi)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero count":     "radar_colors: 0\n",
		"bad sentinel":   "multi:\n  absent_length: 5\n",
		"negative count": "texmaps:\n  entries: -3\n",
		"not yaml":       "hue_groups: [1, 2\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeProfile(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "hue_groups: 375")
	assert.Contains(t, string(data), "absent_length: -1")

	var p Profile
	require.NoError(t, yaml.Unmarshal(data, &p))
	assert.Equal(t, Default(), p)
}
