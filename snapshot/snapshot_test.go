package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dfloer/OpenCity2k"
	"github.com/dfloer/OpenCity2k/iff"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCity(t *testing.T) *opencity2k.City {
	t.Helper()

	c := opencity2k.NewCity()
	c.Name = "Snapshot"
	c.Attributes["TotalPop"] = 1200
	c.Labels[1] = "Hello"
	c.Tile(opencity2k.Coord{Row: 3, Col: 4}).Altitude.Level = 12
	opencity2k.WriteMetric(c, opencity2k.Coord{Row: 10, Col: 10}, opencity2k.Crime, 99)
	c.Scenario = &opencity2k.Scenario{
		Texts: []opencity2k.TextBlock{{Tag: opencity2k.ShortText, Text: "Go"}},
		Thumbnail: opencity2k.Thumbnail{
			Width:  1,
			Height: 1,
			Pix:    []byte{5},
		},
	}
	c.Extra = []iff.Chunk{{Tag: "ZZZZ", Data: []byte{1}}}

	// Round trip through the codec so buildings and maps are populated the
	// same way a real city is
	b, err := opencity2k.Encode(c, opencity2k.EncodeOptions{})
	require.NoError(t, err)
	c, err = opencity2k.Decode(b, opencity2k.DecodeOptions{})
	require.NoError(t, err)

	return c
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "city.snap")
	c := testCity(t)

	require.NoError(t, Write(path, c))

	h, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, Header{
		Version:    Version,
		Name:       "Snapshot",
		Date:       "January 1, 0",
		Population: 1200,
		Scenario:   true,
	}, h)

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, c, out)
}

func TestEmptyMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city.snap")
	c := opencity2k.NewCity()
	c.Graphs = map[string]opencity2k.Graph{}

	require.NoError(t, Write(path, c))
	out, err := Read(path)
	require.NoError(t, err)
	assert.NotNil(t, out.Structures)
	assert.NotNil(t, out.Graphs)
	assert.NotNil(t, out.Budget.Ledgers)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.snap"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	write := func(name string, b []byte) string {
		path := filepath.Join(dir, name)
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, enc.EncodeAll(b, nil), 0o644))
		enc.Close()
		return path
	}

	_, err = Read(write("noheader.snap", []byte("nothing")))
	assert.Equal(t, errNoHeader, err)

	_, err = Read(write("badheader.snap", []byte("{\n")))
	assert.Error(t, err)

	_, err = Read(write("version.snap", []byte(`{"version":99}`+"\n")))
	var ve *VersionError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 99, ve.Version)

	_, err = Read(write("truncated.snap", []byte(`{"version":1}`+"\n")))
	assert.Error(t, err)
}
