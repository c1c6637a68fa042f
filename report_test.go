package opencity2k

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	tables := []struct {
		days int
		date Date
		text string
	}{
		{0, Date{1900, 1, 1}, "January 1, 1900"},
		{24, Date{1900, 1, 25}, "January 25, 1900"},
		{25, Date{1900, 2, 1}, "February 1, 1900"},
		{299, Date{1900, 12, 25}, "December 25, 1900"},
		{300, Date{1901, 1, 1}, "January 1, 1901"},
		{3456, Date{1911, 7, 7}, "July 7, 1911"},
		{-5, Date{1900, 1, 1}, "January 1, 1900"},
	}

	for _, table := range tables {
		d := DateOf(1900, table.days)
		assert.Equal(t, table.date, d, table.days)
		assert.Equal(t, table.text, d.String())
	}

	assert.Equal(t, "13/1/1900", Date{1900, 13, 1}.String())
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(Date{2050, 3, 9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2050,"month":3,"day":9,"text":"March 9, 2050"}`, string(b))
}

func TestSummarize(t *testing.T) {
	f := populated()
	f.putInt("MISC", 0x006c, 0x0b) // weatherTrend
	f.putInt("MISC", 0x0024, 250)  // CityValue
	f.putInt("MISC", 0x0610, 10000)
	f.putInt("MISC", 0x0614, 0)
	f.putInt("MISC", 0x0618, 5000)

	c, err := Decode(f.bytes(t), DecodeOptions{})
	require.NoError(t, err)

	s := Summarize(c)
	assert.Equal(t, "Springfield", s.Name)
	assert.Equal(t, 1900, s.StartYear)
	assert.Equal(t, Date{1911, 7, 7}, s.Date)
	assert.Equal(t, int32(5432), s.Population)
	assert.Equal(t, int32(20000), s.Funds)
	assert.Equal(t, 2, s.Bonds)
	assert.Equal(t, int64(250000), s.CityValue)
	assert.Equal(t, "Tornado", s.Weather)
	assert.Equal(t, 1, s.Buildings)
	assert.Equal(t, map[string]int{"light residential": 1}, s.Zones)
	assert.False(t, s.Scenario)
	assert.Len(t, s.Graphs, len(GraphNames))
	assert.Equal(t, int32(1234), s.Graphs["Residents"])

	c.Attributes["weatherTrend"] = 42
	assert.Equal(t, "Unknown (42)", Summarize(c).Weather)
}

func TestSummarySchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("schemas", "summary.schema.json"))
	require.NoError(t, err)

	for _, f := range []*fixture{newFixture(), populated(), scenarioFixture(t)} {
		c, err := Decode(f.bytes(t), DecodeOptions{})
		require.NoError(t, err)

		b, err := json.Marshal(Summarize(c))
		require.NoError(t, err)

		var v any
		require.NoError(t, json.Unmarshal(b, &v))
		assert.NoError(t, schema.Validate(v))
	}
}
