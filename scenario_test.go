package opencity2k

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/dfloer/OpenCity2k/iff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConditions = Conditions{
	DisasterType:    3,
	DisasterX:       40,
	DisasterY:       50,
	TimeLimitMonths: 60,
	CitySizeGoal:    100000,
	ResidentialGoal: 1,
	CommercialGoal:  2,
	IndustrialGoal:  3,
	CashFlowGoal:    4,
	LandValueGoal:   5,
	PollutionLimit:  6,
	TrafficLimit:    7,
	CrimeLimit:      8,
	BuildItemOne:    0xd0,
	BuildItemTwo:    0xd1,
	ItemOneTiles:    9,
	ItemTwoTiles:    10,
}

func textChunk(tag uint32, payload string) iff.Chunk {
	b := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint32(b, tag)
	return iff.Chunk{Tag: "TEXT", Data: append(b, payload...)}
}

func scenChunk(t *testing.T) iff.Chunk {
	t.Helper()
	b := bytes.NewBuffer([]byte{1, 2, 3, 4})
	require.NoError(t, binary.Write(b, binary.BigEndian, &testConditions))
	b.WriteByte(0x99)
	return iff.Chunk{Tag: "SCEN", Data: b.Bytes()}
}

// pictChunk is a 3x3 picture whose middle row lacks its marker.
func pictChunk() iff.Chunk {
	b := []byte{0x80, 0x00, 0x00, 0x00, 0x03, 0x00, 0x03, 0x00}
	b = append(b, 1, 2, 3, rowMarker)
	b = append(b, 4, 5, 6, 0x00)
	b = append(b, 7, 8, 9, rowMarker)
	b = append(b, 0xaa)
	return iff.Chunk{Tag: "PICT", Data: b}
}

func scenarioFixture(t *testing.T) *fixture {
	f := populated()
	f.extra = append(f.extra,
		textChunk(ShortText, "Save the city\rquickly"),
		textChunk(DescriptiveText, "A long story"),
		textChunk(0x12345678, "\x00\x01raw"),
		scenChunk(t),
		pictChunk(),
	)
	return f
}

func TestScenario(t *testing.T) {
	c, err := Decode(scenarioFixture(t).bytes(t), DecodeOptions{})
	require.NoError(t, err)
	require.NotNil(t, c.Scenario)

	s := c.Scenario
	require.Len(t, s.Texts, 3)
	assert.Equal(t, "Save the city\nquickly", s.ShortText())
	assert.Equal(t, "A long story", s.Description())
	assert.False(t, s.Texts[2].Known())
	assert.Equal(t, []byte("\x00\x01raw"), s.Texts[2].Raw)

	assert.Equal(t, [4]byte{1, 2, 3, 4}, s.Header)
	assert.Equal(t, testConditions, s.Conditions)
	assert.Equal(t, []byte{0x99}, s.Trailer)

	th := s.Thumbnail
	assert.Equal(t, 3, th.Width)
	assert.Equal(t, 3, th.Height)
	assert.Equal(t, []int{1}, th.BlankRows)
	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0, 7, 8, 9}, th.Pix)
	assert.Equal(t, []byte{0xaa}, th.Trailer)
	assert.Equal(t, uint8(8), th.At(1, 2))
	assert.Equal(t, uint8(0), th.At(3, 0))

	// Only the ZZZZ chunk is left over
	require.Len(t, c.Extra, 1)

	b, err := Encode(c, EncodeOptions{})
	require.NoError(t, err)
	out, err := Decode(b, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, c.Scenario, out.Scenario)
	assert.Equal(t, c, out)

	assert.True(t, Summarize(out).Scenario)
}

func TestScenarioIncomplete(t *testing.T) {
	f := populated()
	f.extra = append(f.extra, scenChunk(t), pictChunk())

	c, err := Decode(f.bytes(t), DecodeOptions{})
	require.NoError(t, err)
	assert.Nil(t, c.Scenario)
	assert.Len(t, c.Extra, 3)
}

func TestScenarioErrors(t *testing.T) {
	tables := []struct {
		name  string
		chunk iff.Chunk
	}{
		{"short text", iff.Chunk{Tag: "TEXT", Data: []byte{0x80}}},
		{"short conditions", iff.Chunk{Tag: "SCEN", Data: make([]byte, 10)}},
		{"picture header", iff.Chunk{Tag: "PICT", Data: []byte{0, 0, 0, 0, 1, 0, 1, 0, 5, rowMarker}}},
		{"short picture", iff.Chunk{Tag: "PICT", Data: []byte{0x80, 0, 0, 0}}},
		{"truncated picture", iff.Chunk{Tag: "PICT", Data: []byte{0x80, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 1, 2, 3, rowMarker}}},
		{"missing row", iff.Chunk{Tag: "PICT", Data: []byte{0x80, 0, 0, 0, 2, 0, 2, 0, 1, 2, rowMarker}}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			parts := map[string]iff.Chunk{
				"TEXT": textChunk(ShortText, "x"),
				"SCEN": scenChunk(t),
				"PICT": pictChunk(),
			}
			parts[table.chunk.Tag] = table.chunk

			f := newFixture()
			f.extra = append(f.extra, parts["TEXT"], parts["SCEN"], parts["PICT"])
			_, err := Decode(f.bytes(t), DecodeOptions{})
			assert.Error(t, err)
		})
	}

	c := NewCity()
	c.Scenario = &Scenario{}
	_, err := Encode(c, EncodeOptions{})
	assert.Equal(t, errNoText, err)

	c.Scenario.Texts = []TextBlock{{Tag: ShortText, Text: "x"}}
	c.Scenario.Thumbnail = Thumbnail{Width: 2, Height: 2, Pix: []byte{1}}
	_, err = Encode(c, EncodeOptions{})
	assert.Equal(t, errThumbnail, err)
}

func TestThumbnailLegacyBorder(t *testing.T) {
	th := Thumbnail{
		Width:   2,
		Height:  1,
		Pix:     []byte{7, 8},
		Trailer: []byte{0xaa},
	}

	b, err := encodeThumbnail(&th, true)
	require.NoError(t, err)

	out, err := decodeThumbnail(b)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 3, out.Height)
	assert.Equal(t, []byte{
		1, 1, 1, 1,
		1, 7, 8, 1,
		1, 1, 1, 1,
	}, out.Pix)
	assert.Empty(t, out.BlankRows)
	assert.Empty(t, out.Trailer)

	b, err = encodeThumbnail(&th, false)
	require.NoError(t, err)
	out, err = decodeThumbnail(b)
	require.NoError(t, err)
	assert.Equal(t, th.Pix, out.Pix)
	assert.Equal(t, th.Trailer, out.Trailer)
}

func TestThumbnailPaletted(t *testing.T) {
	th := Thumbnail{Width: 2, Height: 2, Pix: []byte{0, 1, 1, 0}}
	p := color.Palette{color.Black, color.White}

	m := th.Paletted(p)
	assert.Equal(t, 2, m.Bounds().Dx())
	assert.Equal(t, color.White, m.At(1, 0))
	assert.Equal(t, color.Black, m.At(1, 1))
}

func TestTextBlockLineEndings(t *testing.T) {
	tables := []struct {
		name     string
		stored   string
		text     string
		verbatim bool
	}{
		{"carriage returns", "one\rtwo\r", "one\ntwo\n", false},
		{"line feeds", "one\ntwo", "one\ntwo", true},
		{"mixed", "one\r\ntwo\r", "one\r\ntwo\r", true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			in := textChunk(ShortText, table.stored).Data

			tb, err := decodeTextBlock(in)
			require.NoError(t, err)
			assert.Equal(t, table.text, tb.Text)
			assert.Equal(t, table.verbatim, tb.Verbatim)

			out, err := encodeTextBlock(tb)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestText(t *testing.T) {
	b, err := encodeText("Café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'a', 'f', 0xe9}, b)
	assert.Equal(t, "Café", decodeText(b))

	_, err = encodeText("☃")
	assert.Error(t, err)

	assert.Equal(t, []byte("abc"), cstring([]byte("abc\x00def")))
	assert.Equal(t, []byte("abc"), cstring([]byte("abc")))
	assert.Equal(t, "a\r\rb", toCR(toLF("a\r\rb")))
}
