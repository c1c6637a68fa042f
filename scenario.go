package opencity2k

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Text block tags
const (
	ShortText       uint32 = 0x80000000
	DescriptiveText uint32 = 0x81000000
)

const (
	thumbnailHeader uint32 = 0x80000000
	rowMarker              = 0xff
	legacyBorder           = 0x01
)

// TextBlock is a single TEXT chunk. Known tags carry Text with LF line
// endings; any other tag keeps its payload in Raw.
type TextBlock struct {
	Tag  uint32
	Text string
	Raw  []byte

	// Verbatim is set when the stored text already held LF bytes. Its line
	// breaks are then left exactly as stored.
	Verbatim bool
}

// Known reports whether the block's tag is understood.
func (t *TextBlock) Known() bool {
	return t.Tag == ShortText || t.Tag == DescriptiveText
}

// Conditions are the win and lose conditions of a scenario, stored in SCEN
// after a four byte header.
type Conditions struct {
	DisasterType    uint16
	DisasterX       uint8
	DisasterY       uint8
	TimeLimitMonths uint16
	CitySizeGoal    uint32
	ResidentialGoal uint32
	CommercialGoal  uint32
	IndustrialGoal  uint32
	CashFlowGoal    uint32
	LandValueGoal   uint32
	PollutionLimit  uint32
	TrafficLimit    uint32
	CrimeLimit      uint32
	BuildItemOne    uint8
	BuildItemTwo    uint8
	ItemOneTiles    uint16
	ItemTwoTiles    uint16
}

// Thumbnail is the scenario picture, one palette index per pixel.
type Thumbnail struct {
	Width  int
	Height int
	Pix    []byte
	// BlankRows lists rows that lacked their end marker; they read as blank
	// and are written without one
	BlankRows []int
	// Trailer is anything stored after the last row
	Trailer []byte
}

// At returns the palette index of the pixel at x, y.
func (t *Thumbnail) At(x, y int) uint8 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 0
	}
	return t.Pix[y*t.Width+x]
}

// Paletted returns the thumbnail as an image using the given palette, which
// should be the game's palette.
func (t *Thumbnail) Paletted(p color.Palette) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, t.Width, t.Height), p)
	copy(m.Pix, t.Pix)
	return m
}

// Scenario is the optional scenario data of a city.
type Scenario struct {
	Texts []TextBlock
	// Header is the four bytes preceding the conditions in SCEN
	Header     [4]byte
	Conditions Conditions
	// Trailer is anything stored in SCEN after the conditions
	Trailer   []byte
	Thumbnail Thumbnail
}

func (s *Scenario) text(tag uint32) string {
	for _, t := range s.Texts {
		if t.Tag == tag {
			return t.Text
		}
	}
	return ""
}

// ShortText returns the text shown when the scenario is chosen.
func (s *Scenario) ShortText() string {
	return s.text(ShortText)
}

// Description returns the longer descriptive text.
func (s *Scenario) Description() string {
	return s.text(DescriptiveText)
}

var errThumbnail = errors.New("opencity2k: thumbnail pixel count does not match its dimensions")

func decodeTextBlock(b []byte) (TextBlock, error) {
	if len(b) < 4 {
		return TextBlock{}, fmt.Errorf("opencity2k: TEXT chunk of %d bytes has no tag", len(b))
	}
	t := TextBlock{Tag: binary.BigEndian.Uint32(b)}
	if t.Known() {
		t.Text = decodeText(b[4:])
		if t.Verbatim = strings.ContainsRune(t.Text, '\n'); !t.Verbatim {
			t.Text = toLF(t.Text)
		}
	} else {
		t.Raw = append([]byte(nil), b[4:]...)
	}
	return t, nil
}

func encodeTextBlock(t TextBlock) ([]byte, error) {
	b := make([]byte, 4, 4+len(t.Text)+len(t.Raw))
	binary.BigEndian.PutUint32(b, t.Tag)
	if !t.Known() {
		return append(b, t.Raw...), nil
	}
	s := t.Text
	if !t.Verbatim {
		s = toCR(s)
	}
	text, err := encodeText(s)
	if err != nil {
		return nil, err
	}
	return append(b, text...), nil
}

func conditionsSize() int {
	return binary.Size(Conditions{})
}

func decodeConditions(b []byte) ([4]byte, Conditions, []byte, error) {
	var header [4]byte
	var c Conditions
	if len(b) < len(header)+conditionsSize() {
		return header, c, nil, fmt.Errorf("opencity2k: SCEN chunk is %dB, expected at least %dB", len(b), len(header)+conditionsSize())
	}
	copy(header[:], b)
	r := bytes.NewReader(b[len(header):])
	if err := binary.Read(r, binary.BigEndian, &c); err != nil {
		return header, c, nil, err
	}
	return header, c, append([]byte(nil), b[len(header)+conditionsSize():]...), nil
}

func encodeConditions(s *Scenario) ([]byte, error) {
	b := new(bytes.Buffer)
	b.Write(s.Header[:])
	if err := binary.Write(b, binary.BigEndian, &s.Conditions); err != nil {
		return nil, err
	}
	b.Write(s.Trailer)
	return b.Bytes(), nil
}

func decodeThumbnail(b []byte) (Thumbnail, error) {
	var t Thumbnail
	if len(b) < 8 {
		return t, fmt.Errorf("opencity2k: PICT chunk of %d bytes is too short", len(b))
	}
	if h := binary.BigEndian.Uint32(b); h != thumbnailHeader {
		return t, fmt.Errorf("opencity2k: PICT header is %#08x, expected %#08x", h, thumbnailHeader)
	}
	t.Width = int(binary.LittleEndian.Uint16(b[4:]))
	t.Height = int(binary.LittleEndian.Uint16(b[6:]))

	data := b[8:]
	stride := t.Width + 1
	if t.Height*stride > len(data) {
		return Thumbnail{}, fmt.Errorf("opencity2k: PICT of %dx%d pixels holds only %d bytes", t.Width, t.Height, len(data))
	}
	t.Pix = make([]byte, t.Width*t.Height)

	for y := 0; y < t.Height; y++ {
		start := y * stride
		if data[start+t.Width] != rowMarker {
			t.BlankRows = append(t.BlankRows, y)
			continue
		}
		copy(t.Pix[y*t.Width:], data[start:start+t.Width])
	}
	if end := t.Height * stride; end < len(data) {
		t.Trailer = append([]byte(nil), data[end:]...)
	}

	return t, nil
}

func encodeThumbnail(t *Thumbnail, legacy bool) ([]byte, error) {
	if t.Width < 0 || t.Height < 0 || len(t.Pix) != t.Width*t.Height {
		return nil, errThumbnail
	}

	width, height := t.Width, t.Height
	row := func(y int) []byte {
		return t.Pix[y*t.Width : (y+1)*t.Width]
	}
	if legacy {
		width, height = t.Width+2, t.Height+2
		edge := bytes.Repeat([]byte{legacyBorder}, width)
		row = func(y int) []byte {
			if y == 0 || y == height-1 {
				return edge
			}
			r := make([]byte, 0, width)
			r = append(r, legacyBorder)
			r = append(r, t.Pix[(y-1)*t.Width:y*t.Width]...)
			return append(r, legacyBorder)
		}
	}
	if width > 0xffff || height > 0xffff {
		return nil, errThumbnail
	}

	blank := make(map[int]bool, len(t.BlankRows))
	if !legacy {
		for _, y := range t.BlankRows {
			blank[y] = true
		}
	}

	b := make([]byte, 8, 8+height*(width+1)+len(t.Trailer))
	binary.BigEndian.PutUint32(b, thumbnailHeader)
	binary.LittleEndian.PutUint16(b[4:], uint16(width))
	binary.LittleEndian.PutUint16(b[6:], uint16(height))
	for y := 0; y < height; y++ {
		if blank[y] {
			// No marker, so the row reads back as blank
			b = append(b, make([]byte, width+1)...)
			continue
		}
		b = append(b, row(y)...)
		b = append(b, rowMarker)
	}
	if !legacy {
		b = append(b, t.Trailer...)
	}

	return b, nil
}
