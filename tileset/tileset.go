/*
Package tileset reads SimCity 2000 tileset (.mif) files.

A tileset is a MIFF container holding a single uncompressed TILE chunk. After
two bytes of unknown purpose the TILE payload is itself a sequence of chunks:
optional NAME chunks, each naming the shape that follows it, and one chunk
per shape. A shape starts with a ten byte header of id, width and height as
big-endian 16-bit values and the length of the pixel data as a big-endian
32-bit value, followed by the pixel rows.
*/
package tileset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dfloer/OpenCity2k/iff"
)

const (
	tileTag    = "TILE"
	nameTag    = "NAME"
	prefixSize = 2
	headerSize = 10

	// NAME payloads carry the building id at offset 1 and the name from 4
	nameBuilding = 1
	nameOffset   = 4
)

var errShortName = errors.New("tileset: NAME chunk too short")

// Shape is a single sprite.
type Shape struct {
	ID     uint16
	Width  int
	Height int
	// Length is the declared size of the pixel data
	Length uint32
	// Tag is the sub-chunk tag the shape was stored under
	Tag string
	// Name and Building are only set if a NAME chunk preceded the shape;
	// Building is then the XBLD id the shape draws
	Name     string
	Building int
	Named    bool
	// Data is the encoded pixel rows
	Data []byte
}

// Blank reports whether the shape is a placeholder with no picture, which
// the game stores as a single row.
func (s *Shape) Blank() bool {
	return s.Height <= 1
}

func (s *Shape) String() string {
	if s.Named {
		return fmt.Sprintf("%d %q (building %#02x) %dx%d", s.ID, s.Name, s.Building, s.Width, s.Height)
	}
	return fmt.Sprintf("%d %dx%d", s.ID, s.Width, s.Height)
}

// Tileset is a decoded tileset file.
type Tileset struct {
	Header iff.Header
	// Prefix is the two bytes at the start of the TILE payload
	Prefix [prefixSize]byte
	Shapes []Shape
	// Extra holds any chunks other than TILE, uncompressed
	Extra []iff.Chunk
}

// Shape returns the first shape with the given id.
func (t *Tileset) Shape(id uint16) (*Shape, bool) {
	for i := range t.Shapes {
		if t.Shapes[i].ID == id {
			return &t.Shapes[i], true
		}
	}
	return nil, false
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func decodeShape(c iff.Chunk) (Shape, error) {
	if len(c.Data) < headerSize {
		return Shape{}, fmt.Errorf("tileset: shape %s is %dB, too short for its header", c.Tag, len(c.Data))
	}
	return Shape{
		Tag:    c.Tag,
		ID:     binary.BigEndian.Uint16(c.Data[0:]),
		Width:  int(binary.BigEndian.Uint16(c.Data[2:])),
		Height: int(binary.BigEndian.Uint16(c.Data[4:])),
		Length: binary.BigEndian.Uint32(c.Data[6:]),
		Data:   c.Data[headerSize:],
	}, nil
}

// Decode parses a complete tileset file.
func Decode(b []byte) (*Tileset, error) {
	f := iff.Form{Kind: iff.Tileset}
	if err := f.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	chunks, err := f.Unpack()
	if err != nil {
		return nil, err
	}

	t := &Tileset{Header: f.Header}

	var tile []byte
	found := false
	for _, c := range chunks {
		if c.Tag == tileTag && !found {
			tile, found = c.Data, true
			continue
		}
		t.Extra = append(t.Extra, c)
	}
	if !found {
		return nil, &iff.FormatError{Kind: iff.Tileset, Msg: "missing TILE chunk"}
	}
	if len(tile) < prefixSize {
		return nil, &iff.SizeMismatchError{Tag: tileTag, Declared: prefixSize, Actual: len(tile)}
	}
	copy(t.Prefix[:], tile)

	subs, err := iff.Frame(tile[prefixSize:])
	if err != nil {
		return nil, err
	}

	var name []byte
	for _, c := range subs {
		if c.Tag == nameTag {
			if len(c.Data) < nameOffset {
				return nil, errShortName
			}
			name = c.Data
			continue
		}

		s, err := decodeShape(c)
		if err != nil {
			return nil, err
		}
		if name != nil {
			s.Name = cstring(name[nameOffset:])
			s.Building = int(name[nameBuilding])
			s.Named = true
			name = nil
		}
		t.Shapes = append(t.Shapes, s)
	}

	return t, nil
}
