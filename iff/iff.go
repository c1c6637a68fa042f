/*
Package iff implements the IFF-style container used by SimCity 2000 for city
(.sc2, .scn) and tileset (.mif) files.

A file starts with a 12 byte header; a 4 byte magic ("FORM" for cities, "MIFF"
for tilesets), a big-endian 32-bit size covering everything after the first 8
bytes and a 4 byte type ("SCDH" for cities, "SC2K" for tilesets). This is
followed by a stream of chunks, each being a 4 byte ASCII tag, a big-endian
32-bit payload length and then the payload itself.

Most chunk payloads are compressed using the scheme in package rle, a small
fixed set of tags per kind of file is stored raw.

Files written by the Macintosh version of the game carry an extra 0x80 byte
resource fork header which is removed transparently.
*/
package iff

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the size of the outer container header
	HeaderSize = 12
	// ChunkHeaderSize is the size of the tag and length preceding each chunk
	ChunkHeaderSize = 8

	macOffset = 0x80
)

var (
	classicMagic     = []byte{0x00, 0x0d}
	classicSignature = []byte("CITYMCRP")
)

// Kind selects the flavour of container.
type Kind int

// Supported kinds of container
const (
	City Kind = iota
	Tileset
)

func (k Kind) String() string {
	switch k {
	case City:
		return "city"
	case Tileset:
		return "tileset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Magic returns the expected first four bytes of the file.
func (k Kind) Magic() string {
	if k == Tileset {
		return "MIFF"
	}
	return "FORM"
}

// Type returns the expected type tag found at offset 8.
func (k Kind) Type() string {
	if k == Tileset {
		return "SC2K"
	}
	return "SCDH"
}

var raw = map[Kind]map[string]struct{}{
	City: {
		"CNAM": {},
		"ALTM": {},
		"TEXT": {},
		"SCEN": {},
	},
	Tileset: {
		"TILE": {},
	},
}

// Compressed reports whether chunks with the given tag are stored compressed
// in this kind of file.
func (k Kind) Compressed(tag string) bool {
	_, ok := raw[k][tag]
	return !ok
}

// Header is the decoded outer container header.
type Header struct {
	Magic string
	// Size is the declared size; the file is Size + 8 bytes long
	Size uint32
	Type string
	// Mac is set if a Macintosh resource fork header was removed
	Mac bool
}

func isMac(b []byte) bool {
	return len(b) >= macOffset+HeaderSize &&
		!bytes.Equal(b[0:4], []byte("FORM")) &&
		bytes.Equal(b[macOffset:macOffset+4], []byte("FORM"))
}

func isClassic(b []byte) bool {
	return len(b) >= 0x49 &&
		bytes.Equal(b[0:2], classicMagic) &&
		bytes.Equal(b[0x41:0x49], classicSignature)
}

// Validate checks the container header of b against the given kind. It
// returns the header and the buffer to continue parsing from, which will be a
// subslice of b if the Macintosh variant was detected.
func Validate(b []byte, k Kind) (Header, []byte, error) {
	var h Header

	if k == City && isMac(b) {
		size := int(binary.BigEndian.Uint32(b[macOffset+4:macOffset+8])) + 8
		if macOffset+size > len(b) {
			return h, nil, &SizeMismatchError{Declared: size, Actual: len(b) - macOffset}
		}
		b = b[macOffset : macOffset+size]
		h.Mac = true
	}

	if len(b) < HeaderSize {
		return h, nil, &FormatError{Kind: k, Msg: fmt.Sprintf("file too short, %d bytes", len(b))}
	}

	h.Magic = string(b[0:4])
	h.Size = binary.BigEndian.Uint32(b[4:8])
	h.Type = string(b[8:12])

	if h.Magic != k.Magic() {
		if k == City && isClassic(b) {
			return h, nil, &UnsupportedVariantError{Variant: "SimCity Classic city"}
		}
		return h, nil, &FormatError{Kind: k, Msg: fmt.Sprintf("not a %s file, claiming: %q", k.Magic(), h.Magic)}
	}

	if actual := len(b); int64(h.Size)+8 != int64(actual) {
		return h, nil, &SizeMismatchError{Declared: int(h.Size) + 8, Actual: actual}
	}

	if h.Type != k.Type() {
		return h, nil, &FormatError{Kind: k, Msg: fmt.Sprintf("file type is not %s, claiming: %q", k.Type(), h.Type)}
	}

	return h, b, nil
}

// Chunk is a single tagged block of data.
type Chunk struct {
	Tag  string
	Data []byte
}

// ChunkAt reads the chunk starting at offset, returning the chunk and its
// declared payload length.
func ChunkAt(b []byte, offset int) (Chunk, int, error) {
	if offset < 0 || offset+ChunkHeaderSize > len(b) {
		return Chunk{}, 0, &TruncatedChunkError{Offset: offset, Remaining: len(b) - offset}
	}
	tag := string(b[offset : offset+4])
	length := binary.BigEndian.Uint32(b[offset+4 : offset+8])
	start := offset + ChunkHeaderSize
	if int64(start)+int64(length) > int64(len(b)) {
		return Chunk{}, 0, &TruncatedChunkError{Tag: tag, Offset: offset, Remaining: len(b) - start}
	}
	return Chunk{Tag: tag, Data: b[start : start+int(length)]}, int(length), nil
}

// Stream splits the chunks following the container header. total is the
// full length of the container, including the header. The chunks must consume
// exactly total - 12 bytes.
func Stream(b []byte, total int) ([]Chunk, error) {
	if total > len(b) {
		return nil, &SizeMismatchError{Declared: total, Actual: len(b)}
	}

	var chunks []Chunk
	remaining := total - HeaderSize
	for remaining > 0 {
		offset := total - remaining
		c, n, err := ChunkAt(b[:total], offset)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		remaining -= n + ChunkHeaderSize
	}
	if remaining != 0 {
		return nil, &TruncatedChunkError{Offset: total - remaining, Remaining: remaining}
	}

	return chunks, nil
}

// Frame splits a bare sequence of chunks with no outer header, as found
// nested inside tileset TILE payloads.
func Frame(b []byte) ([]Chunk, error) {
	var chunks []Chunk
	for offset := 0; offset < len(b); {
		c, n, err := ChunkAt(b, offset)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		offset += n + ChunkHeaderSize
	}
	return chunks, nil
}
