package iff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/dfloer/OpenCity2k/rle"
)

var errTagLength = errors.New("iff: chunk tags must be 4 bytes")

// Form is a complete container with its chunks in file order. It implements
// the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces; the
// chunk data is held exactly as stored, use Unpack and Pack to deal with
// compression.
type Form struct {
	Kind   Kind
	Header Header
	Chunks []Chunk
}

// MarshalBinary writes the container header and chunks, computing the
// declared size from the chunks present.
func (f *Form) MarshalBinary() ([]byte, error) {
	size := 4
	for _, c := range f.Chunks {
		if len(c.Tag) != 4 {
			return nil, errTagLength
		}
		size += ChunkHeaderSize + len(c.Data)
	}
	if int64(size) > math.MaxUint32 {
		return nil, fmt.Errorf("iff: container too large, %d bytes", size)
	}

	b := bytes.NewBuffer(make([]byte, 0, size+8))

	b.WriteString(f.Kind.Magic())
	if err := binary.Write(b, binary.BigEndian, uint32(size)); err != nil {
		return nil, err
	}
	b.WriteString(f.Kind.Type())

	for _, c := range f.Chunks {
		b.WriteString(c.Tag)
		if err := binary.Write(b, binary.BigEndian, uint32(len(c.Data))); err != nil {
			return nil, err
		}
		b.Write(c.Data)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary validates and splits b according to f.Kind. No partial
// result is kept on error.
func (f *Form) UnmarshalBinary(b []byte) error {
	h, b, err := Validate(b, f.Kind)
	if err != nil {
		return err
	}

	chunks, err := Stream(b, len(b))
	if err != nil {
		return err
	}

	f.Header = h
	f.Chunks = chunks

	return nil
}

// Expand returns a copy of c with its payload decompressed if the kind's
// policy says it is stored compressed.
func (k Kind) Expand(c Chunk) (Chunk, error) {
	if !k.Compressed(c.Tag) {
		return Chunk{Tag: c.Tag, Data: append([]byte(nil), c.Data...)}, nil
	}
	data, err := rle.Decompress(c.Data)
	if err != nil {
		return Chunk{}, fmt.Errorf("iff: chunk %s: %w", c.Tag, err)
	}
	return Chunk{Tag: c.Tag, Data: data}, nil
}

// Unpack returns a copy of the chunks with compressed payloads expanded.
func (f *Form) Unpack() ([]Chunk, error) {
	out := make([]Chunk, 0, len(f.Chunks))
	for _, c := range f.Chunks {
		e, err := f.Kind.Expand(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Pack builds a Form of the given kind from uncompressed chunks, compressing
// each payload according to the kind's policy.
func Pack(k Kind, chunks []Chunk) *Form {
	f := &Form{
		Kind: k,
		Header: Header{
			Magic: k.Magic(),
			Type:  k.Type(),
		},
		Chunks: make([]Chunk, 0, len(chunks)),
	}
	for _, c := range chunks {
		data := c.Data
		if k.Compressed(c.Tag) {
			data = rle.Compress(data)
		}
		f.Chunks = append(f.Chunks, Chunk{Tag: c.Tag, Data: data})
	}
	return f
}
