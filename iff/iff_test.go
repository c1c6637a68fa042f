package iff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(k Kind, chunks ...Chunk) []byte {
	var body bytes.Buffer
	for _, c := range chunks {
		body.WriteString(c.Tag)
		binary.Write(&body, binary.BigEndian, uint32(len(c.Data)))
		body.Write(c.Data)
	}
	var b bytes.Buffer
	b.WriteString(k.Magic())
	binary.Write(&b, binary.BigEndian, uint32(body.Len()+4))
	b.WriteString(k.Type())
	b.Write(body.Bytes())
	return b.Bytes()
}

func testChunks() []Chunk {
	return []Chunk{
		{Tag: "CNAM", Data: bytes.Repeat([]byte{'A'}, 32)},
		{Tag: "XTER", Data: []byte{0x83, 0x00}},
		{Tag: "TEXT", Data: []byte("first")},
		{Tag: "TEXT", Data: []byte("second")},
		{Tag: "ZZZZ", Data: []byte{}},
	}
}

func TestStream(t *testing.T) {
	in := testChunks()
	b := build(City, in...)

	h, b, err := Validate(b, City)
	require.NoError(t, err)
	assert.Equal(t, "FORM", h.Magic)
	assert.Equal(t, "SCDH", h.Type)
	assert.Equal(t, uint32(len(b)-8), h.Size)
	assert.False(t, h.Mac)

	chunks, err := Stream(b, len(b))
	require.NoError(t, err)
	require.Len(t, chunks, len(in))
	for i := range in {
		assert.Equal(t, in[i].Tag, chunks[i].Tag)
		assert.True(t, bytes.Equal(in[i].Data, chunks[i].Data))
	}
}

func TestChunkAt(t *testing.T) {
	b := build(City, Chunk{Tag: "XBIT", Data: []byte{1, 2, 3}})
	c, n, err := ChunkAt(b, HeaderSize)
	require.NoError(t, err)
	assert.Equal(t, "XBIT", c.Tag)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3}, c.Data)

	_, _, err = ChunkAt(b[:len(b)-1], HeaderSize)
	var te *TruncatedChunkError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "XBIT", te.Tag)
}

func TestStreamFramingError(t *testing.T) {
	b := build(City, Chunk{Tag: "XBIT", Data: []byte{1, 2, 3}})
	// Claim a longer payload than the container holds
	binary.BigEndian.PutUint32(b[HeaderSize+4:], 4)

	_, err := Stream(b, len(b))
	var te *TruncatedChunkError
	assert.True(t, errors.As(err, &te))

	// Trailing bytes too short to be a chunk header
	b = build(City, Chunk{Tag: "XBIT", Data: []byte{1, 2, 3}})
	b = append(b, 0, 0, 0)
	binary.BigEndian.PutUint32(b[4:], uint32(len(b)-8))
	_, err = Stream(b, len(b))
	assert.True(t, errors.As(err, &te))
}

func TestValidateSizeMismatch(t *testing.T) {
	b := build(City, testChunks()...)

	for _, delta := range []int{-1, 1} {
		d := append([]byte(nil), b...)
		binary.BigEndian.PutUint32(d[4:], uint32(len(d)-8+delta))
		_, _, err := Validate(d, City)
		var se *SizeMismatchError
		require.True(t, errors.As(err, &se), "delta %d", delta)
		assert.Equal(t, len(d)+delta, se.Declared)
		assert.Equal(t, len(d), se.Actual)
	}
}

func TestValidateFormat(t *testing.T) {
	b := build(City)

	_, _, err := Validate(b, Tileset)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))

	d := append([]byte(nil), b...)
	copy(d[8:], "XXXX")
	_, _, err = Validate(d, City)
	assert.True(t, errors.As(err, &fe))

	_, _, err = Validate([]byte("FORM"), City)
	assert.True(t, errors.As(err, &fe))

	tiles := build(Tileset, Chunk{Tag: "TILE", Data: []byte{0, 0}})
	h, _, err := Validate(tiles, Tileset)
	require.NoError(t, err)
	assert.Equal(t, "MIFF", h.Magic)
}

func TestValidateClassic(t *testing.T) {
	b := make([]byte, 0x100)
	copy(b, classicMagic)
	copy(b[0x41:], classicSignature)

	_, _, err := Validate(b, City)
	var ue *UnsupportedVariantError
	assert.True(t, errors.As(err, &ue))
}

func TestValidateMac(t *testing.T) {
	inner := build(City, testChunks()...)
	b := append(make([]byte, macOffset), inner...)
	// Garbage after the declared size is dropped
	b = append(b, 0xde, 0xad)

	h, out, err := Validate(b, City)
	require.NoError(t, err)
	assert.True(t, h.Mac)
	assert.Equal(t, inner, out)

	f := Form{Kind: City}
	require.NoError(t, f.UnmarshalBinary(b))
	assert.Len(t, f.Chunks, len(testChunks()))
}

func TestFormRoundTrip(t *testing.T) {
	in := []Chunk{
		{Tag: "CNAM", Data: bytes.Repeat([]byte{0x20}, 32)},
		{Tag: "XTER", Data: make([]byte, 16384)},
		{Tag: "TEXT", Data: []byte("abc")},
	}

	b, err := Pack(City, in).MarshalBinary()
	require.NoError(t, err)

	f := Form{Kind: City}
	require.NoError(t, f.UnmarshalBinary(b))
	assert.Equal(t, uint32(len(b)-8), f.Header.Size)

	// CNAM and TEXT are stored raw, XTER is compressed
	assert.Equal(t, in[0].Data, f.Chunks[0].Data)
	assert.Less(t, len(f.Chunks[1].Data), 16384)
	assert.Equal(t, in[2].Data, f.Chunks[2].Data)

	out, err := f.Unpack()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = (&Form{Kind: City, Chunks: []Chunk{{Tag: "BAD"}}}).MarshalBinary()
	assert.Equal(t, errTagLength, err)
}

func TestCompressedPolicy(t *testing.T) {
	for _, tag := range []string{"CNAM", "ALTM", "TEXT", "SCEN"} {
		assert.False(t, City.Compressed(tag), tag)
	}
	for _, tag := range []string{"MISC", "XTER", "XBLD", "XGRP", "PICT"} {
		assert.True(t, City.Compressed(tag), tag)
	}
	assert.False(t, Tileset.Compressed("TILE"))
	assert.True(t, Tileset.Compressed("PALT"))
}

func TestFrame(t *testing.T) {
	var b bytes.Buffer
	for _, c := range testChunks() {
		b.WriteString(c.Tag)
		binary.Write(&b, binary.BigEndian, uint32(len(c.Data)))
		b.Write(c.Data)
	}
	chunks, err := Frame(b.Bytes())
	require.NoError(t, err)
	assert.Len(t, chunks, len(testChunks()))
}
