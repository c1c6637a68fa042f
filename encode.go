package opencity2k

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/dfloer/OpenCity2k/iff"
	"github.com/dfloer/OpenCity2k/misc"
)

var errNoText = errors.New("opencity2k: a scenario needs at least one text block")

// EncodeOptions controls Encode. The zero value produces canonical output.
type EncodeOptions struct {
	// LegacyThumbnailBorder writes the scenario thumbnail surrounded by a
	// one pixel border, as older scenarios have it
	LegacyThumbnailBorder bool
}

// Encode serialises c as a complete city file. Uninterpreted chunks are
// appended after the known ones exactly as they were read.
func Encode(c *City, opts EncodeOptions) ([]byte, error) {
	segs := make(map[string][]byte, len(segments))

	name, err := encodeText(c.Name)
	if err != nil {
		return nil, err
	}
	if len(name) > MaxNameLength {
		return nil, fmt.Errorf("opencity2k: city name is %dB, at most %dB fit", len(name), MaxNameLength)
	}
	cnam := make([]byte, cnamSize)
	cnam[0] = cnamMark
	copy(cnam[1:], name)
	segs["CNAM"] = cnam

	if segs["MISC"], err = c.Misc.Encode(); err != nil {
		return nil, err
	}

	altm := make([]byte, NumTiles*2)
	xter := make([]byte, NumTiles)
	xzon := make([]byte, NumTiles)
	xund := make([]byte, NumTiles)
	xtxt := make([]byte, NumTiles)
	xbit := make([]byte, NumTiles)
	for i := range c.Tiles {
		t := &c.Tiles[i]
		if err := t.validate(); err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint16(altm[i*2:], t.Altitude.Pack())
		xter[i] = t.Terrain
		xzon[i] = t.zoneByte()
		xund[i] = t.Underground
		xtxt[i] = t.Text
		xbit[i] = byte(t.Flags)
	}
	segs["ALTM"], segs["XTER"], segs["XZON"], segs["XUND"], segs["XTXT"], segs["XBIT"] = altm, xter, xzon, xund, xtxt, xbit

	if segs["XBLD"], err = c.layout().Flatten(); err != nil {
		return nil, err
	}

	for i := range c.Minimaps {
		metric := Metric(i)
		data := c.Minimaps[i].Data
		if want := metric.Size() * metric.Size(); len(data) != want {
			return nil, &iff.SizeMismatchError{Tag: metric.Tag(), Declared: want, Actual: len(data)}
		}
		segs[metric.Tag()] = data
	}

	xlab := make([]byte, NumLabels*labelSize)
	for i, label := range c.Labels {
		b, err := encodeText(label)
		if err != nil {
			return nil, err
		}
		if len(b) > MaxLabelLength {
			return nil, fmt.Errorf("opencity2k: label %d is %dB, at most %dB fit", i, len(b), MaxLabelLength)
		}
		slot := xlab[i*labelSize:]
		slot[0] = byte(len(b))
		copy(slot[1:], b)
	}
	segs["XLAB"] = xlab

	xmic := make([]byte, 0, NumMicrosims*MicrosimSize)
	for _, m := range c.Microsim {
		xmic = append(xmic, m[:]...)
	}
	segs["XMIC"] = xmic

	xthg := make([]byte, 0, NumThings*thingSize)
	for _, t := range c.Things {
		xthg = append(xthg, t.ID, t.Rotation1, t.Rotation2, t.X, t.Y)
		xthg = append(xthg, t.Extra[:]...)
	}
	segs["XTHG"] = xthg

	xgrp := make([]byte, 0, len(GraphNames)*graphSize)
	for _, name := range GraphNames {
		g, ok := c.Graphs[name]
		if !ok {
			return nil, &misc.MissingAttributeError{Name: "Graph/" + name}
		}
		for _, series := range [][]int32{g.Year[:], g.Decade[:], g.Century[:]} {
			for _, v := range series {
				xgrp = binary.BigEndian.AppendUint32(xgrp, uint32(v))
			}
		}
	}
	segs["XGRP"] = xgrp

	chunks := make([]iff.Chunk, 0, len(segments)+3)
	for _, s := range segments {
		chunks = append(chunks, iff.Chunk{Tag: s.tag, Data: segs[s.tag]})
	}

	if s := c.Scenario; s != nil {
		if len(s.Texts) == 0 {
			return nil, errNoText
		}
		for _, t := range s.Texts {
			b, err := encodeTextBlock(t)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, iff.Chunk{Tag: "TEXT", Data: b})
		}
		scen, err := encodeConditions(s)
		if err != nil {
			return nil, err
		}
		pict, err := encodeThumbnail(&s.Thumbnail, opts.LegacyThumbnailBorder)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, iff.Chunk{Tag: "SCEN", Data: scen}, iff.Chunk{Tag: "PICT", Data: pict})
	}

	f := iff.Pack(iff.City, chunks)
	f.Chunks = append(f.Chunks, c.Extra...)

	return f.MarshalBinary()
}

// EncodeFile writes c to path.
func EncodeFile(path string, c *City, opts EncodeOptions) error {
	b, err := Encode(c, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
