package opencity2k

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dfloer/OpenCity2k/building"
	"github.com/dfloer/OpenCity2k/iff"
	"github.com/dfloer/OpenCity2k/misc"
	"github.com/sirupsen/logrus"
)

type segment struct {
	tag  string
	size int
}

// segments lists the fixed size chunks in the order they are written.
var segments = []segment{
	{"CNAM", cnamSize},
	{"MISC", misc.Size},
	{"ALTM", NumTiles * 2},
	{"XTER", NumTiles},
	{"XBLD", NumTiles},
	{"XZON", NumTiles},
	{"XUND", NumTiles},
	{"XTXT", NumTiles},
	{"XLAB", NumLabels * labelSize},
	{"XMIC", NumMicrosims * MicrosimSize},
	{"XTHG", NumThings * thingSize},
	{"XBIT", NumTiles},
	{Traffic.Tag(), Traffic.Size() * Traffic.Size()},
	{Pollution.Tag(), Pollution.Size() * Pollution.Size()},
	{Value.Tag(), Value.Size() * Value.Size()},
	{Crime.Tag(), Crime.Size() * Crime.Size()},
	{Police.Tag(), Police.Size() * Police.Size()},
	{Fire.Tag(), Fire.Size() * Fire.Size()},
	{Density.Tag(), Density.Size() * Density.Size()},
	{Growth.Tag(), Growth.Size() * Growth.Size()},
	{"XGRP", len(GraphNames) * graphSize},
}

var segmentSizes = func() map[string]int {
	m := make(map[string]int, len(segments))
	for _, s := range segments {
		m[s.tag] = s.size
	}
	return m
}()

// optionalSegment is absent from the oldest cities
const optionalSegment = "CNAM"

// DecodeOptions controls Decode. The zero value is ready to use.
type DecodeOptions struct {
	// Buildings sizes building footprints, nil means building.Default()
	Buildings building.Table
	// Logger receives debug messages about anything unusual in the file
	Logger logrus.FieldLogger
}

func (o DecodeOptions) table() building.Table {
	if o.Buildings != nil {
		return o.Buildings
	}
	return building.Default()
}

func (o DecodeOptions) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

// Decode parses a complete city file.
func Decode(b []byte, opts DecodeOptions) (*City, error) {
	logger := opts.logger()

	f := iff.Form{Kind: iff.City}
	if err := f.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if f.Header.Mac {
		logger.Debug("Removed Macintosh resource fork header")
	}

	hasScenario := true
	for _, tag := range []string{"TEXT", "SCEN", "PICT"} {
		found := false
		for _, ch := range f.Chunks {
			if ch.Tag == tag {
				found = true
				break
			}
		}
		hasScenario = hasScenario && found
	}

	segs := make(map[string][]byte, len(segments))
	var texts [][]byte
	var extra []iff.Chunk
	for _, ch := range f.Chunks {
		_, fixed := segmentSizes[ch.Tag]
		_, seen := segs[ch.Tag]
		switch {
		case fixed && !seen, hasScenario && (ch.Tag == "SCEN" || ch.Tag == "PICT") && !seen:
			e, err := iff.City.Expand(ch)
			if err != nil {
				return nil, err
			}
			segs[ch.Tag] = e.Data
		case hasScenario && ch.Tag == "TEXT":
			texts = append(texts, ch.Data)
		default:
			logger.WithField("tag", ch.Tag).Debug("Preserving uninterpreted chunk")
			extra = append(extra, ch)
		}
	}

	for _, s := range segments {
		data, ok := segs[s.tag]
		if !ok {
			if s.tag == optionalSegment {
				continue
			}
			return nil, &iff.FormatError{Kind: iff.City, Msg: fmt.Sprintf("missing %s chunk", s.tag)}
		}
		if len(data) != s.size {
			return nil, &iff.SizeMismatchError{Tag: s.tag, Declared: s.size, Actual: len(data)}
		}
	}

	c := &City{
		Graphs: make(map[string]Graph, len(GraphNames)),
		Extra:  extra,
	}

	if cnam, ok := segs["CNAM"]; ok {
		c.Name = decodeText(cstring(cnam[1:]))
	}

	m, err := misc.Decode(segs["MISC"])
	if err != nil {
		return nil, err
	}
	c.Misc = m

	corners := make([]byte, NumTiles)
	altm, xter, xzon, xund, xtxt, xbit := segs["ALTM"], segs["XTER"], segs["XZON"], segs["XUND"], segs["XTXT"], segs["XBIT"]
	for i := range c.Tiles {
		t := &c.Tiles[i]
		t.Coord = building.CoordOf(i)
		t.Altitude = UnpackAltitude(binary.BigEndian.Uint16(altm[i*2:]))
		t.Terrain = xter[i]
		t.Corners = xzon[i] >> 4
		t.Zone = Zone(xzon[i] & maxNibble)
		t.Underground = xund[i]
		t.Text = xtxt[i]
		t.Flags = BitFlags(xbit[i])
		corners[i] = t.Corners
	}

	l, err := building.Reconstruct(corners, segs["XBLD"], opts.table())
	if err != nil {
		return nil, err
	}
	c.Buildings = l.Arena
	c.Structures = l.Structures
	c.Groundcover = l.Groundcover
	c.Networks = l.Networks
	c.Unclassified = l.Unclassified
	for i, ref := range l.Links {
		c.Tiles[i].Building = ref
	}

	for i := range c.Minimaps {
		metric := Metric(i)
		c.Minimaps[i] = Minimap{
			Metric: metric,
			Data:   segs[metric.Tag()],
		}
	}

	xlab := segs["XLAB"]
	for i := range c.Labels {
		slot := xlab[i*labelSize : (i+1)*labelSize]
		n := int(slot[0])
		if n > MaxLabelLength {
			logger.WithField("label", i).Debugf("Label length %d truncated", n)
			n = MaxLabelLength
		}
		c.Labels[i] = decodeText(slot[1 : 1+n])
	}

	xmic := segs["XMIC"]
	for i := range c.Microsim {
		copy(c.Microsim[i][:], xmic[i*MicrosimSize:])
	}

	xthg := segs["XTHG"]
	for i := range c.Things {
		raw := xthg[i*thingSize : (i+1)*thingSize]
		t := Thing{
			ID:        raw[0],
			Rotation1: raw[1],
			Rotation2: raw[2],
			X:         raw[3],
			Y:         raw[4],
		}
		copy(t.Extra[:], raw[5:])
		c.Things[i] = t
	}

	xgrp := segs["XGRP"]
	for i, name := range GraphNames {
		var g Graph
		values := make([]int32, 0, graphSize/4)
		for o := i * graphSize; o < (i+1)*graphSize; o += 4 {
			values = append(values, int32(binary.BigEndian.Uint32(xgrp[o:])))
		}
		copy(g.Year[:], values)
		copy(g.Decade[:], values[YearSamples:])
		copy(g.Century[:], values[YearSamples+DecadeSamples:])
		c.Graphs[name] = g
	}

	if hasScenario {
		s, err := decodeScenario(texts, segs["SCEN"], segs["PICT"])
		if err != nil {
			return nil, err
		}
		for _, t := range s.Texts {
			if !t.Known() {
				logger.WithField("tag", fmt.Sprintf("%#08x", t.Tag)).Debug("Preserving unknown TEXT block")
			}
		}
		if len(s.Thumbnail.BlankRows) > 0 {
			logger.WithField("rows", s.Thumbnail.BlankRows).Debug("Thumbnail rows without end marker")
		}
		c.Scenario = s
	}

	return c, nil
}

func decodeScenario(texts [][]byte, scen, pict []byte) (*Scenario, error) {
	s := new(Scenario)
	for _, b := range texts {
		t, err := decodeTextBlock(b)
		if err != nil {
			return nil, err
		}
		s.Texts = append(s.Texts, t)
	}

	var err error
	if s.Header, s.Conditions, s.Trailer, err = decodeConditions(scen); err != nil {
		return nil, err
	}

	if s.Thumbnail, err = decodeThumbnail(pict); err != nil {
		return nil, err
	}

	return s, nil
}

// DecodeFile reads and decodes the city file at path. A city without a name
// is named after the file, as the game does.
func DecodeFile(path string, opts DecodeOptions) (*City, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Decode(b, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if c.Name == "" {
		c.Name = nameFromFile(path)
	}

	return c, nil
}

func nameFromFile(path string) string {
	base := filepath.Base(path)
	name := []rune(strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base))))
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return string(name)
}
