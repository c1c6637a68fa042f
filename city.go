/*
Package opencity2k reads and writes SimCity 2000 city files.

A city file is an IFF style container (package iff) holding a 128 by 128 grid
of tiles spread across several per-tile arrays, the fixed layout MISC segment
(package misc), eight down-sampled simulation grids, labels, microsimulations,
moving things, sixteen graphs and, for scenarios, some text, the win
conditions and a thumbnail. Decode builds a City from all of that, including
recovering the buildings (package building), and Encode reverses it.

Chunks that are not understood are carried through unchanged.
*/
package opencity2k

import (
	"github.com/dfloer/OpenCity2k/building"
	"github.com/dfloer/OpenCity2k/iff"
	"github.com/dfloer/OpenCity2k/misc"
)

const (
	// NumLabels is the number of label slots
	NumLabels = 256
	// MaxLabelLength is the longest label that fits in a slot
	MaxLabelLength = labelSize - 1
	// NumMicrosims is the number of microsimulation records
	NumMicrosims = 150
	// MicrosimSize is the size of each microsimulation record
	MicrosimSize = 8
	// NumThings is the number of moving thing slots
	NumThings = 40
	// MaxNameLength is the longest city name that can be stored
	MaxNameLength = cnamSize - 1

	labelSize = 25
	thingSize = 12
	cnamSize  = 32
	cnamMark  = 0x1f
)

// Thing is one entry of the XTHG table, a moving object such as a
// helicopter, ship or disaster.
type Thing struct {
	ID        uint8
	Rotation1 uint8
	Rotation2 uint8
	X         uint8
	Y         uint8
	Extra     [thingSize - 5]byte
}

// Graph lengths
const (
	YearSamples    = 12
	DecadeSamples  = 20
	CenturySamples = 20

	graphSize = (YearSamples + DecadeSamples + CenturySamples) * 4
)

// Graph is one of the graphs shown in the game's graph window.
type Graph struct {
	Year    [YearSamples]int32
	Decade  [DecadeSamples]int32
	Century [CenturySamples]int32
}

// GraphNames lists the graphs in the order they are stored.
var GraphNames = []string{
	"City Size", "Residents", "Commerce", "Industry", "Traffic", "Pollution",
	"Value", "Crime", "Power %", "Water %", "Health", "Education",
	"Unemployment", "GNP", "Nat'n Pop.", "Fed Rate",
}

// City is a decoded city file. It owns every Building; tiles and the three
// classification maps only refer into Buildings.
type City struct {
	Name string
	misc.Misc

	Tiles [NumTiles]Tile

	Buildings   []building.Building
	Structures  map[Coord]building.Ref
	Groundcover map[Coord]building.Ref
	Networks    map[Coord]building.Ref

	// Unclassified keeps building ids no building explains
	Unclassified map[Coord]byte

	Minimaps [NumMetrics]Minimap
	Labels   [NumLabels]string
	Microsim [NumMicrosims][MicrosimSize]byte
	Things   [NumThings]Thing
	Graphs   map[string]Graph

	// Scenario is nil unless the file is a scenario
	Scenario *Scenario

	// Extra holds chunks that are not interpreted, exactly as stored
	Extra []iff.Chunk
}

// NewCity returns an empty city with every tile, attribute, graph and
// minimap present and zeroed.
func NewCity() *City {
	c := &City{
		Misc:         misc.New(),
		Structures:   make(map[Coord]building.Ref),
		Groundcover:  make(map[Coord]building.Ref),
		Networks:     make(map[Coord]building.Ref),
		Unclassified: make(map[Coord]byte),
		Graphs:       make(map[string]Graph, len(GraphNames)),
	}
	for i := range c.Tiles {
		c.Tiles[i].Coord = building.CoordOf(i)
	}
	for m := range c.Minimaps {
		c.Minimaps[m] = newMinimap(Metric(m))
	}
	for _, name := range GraphNames {
		c.Graphs[name] = Graph{}
	}
	return c
}

func inBounds(at Coord) bool {
	return at.Row >= 0 && at.Row < MapSize && at.Col >= 0 && at.Col < MapSize
}

// Tile returns the tile at the given coordinate, or nil if it is off the
// map.
func (c *City) Tile(at Coord) *Tile {
	if !inBounds(at) {
		return nil
	}
	return &c.Tiles[at.Index()]
}

// Building returns the Building r refers to.
func (c *City) Building(r building.Ref) (*building.Building, bool) {
	i, ok := r.Index()
	if !ok || i >= len(c.Buildings) {
		return nil, false
	}
	return &c.Buildings[i], true
}

// BuildingAt returns the building occupying the tile at, if any.
func (c *City) BuildingAt(at Coord) (*building.Building, bool) {
	t := c.Tile(at)
	if t == nil {
		return nil, false
	}
	return c.Building(t.Building)
}

// Label returns the label a tile's text pointer refers to.
func (c *City) Label(at Coord) (string, bool) {
	t := c.Tile(at)
	if t == nil || t.Text == 0 {
		return "", false
	}
	return c.Labels[t.Text], true
}

func (c *City) layout() *building.Layout {
	l := &building.Layout{
		Arena:        c.Buildings,
		Links:        make([]building.Ref, NumTiles),
		Structures:   c.Structures,
		Groundcover:  c.Groundcover,
		Networks:     c.Networks,
		Unclassified: c.Unclassified,
	}
	for i := range c.Tiles {
		l.Links[i] = c.Tiles[i].Building
	}
	return l
}
