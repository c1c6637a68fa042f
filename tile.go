package opencity2k

import (
	"fmt"
	"strings"

	"github.com/dfloer/OpenCity2k/building"
)

// Coord addresses a tile by row and column.
type Coord = building.Coord

const (
	// MapSize is the edge length of a city in tiles
	MapSize = building.MapSize
	// NumTiles is the number of tiles in a city
	NumTiles = building.NumTiles

	maxTunnel  = 0x7f
	maxUnknown = 0x03
	maxLevel   = 0x1f
	maxNibble  = 0x0f
)

// Altitude is the decoded 16-bit ALTM word of a tile.
//
// From the most significant bit down the word holds seven bits of tunnel
// depth, the water flag, two bits of unknown purpose, one unused bit and five
// bits of altitude. The unused bit is carried as Reserved.
type Altitude struct {
	Tunnel   uint8
	Water    bool
	Unknown  uint8
	Reserved bool
	Level    uint8
}

// UnpackAltitude splits an ALTM word into its fields.
func UnpackAltitude(v uint16) Altitude {
	return Altitude{
		Tunnel:   uint8(v >> 9 & maxTunnel),
		Water:    v>>8&1 != 0,
		Unknown:  uint8(v >> 6 & maxUnknown),
		Reserved: v>>5&1 != 0,
		Level:    uint8(v & maxLevel),
	}
}

// Pack is the inverse of UnpackAltitude. Out of range fields are masked.
func (a Altitude) Pack() uint16 {
	v := uint16(a.Tunnel&maxTunnel)<<9 | uint16(a.Unknown&maxUnknown)<<6 | uint16(a.Level&maxLevel)
	if a.Water {
		v |= 1 << 8
	}
	if a.Reserved {
		v |= 1 << 5
	}
	return v
}

// BitFlags is the XBIT byte of a tile.
type BitFlags uint8

// Tile flags, most significant bit first
const (
	Powerable BitFlags = 0x80 >> iota
	Powered
	Piped
	Watered
	LandValue
	WaterCoverage
	Rotate
	SaltWater
)

var flagNames = []struct {
	flag BitFlags
	name string
}{
	{Powerable, "powerable"},
	{Powered, "powered"},
	{Piped, "piped"},
	{Watered, "watered"},
	{LandValue, "land_value"},
	{WaterCoverage, "water_coverage"},
	{Rotate, "rotate"},
	{SaltWater, "salt_water"},
}

// Has reports whether every flag in mask is set.
func (f BitFlags) Has(mask BitFlags) bool {
	return f&mask == mask
}

func (f BitFlags) String() string {
	var set []string
	for _, n := range flagNames {
		if f.Has(n.flag) {
			set = append(set, n.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, "|")
}

// Tile is a single cell of the city grid.
type Tile struct {
	Coord    Coord
	Altitude Altitude
	Terrain  uint8
	// Zone is the low nibble of the XZON byte
	Zone Zone
	// Corners is the high nibble of the XZON byte, see the building.Corner
	// constants
	Corners     uint8
	Underground uint8
	// Text is an index into City.Labels, zero for none
	Text  uint8
	Flags BitFlags
	// Building is NoBuilding or a reference into City.Buildings
	Building building.Ref
}

// IsAnchor reports whether the tile marks the reference corner of a building.
func (t *Tile) IsAnchor() bool {
	return t.Corners&building.CornerLeft != 0
}

func (t *Tile) zoneByte() byte {
	return t.Corners<<4 | byte(t.Zone)&maxNibble
}

func (t *Tile) String() string {
	return fmt.Sprintf("%v: altitude %d, terrain %#02x, zone %v, flags %v", t.Coord, t.Altitude.Level, t.Terrain, t.Zone, t.Flags)
}

// InvalidFieldError is returned by Encode when a model value does not fit
// the bits available for it on disk.
type InvalidFieldError struct {
	Field string
	At    Coord
	Value int
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("opencity2k: %s at %v has out of range value %d", e.Field, e.At, e.Value)
}

func (t *Tile) validate() error {
	switch {
	case t.Altitude.Tunnel > maxTunnel:
		return &InvalidFieldError{Field: "tunnel depth", At: t.Coord, Value: int(t.Altitude.Tunnel)}
	case t.Altitude.Unknown > maxUnknown:
		return &InvalidFieldError{Field: "altitude unknown bits", At: t.Coord, Value: int(t.Altitude.Unknown)}
	case t.Altitude.Level > maxLevel:
		return &InvalidFieldError{Field: "altitude", At: t.Coord, Value: int(t.Altitude.Level)}
	case t.Zone > maxNibble:
		return &InvalidFieldError{Field: "zone", At: t.Coord, Value: int(t.Zone)}
	case t.Corners > maxNibble:
		return &InvalidFieldError{Field: "corners", At: t.Coord, Value: int(t.Corners)}
	}
	return nil
}
