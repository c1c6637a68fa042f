package opencity2k

import "fmt"

// Zone is the zoning of a tile, the low nibble of its XZON byte.
type Zone uint8

// Zones
const (
	ZoneNone Zone = iota
	ZoneLightResidential
	ZoneDenseResidential
	ZoneLightCommercial
	ZoneDenseCommercial
	ZoneLightIndustrial
	ZoneDenseIndustrial
	ZoneMilitary
	ZoneAirport
	ZoneSeaport
)

var zoneNames = [...]string{
	ZoneNone:             "none",
	ZoneLightResidential: "light residential",
	ZoneDenseResidential: "dense residential",
	ZoneLightCommercial:  "light commercial",
	ZoneDenseCommercial:  "dense commercial",
	ZoneLightIndustrial:  "light industrial",
	ZoneDenseIndustrial:  "dense industrial",
	ZoneMilitary:         "military",
	ZoneAirport:          "airport",
	ZoneSeaport:          "seaport",
}

func (z Zone) String() string {
	if int(z) < len(zoneNames) {
		return zoneNames[z]
	}
	return fmt.Sprintf("zone(%d)", uint8(z))
}
