package building

import "fmt"

// Info describes a building id.
type Info struct {
	Name string
	// Size is the edge length of the square footprint, 1 to 4 tiles
	Size int
}

// Table maps building ids to their description.
type Table map[byte]Info

// LookupError is returned when a building id is missing from a Table.
type LookupError struct {
	ID byte
	At Coord
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("building: unknown building id %#02x at %v", e.ID, e.At)
}

// Default returns the table of every id used by the game. The returned map is
// shared and must not be modified.
func Default() Table {
	return defaultTable
}

// Size returns the footprint size of id.
func (t Table) Size(id byte) (int, error) {
	info, ok := t[id]
	if !ok || info.Size < 1 || info.Size > 4 {
		return 0, &LookupError{ID: id}
	}
	return info.Size, nil
}

// Name returns the name of id, or an empty string if it is unknown.
func (t Table) Name(id byte) string {
	return t[id].Name
}

// Ids below this are groundcover or networks rather than buildings
const (
	groundcoverFirst = 0x01
	groundcoverLast  = 0x0d
	networkFirst     = 0x0e
	networkLast      = 0x79
)

// IsGroundcover reports whether id is rubble, trees, radioactivity or a small
// park.
func IsGroundcover(id byte) bool {
	return id >= groundcoverFirst && id <= groundcoverLast
}

// IsNetwork reports whether id is part of an above ground network such as
// roads, rails, power lines, highways, tunnels and bridges.
func IsNetwork(id byte) bool {
	return id >= networkFirst && id <= networkLast
}

var defaultTable = Table{
	0x00: {"Clear Ground", 1},
	0x01: {"Rubble 1", 1},
	0x02: {"Rubble 2", 1},
	0x03: {"Rubble 3", 1},
	0x04: {"Rubble 4", 1},
	0x05: {"Radioactive Waste", 1},
	0x06: {"Tree", 1},
	0x07: {"Couple O Trees", 1},
	0x08: {"More Trees", 1},
	0x09: {"Morer Trees", 1},
	0x0A: {"Even More Trees", 1},
	0x0B: {"Tons O Trees", 1},
	0x0C: {"Veritable Jungle", 1},
	0x0D: {"Small Park", 1},
	0x0E: {"Power Line: Left-Right", 1},
	0x0F: {"Power Line: Top-Bottom", 1},
	0x10: {"Power Line: HighTop-Bottom", 1},
	0x11: {"Power Line: Left-HighRight", 1},
	0x12: {"Power Line: Top-HighBottom", 1},
	0x13: {"Power Line: HighLeft-Right", 1},
	0x14: {"Power Line: Bottom-Right", 1},
	0x15: {"Power Line: Bottom-Left", 1},
	0x16: {"Power Line: Top-Left", 1},
	0x17: {"Power Line: Top-Right", 1},
	0x18: {"Power Line: Right-Top-Left", 1},
	0x19: {"Power Line: Right-Bottom-Left", 1},
	0x1A: {"Power Line: Top-Left-Bottom", 1},
	0x1B: {"Power Line: Left-Top-Bottom", 1},
	0x1C: {"Power Line: Left-Top-Bottom-Right", 1},
	0x1D: {"Road: Left-Right", 1},
	0x1E: {"Road: Top-Bottom", 1},
	0x1F: {"Road: HighTop-Bottom", 1},
	0x20: {"Road: Left-HighRight", 1},
	0x21: {"Road: Top-HighBottom", 1},
	0x22: {"Road: HighLeft-Right", 1},
	0x23: {"Road: Bottom-Right", 1},
	0x24: {"Road: Bottom-Left", 1},
	0x25: {"Road: Top-Left", 1},
	0x26: {"Road: Top-Right", 1},
	0x27: {"Road: Right-Top-Left", 1},
	0x28: {"Road: Right-Bottom-Left", 1},
	0x29: {"Road: Top-Left-Bottom", 1},
	0x2A: {"Road: Left-Top-Bottom", 1},
	0x2B: {"Road: Left-Top-Bottom-Right", 1},
	0x2C: {"Rail: Left-Right", 1},
	0x2D: {"Rail: Top-Bottom", 1},
	0x2E: {"Rail: HighTop-Bottom", 1},
	0x2F: {"Rail: Left-HighRight", 1},
	0x30: {"Rail: Top-HighBottom", 1},
	0x31: {"Rail: HighLeft-Right", 1},
	0x32: {"Rail: Bottom-Right", 1},
	0x33: {"Rail: Bottom-Left", 1},
	0x34: {"Rail: Top-Left", 1},
	0x35: {"Rail: Top-Right", 1},
	0x36: {"Rail: Right-Top-Left", 1},
	0x37: {"Rail: Right-Bottom-Left", 1},
	0x38: {"Rail: Top-Left-Bottom", 1},
	0x39: {"Rail: Left-Top-Bottom", 1},
	0x3A: {"Rail: Left-Top-Bottom-Right", 1},
	0x3B: {"Rail: HighTop-Bottom", 1},
	0x3C: {"Rail: Left-HighRight", 1},
	0x3D: {"Rail: Top-HighBottom", 1},
	0x3E: {"Rail: HighLeft-Right", 1},
	0x3F: {"Tunnel: Top", 1},
	0x40: {"Tunnel: Right", 1},
	0x41: {"Tunnel: Bottom", 1},
	0x42: {"Tunnel: Left", 1},
	0x43: {"Power:Top-Bottom, Road:Left-Right", 1},
	0x44: {"Power:Left-Right, Road:Top-Bottom", 1},
	0x45: {"Road:Left-Right, Rail:Top-Bottom", 1},
	0x46: {"Road:Top-Bottom, Rail:Left-Right", 1},
	0x47: {"Rail:Left-Right, Power:Top-Bottom", 1},
	0x48: {"Rail:Top-Bottom, Power:Left-Right", 1},
	0x49: {"Highway: Left-Right", 1},
	0x4A: {"Highway: Top-Bottom", 1},
	0x4B: {"Highway:Left-Right, Road:Top-Bottom", 1},
	0x4C: {"Highway:Top-Bottom, Road:Left-Right", 1},
	0x4D: {"Highway:Left-Right, Rail:Top-Bottom", 1},
	0x4E: {"Highway:Top-Bottom, Rail:Left-Right", 1},
	0x4F: {"Highway:Top-Bottom, Power:Left-Right", 1},
	0x50: {"Highway:Left-Right, Power:Top-Bottom", 1},
	0x51: {"Suspension Bridge: Start:Bottom", 1},
	0x52: {"Suspension Bridge: Middle:Bottom", 1},
	0x53: {"Suspension Bridge: Center", 1},
	0x54: {"Suspension Bridge: Middle:Top", 1},
	0x55: {"Suspension Bridge: Start:Top", 1},
	0x56: {"Raising Bridge: Tower", 1},
	0x57: {"Bridge: Pylon", 1},
	0x58: {"Bridge: Deck", 1},
	0x59: {"Raising Bridge: Deck:Raised", 1},
	0x5A: {"Rail Bridge: Pylon", 1},
	0x5B: {"Rail Bridge: Deck", 1},
	0x5C: {"Raised Power Lines", 1},
	0x5D: {"Onramp: Highway:Top-Road:Left", 1},
	0x5E: {"Onramp: Highway:Top-Road:Right", 1},
	0x5F: {"Onramp: Highway:Bottom-Road:Left", 1},
	0x60: {"Onramp: Highway:Bottom-Road:Right", 1},
	0x61: {"Highway: HighTop-Bottom", 2},
	0x62: {"Highway: Left-HighRight", 2},
	0x63: {"Highway: Top-HighBottom", 2},
	0x64: {"Highway: HighLeft-Right", 2},
	0x65: {"Highway: Bottom-Right", 2},
	0x66: {"Highway: Bottom-Left", 2},
	0x67: {"Highway: Top-Left", 2},
	0x68: {"Highway: Top-Right", 2},
	0x69: {"Highway: Left-Top-Bottom-Right", 2},
	0x6A: {"Highway Reinforced Bridge Pylon", 2},
	0x6B: {"Highway Reinforced Bridge", 2},
	0x6C: {"Sub-Rail: Top", 1},
	0x6D: {"Sub-Rail: Right", 1},
	0x6E: {"Sub-Rail: Bottom", 1},
	0x6F: {"Sub-Rail: Left", 1},
	0x70: {"Lower Class Homes 1", 1},
	0x71: {"Lower Class Homes 2", 1},
	0x72: {"Lower Class Homes 3", 1},
	0x73: {"Lower Class Homes 4", 1},
	0x74: {"Middle Class Homes 1", 1},
	0x75: {"Middle Class Homes 2", 1},
	0x76: {"Middle Class Homes 3", 1},
	0x77: {"Middle Class Homes 4", 1},
	0x78: {"Upper Class Homes 1", 1},
	0x79: {"Upper Class Homes 2", 1},
	0x7A: {"Upper Class Homes 3", 1},
	0x7B: {"Upper Class Homes 4", 1},
	0x7C: {"Gas Station 1", 1},
	0x7D: {"Bed & Breakfast Inn", 1},
	0x7E: {"Convenience Store", 1},
	0x7F: {"Gas Station 2", 1},
	0x80: {"Small Office Building 1", 1},
	0x81: {"Small Office Building 2", 1},
	0x82: {"Warehouse", 1},
	0x83: {"Cassidy's Toy Store", 1},
	0x84: {"Small WareHouse 1", 1},
	0x85: {"Chemical Storage", 1},
	0x86: {"Small WareHouse 2", 1},
	0x87: {"Industral Substation", 1},
	0x88: {"Construction 7", 1},
	0x89: {"Construction 8", 1},
	0x8A: {"Abandoned Building 1", 1},
	0x8B: {"Abandoned Building 2", 1},
	0x8C: {"Cheap Apartments", 2},
	0x8D: {"Small Apartments 2", 2},
	0x8E: {"Small Apartments 3", 2},
	0x8F: {"Medium Apartments 1", 2},
	0x90: {"Medium Apartments 2", 2},
	0x91: {"Medium Condominiums 1", 2},
	0x92: {"Medium Condominiums 2", 2},
	0x93: {"Medium Condominiums 3", 2},
	0x94: {"Shopping Center", 2},
	0x95: {"Grocery Store", 2},
	0x96: {"Medium Office Building 1", 2},
	0x97: {"Resort hotel", 2},
	0x98: {"Medium Office Building 2", 2},
	0x99: {"Office/Retail", 2},
	0x9A: {"Medium Office Building 3", 2},
	0x9B: {"Medium Office Building 4", 2},
	0x9C: {"Medium Office Building 5", 2},
	0x9D: {"Medium Office Building 6", 2},
	0x9E: {"Medium Warehouse", 2},
	0x9F: {"Chemical Processing 2", 2},
	0xA0: {"Small Factory 1", 2},
	0xA1: {"Small Factory 2", 2},
	0xA2: {"Small Factory 3", 2},
	0xA3: {"Small Factory 4", 2},
	0xA4: {"Small Factory 5", 2},
	0xA5: {"Small Factory 6", 2},
	0xA6: {"Construction 3", 2},
	0xA7: {"Construction 4", 2},
	0xA8: {"Construction 5", 2},
	0xA9: {"Construction 6", 2},
	0xAA: {"Abandoned Building 3", 2},
	0xAB: {"Abandoned Building 4", 2},
	0xAC: {"Abandoned Building 5", 2},
	0xAD: {"Abandoned Building 6", 2},
	0xAE: {"Large Apartments 1", 3},
	0xAF: {"Large Apartments 2", 3},
	0xB0: {"Large Condominiums 1", 3},
	0xB1: {"Large Condominiums 2", 3},
	0xB2: {"Office Park", 3},
	0xB3: {"Office Tower 1", 3},
	0xB4: {"Mini Mall", 3},
	0xB5: {"Theater square", 3},
	0xB6: {"Drive In", 3},
	0xB7: {"Office Tower 2", 3},
	0xB8: {"Office Tower 3", 3},
	0xB9: {"Parking Lot", 3},
	0xBA: {"Historic Office", 3},
	0xBB: {"Corporate Headquarters", 3},
	0xBC: {"Chemical Processing", 3},
	0xBD: {"Large Factory", 3},
	0xBE: {"Industrial Thingamajig", 3},
	0xBF: {"Medium Factory", 3},
	0xC0: {"Large Warehouse 1", 3},
	0xC1: {"Large Warehouse 2", 3},
	0xC2: {"Construction 1", 3},
	0xC3: {"Construction 2", 3},
	0xC4: {"Abandoned Building 7", 3},
	0xC5: {"Abandoned Building 8", 3},
	0xC6: {"Hydoelectric Power Plant 1", 1},
	0xC7: {"Hydoelectric Power Plant 2", 1},
	0xC8: {"Wind Power Plant1", 1},
	0xC9: {"Gas Power Plant", 4},
	0xCA: {"Oil Power Plant", 4},
	0xCB: {"Nuclear Power Plant", 4},
	0xCC: {"Solar Power Plant", 4},
	0xCD: {"Microwave Power Plant", 4},
	0xCE: {"Fusion Power Plant", 4},
	0xCF: {"Coal Power Plant", 4},
	0xD0: {"City Hall", 3},
	0xD1: {"Hospital", 3},
	0xD2: {"Police Station", 3},
	0xD3: {"Fire Station", 3},
	0xD4: {"Museum", 3},
	0xD5: {"Big Park", 3},
	0xD6: {"School", 3},
	0xD7: {"Stadium", 4},
	0xD8: {"Prison", 4},
	0xD9: {"College", 4},
	0xDA: {"Zoo", 4},
	0xDB: {"Statue", 1},
	0xDC: {"Water Pump", 1},
	0xDD: {"Runway", 1},
	0xDE: {"Runway Intersection", 1},
	0xDF: {"Seaport Pier", 1},
	0xE0: {"Crane", 1},
	0xE1: {"Civilian Control Tower", 1},
	0xE2: {"Miliary Control Tower", 1},
	0xE3: {"Warehouse", 1},
	0xE4: {"Airport Building 1", 1},
	0xE5: {"Airport Building 1", 1},
	0xE6: {"Tarmac", 1},
	0xE7: {"F-15b", 1},
	0xE8: {"Military Hangar", 1},
	0xE9: {"Subway Station", 1},
	0xEA: {"Radar", 1},
	0xEB: {"Water Tower", 2},
	0xEC: {"Bus Depot", 2},
	0xED: {"Rail Depot", 2},
	0xEE: {"Civilian Parking Lot", 2},
	0xEF: {"Military Parking Lot", 2},
	0xF0: {"Loading Bay", 2},
	0xF1: {"Top Secret", 2},
	0xF2: {"Cargo Yard", 2},
	0xF3: {"Mayor's House", 2},
	0xF4: {"Water Treatment", 2},
	0xF5: {"Library", 2},
	0xF6: {"Big Hangar", 2},
	0xF7: {"Church", 2},
	0xF8: {"Marina", 3},
	0xF9: {"Missile Silo", 3},
	0xFA: {"Desalinization", 3},
	0xFB: {"Plymouth Arcology", 4},
	0xFC: {"Forest Arcology", 4},
	0xFD: {"Darco", 4},
	0xFE: {"Launch Arcology", 4},
	0xFF: {"Braun Llama Dome", 4},
}
