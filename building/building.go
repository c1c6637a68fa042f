/*
Package building recovers multi-tile buildings from the flat per-tile building
id array (XBLD) of a city and flattens them back again.

The file stores no building list. Instead every tile carries the id of whatever
occupies it and the tile at one corner of each building, the anchor, has its
left corner bit set in the zone array. The game finds buildings by scanning for
those anchors and this package does exactly the same, including its
shortcomings: a building whose anchor bit is missing is never found, and tiles
in the last row and column of the map are never treated as part of a larger
building.
*/
package building

import (
	"errors"
	"fmt"
)

const (
	// MapSize is the edge length of a city in tiles
	MapSize = 128
	// NumTiles is the number of tiles in a city
	NumTiles = MapSize * MapSize

	// Footprints stop short of this row and column, matching the game
	edgeLimit = MapSize - 1
)

// Corner bits, as stored in the upper nibble of each zone byte
const (
	CornerTop uint8 = 1 << iota
	CornerRight
	CornerBottom
	CornerLeft
)

var errLength = errors.New("building: grids must hold exactly one byte per tile")

// Coord addresses a tile by row and column, both 0 to 127.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Index returns the row-major offset of c.
func (c Coord) Index() int {
	return c.Row*MapSize + c.Col
}

// CoordOf is the inverse of Coord.Index.
func CoordOf(i int) Coord {
	return Coord{Row: i / MapSize, Col: i % MapSize}
}

// Class distinguishes the three kinds of thing held in the building id array.
type Class int

// Classes of building
const (
	Structure Class = iota
	Groundcover
	Network
)

func (c Class) String() string {
	switch c {
	case Structure:
		return "building"
	case Groundcover:
		return "groundcover"
	case Network:
		return "network"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Building is a single discovered building, groundcover or network tile.
type Building struct {
	ID     byte
	Anchor Coord
	Size   int
	Class  Class
}

// Name returns the name of the building from the default table.
func (b Building) Name() string {
	return defaultTable.Name(b.ID)
}

func (b Building) String() string {
	return fmt.Sprintf("%s: %s (%#02x) at %v", b.Class, b.Name(), b.ID, b.Anchor)
}

// Ref is a non-owning reference into a building arena. The zero value refers
// to no building.
type Ref uint32

// NoBuilding is the zero Ref.
const NoBuilding Ref = 0

// RefOf returns the Ref for arena slot i.
func RefOf(i int) Ref {
	return Ref(i + 1)
}

// Index returns the arena slot referenced by r.
func (r Ref) Index() (int, bool) {
	if r == NoBuilding {
		return 0, false
	}
	return int(r) - 1, true
}

// Layout is the result of reconstruction. The arena owns every Building and
// each tile and classification map refers into it.
type Layout struct {
	Arena []Building
	// Links holds one Ref per tile in row-major order
	Links []Ref

	Structures  map[Coord]Ref
	Groundcover map[Coord]Ref
	Networks    map[Coord]Ref

	// Unclassified holds the non-zero ids of tiles no building explains,
	// such as footprint holes and building tiles without an anchor
	Unclassified map[Coord]byte
}

// NewLayout returns an empty Layout.
func NewLayout() *Layout {
	return &Layout{
		Links:        make([]Ref, NumTiles),
		Structures:   make(map[Coord]Ref),
		Groundcover:  make(map[Coord]Ref),
		Networks:     make(map[Coord]Ref),
		Unclassified: make(map[Coord]byte),
	}
}

// Get returns the Building r refers to.
func (l *Layout) Get(r Ref) (*Building, bool) {
	i, ok := r.Index()
	if !ok || i >= len(l.Arena) {
		return nil, false
	}
	return &l.Arena[i], true
}

func (l *Layout) add(b Building) Ref {
	l.Arena = append(l.Arena, b)
	return RefOf(len(l.Arena) - 1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Reconstruct scans the tiles in row-major order looking for anchors, tiles
// with the left corner bit set in corners. Each anchor creates one Building
// sized from t and every tile in its footprint carrying the same id is linked
// to it; tiles with a different id are holes and stay unlinked. Tiles outside
// of any footprint are classified as groundcover or network by id. Any other
// non-zero id is kept in Unclassified.
//
// corners holds the corner nibble of each tile and ids the building id, both
// in row-major order.
func Reconstruct(corners, ids []byte, t Table) (*Layout, error) {
	if len(corners) != NumTiles || len(ids) != NumTiles {
		return nil, errLength
	}

	l := NewLayout()
	covered := make([]bool, NumTiles)

	for row := 0; row < MapSize; row++ {
		for col := 0; col < MapSize; col++ {
			at := Coord{Row: row, Col: col}
			i := at.Index()
			id := ids[i]

			if corners[i]&CornerLeft != 0 {
				size, err := t.Size(id)
				if err != nil {
					return nil, &LookupError{ID: id, At: at}
				}

				ref := l.add(Building{ID: id, Anchor: at, Size: size, Class: Structure})
				l.Structures[at] = ref
				l.Links[i] = ref
				covered[i] = true

				for r := row; r < minInt(row+size, edgeLimit); r++ {
					for c := col; c < minInt(col+size, edgeLimit); c++ {
						j := r*MapSize + c
						covered[j] = true
						if j != i && ids[j] == id {
							l.Links[j] = ref
						}
					}
				}
				continue
			}

			if covered[i] {
				continue
			}

			switch {
			case IsGroundcover(id):
				ref := l.add(Building{ID: id, Anchor: at, Size: 1, Class: Groundcover})
				l.Groundcover[at] = ref
				l.Links[i] = ref
			case IsNetwork(id):
				ref := l.add(Building{ID: id, Anchor: at, Size: 1, Class: Network})
				l.Networks[at] = ref
				l.Links[i] = ref
			}
		}
	}

	for i, id := range ids {
		if id != 0 && l.Links[i] == NoBuilding {
			l.Unclassified[CoordOf(i)] = id
		}
	}

	return l, nil
}

// Flatten rebuilds the per-tile building id array. Unclassified ids are
// written first, then networks, then groundcover, then every tile linked to a
// building, later layers overwriting earlier ones.
func (l *Layout) Flatten() ([]byte, error) {
	if len(l.Links) != NumTiles {
		return nil, errLength
	}

	ids := make([]byte, NumTiles)

	for at, id := range l.Unclassified {
		if at.Row < 0 || at.Row >= MapSize || at.Col < 0 || at.Col >= MapSize {
			return nil, fmt.Errorf("building: coordinate %v out of range", at)
		}
		ids[at.Index()] = id
	}

	layer := func(m map[Coord]Ref) error {
		for at, ref := range m {
			b, ok := l.Get(ref)
			if !ok {
				return fmt.Errorf("building: dangling reference at %v", at)
			}
			if at.Row < 0 || at.Row >= MapSize || at.Col < 0 || at.Col >= MapSize {
				return fmt.Errorf("building: coordinate %v out of range", at)
			}
			ids[at.Index()] = b.ID
		}
		return nil
	}

	if err := layer(l.Networks); err != nil {
		return nil, err
	}
	if err := layer(l.Groundcover); err != nil {
		return nil, err
	}
	if err := layer(l.Structures); err != nil {
		return nil, err
	}

	for i, ref := range l.Links {
		if ref == NoBuilding {
			continue
		}
		b, ok := l.Get(ref)
		if !ok {
			return nil, fmt.Errorf("building: dangling reference at %v", CoordOf(i))
		}
		if b.Class == Structure {
			ids[i] = b.ID
		}
	}

	return ids, nil
}
