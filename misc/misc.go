/*
Package misc implements the MISC segment of a city file, 4800 bytes of scalar
simulation state at fixed offsets.

Almost every value is a big-endian signed 32-bit integer. A handful of ranges
are structured: two groups of graph series stored round-robin, the building
population counters, the bond list, the neighbouring cities, the budget
ledgers and the ordinance flags. Settings and invented technologies are plain
integers but are kept apart from the generic attributes.

Many of the names are reverse engineered and their meaning is uncertain; such
values are carried through untouched.
*/
package misc

import (
	"encoding/binary"
	"fmt"
)

// Neighbour is one of the four neighbouring cities.
type Neighbour struct {
	Name       int32
	Population int32
	Value      int32
	Fame       int32
}

// Month is one month of a budget ledger.
type Month struct {
	Count   int32
	Funding int32
}

// Ledger is one line of the city budget.
type Ledger struct {
	Count   int32
	Funding int32
	Unknown int32
	Months  [numMonths]Month
}

// Budget holds the bonds, ordinances and ledgers.
type Budget struct {
	Bonds [numBonds]int32
	// Ordinances is a set of 20 flags; the upper bits are kept as found
	Ordinances uint32
	Ledgers    map[string]Ledger
}

// NumOrdinances is the number of ordinance flags.
const NumOrdinances = 20

// Ordinance reports whether ordinance i is enacted.
func (b *Budget) Ordinance(i int) bool {
	if i < 0 || i >= NumOrdinances {
		return false
	}
	return b.Ordinances&(1<<uint(i)) != 0
}

// SetOrdinance enacts or repeals ordinance i.
func (b *Budget) SetOrdinance(i int, on bool) {
	if i < 0 || i >= NumOrdinances {
		return
	}
	if on {
		b.Ordinances |= 1 << uint(i)
	} else {
		b.Ordinances &^= 1 << uint(i)
	}
}

// OutstandingBonds returns the number of non-zero bond slots.
func (b *Budget) OutstandingBonds() int {
	n := 0
	for _, v := range b.Bonds {
		if v != 0 {
			n++
		}
	}
	return n
}

// Misc is the decoded MISC segment.
type Misc struct {
	Attributes        map[string]int32
	PopulationGraphs  map[string][]int32
	IndustryGraphs    map[string][]int32
	BuildingCounts    [numBuildingCounts]int32
	Neighbours        [numNeighbours]Neighbour
	Budget            Budget
	SimulatorSettings map[string]int32
	GameSettings      map[string]int32
	Inventions        map[string]int32
}

// MissingAttributeError is returned by Encode when a value required by the
// table is absent or malformed.
type MissingAttributeError struct {
	Name string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("misc: missing attribute %q", e.Name)
}

func listKey(name string, i int) string {
	return fmt.Sprintf("%s|%d", name, i)
}

// New returns a Misc with every attribute present and zeroed.
func New() Misc {
	m, _ := Decode(make([]byte, Size))
	return m
}

func (m *Misc) group(name string) map[string][]int32 {
	if name == IndustryGraphs {
		return m.IndustryGraphs
	}
	return m.PopulationGraphs
}

// Decode parses a MISC segment, walking the table in offset order.
func Decode(b []byte) (Misc, error) {
	m := Misc{
		Attributes:        make(map[string]int32),
		PopulationGraphs:  make(map[string][]int32),
		IndustryGraphs:    make(map[string][]int32),
		SimulatorSettings: make(map[string]int32),
		GameSettings:      make(map[string]int32),
		Inventions:        make(map[string]int32),
		Budget: Budget{
			Ledgers: make(map[string]Ledger),
		},
	}

	if len(b) != Size {
		return m, fmt.Errorf("misc: segment is %dB, expected %dB", len(b), Size)
	}

	at := func(offset int) int32 {
		return int32(binary.BigEndian.Uint32(b[offset : offset+4]))
	}

	for _, f := range table {
		switch f.Rule {
		case Scalar:
			m.Attributes[f.Name] = at(f.Offset)
		case List:
			for i := 0; i < f.Count; i++ {
				m.Attributes[listKey(f.Name, i)] = at(f.Offset + i*4)
			}
		case Interleaved:
			members := groupMembers[f.Name]
			series := m.group(f.Name)
			for i := 0; i < f.Count; i++ {
				name := members[i%len(members)]
				series[name] = append(series[name], at(f.Offset+i*4))
			}
		case Counts:
			for i := range m.BuildingCounts {
				m.BuildingCounts[i] = at(f.Offset + i*4)
			}
		case Bonds:
			for i := range m.Budget.Bonds {
				m.Budget.Bonds[i] = at(f.Offset + i*4)
			}
		case Neighbours:
			for i := range m.Neighbours {
				o := f.Offset + i*16
				m.Neighbours[i] = Neighbour{
					Name:       at(o),
					Population: at(o + 4),
					Value:      at(o + 8),
					Fame:       at(o + 12),
				}
			}
		case BudgetLedger:
			var l Ledger
			l.Count = at(f.Offset)
			l.Funding = at(f.Offset + 4)
			l.Unknown = at(f.Offset + 8)
			for i := range l.Months {
				o := f.Offset + 12 + i*8
				l.Months[i] = Month{Count: at(o), Funding: at(o + 4)}
			}
			m.Budget.Ledgers[f.Name] = l
		case Ordinances:
			m.Budget.Ordinances = uint32(at(f.Offset))
		case SimulatorSetting:
			m.SimulatorSettings[f.Name] = at(f.Offset)
		case GameSetting:
			m.GameSettings[f.Name] = at(f.Offset)
		case Invention:
			m.Inventions[f.Name] = at(f.Offset)
		}
	}

	return m, nil
}

// Encode serialises m, writing every field at the same offset it was read
// from. Any attribute, series, ledger or setting that the table names but m
// lacks results in a *MissingAttributeError.
func (m *Misc) Encode() ([]byte, error) {
	b := make([]byte, Size)

	put := func(offset int, v int32) {
		binary.BigEndian.PutUint32(b[offset:offset+4], uint32(v))
	}

	lookup := func(src map[string]int32, name string) (int32, error) {
		v, ok := src[name]
		if !ok {
			return 0, &MissingAttributeError{Name: name}
		}
		return v, nil
	}

	for _, f := range table {
		switch f.Rule {
		case Scalar:
			v, err := lookup(m.Attributes, f.Name)
			if err != nil {
				return nil, err
			}
			put(f.Offset, v)
		case List:
			for i := 0; i < f.Count; i++ {
				v, err := lookup(m.Attributes, listKey(f.Name, i))
				if err != nil {
					return nil, err
				}
				put(f.Offset+i*4, v)
			}
		case Interleaved:
			members := groupMembers[f.Name]
			series := m.group(f.Name)
			per := f.Count / len(members)
			for _, name := range members {
				if len(series[name]) != per {
					return nil, &MissingAttributeError{Name: f.Name + "/" + name}
				}
			}
			for i := 0; i < f.Count; i++ {
				put(f.Offset+i*4, series[members[i%len(members)]][i/len(members)])
			}
		case Counts:
			for i, v := range m.BuildingCounts {
				put(f.Offset+i*4, v)
			}
		case Bonds:
			for i, v := range m.Budget.Bonds {
				put(f.Offset+i*4, v)
			}
		case Neighbours:
			for i, n := range m.Neighbours {
				o := f.Offset + i*16
				put(o, n.Name)
				put(o+4, n.Population)
				put(o+8, n.Value)
				put(o+12, n.Fame)
			}
		case BudgetLedger:
			l, ok := m.Budget.Ledgers[f.Name]
			if !ok {
				return nil, &MissingAttributeError{Name: "Budget/" + f.Name}
			}
			put(f.Offset, l.Count)
			put(f.Offset+4, l.Funding)
			put(f.Offset+8, l.Unknown)
			for i, month := range l.Months {
				o := f.Offset + 12 + i*8
				put(o, month.Count)
				put(o+4, month.Funding)
			}
		case Ordinances:
			put(f.Offset, int32(m.Budget.Ordinances))
		case SimulatorSetting:
			v, err := lookup(m.SimulatorSettings, f.Name)
			if err != nil {
				return nil, err
			}
			put(f.Offset, v)
		case GameSetting:
			v, err := lookup(m.GameSettings, f.Name)
			if err != nil {
				return nil, err
			}
			put(f.Offset, v)
		case Invention:
			v, err := lookup(m.Inventions, f.Name)
			if err != nil {
				return nil, err
			}
			put(f.Offset, v)
		}
	}

	return b, nil
}
