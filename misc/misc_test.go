package misc

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCoverage(t *testing.T) {
	fields := Table()
	require.NotEmpty(t, fields)

	offset := 0
	for _, f := range fields {
		assert.Equal(t, offset, f.Offset, "gap or overlap before %q", f.Name)
		offset = f.Offset + f.Size()
	}
	assert.Equal(t, Size, offset)

	// Spot checks against known offsets
	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, 0x0738, byName["gas_power"].Offset)
	assert.Equal(t, 0x077c, byName["Residential"].Offset)
	assert.Equal(t, 0x0e3c, byName["YearEnd"].Offset)
	assert.Equal(t, 0x0fa0, byName["Ordinances"].Offset)
}

func TestZero(t *testing.T) {
	m, err := Decode(make([]byte, Size))
	require.NoError(t, err)

	for k, v := range m.Attributes {
		assert.Zero(t, v, k)
	}
	assert.Len(t, m.PopulationGraphs, 3)
	assert.Len(t, m.IndustryGraphs, 3)
	for _, s := range m.PopulationGraphs {
		assert.Len(t, s, 20)
	}
	for _, s := range m.IndustryGraphs {
		assert.Len(t, s, 11)
	}
	assert.Len(t, m.Budget.Ledgers, len(LedgerNames))
	assert.Len(t, m.SimulatorSettings, len(SimulatorSettingNames))
	assert.Len(t, m.GameSettings, len(GameSettingNames))
	assert.Len(t, m.Inventions, len(InventionNames))
	assert.Contains(t, m.Attributes, "Extra|155")
	assert.Contains(t, m.Attributes, "Paper List|29")

	b, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, Size), b)
}

func TestRoundTrip(t *testing.T) {
	in := make([]byte, Size)
	for i := 0; i < Size; i += 4 {
		binary.BigEndian.PutUint32(in[i:], uint32(i)*2654435761)
	}

	m, err := Decode(in)
	require.NoError(t, err)

	out, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestInterleave(t *testing.T) {
	b := make([]byte, Size)
	for i := 0; i < 60; i++ {
		binary.BigEndian.PutUint32(b[0x7c+i*4:], uint32(i))
	}

	m, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 3, 6}, m.PopulationGraphs["population_percent"][:3])
	assert.Equal(t, []int32{1, 4, 7}, m.PopulationGraphs["health_le"][:3])
	assert.Equal(t, []int32{2, 5, 8}, m.PopulationGraphs["education_eq"][:3])
	assert.Equal(t, int32(59), m.PopulationGraphs["education_eq"][19])
}

func TestStructured(t *testing.T) {
	b := make([]byte, Size)
	binary.BigEndian.PutUint32(b[0x0014:], 20000)         // TotalFunds
	binary.BigEndian.PutUint32(b[0x01f0+0xd0*4:], 1)      // one City Hall
	binary.BigEndian.PutUint32(b[0x0610+4:], 3000)        // second bond
	binary.BigEndian.PutUint32(b[0x06d8+16+4:], 12345)    // neighbour 1 population
	binary.BigEndian.PutUint32(b[0x077c+0x6c*5+4:], 100)  // Police funding
	binary.BigEndian.PutUint32(b[0x077c+0x6c*5+12+8:], 7) // Police February count
	binary.BigEndian.PutUint32(b[0x0fa0:], 1<<3|1<<19)    // ordinances
	binary.BigEndian.PutUint32(b[0x0fec:], 2)             // GameSpeed

	m, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, int32(20000), m.Attributes["TotalFunds"])
	assert.Equal(t, int32(1), m.BuildingCounts[0xd0])
	assert.Equal(t, int32(3000), m.Budget.Bonds[1])
	assert.Equal(t, 1, m.Budget.OutstandingBonds())
	assert.Equal(t, int32(12345), m.Neighbours[1].Population)
	assert.Equal(t, int32(100), m.Budget.Ledgers["Police"].Funding)
	assert.Equal(t, int32(7), m.Budget.Ledgers["Police"].Months[1].Count)
	assert.Equal(t, int32(2), m.GameSettings["GameSpeed"])
	assert.True(t, m.Budget.Ordinance(3))
	assert.True(t, m.Budget.Ordinance(19))
	assert.False(t, m.Budget.Ordinance(4))
	assert.False(t, m.Budget.Ordinance(20))

	m.Budget.SetOrdinance(3, false)
	m.Budget.SetOrdinance(4, true)
	out, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<4|1<<19), binary.BigEndian.Uint32(out[0x0fa0:]))
}

func TestEncodeMissing(t *testing.T) {
	tables := []struct {
		name   string
		mutate func(*Misc)
		want   string
	}{
		{
			"scalar",
			func(m *Misc) { delete(m.Attributes, "TotalFunds") },
			"TotalFunds",
		},
		{
			"list",
			func(m *Misc) { delete(m.Attributes, "ZonePop|3") },
			"ZonePop|3",
		},
		{
			"series",
			func(m *Misc) { m.IndustryGraphs["industrial_demand"] = nil },
			IndustryGraphs + "/industrial_demand",
		},
		{
			"ledger",
			func(m *Misc) { delete(m.Budget.Ledgers, "Fire") },
			"Budget/Fire",
		},
		{
			"setting",
			func(m *Misc) { delete(m.SimulatorSettings, "Zoom") },
			"Zoom",
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := New()
			table.mutate(&m)
			_, err := m.Encode()
			var me *MissingAttributeError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, table.want, me.Name)
		})
	}
}

func TestDecodeLength(t *testing.T) {
	_, err := Decode(make([]byte, Size-1))
	assert.Error(t, err)
}
