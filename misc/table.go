package misc

// Rule selects how a field in the table is decoded.
type Rule int

// Decoding rules
const (
	// Scalar is a single big-endian int32 stored in Misc.Attributes
	Scalar Rule = iota
	// List is Count consecutive int32s stored in Misc.Attributes as "Name|i"
	List
	// Interleaved is a group of series stored round-robin
	Interleaved
	// Counts is the 256 building population counters
	Counts
	// Bonds is the 50 outstanding bond values
	Bonds
	// Neighbours is the four neighbouring cities
	Neighbours
	// BudgetLedger is one 27 field budget ledger
	BudgetLedger
	// Ordinances is the ordinance flag word
	Ordinances
	// SimulatorSetting is stored in Misc.SimulatorSettings
	SimulatorSetting
	// GameSetting is stored in Misc.GameSettings
	GameSetting
	// Invention is stored in Misc.Inventions
	Invention
)

// Field is one entry of the attribute table.
type Field struct {
	Offset int
	Name   string
	Rule   Rule
	// Count is the number of 4 byte values covered by the field
	Count int
}

// Size returns the number of bytes covered by f.
func (f Field) Size() int {
	return f.Count * 4
}

const (
	// Size is the length of the MISC segment
	Size = 4800

	numBuildingCounts = 256
	numBonds          = 50
	numNeighbours     = 4
	numLedgerFields   = 27
	numMonths         = 12
	ledgerSize        = numLedgerFields * 4
)

// Group names of the interleaved series
const (
	PopulationGraphs = "Population Graphs"
	IndustryGraphs   = "Industry Graphs"
)

var groupMembers = map[string][]string{
	PopulationGraphs: {"population_percent", "health_le", "education_eq"},
	IndustryGraphs:   {"industrial_ratios", "industrial_tax_rate", "industrial_demand"},
}

// LedgerNames lists the budget ledgers in file order.
var LedgerNames = []string{
	"Residential", "Commercial", "Industrial", "Ordinances", "Bonds",
	"Police", "Fire", "Health", "Schools", "Colleges",
	"Road", "Hiway", "Bridge", "Rail", "Subway", "Tunnel",
}

// SimulatorSettingNames lists the fields grouped as simulator settings.
var SimulatorSettingNames = []string{
	"YearEnd", "GlobalSeaLevel", "terCoast", "terRiver", "Military", "Zoom",
	"Compass", "CityCentX", "CityCentY",
}

// GameSettingNames lists the fields grouped as game settings.
var GameSettingNames = []string{
	"GameSpeed", "AutoBudget", "AutoGo", "UserSoundOn", "UserMusicOn", "NoDisasters",
}

// InventionNames lists the invented technology flags in file order.
var InventionNames = []string{
	"gas_power", "nuclear_power", "solar_power", "wind_power", "microwave_power",
	"fusion_power", "airport", "highways", "buses", "subways", "water_treatment",
	"desalinisation", "plymouth", "forest", "darco", "launch", "highway_2",
}

// NeighbourFields names the four values stored per neighbour.
var NeighbourFields = []string{"Name", "Population", "Value", "Fame"}

func scalar(offset int, name string) Field {
	return Field{Offset: offset, Name: name, Rule: Scalar, Count: 1}
}

func list(offset int, name string, count int) Field {
	return Field{Offset: offset, Name: name, Rule: List, Count: count}
}

func one(offset int, name string, rule Rule) Field {
	return Field{Offset: offset, Name: name, Rule: rule, Count: 1}
}

// table is in strictly ascending offset order and covers every byte of the
// segment exactly once.
var table = buildTable()

func buildTable() []Field {
	t := []Field{
		scalar(0x0000, "FirstEntry"),
		scalar(0x0004, "GameMode"),
		one(0x0008, "Compass", SimulatorSetting),
		scalar(0x000c, "baseYear"),
		scalar(0x0010, "simCycle"),
		scalar(0x0014, "TotalFunds"),
		scalar(0x0018, "TotalBonds"),
		scalar(0x001c, "GameLevel"),
		scalar(0x0020, "CityStatus"),
		scalar(0x0024, "CityValue"),
		scalar(0x0028, "LandValue"),
		scalar(0x002c, "CrimeCount"),
		scalar(0x0030, "TrafficCount"),
		scalar(0x0034, "Pollution"),
		scalar(0x0038, "CityFame"),
		scalar(0x003c, "Advertising"),
		scalar(0x0040, "Garbage"),
		scalar(0x0044, "WorkerPercent"),
		scalar(0x0048, "WorkerHealth"),
		scalar(0x004c, "WorkerEducate"),
		scalar(0x0050, "NationalPop"),
		scalar(0x0054, "NationalValue"),
		scalar(0x0058, "NationalTax"),
		scalar(0x005c, "NationalTrend"),
		scalar(0x0060, "heat"),
		scalar(0x0064, "wind"),
		scalar(0x0068, "humid"),
		scalar(0x006c, "weatherTrend"),
		scalar(0x0070, "NewDisaster"),
		scalar(0x0074, "oldResPop"),
		scalar(0x0078, "Rewards"),
		{Offset: 0x007c, Name: PopulationGraphs, Rule: Interleaved, Count: 60},
		{Offset: 0x016c, Name: IndustryGraphs, Rule: Interleaved, Count: 33},
		{Offset: 0x01f0, Name: "Tile Counts", Rule: Counts, Count: numBuildingCounts},
		list(0x05f0, "ZonePop", 8),
		{Offset: 0x0610, Name: "Bonds", Rule: Bonds, Count: numBonds},
		{Offset: 0x06d8, Name: "Neighbours", Rule: Neighbours, Count: numNeighbours * len(NeighbourFields)},
		list(0x0718, "Valve?", 8),
	}

	offset := 0x0738
	for _, name := range InventionNames {
		t = append(t, one(offset, name, Invention))
		offset += 4
	}

	// offset is now 0x077c
	for _, name := range LedgerNames {
		t = append(t, Field{Offset: offset, Name: name, Rule: BudgetLedger, Count: numLedgerFields})
		offset += ledgerSize
	}

	t = append(t,
		one(0x0e3c, "YearEnd", SimulatorSetting),
		one(0x0e40, "GlobalSeaLevel", SimulatorSetting),
		one(0x0e44, "terCoast", SimulatorSetting),
		one(0x0e48, "terRiver", SimulatorSetting),
		one(0x0e4c, "Military", SimulatorSetting),
		list(0x0e50, "Paper List", 6*5),
		list(0x0ec8, "News List", 9*6),
		one(0x0fa0, "Ordinances", Ordinances),
		scalar(0x0fa4, "unemployed"),
		list(0x0fa8, "Military Count", 16),
		scalar(0x0fe8, "SubwayCnt"),
		one(0x0fec, "GameSpeed", GameSetting),
		one(0x0ff0, "AutoBudget", GameSetting),
		one(0x0ff4, "AutoGo", GameSetting),
		one(0x0ff8, "UserSoundOn", GameSetting),
		one(0x0ffc, "UserMusicOn", GameSetting),
		one(0x1000, "NoDisasters", GameSetting),
		scalar(0x1004, "PaperDeliver"),
		scalar(0x1008, "PaperExtra"),
		scalar(0x100c, "PaperChoice"),
		scalar(0x1010, "unknown128"),
		one(0x1014, "Zoom", SimulatorSetting),
		one(0x1018, "CityCentX", SimulatorSetting),
		one(0x101c, "CityCentY", SimulatorSetting),
		scalar(0x1020, "GlobalArcoPop"),
		scalar(0x1024, "ConnectTiles"),
		scalar(0x1028, "TeamsActive"),
		scalar(0x102c, "TotalPop"),
		scalar(0x1030, "IndustryBonus"),
		scalar(0x1034, "PolluteBonus"),
		scalar(0x1038, "oldArrest"),
		scalar(0x103c, "PoliceBonus"),
		scalar(0x1040, "DisasterObject"),
		scalar(0x1044, "CurrentDisaster"),
		scalar(0x1048, "GoDisaster"),
		scalar(0x104c, "SewerBonus"),
		list(0x1050, "Extra", (Size-0x1050)/4),
	)

	return t
}

// Table returns a copy of the attribute table.
func Table() []Field {
	return append([]Field(nil), table...)
}
