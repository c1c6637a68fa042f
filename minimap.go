package opencity2k

import "fmt"

// Metric names one of the eight down-sampled simulation grids.
type Metric int

// Metrics, in the order they are stored
const (
	Traffic Metric = iota
	Pollution
	Value
	Crime
	Police
	Fire
	Density
	Growth
	// NumMetrics is the number of minimaps in a city
	NumMetrics int = iota
)

var metrics = [NumMetrics]struct {
	name  string
	tag   string
	scale int
}{
	{"traffic", "XTRF", 2},
	{"pollution", "XPLT", 2},
	{"value", "XVAL", 2},
	{"crime", "XCRM", 2},
	{"police", "XPLC", 4},
	{"fire", "XFIR", 4},
	{"density", "XPOP", 4},
	{"growth", "XROG", 4},
}

func (m Metric) valid() bool {
	return m >= 0 && int(m) < NumMetrics
}

func (m Metric) String() string {
	if !m.valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metrics[m].name
}

// Tag returns the chunk tag the metric is stored under.
func (m Metric) Tag() string {
	return metrics[m].tag
}

// Scale returns the number of tiles along each edge that share one cell.
func (m Metric) Scale() int {
	return metrics[m].scale
}

// Size returns the edge length of the metric's grid.
func (m Metric) Size() int {
	return MapSize / m.Scale()
}

// Minimap is one down-sampled grid, one byte per cell in row-major order.
type Minimap struct {
	Metric Metric
	Data   []byte
}

func newMinimap(m Metric) Minimap {
	return Minimap{
		Metric: m,
		Data:   make([]byte, m.Size()*m.Size()),
	}
}

func (mm *Minimap) index(at Coord) int {
	scale := mm.Metric.Scale()
	return (at.Row/scale)*mm.Metric.Size() + at.Col/scale
}

// ReadMetric returns the value of metric m covering the tile at. Each cell
// covers a 2x2 or 4x4 block of tiles so neighbouring tiles read the same
// value. Coordinates outside the map read as zero.
func ReadMetric(c *City, at Coord, m Metric) uint8 {
	if !m.valid() || !inBounds(at) {
		return 0
	}
	mm := &c.Minimaps[m]
	i := mm.index(at)
	if i >= len(mm.Data) {
		return 0
	}
	return mm.Data[i]
}

// WriteMetric sets the cell of metric m covering the tile at, which changes
// the value read for every tile sharing that cell.
func WriteMetric(c *City, at Coord, m Metric, v uint8) {
	if !m.valid() || !inBounds(at) {
		return
	}
	mm := &c.Minimaps[m]
	if i := mm.index(at); i < len(mm.Data) {
		mm.Data[i] = v
	}
}
