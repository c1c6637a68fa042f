package opencity2k

import (
	"encoding/json"
	"fmt"
)

const (
	daysPerMonth  = 25
	monthsPerYear = 12
	daysPerYear   = daysPerMonth * monthsPerYear
)

var months = [monthsPerYear]string{
	"January", "February", "March", "April", "May", "June", "July",
	"August", "September", "October", "November", "December",
}

var weather = map[int32]string{
	0x00: "Cold",
	0x01: "Clear",
	0x02: "Hot",
	0x03: "Foggy",
	0x04: "Chilly",
	0x05: "Overcast",
	0x06: "Snow",
	0x07: "Rain",
	0x08: "Windy",
	0x09: "Blizzard",
	0x0a: "Hurricane",
	0x0b: "Tornado",
}

// Date is a date in game time. Every month has 25 days so a year is 300.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DateOf converts a number of elapsed days since the start of baseYear.
func DateOf(baseYear, days int) Date {
	if days < 0 {
		days = 0
	}
	into := days % daysPerYear
	return Date{
		Year:  baseYear + days/daysPerYear,
		Month: into/daysPerMonth + 1,
		Day:   into%daysPerMonth + 1,
	}
}

func (d Date) String() string {
	if d.Month < 1 || d.Month > monthsPerYear {
		return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
	}
	return fmt.Sprintf("%s %d, %d", months[d.Month-1], d.Day, d.Year)
}

// MarshalJSON adds the date in words alongside its parts.
func (d Date) MarshalJSON() ([]byte, error) {
	type date Date
	return json.Marshal(struct {
		date
		Text string `json:"text"`
	}{date(d), d.String()})
}

// Summary is the short report of a city.
type Summary struct {
	Name               string           `json:"name"`
	StartYear          int              `json:"start_year"`
	Date               Date             `json:"date"`
	Population         int32            `json:"population"`
	ArcologyPopulation int32            `json:"arcology_population"`
	Funds              int32            `json:"funds"`
	Bonds              int              `json:"bonds"`
	CityValue          int64            `json:"city_value"`
	Crime              int32            `json:"crime"`
	Traffic            int32            `json:"traffic"`
	Pollution          int32            `json:"pollution"`
	Weather            string           `json:"weather"`
	Buildings          int              `json:"buildings"`
	Zones              map[string]int   `json:"zones"`
	Scenario           bool             `json:"scenario"`
	Graphs             map[string]int32 `json:"graphs"`
}

// Summarize extracts the headline figures of c.
func Summarize(c *City) Summary {
	attr := func(name string) int32 {
		return c.Attributes[name]
	}

	w, ok := weather[attr("weatherTrend")]
	if !ok {
		w = fmt.Sprintf("Unknown (%d)", attr("weatherTrend"))
	}

	s := Summary{
		Name:               c.Name,
		StartYear:          int(attr("baseYear")),
		Date:               DateOf(int(attr("baseYear")), int(attr("simCycle"))),
		Population:         attr("TotalPop"),
		ArcologyPopulation: attr("GlobalArcoPop"),
		Funds:              attr("TotalFunds"),
		Bonds:              c.Budget.OutstandingBonds(),
		CityValue:          int64(attr("CityValue")) * 1000,
		Crime:              attr("CrimeCount"),
		Traffic:            attr("TrafficCount"),
		Pollution:          attr("Pollution"),
		Weather:            w,
		Buildings:          len(c.Structures),
		Zones:              make(map[string]int),
		Scenario:           c.Scenario != nil,
		Graphs:             make(map[string]int32, len(GraphNames)),
	}
	for _, name := range GraphNames {
		s.Graphs[name] = c.Graphs[name].Year[0]
	}
	for i := range c.Tiles {
		if z := c.Tiles[i].Zone; z != ZoneNone {
			s.Zones[z.String()]++
		}
	}

	return s
}
