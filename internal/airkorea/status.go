package airkorea

import (
	"fmt"
	"iter"
	"strconv"
)

// AirStatus is everything extracted from one station page.
type AirStatus struct {
	StationAddress string `json:"station_address"`
	// ObservedAt is the timestamp exactly as the page formats it,
	// ex. "2019-04-13 18시 기준".
	ObservedAt string      `json:"observed_at"`
	Pollutants []Pollutant `json:"pollutants"`
}

// All yields the pollutants in the order the page presents them.
func (s AirStatus) All() iter.Seq[Pollutant] {
	return func(yield func(Pollutant) bool) {
		for _, p := range s.Pollutants {
			if !yield(p) {
				return
			}
		}
	}
}

// Pollutant returns the pollutant with the given code.
func (s AirStatus) Pollutant(name string) (Pollutant, bool) {
	for p := range s.All() {
		if p.Name == name {
			return p, true
		}
	}
	return Pollutant{}, false
}

type Pollutant struct {
	// Name is the short code, ex. "PM10", "SO2" or "CAI".
	Name string `json:"name"`
	// Unit is empty for composite indices.
	Unit  string `json:"unit"`
	Grade Grade  `json:"grade"`
	// Readings is oldest first. A nil entry is a value the page did not
	// report (or reported as something unparsable).
	Readings []*float64 `json:"readings"`
}

// Latest returns the most recent reading, nil if it is absent.
func (p Pollutant) Latest() *float64 {
	if len(p.Readings) == 0 {
		return nil
	}
	return p.Readings[len(p.Readings)-1]
}

func (p Pollutant) String() string {
	level := "--"
	if latest := p.Latest(); latest != nil {
		level = strconv.FormatFloat(*latest, 'f', -1, 64)
	}
	return fmt.Sprintf("%-6s %-10s %s", p.Name, level+p.Unit, p.Grade)
}
