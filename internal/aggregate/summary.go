package aggregate

import (
	"strconv"

	"github.com/luki/iotdash/internal/reading"
)

// LocationCount is the number of readings taken at one location.
type LocationCount struct {
	Location reading.Location
	Count    int
}

// CountByLocation counts readings per location, in location order.
// Locations without readings are omitted.
func CountByLocation(readings []reading.Reading) []LocationCount {
	counts := make(map[reading.Location]int)
	for _, r := range readings {
		counts[r.Location]++
	}
	var out []LocationCount
	for _, l := range reading.Locations() {
		if n := counts[l]; n > 0 {
			out = append(out, LocationCount{Location: l, Count: n})
		}
	}
	return out
}

// StatusCount is the number of readings with one status.
type StatusCount struct {
	Status reading.Status
	Count  int
}

// CountByStatus counts readings per status. All statuses are present,
// in severity order.
func CountByStatus(readings []reading.Reading) []StatusCount {
	counts := make(map[reading.Status]int)
	for _, r := range readings {
		counts[r.Status]++
	}
	out := make([]StatusCount, 0, len(reading.Statuses()))
	for _, s := range reading.Statuses() {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// Consumption is a device category's energy use.
type Consumption struct {
	Device string
	KWh    float64
}

// EnergyConsumption returns the fixed per-category consumption figures.
func EnergyConsumption() []Consumption {
	return []Consumption{
		{Device: "HVAC", KWh: 450},
		{Device: "Lighting", KWh: 200},
		{Device: "Computers", KWh: 300},
		{Device: "Servers", KWh: 550},
		{Device: "Other", KWh: 150},
	}
}

// Card is one summary tile.
type Card struct {
	Title string
	Value string
	Note  string
}

// Summary holds the headline figures of a working set.
type Summary struct {
	TotalDevices  int
	ActiveSensors int
	DataPoints    string
	Alerts        int
}

// Summarize computes the headline figures. Active sensors are readings
// in Normal status; alerts are Warning and Alert readings combined.
func Summarize(readings []reading.Reading) Summary {
	s := Summary{TotalDevices: len(readings), DataPoints: "1.2M"}
	for _, r := range readings {
		switch r.Status {
		case reading.Normal:
			s.ActiveSensors++
		case reading.Warning, reading.Alert:
			s.Alerts++
		}
	}
	return s
}

// Cards renders the summary as display tiles.
func (s Summary) Cards() []Card {
	return []Card{
		{Title: "Total Devices", Value: strconv.Itoa(s.TotalDevices), Note: "+10% from last month"},
		{Title: "Active Sensors", Value: strconv.Itoa(s.ActiveSensors), Note: "+5% from last week"},
		{Title: "Data Points", Value: s.DataPoints, Note: "+20% from last month"},
		{Title: "Alerts", Value: strconv.Itoa(s.Alerts), Note: "-2% from yesterday"},
	}
}
