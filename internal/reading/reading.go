// Package reading defines the synthetic IoT sensor sample together with
// the fixed sensor-type and location enumerations.
package reading

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TimestampLayout is the display form of a reading's instant (UTC).
	TimestampLayout = "2006-01-02 15:04:05"
	// MinuteLayout is the minute-of-day key used for chart aggregation.
	MinuteLayout = "15:04"
)

// SensorType is the kind of quantity a sensor reports.
type SensorType int

const (
	Temperature SensorType = iota
	Humidity
	Pressure
	CO2
	Light
	Motion
	Energy

	numSensorTypes
)

var sensorTypeNames = [numSensorTypes]string{
	Temperature: "Temperature",
	Humidity:    "Humidity",
	Pressure:    "Pressure",
	CO2:         "CO2",
	Light:       "Light",
	Motion:      "Motion",
	Energy:      "Energy",
}

func (t SensorType) String() string {
	if t < 0 || t >= numSensorTypes {
		return fmt.Sprintf("SensorType(%d)", int(t))
	}
	return sensorTypeNames[t]
}

// SensorTypes returns every sensor type in display order.
func SensorTypes() []SensorType {
	out := make([]SensorType, numSensorTypes)
	for i := range out {
		out[i] = SensorType(i)
	}
	return out
}

// ParseSensorType resolves a case-insensitive sensor type name.
func ParseSensorType(s string) (SensorType, bool) {
	for i, name := range sensorTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return SensorType(i), true
		}
	}
	return 0, false
}

// Location is one of the named areas a sensor is installed in.
type Location int

const (
	Office Location = iota
	Warehouse
	ProductionFloor
	ServerRoom
	Outdoor
	MeetingRoom
	Cafeteria

	numLocations
)

var locationNames = [numLocations]string{
	Office:          "Office",
	Warehouse:       "Warehouse",
	ProductionFloor: "Production Floor",
	ServerRoom:      "Server Room",
	Outdoor:         "Outdoor",
	MeetingRoom:     "Meeting Room",
	Cafeteria:       "Cafeteria",
}

func (l Location) String() string {
	if l < 0 || l >= numLocations {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locationNames[l]
}

// Locations returns every location in display order.
func Locations() []Location {
	out := make([]Location, numLocations)
	for i := range out {
		out[i] = Location(i)
	}
	return out
}

// ParseLocation resolves a case-insensitive location name.
func ParseLocation(s string) (Location, bool) {
	for i, name := range locationNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Location(i), true
		}
	}
	return 0, false
}

// Status is the classification derived from a reading's value.
type Status int

const (
	Normal Status = iota
	Warning
	Alert
)

func (s Status) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Warning:
		return "Warning"
	case Alert:
		return "Alert"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Statuses returns all statuses in severity order.
func Statuses() []Status {
	return []Status{Normal, Warning, Alert}
}

// Reading is one synthetic sensor sample. Readings are immutable once
// built; Status is fixed at construction.
type Reading struct {
	ID         int
	DeviceID   string // e.g. "DEV007"
	SensorType SensorType
	Location   Location
	Value      string  // e.g. "23.4°C" or "Detected"
	RawValue   float64 // value before formatting (valid only if HasRaw)
	HasRaw     bool
	Timestamp  time.Time
	Status     Status
}

// DeviceID formats the device identifier for a sequence number.
func DeviceID(id int) string {
	return fmt.Sprintf("DEV%03d", id)
}

// TimestampString returns the display timestamp, "YYYY-MM-DD HH:MM:SS" in UTC.
func (r Reading) TimestampString() string {
	return r.Timestamp.UTC().Format(TimestampLayout)
}

// Minute returns the minute-of-day key ("HH:MM", UTC) of the reading.
func (r Reading) Minute() string {
	return r.Timestamp.UTC().Format(MinuteLayout)
}
