// Package aggregate derives chart-ready data from a set of readings:
// per-minute metric series, distributions and the summary cards.
package aggregate

import (
	"sort"

	"github.com/luki/iotdash/internal/reading"
)

// Metric names a value carried by a series point.
type Metric int

const (
	MetricTemperature Metric = iota
	MetricHumidity
)

func (m Metric) String() string {
	switch m {
	case MetricTemperature:
		return "temperature"
	case MetricHumidity:
		return "humidity"
	}
	return "unknown"
}

// SensorType returns the sensor type a metric is sampled from.
func (m Metric) SensorType() reading.SensorType {
	if m == MetricHumidity {
		return reading.Humidity
	}
	return reading.Temperature
}

// Point is one minute of a series. A metric absent from Values is null.
type Point struct {
	Time   string // "HH:MM"
	Values map[Metric]float64
}

// Value returns the point's value for m, if any.
func (p Point) Value(m Metric) (float64, bool) {
	v, ok := p.Values[m]
	return v, ok
}

// Series is a sequence of points ordered ascending by Time.
type Series []Point

// Times returns the minute keys of s in order.
func (s Series) Times() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Time
	}
	return out
}

// ByType returns the readings of one sensor type, preserving order.
func ByType(readings []reading.Reading, t reading.SensorType) []reading.Reading {
	var out []reading.Reading
	for _, r := range readings {
		if r.SensorType == t {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate folds readings into one point per minute of day under metric
// m. When several readings share a minute, the one seen last in iteration
// order wins. Points are sorted ascending by their "HH:MM" key. Readings
// without a numeric value are skipped.
func Aggregate(readings []reading.Reading, m Metric) Series {
	latest := make(map[string]float64)
	var keys []string
	for _, r := range readings {
		if !r.HasRaw {
			continue
		}
		k := r.Minute()
		if _, seen := latest[k]; !seen {
			keys = append(keys, k)
		}
		latest[k] = r.RawValue
	}
	sort.Strings(keys)

	out := make(Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, Point{Time: k, Values: map[Metric]float64{m: latest[k]}})
	}
	return out
}

// Merge left-joins other onto base by minute key. Every base point is
// kept with other's values added where the minute matches; minutes that
// appear only in other are dropped. Neither input is modified.
func Merge(base, other Series) Series {
	index := make(map[string]map[Metric]float64, len(other))
	for _, p := range other {
		index[p.Time] = p.Values
	}

	out := make(Series, 0, len(base))
	for _, p := range base {
		values := make(map[Metric]float64, len(p.Values)+1)
		for m, v := range p.Values {
			values[m] = v
		}
		for m, v := range index[p.Time] {
			if _, ok := values[m]; !ok {
				values[m] = v
			}
		}
		out = append(out, Point{Time: p.Time, Values: values})
	}
	return out
}

// Trend builds the temperature series with humidity merged in by minute.
func Trend(readings []reading.Reading) Series {
	temp := Aggregate(ByType(readings, reading.Temperature), MetricTemperature)
	hum := Aggregate(ByType(readings, reading.Humidity), MetricHumidity)
	return Merge(temp, hum)
}

// Pair is a temperature/humidity sample taken in the same minute.
type Pair struct {
	Time        string
	Temperature float64
	Humidity    float64
}

// Correlate returns the points of a merged series that carry both
// temperature and humidity.
func Correlate(s Series) []Pair {
	var out []Pair
	for _, p := range s {
		t, okT := p.Value(MetricTemperature)
		h, okH := p.Value(MetricHumidity)
		if okT && okH {
			out = append(out, Pair{Time: p.Time, Temperature: t, Humidity: h})
		}
	}
	return out
}
