package reading

import (
	"strconv"
	"time"
)

// Threshold describes how a sensor type's value is drawn, formatted and
// classified. Numeric values are Min + u*Span for u in [0,1), rounded to
// Decimals places before classification.
type Threshold struct {
	Min      float64
	Span     float64
	Decimals int
	Unit     string

	// Above and Below mark the strict bounds outside of which the value
	// is flagged with Level.
	Above    float64
	HasAbove bool
	Below    float64
	HasBelow bool
	Level    Status

	// Categorical types have no numeric value; u > Cutoff means the
	// event was observed and is flagged with Level.
	Categorical bool
	Cutoff      float64
	Observed    string
	Idle        string
}

var thresholds = [numSensorTypes]Threshold{
	Temperature: {Min: 20, Span: 10, Decimals: 1, Unit: "°C", Above: 26, HasAbove: true, Level: Warning},
	Humidity:    {Min: 40, Span: 30, Decimals: 1, Unit: "%", Above: 60, HasAbove: true, Level: Warning},
	Pressure:    {Min: 1000, Span: 30, Decimals: 0, Unit: "hPa"},
	CO2:         {Min: 350, Span: 300, Decimals: 0, Unit: "ppm", Above: 600, HasAbove: true, Level: Warning},
	Light:       {Min: 100, Span: 900, Decimals: 0, Unit: "lux", Below: 300, HasBelow: true, Level: Warning},
	Motion:      {Categorical: true, Cutoff: 0.7, Observed: "Detected", Idle: "None", Level: Alert},
	Energy:      {Min: 0.1, Span: 0.9, Decimals: 2, Unit: "kWh", Above: 0.8, HasAbove: true, Level: Warning},
}

// ThresholdFor returns the table entry for a sensor type.
func ThresholdFor(t SensorType) Threshold {
	if t < 0 || t >= numSensorTypes {
		return Threshold{}
	}
	return thresholds[t]
}

// Classify returns the status of a numeric value.
func (th Threshold) Classify(v float64) Status {
	if th.HasAbove && v > th.Above {
		return th.Level
	}
	if th.HasBelow && v < th.Below {
		return th.Level
	}
	return Normal
}

// ClassifyLabel returns the status of a categorical value.
func (th Threshold) ClassifyLabel(label string) Status {
	if th.Categorical && label == th.Observed {
		return th.Level
	}
	return Normal
}

// Round formats v with the entry's precision and parses it back, so the
// raw value always agrees with the displayed one.
func (th Threshold) Round(v float64) (float64, string) {
	s := strconv.FormatFloat(v, 'f', th.Decimals, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r, s
}

// New builds a reading for sequence number id from a uniform draw u in [0,1).
func New(id int, t SensorType, loc Location, u float64, ts time.Time) Reading {
	th := ThresholdFor(t)
	r := Reading{
		ID:         id,
		DeviceID:   DeviceID(id),
		SensorType: t,
		Location:   loc,
		Timestamp:  ts,
	}

	if th.Categorical {
		r.Value = th.Idle
		if u > th.Cutoff {
			r.Value = th.Observed
		}
		r.Status = th.ClassifyLabel(r.Value)
		return r
	}

	raw, s := th.Round(th.Min + u*th.Span)
	r.Value = s + th.Unit
	r.RawValue = raw
	r.HasRaw = true
	r.Status = th.Classify(raw)
	return r
}
