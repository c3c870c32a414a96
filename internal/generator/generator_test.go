package generator

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luki/iotdash/internal/reading"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestGenerateShape(t *testing.T) {
	ref := time.Date(2026, 2, 21, 14, 30, 0, 0, time.UTC)
	got := Generate(1000, seeded(), WithReference(ref))
	require.Len(t, got, 1000)

	ids := make(map[int]bool)
	for i, r := range got {
		require.Equal(t, i+1, r.ID)
		require.Equal(t, reading.DeviceID(i+1), r.DeviceID)
		require.False(t, ids[r.ID], "duplicate id %d", r.ID)
		ids[r.ID] = true
		require.Equal(t, ref.Add(-time.Duration(i)*time.Minute), r.Timestamp)
	}
}

func TestStatusMatchesThresholds(t *testing.T) {
	type bounds struct {
		lo, hi float64
		flag   func(v float64) bool
	}
	numeric := map[reading.SensorType]bounds{
		reading.Temperature: {20, 30, func(v float64) bool { return v > 26 }},
		reading.Humidity:    {40, 70, func(v float64) bool { return v > 60 }},
		reading.Pressure:    {1000, 1030, func(float64) bool { return false }},
		reading.CO2:         {350, 650, func(v float64) bool { return v > 600 }},
		reading.Light:       {100, 1000, func(v float64) bool { return v < 300 }},
		reading.Energy:      {0.1, 1.0, func(v float64) bool { return v > 0.8 }},
	}

	for _, r := range Generate(2000, seeded()) {
		if r.SensorType == reading.Motion {
			require.False(t, r.HasRaw)
			switch r.Value {
			case "Detected":
				require.Equal(t, reading.Alert, r.Status)
			case "None":
				require.Equal(t, reading.Normal, r.Status)
			default:
				t.Fatalf("unexpected motion value %q", r.Value)
			}
			continue
		}

		b, ok := numeric[r.SensorType]
		require.True(t, ok, "unexpected type %v", r.SensorType)
		require.True(t, r.HasRaw)
		require.GreaterOrEqual(t, r.RawValue, b.lo-1e-9)
		require.LessOrEqual(t, r.RawValue, b.hi+1e-9)

		want := reading.Normal
		if b.flag(r.RawValue) {
			want = reading.Warning
		}
		require.Equal(t, want, r.Status, "reading %+v", r)
	}
}

func TestGenerateCoversEnumerations(t *testing.T) {
	types := make(map[reading.SensorType]bool)
	locs := make(map[reading.Location]bool)
	for _, r := range Generate(1000, seeded()) {
		types[r.SensorType] = true
		locs[r.Location] = true
	}
	require.Len(t, types, len(reading.SensorTypes()))
	require.Len(t, locs, len(reading.Locations()))
}

func TestGenerateEmpty(t *testing.T) {
	require.Empty(t, Generate(0))
	require.Empty(t, Generate(-5))
}

func TestSource(t *testing.T) {
	src := NewSource(seeded())
	require.Len(t, src(25), 25)
}
