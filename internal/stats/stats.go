// Package stats folds a working set of readings into per-type
// min/peak/avg figures plus a bounded tail of recent values for
// sparklines.
package stats

import (
	"math"

	"github.com/luki/iotdash/internal/reading"
)

// TailSize is the number of recent values kept per type.
const TailSize = 120

// Summary accumulates the numeric readings of one sensor type. Min, Peak,
// Avg and Last cover every value added; the tail only the newest ones.
type Summary struct {
	Count int
	Min   float64
	Peak  float64
	Sum   float64
	Last  float64

	tail []float64
	size int
}

// NewSummary returns an empty summary keeping at most size tail values.
func NewSummary(size int) *Summary {
	return &Summary{
		Min:  math.MaxFloat64,
		Peak: -math.MaxFloat64,
		size: size,
	}
}

// Add folds in v, evicting the oldest tail value once the tail is full.
func (s *Summary) Add(v float64) {
	s.Count++
	s.Sum += v
	s.Last = v
	if v < s.Min {
		s.Min = v
	}
	if v > s.Peak {
		s.Peak = v
	}

	if s.size <= 0 {
		return
	}
	if len(s.tail) == s.size {
		copy(s.tail, s.tail[1:])
		s.tail[len(s.tail)-1] = v
		return
	}
	s.tail = append(s.tail, v)
}

// Avg returns the mean of every value added, or 0 if none.
func (s *Summary) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Tail returns up to the last n values, oldest first.
func (s *Summary) Tail(n int) []float64 {
	if n <= 0 || len(s.tail) == 0 {
		return nil
	}
	start := max(len(s.tail)-n, 0)
	out := make([]float64, len(s.tail)-start)
	copy(out, s.tail[start:])
	return out
}

// Store holds one summary per sensor type.
type Store struct {
	byType map[reading.SensorType]*Summary
}

// Get returns the summary for a sensor type, or nil if it had no
// numeric readings.
func (s *Store) Get(t reading.SensorType) *Summary {
	return s.byType[t]
}

// FromReadings folds a working set in one pass. Readings arrive newest
// first, so they are walked in reverse to leave the newest value as
// Last. Categorical readings are skipped.
func FromReadings(readings []reading.Reading, tailSize int) *Store {
	s := &Store{byType: make(map[reading.SensorType]*Summary)}
	for i := len(readings) - 1; i >= 0; i-- {
		r := readings[i]
		if !r.HasRaw {
			continue
		}
		sum, ok := s.byType[r.SensorType]
		if !ok {
			sum = NewSummary(tailSize)
			s.byType[r.SensorType] = sum
		}
		sum.Add(r.RawValue)
	}
	return s
}
