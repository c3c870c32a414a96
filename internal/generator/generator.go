// Package generator produces the synthetic sensor readings the dashboard
// works on. Output is randomized and, unless a source is injected, not
// reproducible between runs.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/luki/iotdash/internal/reading"
)

// Spacing is the interval between consecutive generated readings.
const Spacing = time.Minute

type options struct {
	rng *rand.Rand
	ref time.Time
}

// Option customizes Generate.
type Option func(*options)

// WithRand draws from r instead of the runtime-seeded global source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithReference sets the instant of the first (newest) reading.
func WithReference(t time.Time) Option {
	return func(o *options) { o.ref = t }
}

// Source produces a fresh working set of count readings.
type Source func(count int) []reading.Reading

// Generate returns count readings. Reading i (0-based) gets ID i+1 and a
// timestamp i minutes before the reference instant.
func Generate(count int, opts ...Option) []reading.Reading {
	o := options{ref: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}
	if count <= 0 {
		return nil
	}

	intN := rand.IntN
	float := rand.Float64
	if o.rng != nil {
		intN = o.rng.IntN
		float = o.rng.Float64
	}

	types := reading.SensorTypes()
	locations := reading.Locations()

	out := make([]reading.Reading, 0, count)
	for i := 0; i < count; i++ {
		t := types[intN(len(types))]
		loc := locations[intN(len(locations))]
		ts := o.ref.Add(-time.Duration(i) * Spacing)
		out = append(out, reading.New(i+1, t, loc, float(), ts))
	}
	return out
}

// NewSource returns a Source bound to opts. A fresh reference instant is
// taken on each call unless WithReference was given.
func NewSource(opts ...Option) Source {
	return func(count int) []reading.Reading {
		return Generate(count, opts...)
	}
}
