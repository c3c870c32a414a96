// Package view derives the table rows shown by the dashboard: a filtered,
// paginated window over the working set.
package view

import (
	"strings"

	"github.com/luki/iotdash/internal/reading"
)

const allLabel = "All"

// TypeFilter selects a single sensor type, or all of them when unset.
type TypeFilter struct {
	typ reading.SensorType
	set bool
}

// AllTypes matches every sensor type.
func AllTypes() TypeFilter { return TypeFilter{} }

// OnlyType matches one sensor type.
func OnlyType(t reading.SensorType) TypeFilter { return TypeFilter{typ: t, set: true} }

// ParseTypeFilter accepts "All" (or "") and any sensor type name.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	if s == "" || strings.EqualFold(s, allLabel) {
		return AllTypes(), true
	}
	t, ok := reading.ParseSensorType(s)
	if !ok {
		return TypeFilter{}, false
	}
	return OnlyType(t), true
}

// Match reports whether t passes the filter.
func (f TypeFilter) Match(t reading.SensorType) bool {
	return !f.set || f.typ == t
}

// IsAll reports whether the filter is unset.
func (f TypeFilter) IsAll() bool { return !f.set }

func (f TypeFilter) String() string {
	if !f.set {
		return allLabel
	}
	return f.typ.String()
}

// Cycle steps through All followed by every sensor type, wrapping in both
// directions. dir is +1 or -1.
func (f TypeFilter) Cycle(dir int) TypeFilter {
	types := reading.SensorTypes()
	pos := 0 // 0 is All, i+1 is types[i]
	if f.set {
		pos = int(f.typ) + 1
	}
	pos = wrap(pos+dir, len(types)+1)
	if pos == 0 {
		return AllTypes()
	}
	return OnlyType(types[pos-1])
}

// LocationFilter selects a single location, or all of them when unset.
type LocationFilter struct {
	loc reading.Location
	set bool
}

// AllLocations matches every location.
func AllLocations() LocationFilter { return LocationFilter{} }

// OnlyLocation matches one location.
func OnlyLocation(l reading.Location) LocationFilter { return LocationFilter{loc: l, set: true} }

// ParseLocationFilter accepts "All" (or "") and any location name.
func ParseLocationFilter(s string) (LocationFilter, bool) {
	if s == "" || strings.EqualFold(s, allLabel) {
		return AllLocations(), true
	}
	l, ok := reading.ParseLocation(s)
	if !ok {
		return LocationFilter{}, false
	}
	return OnlyLocation(l), true
}

// Match reports whether l passes the filter.
func (f LocationFilter) Match(l reading.Location) bool {
	return !f.set || f.loc == l
}

// IsAll reports whether the filter is unset.
func (f LocationFilter) IsAll() bool { return !f.set }

func (f LocationFilter) String() string {
	if !f.set {
		return allLabel
	}
	return f.loc.String()
}

// Cycle steps through All followed by every location.
func (f LocationFilter) Cycle(dir int) LocationFilter {
	locs := reading.Locations()
	pos := 0
	if f.set {
		pos = int(f.loc) + 1
	}
	pos = wrap(pos+dir, len(locs)+1)
	if pos == 0 {
		return AllLocations()
	}
	return OnlyLocation(locs[pos-1])
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Query is the set of predicates applied to the working set.
type Query struct {
	Search   string
	Type     TypeFilter
	Location LocationFilter
}

// Match reports whether r satisfies all three predicates. The search term
// is a case-insensitive substring test against device id, sensor type and
// location.
func (q Query) Match(r reading.Reading) bool {
	if !q.Type.Match(r.SensorType) || !q.Location.Match(r.Location) {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(r.DeviceID), term) ||
		strings.Contains(strings.ToLower(r.SensorType.String()), term) ||
		strings.Contains(strings.ToLower(r.Location.String()), term)
}

// Filter returns the readings matching q, preserving order.
func Filter(readings []reading.Reading, q Query) []reading.Reading {
	var out []reading.Reading
	for _, r := range readings {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Paginate returns the 1-indexed page of rows with the given size. Pages
// out of range yield an empty slice.
func Paginate(rows []reading.Reading, page, size int) []reading.Reading {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
