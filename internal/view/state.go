package view

import "github.com/luki/iotdash/internal/reading"

// DefaultPageSize is the number of table rows per page.
const DefaultPageSize = 10

// State is the table view model. It is a value: every change returns a
// new State and the working set is never modified.
type State struct {
	readings []reading.Reading
	query    Query
	page     int
	size     int

	filtered []reading.Reading
}

// Page is the derived window shown by the table.
type Page struct {
	Rows    []reading.Reading
	Number  int // 1-indexed
	Size    int
	Total   int // filtered row count
	Pages   int
	HasPrev bool
	HasNext bool
}

// New creates a view over readings with no filters on page 1. A
// non-positive size falls back to DefaultPageSize.
func New(readings []reading.Reading, size int) State {
	if size <= 0 {
		size = DefaultPageSize
	}
	s := State{readings: readings, page: 1, size: size}
	s.filtered = Filter(readings, s.query)
	return s
}

// Query returns the active predicates.
func (s State) Query() Query { return s.query }

// PageNumber returns the current 1-indexed page.
func (s State) PageNumber() int { return s.page }

// WithQuery replaces all predicates and resets to page 1.
func (s State) WithQuery(q Query) State {
	s.query = q
	s.page = 1
	s.filtered = Filter(s.readings, q)
	return s
}

// WithSearch sets the search term and resets to page 1.
func (s State) WithSearch(term string) State {
	q := s.query
	q.Search = term
	return s.WithQuery(q)
}

// WithType sets the sensor type filter and resets to page 1.
func (s State) WithType(f TypeFilter) State {
	q := s.query
	q.Type = f
	return s.WithQuery(q)
}

// WithLocation sets the location filter and resets to page 1.
func (s State) WithLocation(f LocationFilter) State {
	q := s.query
	q.Location = f
	return s.WithQuery(q)
}

// WithReadings swaps in a new working set, keeping the query and
// resetting to page 1.
func (s State) WithReadings(readings []reading.Reading) State {
	s.readings = readings
	return s.WithQuery(s.query)
}

// GoTo jumps to page n without bounds checks; out-of-range pages show
// no rows.
func (s State) GoTo(n int) State {
	s.page = n
	return s
}

// Next advances one page unless already on the last.
func (s State) Next() State {
	if s.Page().HasNext {
		s.page++
	}
	return s
}

// Prev goes back one page unless on page 1.
func (s State) Prev() State {
	if s.page > 1 {
		s.page--
	}
	return s
}

// Filtered returns every row matching the query.
func (s State) Filtered() []reading.Reading { return s.filtered }

// Page derives the current window.
func (s State) Page() Page {
	total := len(s.filtered)
	return Page{
		Rows:    Paginate(s.filtered, s.page, s.size),
		Number:  s.page,
		Size:    s.size,
		Total:   total,
		Pages:   PageCount(total, s.size),
		HasPrev: s.page > 1,
		HasNext: s.page*s.size < total,
	}
}
