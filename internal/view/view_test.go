package view

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luki/iotdash/internal/generator"
	"github.com/luki/iotdash/internal/reading"
)

func workingSet(n int) []reading.Reading {
	return generator.Generate(n, generator.WithRand(rand.New(rand.NewPCG(7, 8))))
}

func TestQueryMatch(t *testing.T) {
	r := reading.Reading{DeviceID: "DEV042", SensorType: reading.CO2, Location: reading.ServerRoom}

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{"empty query", Query{}, true},
		{"device id", Query{Search: "dev04"}, true},
		{"type text", Query{Search: "co2"}, true},
		{"location text", Query{Search: "SERVER"}, true},
		{"no match", Query{Search: "warehouse"}, false},
		{"type filter", Query{Type: OnlyType(reading.CO2)}, true},
		{"other type", Query{Type: OnlyType(reading.Light)}, false},
		{"location filter", Query{Location: OnlyLocation(reading.ServerRoom)}, true},
		{"other location", Query{Location: OnlyLocation(reading.Office)}, false},
		{"all three", Query{Search: "042", Type: OnlyType(reading.CO2), Location: OnlyLocation(reading.ServerRoom)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.q.Match(r))
		})
	}
}

func TestFilterMonotonic(t *testing.T) {
	rs := workingSet(1000)
	all := len(Filter(rs, Query{}))
	require.Equal(t, len(rs), all)

	for _, st := range reading.SensorTypes() {
		byType := Filter(rs, Query{Type: OnlyType(st)})
		require.LessOrEqual(t, len(byType), all)
		for _, l := range reading.Locations() {
			narrowed := Filter(rs, Query{Type: OnlyType(st), Location: OnlyLocation(l)})
			require.LessOrEqual(t, len(narrowed), len(byType))
			withSearch := Filter(rs, Query{Search: "dev1", Type: OnlyType(st), Location: OnlyLocation(l)})
			require.LessOrEqual(t, len(withSearch), len(narrowed))
		}
	}
}

func TestPagination(t *testing.T) {
	rs := workingSet(95)
	s := New(rs, 10)

	p := s.Page()
	require.Equal(t, 1, p.Number)
	require.Len(t, p.Rows, 10)
	require.Equal(t, 10, p.Pages)
	require.False(t, p.HasPrev)
	require.True(t, p.HasNext)

	for i := 0; i < 20; i++ {
		s = s.Next()
	}
	p = s.Page()
	require.Equal(t, 10, p.Number, "Next must stop on the last page")
	require.Len(t, p.Rows, 5)
	require.False(t, p.HasNext)
	require.True(t, p.HasPrev)

	require.Empty(t, s.GoTo(42).Page().Rows)
	require.Empty(t, s.GoTo(0).Page().Rows)

	s = s.GoTo(1).Prev()
	require.Equal(t, 1, s.PageNumber())
}

func TestPageCountProperty(t *testing.T) {
	rs := workingSet(500)
	for _, st := range reading.SensorTypes() {
		s := New(rs, 10).WithType(OnlyType(st))
		p := s.Page()
		n := len(s.Filtered())
		require.Equal(t, (n+9)/10, p.Pages)

		shown := 0
		for i := 1; i <= p.Pages; i++ {
			rows := s.GoTo(i).Page().Rows
			require.LessOrEqual(t, len(rows), 10)
			shown += len(rows)
		}
		require.Equal(t, n, shown)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	s := New(workingSet(200), 10).GoTo(5)
	require.Equal(t, 5, s.PageNumber())

	require.Equal(t, 1, s.WithSearch("dev").PageNumber())
	require.Equal(t, 1, s.WithType(OnlyType(reading.Energy)).PageNumber())
	require.Equal(t, 1, s.WithLocation(OnlyLocation(reading.Outdoor)).PageNumber())
}

func TestEmptyResult(t *testing.T) {
	s := New(workingSet(50), 10).WithSearch("no such device")
	p := s.Page()
	require.Zero(t, p.Total)
	require.Zero(t, p.Pages)
	require.Empty(t, p.Rows)
	require.False(t, p.HasNext)
}

func TestCycleFilters(t *testing.T) {
	f := AllTypes()
	seen := []string{f.String()}
	for i := 0; i < len(reading.SensorTypes()); i++ {
		f = f.Cycle(1)
		seen = append(seen, f.String())
	}
	require.Equal(t, "Energy", seen[len(seen)-1])
	require.True(t, f.Cycle(1).IsAll())
	require.Equal(t, "Energy", AllTypes().Cycle(-1).String())

	l := AllLocations().Cycle(1)
	require.Equal(t, "Office", l.String())
	require.Equal(t, "Cafeteria", AllLocations().Cycle(-1).String())
}

func TestParseFilters(t *testing.T) {
	f, ok := ParseTypeFilter("all")
	require.True(t, ok)
	require.True(t, f.IsAll())

	f, ok = ParseTypeFilter("humidity")
	require.True(t, ok)
	require.Equal(t, "Humidity", f.String())

	_, ok = ParseTypeFilter("plasma")
	require.False(t, ok)

	l, ok := ParseLocationFilter("meeting room")
	require.True(t, ok)
	require.Equal(t, "Meeting Room", l.String())
}
