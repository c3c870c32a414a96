package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luki/iotdash/internal/aggregate"
	"github.com/luki/iotdash/internal/export"
	"github.com/luki/iotdash/internal/reading"
	"github.com/luki/iotdash/internal/stats"
	"github.com/luki/iotdash/internal/view"
)

// Dataset is one generated working set plus everything derived from it.
// It is built once per generation and never updated in place.
type Dataset struct {
	ID        uuid.UUID
	Generated time.Time
	Readings  []reading.Reading

	Trend       aggregate.Series
	Correlation []aggregate.Pair
	Locations   []aggregate.LocationCount
	Statuses    []aggregate.StatusCount
	Summary     aggregate.Summary
	Stats       *stats.Store
}

// NewDataset derives chart data from readings.
func NewDataset(readings []reading.Reading, now time.Time) Dataset {
	trend := aggregate.Trend(readings)
	return Dataset{
		ID:          uuid.New(),
		Generated:   now,
		Readings:    readings,
		Trend:       trend,
		Correlation: aggregate.Correlate(trend),
		Locations:   aggregate.CountByLocation(readings),
		Statuses:    aggregate.CountByStatus(readings),
		Summary:     aggregate.Summarize(readings),
		Stats:       stats.FromReadings(readings, stats.TailSize),
	}
}

// DescribeQuery renders the active filters for status lines and exports.
func DescribeQuery(q view.Query) string {
	return fmt.Sprintf("type=%s location=%s search=%q", q.Type, q.Location, q.Search)
}

// Snapshot packages rows matching q for export.
func (d Dataset) Snapshot(q view.Query, rows []reading.Reading) export.Snapshot {
	return export.Snapshot{
		ID:        d.ID.String(),
		Generated: d.Generated,
		Filter:    DescribeQuery(q),
		Summary:   d.Summary,
		Statuses:  d.Statuses,
		Rows:      rows,
	}
}
