package dashboard

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/luki/iotdash/internal/generator"
	"github.com/luki/iotdash/internal/reading"
)

var testNow = time.Date(2026, 2, 21, 14, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T, count int) Model {
	t.Helper()
	src := generator.NewSource(
		generator.WithRand(rand.New(rand.NewPCG(11, 12))),
		generator.WithReference(testNow),
	)
	m := New(Options{
		Count:     count,
		PageSize:  10,
		ExportDir: t.TempDir(),
		Source:    src,
		Now:       func() time.Time { return testNow },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewDataset(t *testing.T) {
	rs := generator.Generate(300, generator.WithRand(rand.New(rand.NewPCG(1, 1))), generator.WithReference(testNow))
	d := NewDataset(rs, testNow)

	require.Len(t, d.Readings, 300)
	require.Equal(t, 300, d.Summary.TotalDevices)
	require.NotEmpty(t, d.Trend)
	require.Len(t, d.Statuses, 3)

	total := 0
	for _, lc := range d.Locations {
		total += lc.Count
	}
	require.Equal(t, 300, total)

	// every pair comes from a merged minute that carries both metrics
	for _, p := range d.Correlation {
		require.Contains(t, d.Trend.Times(), p.Time)
	}
}

func TestFilterKeysResetPage(t *testing.T) {
	m := newTestModel(t, 500)

	m = press(t, m, "right", "right")
	require.Equal(t, 3, m.table.PageNumber())

	m = press(t, m, "t")
	require.Equal(t, 1, m.table.PageNumber())
	require.Equal(t, "Temperature", m.table.Query().Type.String())
	for _, r := range m.table.Page().Rows {
		require.Equal(t, reading.Temperature, r.SensorType)
	}

	m = press(t, m, "right", "l")
	require.Equal(t, 1, m.table.PageNumber())
	require.Equal(t, "Office", m.table.Query().Location.String())

	m = press(t, m, "c")
	require.True(t, m.table.Query().Type.IsAll())
	require.True(t, m.table.Query().Location.IsAll())
}

func TestPagingStopsAtBounds(t *testing.T) {
	m := newTestModel(t, 25)

	m = press(t, m, "left")
	require.Equal(t, 1, m.table.PageNumber())

	m = press(t, m, "right", "right", "right", "right")
	require.Equal(t, 3, m.table.PageNumber())
	require.Len(t, m.table.Page().Rows, 5)
}

func TestSearch(t *testing.T) {
	m := newTestModel(t, 200)
	m = press(t, m, "right")

	m = press(t, m, "/")
	require.True(t, m.searching)

	m = press(t, m, "D", "E", "V", "0", "0", "7")
	require.Equal(t, "DEV007", m.table.Query().Search)
	require.Equal(t, 1, m.table.PageNumber())
	require.Equal(t, 1, m.table.Page().Total)

	// keys typed while searching must not trigger shortcuts
	require.False(t, m.showNotifications)

	m = press(t, m, "esc")
	require.False(t, m.searching)
	require.Equal(t, "DEV007", m.table.Query().Search)
}

func TestNotificationsPopup(t *testing.T) {
	m := newTestModel(t, 50)

	m = press(t, m, "n")
	require.True(t, m.showNotifications)
	view := m.View()
	require.Contains(t, view, "Notifications")
	require.Contains(t, view, "High temperature alert in Server Room")
	require.Contains(t, view, "DEV023")

	// other shortcuts are ignored while the popup is open
	m = press(t, m, "t")
	require.True(t, m.table.Query().Type.IsAll())

	m = press(t, m, "esc")
	require.False(t, m.showNotifications)
}

func TestTabsRender(t *testing.T) {
	m := newTestModel(t, 400)

	overview := m.View()
	require.Contains(t, overview, "Total Devices")
	require.Contains(t, overview, "Temperature & Humidity Trends")
	require.Contains(t, overview, "Recent IoT Data")
	require.Contains(t, overview, "Energy Consumption")

	m = press(t, m, "tab")
	analytics := m.View()
	require.Contains(t, analytics, "Sensor Distribution by Location")
	require.Contains(t, analytics, "Temperature vs Humidity Correlation")
	require.Contains(t, analytics, "Sensor Status Distribution")
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{Count: 10})
	require.Equal(t, "  Initializing...", m.View())
}

func TestExport(t *testing.T) {
	m := newTestModel(t, 120)
	m = press(t, m, "t")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, cmd)
	m = next.(Model)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	require.Equal(t, len(m.table.Filtered()), done.rows)

	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, done.rows+1)
	require.Equal(t, filepath.Dir(done.path), m.opts.ExportDir)

	next, _ = m.Update(msg)
	m = next.(Model)
	require.Contains(t, m.status, "exported")
}

func TestExportFailureShowsError(t *testing.T) {
	m := newTestModel(t, 30)
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	m.opts.ExportDir = filepath.Join(file, "exports")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	require.Error(t, done.err)

	next, _ := m.Update(msg)
	m = next.(Model)
	require.Error(t, m.err)
	require.NotContains(t, m.status, "exported")
	require.Contains(t, m.View(), "ERROR: export")
}

func TestScrollClamped(t *testing.T) {
	m := newTestModel(t, 100)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 20})
	m = next.(Model)

	limit := m.maxScroll(m.contentLines())
	require.Positive(t, limit)

	for i := 0; i < limit+25; i++ {
		m = press(t, m, "j")
	}
	require.Equal(t, limit, m.scroll)

	// one step up moves the view immediately
	top := m.View()
	m = press(t, m, "k")
	require.Equal(t, limit-1, m.scroll)
	require.NotEqual(t, top, m.View())

	// growing the window pulls scroll back into range
	next, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 500})
	m = next.(Model)
	require.Zero(t, m.scroll)
}

func TestRegenerateKeepsQuery(t *testing.T) {
	m := newTestModel(t, 100)
	m = press(t, m, "t", "t")
	id := m.data.ID

	m = press(t, m, "r")
	require.NotEqual(t, id, m.data.ID)
	require.Equal(t, "Humidity", m.table.Query().Type.String())
	require.Equal(t, 1, m.table.PageNumber())
}

func TestReport(t *testing.T) {
	rs := generator.Generate(200, generator.WithRand(rand.New(rand.NewPCG(2, 2))), generator.WithReference(testNow))
	out := Report(NewDataset(rs, testNow), 100)
	require.Contains(t, out, "Alerts")
	require.Contains(t, out, "Per-Type Statistics")
}
