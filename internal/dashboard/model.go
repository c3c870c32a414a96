// Package dashboard implements the IoT analytics dashboard TUI using
// BubbleTea: summary cards, trend and distribution charts, a filterable
// paginated table and a notification popup.
package dashboard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/iotdash/internal/export"
	"github.com/luki/iotdash/internal/generator"
	"github.com/luki/iotdash/internal/logging"
	"github.com/luki/iotdash/internal/notify"
	"github.com/luki/iotdash/internal/view"
)

// Options configures a dashboard model.
type Options struct {
	Count     int
	PageSize  int
	ExportDir string
	Source    generator.Source // defaults to generator.Generate
	Logger    *slog.Logger     // defaults to a discarding logger
	Now       func() time.Time // defaults to time.Now
}

type tab int

const (
	tabOverview tab = iota
	tabAnalytics
)

func (t tab) String() string {
	if t == tabAnalytics {
		return "Analytics"
	}
	return "Overview"
}

// ── Messages ─────────────────────────────────────────────────────────

type exportDoneMsg struct {
	path   string
	format export.Format
	rows   int
	err    error
}

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the dashboard.
type Model struct {
	opts Options
	log  *slog.Logger
	keys keyMap

	data  Dataset
	table view.State

	tab               tab
	search            textinput.Model
	searching         bool
	showNotifications bool
	notifications     []notify.Notification

	status string
	err    error
	width  int
	height int
	scroll int
}

// New creates the dashboard and generates its first working set.
func New(opts Options) Model {
	if opts.Source == nil {
		opts.Source = generator.NewSource()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PageSize <= 0 {
		opts.PageSize = view.DefaultPageSize
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ti := textinput.New()
	ti.Placeholder = "Search devices..."
	ti.Prompt = "⌕ "
	ti.CharLimit = 64
	ti.Width = 24

	m := Model{
		opts:          opts,
		log:           opts.Logger,
		keys:          defaultKeys(),
		search:        ti,
		notifications: notify.All(),
	}
	m.regenerate()
	return m
}

// Run launches the dashboard TUI and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) regenerate() {
	readings := m.opts.Source(m.opts.Count)
	m.data = NewDataset(readings, m.opts.Now())
	q := m.table.Query()
	m.table = view.New(readings, m.opts.PageSize).WithQuery(q)
	m.log.Info("generated readings",
		slog.String("snapshot", m.data.ID.String()),
		slog.Int("count", len(readings)),
		slog.Int("alerts", m.data.Summary.Alerts),
		slog.Int("trend_points", len(m.data.Trend)),
	)
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) exportCmd(f export.Format) tea.Cmd {
	rows := m.table.Filtered()
	snap := m.data.Snapshot(m.table.Query(), rows)
	dir := m.opts.ExportDir
	now := m.opts.Now()
	return func() tea.Msg {
		path, err := export.Write(dir, snap, f, now)
		return exportDoneMsg{path: path, format: f, rows: len(rows), err: err}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll = min(m.scroll, m.maxScroll(m.contentLines()))
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("export: %w", msg.err)
			m.log.Error("export failed", slog.String("format", msg.format.String()), slog.Any("err", msg.err))
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("exported %d rows to %s", msg.rows, msg.path)
		m.log.Info("export written",
			slog.String("path", msg.path),
			slog.String("format", msg.format.String()),
			slog.Int("rows", msg.rows),
		)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.showNotifications {
			switch {
			case msg.String() == "ctrl+c":
				return m, tea.Quit
			case key.Matches(msg, m.keys.Close):
				m.showNotifications = false
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.table.Query().Search {
		m.table = m.table.WithSearch(v)
		m.scroll = 0
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Tab):
		if m.tab == tabOverview {
			m.tab = tabAnalytics
		} else {
			m.tab = tabOverview
		}
		m.scroll = 0

	case key.Matches(msg, k.Search):
		m.searching = true
		m.tab = tabOverview
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, k.NextType):
		m.table = m.table.WithType(m.table.Query().Type.Cycle(1))
	case key.Matches(msg, k.PrevType):
		m.table = m.table.WithType(m.table.Query().Type.Cycle(-1))
	case key.Matches(msg, k.NextLocation):
		m.table = m.table.WithLocation(m.table.Query().Location.Cycle(1))
	case key.Matches(msg, k.PrevLocation):
		m.table = m.table.WithLocation(m.table.Query().Location.Cycle(-1))
	case key.Matches(msg, k.ClearFilters):
		m.search.SetValue("")
		m.table = m.table.WithQuery(view.Query{})

	case key.Matches(msg, k.NextPage):
		m.table = m.table.Next()
	case key.Matches(msg, k.PrevPage):
		m.table = m.table.Prev()

	case key.Matches(msg, k.ScrollUp):
		if m.scroll > 0 {
			m.scroll--
		}
	case key.Matches(msg, k.ScrollDown):
		if m.scroll < m.maxScroll(m.contentLines()) {
			m.scroll++
		}

	case key.Matches(msg, k.Notifications):
		m.showNotifications = true

	case key.Matches(msg, k.ExportCSV):
		return m, m.exportCmd(export.CSV)
	case key.Matches(msg, k.ExportXLSX):
		return m, m.exportCmd(export.XLSX)
	case key.Matches(msg, k.ExportPDF):
		return m, m.exportCmd(export.PDF)

	case key.Matches(msg, k.Regenerate):
		m.regenerate()
		m.status = "regenerated " + m.data.ID.String()[:8]
	}

	return m, nil
}
