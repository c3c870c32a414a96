package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/luki/iotdash/internal/aggregate"
	"github.com/luki/iotdash/internal/chart"
	"github.com/luki/iotdash/internal/notify"
	"github.com/luki/iotdash/internal/reading"
	"github.com/luki/iotdash/internal/view"
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorHeading  = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorAccent   = lipgloss.Color("141")
	colorHumidity = lipgloss.Color("114")
	colorInfo     = lipgloss.Color("39")
	colorWarn     = lipgloss.Color("220")
	colorCrit     = lipgloss.Color("196")
)

const wideLayout = 120

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	lines := m.contentLines()
	start := min(m.scroll, m.maxScroll(lines))
	end := min(start+m.visibleLines(), len(lines))
	return strings.Join(lines[start:end], "\n")
}

// contentLines renders the full, unscrolled screen.
func (m Model) contentLines() []string {
	contentWidth := m.width - 2
	if contentWidth < 60 {
		contentWidth = 60
	}

	var sections []string
	sections = append(sections, m.renderTitleBar(contentWidth))
	sections = append(sections, m.renderToolbar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if m.showNotifications {
		sections = append(sections, renderNotifications(m.notifications, contentWidth))
	} else {
		sections = append(sections, renderCards(m.data.Summary.Cards(), contentWidth))
		sections = append(sections, renderTabs(m.tab, contentWidth))
		if m.tab == tabAnalytics {
			sections = append(sections, renderAnalytics(m.data, contentWidth)...)
		} else {
			sections = append(sections, m.renderOverview(contentWidth)...)
		}
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return strings.Split(content, "\n")
}

func (m Model) visibleLines() int {
	return max(m.height, 5)
}

func (m Model) maxScroll(lines []string) int {
	return max(len(lines)-m.visibleLines(), 0)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("IoT DASHBOARD")

	dim := lipgloss.NewStyle().Foreground(colorDim)
	statusParts := []string{
		dim.Render(fmt.Sprintf("%d readings", len(m.data.Readings))),
		dim.Render("snapshot " + m.data.ID.String()[:8]),
		dim.Render(m.data.Generated.Format("15:04:05")),
	}

	bell := lipgloss.NewStyle().Foreground(colorWarn).Render(fmt.Sprintf("🔔 %d", len(m.notifications)))
	statusParts = append(statusParts, bell)

	sep := dim.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderToolbar(width int) string {
	q := m.table.Query()
	dim := lipgloss.NewStyle().Foreground(colorDim)
	val := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	searchBox := m.search.View()
	boxStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorDim)
	if m.searching {
		boxStyle = boxStyle.BorderForeground(colorAccent)
	}

	filters := dim.Render("type ") + val.Render(typeLabel(q.Type)) +
		dim.Render("   location ") + val.Render(locationLabel(q.Location))

	left := boxStyle.Render(searchBox) + "   " + filters

	var right string
	if m.status != "" {
		right = lipgloss.NewStyle().Foreground(colorInfo).Render(m.status)
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), right))
}

func typeLabel(f view.TypeFilter) string {
	if f.IsAll() {
		return "All Types"
	}
	return f.String()
}

func locationLabel(f view.LocationFilter) string {
	if f.IsAll() {
		return "All Locations"
	}
	return f.String()
}

func panel(title string, width int, rows ...string) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Render(title)
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{heading}, rows...)...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

func renderCards(cards []aggregate.Card, width int) string {
	perRow := 4
	if width < 80 {
		perRow = 2
	}
	cardWidth := width / perRow

	titleS := lipgloss.NewStyle().Foreground(colorLabel)
	valueS := lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg)
	noteS := lipgloss.NewStyle().Foreground(colorDim)

	var rows, current []string
	for i, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			titleS.Render(c.Title),
			valueS.Render(c.Value),
			noteS.Render(c.Note),
		)
		current = append(current, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(cardWidth-2).
			Render(body))
		if (i+1)%perRow == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTabs(active tab, width int) string {
	on := lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg).Underline(true).Padding(0, 2)
	off := lipgloss.NewStyle().Foreground(colorDim).Padding(0, 2)

	var parts []string
	for _, t := range []tab{tabOverview, tabAnalytics} {
		if t == active {
			parts = append(parts, on.Render(t.String()))
		} else {
			parts = append(parts, off.Render(t.String()))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, ""))
}

// ── Overview tab ─────────────────────────────────────────────────────

func (m Model) renderOverview(width int) []string {
	var out []string

	if width >= wideLayout {
		trendW := width * 4 / 7
		energyW := width - trendW
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top,
			renderTrend(m.data.Trend, trendW),
			renderEnergy(energyW),
		))
	} else {
		out = append(out, renderTrend(m.data.Trend, width), renderEnergy(width))
	}

	out = append(out, renderTable(m.table.Page(), width))
	return out
}

func renderTrend(s aggregate.Series, width int) string {
	labelW := 18
	chartWidth := width - labelW - 8
	if chartWidth < 10 {
		chartWidth = 10
	}

	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")
	label := lipgloss.NewStyle().Width(labelW)

	var rows []string
	for _, line := range []struct {
		metric aggregate.Metric
		name   string
		color  lipgloss.Color
	}{
		{aggregate.MetricTemperature, "Temperature (°C)", colorAccent},
		{aggregate.MetricHumidity, "Humidity (%)", colorHumidity},
	} {
		name := label.Foreground(line.color).Render(line.name)
		lo, hi, ok := chart.SeriesRange(s, line.metric, 1)
		if !ok {
			rows = append(rows, name+lipgloss.NewStyle().Foreground(colorDim).Render("no data"))
			continue
		}
		spark := chart.RenderSeries(s, line.metric, chartWidth, lo, hi)
		rows = append(rows, name+frameL+spark+frameR)
	}

	timeline := chart.RenderTimeline(s.Times(), chartWidth)
	if strings.TrimSpace(timeline) != "" {
		rows = append(rows, strings.Repeat(" ", labelW+1)+timeline)
	}

	return panel("Temperature & Humidity Trends", width, rows...)
}

func renderEnergy(width int) string {
	var bars []chart.Bar
	for _, c := range aggregate.EnergyConsumption() {
		bars = append(bars, chart.Bar{Label: c.Device, Value: c.KWh})
	}
	barWidth := width - 26
	if barWidth < 10 {
		barWidth = 10
	}
	return panel("Energy Consumption (kWh)", width, chart.RenderBars(bars, barWidth, colorAccent)...)
}

func renderTable(p view.Page, width int) string {
	headers := []string{"Device ID", "Sensor Type", "Location", "Value", "Timestamp", "Status"}
	showTimestamp := width >= 90
	if !showTimestamp {
		headers = []string{"Device ID", "Sensor Type", "Location", "Value", "Status"}
	}

	headerS := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Padding(0, 1)
	cellS := lipgloss.NewStyle().Foreground(colorLabel).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Width(width - 4).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerS
			}
			return cellS
		})

	for _, r := range p.Rows {
		cells := []string{r.DeviceID, r.SensorType.String(), r.Location.String(), chart.RenderValue(r)}
		if showTimestamp {
			cells = append(cells, r.TimestampString())
		}
		cells = append(cells, chart.StatusBadge(r.Status))
		t.Row(cells...)
	}

	body := []string{t.Render()}
	if len(p.Rows) == 0 {
		body = append(body, lipgloss.NewStyle().Foreground(colorDim).Render("No readings match the current filters."))
	}
	body = append(body, renderPager(p, width-4))

	return panel("Recent IoT Data", width, body...)
}

func renderPager(p view.Page, width int) string {
	on := lipgloss.NewStyle().Foreground(colorLabel).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	off := on.Foreground(colorDim).BorderForeground(colorDim)

	prev, next := off.Render("‹ Previous"), off.Render("Next ›")
	if p.HasPrev {
		prev = on.Render("‹ Previous")
	}
	if p.HasNext {
		next = on.Render("Next ›")
	}

	info := lipgloss.NewStyle().Foreground(colorDim).Render(
		fmt.Sprintf("page %d of %d · %d readings", p.Number, max(p.Pages, 1), p.Total))

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, info, "  ", prev, " ", next)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(buttons)
}

// ── Analytics tab ────────────────────────────────────────────────────

func renderAnalytics(d Dataset, width int) []string {
	colW := width
	if width >= wideLayout {
		colW = width / 3
	}

	var locSlices []chart.Slice
	for _, lc := range d.Locations {
		locSlices = append(locSlices, chart.Slice{Label: lc.Location.String(), Value: float64(lc.Count)})
	}
	locations := panel("Sensor Distribution by Location", colW, chart.RenderShare(locSlices, colW-6)...)

	scatterRows := chart.RenderScatter(d.Correlation, colW-8, 8)
	caption := lipgloss.NewStyle().Foreground(colorDim).Render(
		fmt.Sprintf("x: temperature °C   y: humidity %%   %d paired minutes", len(d.Correlation)))
	scatter := panel("Temperature vs Humidity Correlation", colW, append(scatterRows, caption)...)

	var statusSlices []chart.Slice
	for _, sc := range d.Statuses {
		statusSlices = append(statusSlices, chart.Slice{
			Label: sc.Status.String(),
			Value: float64(sc.Count),
			Color: chart.StatusColor(sc.Status),
		})
	}
	statuses := panel("Sensor Status Distribution", colW, chart.RenderShare(statusSlices, colW-6)...)

	var out []string
	if width >= wideLayout {
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, locations, scatter, statuses))
	} else {
		out = append(out, locations, scatter, statuses)
	}
	out = append(out, renderTypeStats(d, width))
	return out
}

func renderTypeStats(d Dataset, width int) string {
	labelW := 13
	valueW := 9
	scaleW := 21
	sparkW := width - labelW - valueW - scaleW - 48
	if sparkW < 10 {
		sparkW = 10
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	var rows []string
	for _, t := range reading.SensorTypes() {
		b := d.Stats.Get(t)
		if b == nil || b.Count == 0 {
			continue
		}
		th := reading.ThresholdFor(t)

		label := lipgloss.NewStyle().Foreground(colorLabel).Width(labelW).Render(t.String())
		last := lipgloss.NewStyle().
			Foreground(chart.StatusColor(th.Classify(b.Last))).
			Width(valueW).
			Align(lipgloss.Right).
			Render(chart.FormatNumber(t, b.Last) + th.Unit)

		spark := chart.RenderSparkline(b.Tail(sparkW), sparkW, b.Min, b.Peak, th)
		scale := chart.RenderThresholdScale(b.Last, th.Min, th.Min+th.Span, th, scaleW)

		statsLine := dimS.Render(" avg") + valS.Render(fmt.Sprintf("%8s", chart.FormatNumber(t, b.Avg()))) +
			dimS.Render(" lo") + valS.Render(fmt.Sprintf("%8s", chart.FormatNumber(t, b.Min))) +
			dimS.Render(" pk") + valS.Render(fmt.Sprintf("%8s", chart.FormatNumber(t, b.Peak)))

		rows = append(rows, label+" "+last+" "+spark+" "+scale+statsLine)
	}
	if len(rows) == 0 {
		rows = append(rows, dimS.Render("No numeric readings."))
	}
	return panel("Per-Type Statistics", width, rows...)
}

// ── Notifications ────────────────────────────────────────────────────

func kindColor(k notify.Kind) lipgloss.Color {
	switch k {
	case notify.KindAlert:
		return colorCrit
	case notify.KindWarning:
		return colorWarn
	default:
		return colorInfo
	}
}

func renderNotifications(ns []notify.Notification, width int) string {
	boxW := min(width, 64)

	rows := []string{
		lipgloss.NewStyle().Foreground(colorDim).Render("Recent alerts and updates from your IoT devices."),
		"",
	}
	for _, n := range ns {
		dot := lipgloss.NewStyle().Foreground(kindColor(n.Kind)).Render("●")
		msg := lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Render(n.Message)
		ts := lipgloss.NewStyle().Foreground(colorDim).Render(n.Timestamp)
		rows = append(rows, dot+" "+msg, "  "+ts)
	}
	rows = append(rows, "", lipgloss.NewStyle().Foreground(colorDim).Render("esc to close"))

	box := panel("Notifications", boxW, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// ── Footer ───────────────────────────────────────────────────────────

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := ""
	for _, s := range reading.Statuses() {
		legend += lipgloss.NewStyle().Foreground(chart.StatusColor(s)).Render("██") + dimS.Render(" "+strings.ToLower(s.String())+" ")
	}

	var keys []string
	for _, b := range m.keys.footerKeys() {
		h := b.Help()
		keys = append(keys, dimS.Render(h.Key)+labelS.Render(":"+h.Desc))
	}
	help := strings.Join(keys, "  ")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(help) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + help)
}
