// Package chart renders dashboard charts for the terminal: sparklines with
// status colouring, minute timelines, bar charts, share bars, scatter plots
// and threshold scales.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/iotdash/internal/aggregate"
	"github.com/luki/iotdash/internal/reading"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorGap  = lipgloss.Color("236")
	colorTick = lipgloss.Color("239")
)

// StatusColor returns the colour for a reading status.
func StatusColor(s reading.Status) lipgloss.Color {
	switch s {
	case reading.Alert:
		return lipgloss.Color("196") // red
	case reading.Warning:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// StatusBadge renders a status as a coloured label.
func StatusBadge(s reading.Status) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(s))
	if s == reading.Alert {
		style = style.Bold(true)
	}
	return style.Render(s.String())
}

// RenderSparkline renders values as a sparkline coloured by th. Values
// are right-aligned; unused width is padded with a dim dashed line.
func RenderSparkline(values []float64, width int, rangeMin, rangeMax float64, th reading.Threshold) string {
	cells := make([]cell, len(values))
	for i, v := range values {
		cells[i] = cell{value: v, ok: true}
	}
	return renderCells(cells, width, rangeMin, rangeMax, th)
}

// RenderSeries renders metric m of s as a sparkline. Minutes without a
// value for m are drawn as gaps.
func RenderSeries(s aggregate.Series, m aggregate.Metric, width int, rangeMin, rangeMax float64) string {
	cells := make([]cell, len(s))
	for i, p := range s {
		v, ok := p.Value(m)
		cells[i] = cell{value: v, ok: ok}
	}
	return renderCells(cells, width, rangeMin, rangeMax, reading.ThresholdFor(m.SensorType()))
}

type cell struct {
	value float64
	ok    bool
}

func renderCells(cells []cell, width int, rangeMin, rangeMax float64, th reading.Threshold) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorGap)
	if len(cells) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(cells) > width {
		cells = cells[len(cells)-width:]
	}

	padLen := width - len(cells)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	for _, c := range cells {
		if !c.ok {
			sb.WriteString(dim.Render("·"))
			continue
		}
		norm := (c.value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		status := th.Classify(c.value)
		style := lipgloss.NewStyle().Foreground(StatusColor(status))
		if status == reading.Alert {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

// SeriesRange returns the min and max of metric m over s, padded by
// margin. ok is false when s holds no value for m.
func SeriesRange(s aggregate.Series, m aggregate.Metric, margin float64) (lo, hi float64, ok bool) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for _, p := range s {
		v, has := p.Value(m)
		if !has {
			continue
		}
		ok = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if !ok {
		return 0, 0, false
	}
	return lo - margin, hi + margin, true
}

// RenderTimeline renders "HH:MM" labels under a sparkline at every point
// whose minute is a multiple of ten. Labels that would overlap are skipped.
func RenderTimeline(times []string, width int) string {
	if len(times) == 0 || width <= 0 {
		return ""
	}

	if len(times) > width {
		times = times[len(times)-width:]
	}

	padLen := width - len(times)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	lastEnd := -1
	for i, t := range times {
		if len(t) != len(reading.MinuteLayout) || t[len(t)-1] != '0' {
			continue
		}
		start := padLen + i - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(colorTick).Render(string(line))
}

// RenderThresholdScale renders a scale bar showing current position vs
// the type's thresholds.
func RenderThresholdScale(current, rangeMin, rangeMax float64, th reading.Threshold, width int) string {
	if width <= 0 {
		return ""
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	pos := func(v float64) int {
		return int(float64(width-1) * (v - rangeMin) / span)
	}

	marks := make(map[int]bool)
	if th.HasAbove && th.Above > rangeMin && th.Above < rangeMax {
		marks[pos(th.Above)] = true
	}
	if th.HasBelow && th.Below > rangeMin && th.Below < rangeMax {
		marks[pos(th.Below)] = true
	}

	curPos := pos(current)
	if curPos < 0 {
		curPos = 0
	}
	if curPos >= width {
		curPos = width - 1
	}

	markStyle := lipgloss.NewStyle().Foreground(StatusColor(th.Level))
	dotStyle := lipgloss.NewStyle().Foreground(colorGap)

	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == curPos:
			style := lipgloss.NewStyle().Foreground(StatusColor(th.Classify(current))).Bold(true)
			sb.WriteString(style.Render("◆"))
		case marks[i]:
			sb.WriteString(markStyle.Render("▪"))
		default:
			sb.WriteString(dotStyle.Render("·"))
		}
	}
	return sb.String()
}

// RenderValue renders a reading's display value coloured by its status.
func RenderValue(r reading.Reading) string {
	style := lipgloss.NewStyle().Foreground(StatusColor(r.Status))
	if r.Status == reading.Alert {
		style = style.Bold(true)
	}
	return style.Render(r.Value)
}

// FormatNumber formats v with the precision of sensor type t.
func FormatNumber(t reading.SensorType, v float64) string {
	th := reading.ThresholdFor(t)
	return fmt.Sprintf("%.*f", th.Decimals, v)
}
