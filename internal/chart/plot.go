package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/luki/iotdash/internal/aggregate"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

// RenderBars renders one line per bar, scaled so the largest value fills
// width cells.
func RenderBars(bars []Bar, width int, color lipgloss.Color) []string {
	if len(bars) == 0 || width <= 0 {
		return nil
	}

	labelW := 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		peak = math.Max(peak, b.Value)
	}
	if peak <= 0 {
		peak = 1
	}

	labelS := lipgloss.NewStyle().Width(labelW).Foreground(lipgloss.Color("252"))
	barS := lipgloss.NewStyle().Foreground(color)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := int(math.Round(b.Value / peak * float64(width)))
		if b.Value > 0 && n == 0 {
			n = 1
		}
		lines = append(lines, labelS.Render(b.Label)+" "+
			barS.Render(strings.Repeat("█", n))+
			valS.Render(fmt.Sprintf(" %g", b.Value)))
	}
	return lines
}

// Slice is one segment of a share bar.
type Slice struct {
	Label string
	Value float64
	Color lipgloss.Color // optional; palette colour by index when empty
}

// PaletteColor returns the i-th categorical colour: hues 45° apart at
// 70% saturation and 60% lightness.
func PaletteColor(i int) lipgloss.Color {
	c := colorful.Hsl(math.Mod(float64(i*45), 360), 0.7, 0.6)
	return lipgloss.Color(c.Hex())
}

// RenderShare renders slices as a single stacked bar followed by a legend
// line per slice with its count and percentage.
func RenderShare(slices []Slice, width int) []string {
	if len(slices) == 0 || width <= 0 {
		return nil
	}

	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if total <= 0 {
		return []string{lipgloss.NewStyle().Foreground(colorGap).Render(strings.Repeat("╌", width))}
	}

	colors := make([]lipgloss.Color, len(slices))
	for i, s := range slices {
		colors[i] = s.Color
		if colors[i] == "" {
			colors[i] = PaletteColor(i)
		}
	}

	// Largest-remainder apportioning so segment widths sum to width.
	widths := make([]int, len(slices))
	used := 0
	rem := make([]float64, len(slices))
	for i, s := range slices {
		exact := s.Value / total * float64(width)
		widths[i] = int(exact)
		rem[i] = exact - float64(widths[i])
		used += widths[i]
	}
	for used < width {
		best := 0
		for i := range rem {
			if rem[i] > rem[best] {
				best = i
			}
		}
		widths[best]++
		rem[best] = -1
		used++
	}

	var bar strings.Builder
	for i, w := range widths {
		bar.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(strings.Repeat("█", w)))
	}

	labelW := 0
	for _, s := range slices {
		labelW = max(labelW, lipgloss.Width(s.Label))
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	lines := []string{bar.String()}
	for i, s := range slices {
		dot := lipgloss.NewStyle().Foreground(colors[i]).Render("●")
		label := lipgloss.NewStyle().Width(labelW).Render(s.Label)
		lines = append(lines, fmt.Sprintf("%s %s %s", dot, label,
			dim.Render(fmt.Sprintf("%4.0f  %5.1f%%", s.Value, s.Value/total*100))))
	}
	return lines
}

// RenderScatter plots temperature (x) against humidity (y) on a width x
// height grid. Cells hit more than once are drawn heavier.
func RenderScatter(pairs []aggregate.Pair, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	grid := make([][]int, height)
	for i := range grid {
		grid[i] = make([]int, width)
	}

	if len(pairs) > 0 {
		xMin, xMax := math.MaxFloat64, -math.MaxFloat64
		yMin, yMax := math.MaxFloat64, -math.MaxFloat64
		for _, p := range pairs {
			xMin, xMax = math.Min(xMin, p.Temperature), math.Max(xMax, p.Temperature)
			yMin, yMax = math.Min(yMin, p.Humidity), math.Max(yMax, p.Humidity)
		}
		xSpan, ySpan := xMax-xMin, yMax-yMin
		if xSpan <= 0 {
			xSpan = 1
		}
		if ySpan <= 0 {
			ySpan = 1
		}
		for _, p := range pairs {
			col := int((p.Temperature - xMin) / xSpan * float64(width-1))
			row := height - 1 - int((p.Humidity-yMin)/ySpan*float64(height-1))
			grid[row][col]++
		}
	}

	axis := lipgloss.NewStyle().Foreground(colorTick)
	light := lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	heavy := lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)

	lines := make([]string, 0, height+1)
	for _, row := range grid {
		var sb strings.Builder
		sb.WriteString(axis.Render("│"))
		for _, n := range row {
			switch {
			case n == 0:
				sb.WriteByte(' ')
			case n == 1:
				sb.WriteString(light.Render("•"))
			default:
				sb.WriteString(heavy.Render("●"))
			}
		}
		lines = append(lines, sb.String())
	}
	lines = append(lines, axis.Render("└"+strings.Repeat("─", width)))
	return lines
}
