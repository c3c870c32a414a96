package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Report renders a static, non-interactive view of a dataset: title,
// summary cards and the analytics panels. Used by the summary command.
func Report(d Dataset, width int) string {
	if width < 60 {
		width = 60
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render(fmt.Sprintf("IoT DASHBOARD  snapshot %s  %d readings", d.ID, len(d.Readings)))

	sections := []string{
		title,
		renderCards(d.Summary.Cards(), width),
		renderTrend(d.Trend, width),
	}
	sections = append(sections, renderAnalytics(d, width)...)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
