package commands

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agiangrant/skins/retained"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#14538b", Dark: "#7aa7d6"}
	muted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	text   = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f3f4f6"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Foreground(text).Padding(0, 1)
)

func cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return rowStyle
}

// bar draws v (0-1) as a bar of width cells.
func bar(v float64, width int) string {
	n := retained.Clamp(int(v*float64(width)+0.5), 0, width)
	return strings.Repeat("█", n) + mutedStyle.Render(strings.Repeat("·", width-n))
}
