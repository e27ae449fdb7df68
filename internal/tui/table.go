package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a small static table, used to preview student data
// before the mapping wizard asks its questions.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string, style lipgloss.Style) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Render(cell))
			if pad := widths[i] - lipgloss.Width(cell); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			if i < len(headers)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers, boldStyle)

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(headers) - 1)
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)) + "\n")

	plain := lipgloss.NewStyle()
	for _, row := range rows {
		writeRow(row, plain)
	}

	return sb.String()
}
