package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the bordered frame of a pane sized to the given outer
// dimensions. The active pane gets the accent border.
func Panel(active bool, width, height int) lipgloss.Style {
	color := T().Border
	if active {
		color = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(max(width-2, 0)).
		Height(max(height-2, 0))
}
