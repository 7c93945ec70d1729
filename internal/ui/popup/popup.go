package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// SizeConfig defines how a popup is sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = fit content)
	HeightPct int // Percentage of screen height (0 = fit content)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// SizeAuto fits the popup to its content.
var SizeAuto = SizeConfig{}

// RenderBordered wraps content in a rounded border and centers it on a
// screen of the given size.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := dimensions(content, screenW, screenH, size)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places pre-rendered content in the middle of the screen.
func Center(content string, screenW, screenH int) string {
	lines := strings.Split(content, "\n")
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, lipgloss.Width(l))
	}
	top := max((screenH-len(lines))/2, 0)
	left := strings.Repeat(" ", max((screenW-boxW)/2, 0))

	var b strings.Builder
	for range top {
		b.WriteString("\n")
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(left)
		b.WriteString(l)
	}
	return b.String()
}

func dimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		width = screenW * size.WidthPct / 100
		if size.MaxWidth > 0 {
			width = min(width, size.MaxWidth)
		}
		return width, screenH * size.HeightPct / 100
	}
	width = lipgloss.Width(content) + 6 // padding + border
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	height = lipgloss.Height(content) + 4
	return min(width, screenW-4), min(height, screenH-2)
}
