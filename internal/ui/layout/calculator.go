// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/tagdeck/internal/ui"

// Heights of the rows around the panes.
const (
	TitleHeight  = 1
	StatusHeight = 1
)

// Panes holds the outer widths of the three panes, left to right.
type Panes struct {
	Folders  int
	Files    int
	Metadata int
}

// ContentHeight is the height left for the panes once the title and the
// status row are taken.
func ContentHeight(windowHeight int) int {
	return max(windowHeight-TitleHeight-StatusHeight, 0)
}

// PaneWidths splits the window width: 30% folders, 30% metadata, the rest
// for files. Side panes keep ui.MinPaneWidth while the files pane can
// still have it too; below that the width is split evenly.
func PaneWidths(windowWidth int) Panes {
	if windowWidth <= 0 {
		return Panes{}
	}
	side := max(windowWidth*3/10, ui.MinPaneWidth)
	files := windowWidth - 2*side
	if files < ui.MinPaneWidth {
		third := windowWidth / 3
		return Panes{Folders: third, Files: windowWidth - 2*third, Metadata: third}
	}
	return Panes{Folders: side, Files: files, Metadata: side}
}

// StatusRow returns the 1-based row of the status line.
func StatusRow(windowHeight int) int {
	return max(windowHeight, 1)
}
