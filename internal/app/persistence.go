// internal/app/persistence.go
package app

import (
	"github.com/llehouerou/tagdeck/internal/state"
)

// SaveNavigationState persists the current navigation state.
func (m Model) SaveNavigationState() {
	if m.StateMgr == nil {
		return
	}
	var file string
	if e, ok := m.Files.Entry(m.Files.List().Selected()); ok {
		file = e.Path
	}
	m.StateMgr.SaveNavigation(state.NavigationState{
		StartFolder:    m.Tree.Root(),
		SelectedFolder: m.Tree.SelectedPath(),
		SelectedFile:   file,
		Pane:           string(m.Nav.CurrentPane()),
	})
}
