// internal/app/layout.go
package app

import "github.com/llehouerou/tagdeck/internal/ui/layout"

// resizeComponents hands every pane its share of the window.
func (m *Model) resizeComponents() {
	h := layout.ContentHeight(m.Height)
	w := layout.PaneWidths(m.Width)
	m.Tree.SetSize(w.Folders, h)
	m.Files.SetSize(w.Files, h)
	m.Form.SetSize(w.Metadata, h)
	m.Popups.SetSize(m.Width, m.Height)
	if el := m.Ledger.Focused(); el != nil {
		m.Ledger.EnsureVisible(el)
	}
}
