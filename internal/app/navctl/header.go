package navctl

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
)

var headerKeys = keymap.NewContextResolver(keymap.ContextHeader)

// sorter is implemented by the list panes.
type sorter interface {
	CycleSort()
	FlipSort()
}

// NavigateToHeaderIcon moves focus to one icon of a list pane's header and
// enters HeaderFocus. It reports false when the pane has no such icon or
// the state machine refuses the transition.
func (m *Manager) NavigateToHeaderIcon(pane element.Pane, icon headerbar.Icon) bool {
	h := m.header(pane)
	if h == nil {
		return false
	}
	el := h.Icon(icon)
	if el == nil || !el.IsAttached() {
		return false
	}
	ok := m.machine.Transition(navstate.HeaderFocus, navstate.Context{
		navstate.KeyPane: string(pane),
		navstate.KeyIcon: string(icon),
	})
	if !ok {
		return false
	}
	m.setCurrent(pane)
	m.ledger.Focus(el)
	return true
}

// HandleHeaderNavigation applies a key while a header icon has focus:
// Left/Right move between icons, Enter/Space activate the icon and
// Down/Esc return to the list.
func (m *Manager) HandleHeaderNavigation(key string) tea.Cmd {
	if !m.machine.IsIn(navstate.HeaderFocus) {
		return nil
	}
	pane := element.Pane(m.machine.Value(navstate.KeyPane))
	icon := headerbar.Icon(m.machine.Value(navstate.KeyIcon))
	idx := slices.Index(headerbar.Icons, icon)
	if m.header(pane) == nil || idx < 0 {
		m.ClearHeaderFocus()
		return nil
	}

	switch headerKeys.Resolve(key) {
	case keymap.ActionIconLeft:
		if idx > 0 {
			m.NavigateToHeaderIcon(pane, headerbar.Icons[idx-1])
		}
	case keymap.ActionIconRight:
		if idx < len(headerbar.Icons)-1 {
			m.NavigateToHeaderIcon(pane, headerbar.Icons[idx+1])
		}
	case keymap.ActionIconPress:
		return m.activateIcon(pane, icon)
	case keymap.ActionToList:
		return m.ReturnToPaneFromHeader(pane)
	}
	return nil
}

func (m *Manager) activateIcon(pane element.Pane, icon headerbar.Icon) tea.Cmd {
	var s sorter
	switch pane {
	case element.PaneFolders:
		s = m.tree
	case element.PaneFiles:
		s = m.files
	default:
		return nil
	}

	switch icon {
	case headerbar.IconFilter:
		return m.OpenFilter(pane)
	case headerbar.IconSort:
		s.CycleSort()
	case headerbar.IconSortDir:
		s.FlipSort()
	case headerbar.IconHelp:
		if m.cb.ShowHelp != nil {
			return m.cb.ShowHelp()
		}
	}
	return nil
}

// ReturnToPaneFromHeader leaves HeaderFocus and focuses the pane's list.
func (m *Manager) ReturnToPaneFromHeader(pane element.Pane) tea.Cmd {
	m.ClearHeaderFocus()
	return m.refocus(pane)
}

// ClearHeaderFocus removes focus from the header icons and returns to
// Normal. It does nothing outside HeaderFocus.
func (m *Manager) ClearHeaderFocus() {
	if !m.machine.IsIn(navstate.HeaderFocus) {
		return
	}
	m.clearIconFocus()
	m.machine.Reset()
}

func (m *Manager) clearIconFocus() {
	for _, h := range []*headerbar.Model{m.tree.Header(), m.files.Header()} {
		for _, el := range h.IconElements() {
			m.ledger.RemoveFocus(el)
		}
	}
}

// OpenFilter shows and focuses the filter input of a list pane and enters
// FilterActive.
func (m *Manager) OpenFilter(pane element.Pane) tea.Cmd {
	h := m.header(pane)
	if h == nil {
		return nil
	}
	if !m.machine.Transition(navstate.FilterActive, navstate.Context{navstate.KeyPane: string(pane)}) {
		return nil
	}
	m.setCurrent(pane)
	cmd := h.OpenFilter()
	m.ledger.Focus(h.InputElement())
	return cmd
}

// CloseFilter hides the filter input, keeping or clearing the query, and
// returns focus to the list.
func (m *Manager) CloseFilter(pane element.Pane, keep bool) tea.Cmd {
	if !m.machine.IsIn(navstate.FilterActive) {
		return nil
	}
	m.closeFilterInput(pane, keep)
	m.machine.Reset()
	return m.refocus(pane)
}

func (m *Manager) closeFilterInput(pane element.Pane, keep bool) {
	h := m.header(pane)
	if h == nil {
		return
	}
	m.ledger.RemoveFocus(h.InputElement())
	if h.CloseFilter(keep) {
		m.rebuild(pane)
	}
}
