package navctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// BeginFieldEdit makes the focused metadata field editable and enters
// FormEdit. Native focus stays on the field.
func (m *Manager) BeginFieldEdit() tea.Cmd {
	el := m.doc.ActiveElement()
	f, ok := metaform.FieldOf(el)
	if !ok || !m.form.Loaded() || !navstate.CanTransition(m.machine.State(), navstate.FormEdit) {
		return nil
	}
	cmd := m.form.BeginEdit(el)
	if m.form.Editing() != el {
		return nil
	}
	m.machine.Transition(navstate.FormEdit, navstate.Context{
		navstate.KeyPane:  string(element.PaneMetadata),
		navstate.KeyField: string(f),
	})
	m.setCurrent(element.PaneMetadata)
	m.ledger.Focus(el)
	m.remember(element.PaneMetadata, el)
	return cmd
}

// EndFieldEdit leaves FormEdit. With commit an invalid value keeps the
// field open and the error shown; a valid change is handed to
// CommitChange. Without commit the field reverts. Focus stays on the field.
func (m *Manager) EndFieldEdit(commit bool) tea.Cmd {
	if !m.machine.IsIn(navstate.FormEdit) {
		return nil
	}
	el := m.form.Editing()
	change, err := m.form.EndEdit(commit)
	if err != nil {
		m.log.V(1).Info("field value rejected", "field", m.machine.Value(navstate.KeyField), "reason", err.Error())
		return nil
	}
	m.machine.Reset()
	if el != nil {
		m.ledger.Focus(el)
	}
	if change != nil && m.cb.CommitChange != nil {
		return m.cb.CommitChange(change)
	}
	return nil
}

// BeginInlineEdit starts renaming the selected file and enters InlineEdit.
func (m *Manager) BeginInlineEdit() tea.Cmd {
	if m.current != element.PaneFiles || !navstate.CanTransition(m.machine.State(), navstate.InlineEdit) {
		return nil
	}
	row := m.files.List().Selected()
	if row == nil {
		return nil
	}
	cmd := m.files.BeginRename(row)
	if !m.files.Renaming() {
		return nil
	}
	m.machine.Transition(navstate.InlineEdit, navstate.Context{navstate.KeyPane: string(element.PaneFiles)})
	m.ledger.Focus(m.files.RenameElement())
	return cmd
}

// EndInlineEdit finishes the rename. A committed, valid new name is handed
// to RenameFile. Focus returns to the row.
func (m *Manager) EndInlineEdit(commit bool) tea.Cmd {
	if !m.machine.IsIn(navstate.InlineEdit) {
		return nil
	}
	row, from, to, ok := m.files.EndRename(commit)
	m.machine.Reset()
	if row != nil && row.IsAttached() {
		m.ledger.Focus(row)
	} else {
		m.refocus(element.PaneFiles)
	}
	if ok && m.cb.RenameFile != nil {
		return m.cb.RenameFile(from, to)
	}
	return nil
}

// HandleInput forwards a key the router did not consume to the text input
// of the current state: the filter, the metadata field or the rename box.
func (m *Manager) HandleInput(msg tea.Msg) tea.Cmd {
	switch m.machine.State() {
	case navstate.FilterActive:
		pane := element.Pane(m.machine.Value(navstate.KeyPane))
		h := m.header(pane)
		if h == nil {
			return nil
		}
		changed, cmd := h.UpdateInput(msg)
		if changed {
			m.rebuild(pane)
		}
		return cmd
	case navstate.FormEdit:
		return m.form.UpdateInput(msg)
	case navstate.InlineEdit:
		return m.files.UpdateRename(msg)
	}
	return nil
}
