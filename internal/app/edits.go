// internal/app/edits.go
package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/errmsg"
	"github.com/llehouerou/tagdeck/internal/state"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// renameNoReplace renames from to to, refusing to overwrite an existing
// file.
func renameNoReplace(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return &os.LinkError{Op: "rename", Old: from, New: to, Err: fs.ErrExist}
	}
	return os.Rename(from, to)
}

// writeChange writes an edited tag to disk.
func (m Model) writeChange(c *metaform.Change) tea.Cmd {
	write := m.Disk.WriteTags
	after := c.After.Clone()
	return func() tea.Msg {
		return TagsWrittenMsg{Change: c, Err: write(after.Path, after)}
	}
}

// handleTagsWritten records a successful write in the edit history. A
// failed write puts the previous values back in the form.
func (m Model) handleTagsWritten(msg TagsWrittenMsg) (tea.Model, tea.Cmd) {
	c := msg.Change
	path := c.After.Path
	if msg.Err != nil {
		m.Log.Error(msg.Err, "write tags", "path", path, "field", string(c.Field))
		if m.Form.Path() == path && m.Form.Editing() == nil {
			m.Form.SetTag(c.Before)
		}
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpTagWrite, filepath.Base(path), msg.Err))
		return m, nil
	}

	if m.StateMgr != nil {
		err := m.StateMgr.RecordEdit(state.Edit{
			Path:   path,
			Field:  string(c.Field),
			Before: c.Before.Get(c.Field),
			After:  c.After.Get(c.Field),
		})
		if err != nil {
			m.Log.Error(err, "record edit", "path", path)
		}
	}
	return m, m.Status.Set(fmt.Sprintf("Saved %s", c.Field.Label()), false)
}

// renameFile renames a file on disk.
func (m Model) renameFile(from, to string) tea.Cmd {
	rename := m.Disk.Rename
	return func() tea.Msg {
		return RenamedMsg{From: from, To: to, Err: rename(from, to)}
	}
}

// handleRenamed moves the edit history to the new path, lists the folder
// again and selects the renamed file.
func (m Model) handleRenamed(msg RenamedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Log.Error(msg.Err, "rename file", "from", msg.From, "to", msg.To)
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpFileRename, filepath.Base(msg.From), msg.Err))
		return m, nil
	}
	if m.StateMgr != nil {
		if err := m.StateMgr.RenamePath(msg.From, msg.To); err != nil {
			m.Log.Error(err, "rename history", "from", msg.From, "to", msg.To)
		}
	}
	dir := filepath.Dir(msg.To)
	m.Loads.SelectAfterListing(dir, msg.To)
	return m, tea.Batch(
		m.Loads.RefreshFiles(dir),
		m.Status.Set("Renamed to "+filepath.Base(msg.To), false),
	)
}

// applyHistory undoes or redoes one tag edit. The history entry is flipped
// first and flipped back when the file cannot be written.
func (m Model) applyHistory(undo bool) tea.Cmd {
	verb, op := "redo", errmsg.OpRedo
	if undo {
		verb, op = "undo", errmsg.OpUndo
	}
	if m.StateMgr == nil {
		return m.Status.Set("Edit history is disabled", false)
	}

	var (
		e   *state.Edit
		err error
	)
	if undo {
		e, err = m.StateMgr.Undo()
	} else {
		e, err = m.StateMgr.Redo()
	}
	if err != nil {
		m.Log.Error(err, verb)
		return m.Status.Set(errmsg.Format(op, err), true)
	}
	if e == nil {
		return m.Status.Set("Nothing to "+verb, false)
	}

	edit := *e
	value := edit.After
	if undo {
		value = edit.Before
	}
	disk := m.Disk
	return func() tea.Msg {
		t, err := disk.ReadTags(edit.Path)
		if err == nil {
			err = t.Set(tags.Field(edit.Field), value)
		}
		if err == nil {
			err = disk.WriteTags(edit.Path, t)
		}
		return HistoryAppliedMsg{Edit: edit, Undo: undo, Tag: t, Err: err}
	}
}

// handleHistoryApplied refreshes the form when it shows the edited file.
func (m Model) handleHistoryApplied(msg HistoryAppliedMsg) (tea.Model, tea.Cmd) {
	verb, op := "Redid", errmsg.OpRedo
	if msg.Undo {
		verb, op = "Undid", errmsg.OpUndo
	}
	name := filepath.Base(msg.Edit.Path)
	if msg.Err != nil {
		m.Log.Error(msg.Err, "apply history", "path", msg.Edit.Path, "undo", msg.Undo)
		m.revertHistory(msg.Undo)
		m.Popups.ShowError(errmsg.FormatWith(op, name, msg.Err))
		return m, nil
	}

	if m.Form.Path() == msg.Edit.Path && m.Form.Editing() == nil {
		m.Form.SetTag(msg.Tag)
	}
	label := tags.Field(msg.Edit.Field).Label()
	return m, tea.Batch(
		m.Nav.Revalidate(),
		m.Status.Set(fmt.Sprintf("%s %s of %s", verb, label, name), false),
	)
}

// revertHistory flips back an entry whose file could not be written.
func (m Model) revertHistory(undo bool) {
	var err error
	if undo {
		_, err = m.StateMgr.Redo()
	} else {
		_, err = m.StateMgr.Undo()
	}
	if err != nil {
		m.Log.Error(err, "revert history")
	}
}
