// internal/app/update.go
package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/app/popupctl"
	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/errmsg"
	"github.com/llehouerou/tagdeck/internal/keyrepeat"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/helpbindings"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.BlurMsg:
		m.Repeat.Blur()
		return m, nil

	case keyrepeat.TickMsg, keyrepeat.ReleaseMsg:
		return m, m.Repeat.Update(msg)

	case filesDebounceMsg:
		return m, m.Loads.FilesDue(msg)

	case tagsDebounceMsg:
		return m, m.Loads.TagsDue(msg)

	case FilesLoadedMsg:
		return m.handleFilesLoaded(msg)

	case TagsLoadedMsg:
		return m.handleTagsLoaded(msg)

	case TagsWrittenMsg:
		return m.handleTagsWritten(msg)

	case HistoryAppliedMsg:
		return m.handleHistoryApplied(msg)

	case RenamedMsg:
		return m.handleRenamed(msg)

	case navigator.ChangedMsg:
		return m.handleFolderChanged(msg)

	case ShowHelpMsg:
		return m.showHelp()

	case helpbindings.CloseMsg:
		m.Popups.Hide(popupctl.Help)
		m.Nav.RestoreFocus()
		return m, nil

	case StatusMsg:
		return m, m.Status.Set(msg.Text, msg.Err)

	case clearStatusMsg:
		m.Status.clear(msg.Seq)
		return m, nil
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.resizeComponents()
	return m, nil
}

// handleFilesLoaded shows a folder listing. Superseded listings are
// dropped. Focus is checked afterwards since the focused row may be gone.
func (m Model) handleFilesLoaded(msg FilesLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.Loads.FilesCurrent(msg) {
		m.Log.V(1).Info("drop stale listing", "dir", msg.Dir, "request", msg.RequestID)
		return m, nil
	}
	if msg.Err != nil {
		m.Log.Error(msg.Err, "list files", "dir", msg.Dir)
		m.Files.Clear()
		return m, tea.Batch(
			m.Nav.Revalidate(),
			m.Status.Set(errmsg.FormatWith(errmsg.OpFilesLoad, filepath.Base(msg.Dir), msg.Err), true),
		)
	}

	m.Files.SetFiles(msg.Dir, msg.Entries)
	if m.Watcher != nil {
		if err := m.Watcher.Watch(msg.Dir); err != nil {
			m.Log.Error(err, "watch folder", "dir", msg.Dir)
		}
	}

	var cmds []tea.Cmd
	if path := m.Loads.TakePendingSelect(msg.Dir); path != "" {
		cmds = append(cmds, m.selectFile(path))
	}
	cmds = append(cmds, m.Nav.Revalidate())
	return m, tea.Batch(cmds...)
}

// selectFile selects a listed file, focusing it when the file list is the
// active pane, and loads its tags.
func (m Model) selectFile(path string) tea.Cmd {
	if m.Files.List().SelectID(path) == nil {
		return nil
	}
	var cmds []tea.Cmd
	if m.Nav.CurrentPane() == element.PaneFiles && m.Machine.IsIn(navstate.Normal) {
		_, cmd := m.Nav.FocusPane(element.PaneFiles)
		cmds = append(cmds, cmd)
	}
	if m.Form.Path() != path && tags.IsMusicFile(path) {
		cmds = append(cmds, m.Loads.TagsNow(path))
	}
	m.SaveNavigationState()
	return tea.Batch(cmds...)
}

// handleTagsLoaded fills the metadata form. A load landing while a field
// is being edited is dropped so the edit is not lost.
func (m Model) handleTagsLoaded(msg TagsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.Loads.TagsCurrent(msg) {
		m.Log.V(1).Info("drop stale tags", "path", msg.Path, "request", msg.RequestID)
		return m, nil
	}
	if m.Machine.IsIn(navstate.FormEdit) {
		m.Log.V(1).Info("drop tags during edit", "path", msg.Path)
		return m, nil
	}
	if msg.Err != nil {
		m.Log.Error(msg.Err, "read tags", "path", msg.Path)
		m.Form.Clear()
		return m, tea.Batch(
			m.Nav.Revalidate(),
			m.Status.Set(errmsg.FormatWith(errmsg.OpTagRead, filepath.Base(msg.Path), msg.Err), true),
		)
	}
	m.Form.SetTag(msg.Tag)
	return m, m.Nav.Revalidate()
}

// handleFolderChanged lists the watched folder again and keeps waiting.
func (m Model) handleFolderChanged(msg navigator.ChangedMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.Dir == m.Files.Dir() {
		cmds = append(cmds, m.Loads.RefreshFiles(msg.Dir))
	}
	if m.Watcher != nil {
		cmds = append(cmds, m.Watcher.Wait())
	}
	return m, tea.Batch(cmds...)
}

// showHelp opens the bindings that apply where the user is.
func (m Model) showHelp() (tea.Model, tea.Cmd) {
	if m.Popups.IsVisible(popupctl.Help) {
		return m, nil
	}
	m.Repeat.Stop()
	m.Nav.SaveFocus()
	return m, m.Popups.ShowHelp(helpContexts(m.Machine.State(), m.Nav.CurrentPane()))
}
