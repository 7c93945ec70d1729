// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/app/handler"
	"github.com/llehouerou/tagdeck/internal/app/popupctl"
	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/errmsg"
	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/router"
)

var globalKeys = keymap.NewContextResolver(keymap.ContextGlobal)

// textStates own a text input that receives unrouted keys.
var textStates = []navstate.State{navstate.FilterActive, navstate.FormEdit, navstate.InlineEdit}

// handleKey is the single entry point for key presses. Popups take the
// keyboard first. Otherwise the key repeat controller filters out echoes
// of a held key, the router dispatches the press, and keys no route
// claimed go to the text input of the current state or, outside text
// entry, to the global shortcuts.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.Popups.ActivePopup() != popupctl.None {
		_, cmd := m.Popups.HandleKey(msg)
		return m, cmd
	}

	ev := router.FromKeyMsg(msg)
	key := ev.String()
	if !m.Repeat.Press(key) {
		return m, m.Repeat.Echo(key)
	}

	handled, cmd := m.Router.Route(ev)
	if handled && ev.DefaultPrevented() {
		return m, cmd
	}
	if m.Machine.IsInAny(textStates...) {
		return m, tea.Batch(cmd, m.Nav.HandleInput(msg))
	}
	if handled {
		return m, cmd
	}

	_, cmd = handler.Chain(key,
		handler.OnAction(globalKeys, keymap.ActionQuit, m.quitCmd),
		handler.OnAction(globalKeys, keymap.ActionHelp, m.helpCmd),
		handler.OnAction(globalKeys, keymap.ActionCopyPath, m.copyPath),
		handler.OnAction(globalKeys, keymap.ActionOpen, m.openPath),
		handler.OnAction(globalKeys, keymap.ActionUndo, func() tea.Cmd { return m.applyHistory(true) }),
		handler.OnAction(globalKeys, keymap.ActionRedo, func() tea.Cmd { return m.applyHistory(false) }),
		handler.OnAction(globalKeys, keymap.ActionReload, m.reload),
	)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	return m, m.quitCmd()
}

func (m Model) quitCmd() tea.Cmd {
	m.Repeat.Stop()
	m.Close()
	return tea.Quit
}

func (m Model) helpCmd() tea.Cmd {
	_, cmd := m.showHelp()
	return cmd
}

// copyPath puts the focused path on the clipboard.
func (m Model) copyPath() tea.Cmd {
	path := m.focusedPath()
	if path == "" {
		return nil
	}
	if err := m.Desktop.Copy(path); err != nil {
		m.Log.Error(err, "copy path", "path", path)
		return m.Status.Set(errmsg.Format(errmsg.OpClipboard, err), true)
	}
	return m.Status.Set("Copied "+path, false)
}

// openPath opens the focused path with the default application.
func (m Model) openPath() tea.Cmd {
	path := m.focusedPath()
	if path == "" {
		return nil
	}
	if err := m.Desktop.Open(path); err != nil {
		m.Log.Error(err, "open", "path", path)
		return m.Status.Set(errmsg.FormatWith(errmsg.OpOpen, path, err), true)
	}
	return nil
}

// reload reads the folder tree and the listed folder from disk again.
func (m Model) reload() tea.Cmd {
	if err := m.Tree.Load(); err != nil {
		m.Log.Error(err, "reload folders")
		return m.Status.Set(errmsg.Format(errmsg.OpFolderLoad, err), true)
	}
	cmds := []tea.Cmd{m.Nav.Revalidate()}
	if dir := m.Files.Dir(); dir != "" {
		cmds = append(cmds, m.Loads.RefreshFiles(dir))
	}
	return tea.Batch(cmds...)
}

// focusedPath returns the path the desktop shortcuts act on.
func (m Model) focusedPath() string {
	switch m.Nav.CurrentPane() {
	case element.PaneFolders:
		return m.Tree.SelectedPath()
	case element.PaneFiles:
		if e, ok := m.Files.Entry(m.Files.List().Selected()); ok {
			return e.Path
		}
	case element.PaneMetadata:
		return m.Form.Path()
	}
	return ""
}

// helpContexts lists the binding groups that apply in a state and pane.
func helpContexts(s navstate.State, pane element.Pane) []string {
	switch s {
	case navstate.HeaderFocus:
		return []string{keymap.ContextHeader, keymap.ContextGlobal}
	case navstate.FilterActive:
		return []string{keymap.ContextFilter}
	case navstate.FormEdit, navstate.InlineEdit:
		return []string{keymap.ContextEdit}
	}
	switch pane {
	case element.PaneFolders:
		return []string{keymap.ContextGlobal, keymap.ContextList, keymap.ContextFolders}
	case element.PaneFiles:
		return []string{keymap.ContextGlobal, keymap.ContextList, keymap.ContextFiles}
	case element.PaneMetadata:
		return []string{keymap.ContextGlobal, keymap.ContextMetadata}
	}
	return []string{keymap.ContextGlobal}
}
