// Package filelist is the file pane: the music files of the selected
// folder, filtered and sorted, with inline rename.
package filelist

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/ui"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
)

// Element classes.
const (
	ItemClass    = "file-item"
	RenameClass  = "rename-input"
	EditingClass = "editing"
)

// renameHintHeight is the height of the hint shown over the bottom of the
// list while a row is being renamed.
const renameHintHeight = 1

// Model is the file list pane.
type Model struct {
	ui.Base

	log logr.Logger

	el        *element.Element
	header    *headerbar.Model
	container *element.Element
	list      listnav.SelectionList

	dir     string
	entries []navigator.Entry
	rows    map[string]*element.Element

	sortKey navigator.SortKey
	sortDir navigator.Direction

	renaming    *element.Element
	renameEl    *element.Element
	renameInput textinput.Model
	suggestName func(path string) string
}

// New creates an empty file list.
func New(log logr.Logger) *Model {
	m := &Model{
		log:       log.WithName("filelist"),
		el:        element.New("files-pane", element.KindDiv),
		header:    headerbar.New(element.PaneFiles),
		container: element.NewScroller("files-list", element.KindList),
		rows:      make(map[string]*element.Element),
		renameEl:  element.New("files-rename", element.KindInput),
	}
	m.el.Pane = element.PaneFiles
	m.el.Append(m.header.Element(), m.container)
	m.el.LayoutRows()
	m.renameEl.AddClass(RenameClass)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 255
	m.renameInput = ti
	return m
}

// Name returns the pane name.
func (m *Model) Name() element.Pane { return element.PaneFiles }

// Element returns the pane root element.
func (m *Model) Element() *element.Element { return m.el }

// Header returns the header bar.
func (m *Model) Header() *headerbar.Model { return m.header }

// List returns the visible rows.
func (m *Model) List() *listnav.SelectionList { return &m.list }

// Container returns the scroll container of the rows.
func (m *Model) Container() *element.Element { return m.container }

// Dir returns the folder whose files are listed.
func (m *Model) Dir() string { return m.dir }

// Empty reports whether no row is visible.
func (m *Model) Empty() bool { return m.list.Len() == 0 }

// SetSize sets the outer pane size and the visible rows of the list.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.container.ViewHeight = m.ListHeight(headerbar.Height)
}

// SetFiles replaces the listing. Rows of files that are still present keep
// their element so a selection survives a refresh of the same folder.
// Switching to another folder drops the selection.
func (m *Model) SetFiles(dir string, entries []navigator.Entry) {
	if dir != m.dir {
		m.cancelRename()
		m.rows = make(map[string]*element.Element)
		m.list.Clear()
		m.container.ScrollTop = 0
	}
	m.dir = dir
	m.entries = entries

	keep := make(map[string]*element.Element, len(entries))
	for _, e := range entries {
		el, ok := m.rows[e.ID()]
		if !ok {
			el = element.New(e.ID(), element.KindListItem)
			el.AddClass(ItemClass)
		}
		el.Label = e.Name
		el.Data = e
		keep[e.ID()] = el
	}
	for id, el := range m.rows {
		if _, ok := keep[id]; !ok {
			if el == m.renaming {
				m.cancelRename()
			}
			el.Detach()
		}
	}
	m.rows = keep
	m.Rebuild()
}

// Clear empties the list, as when no folder is selected.
func (m *Model) Clear() {
	m.SetFiles("", nil)
}

// Rebuild recomputes the visible rows from the sort and filter query. The
// selection is re-anchored by path or cleared.
func (m *Model) Rebuild() {
	sorted := append([]navigator.Entry(nil), m.entries...)
	navigator.Sort(sorted, m.sortKey, m.sortDir)
	visible := navigator.Filter(sorted, m.header.Query())

	rows := make([]*element.Element, 0, len(visible))
	for i, e := range visible {
		el := m.rows[e.ID()]
		el.Top = i
		el.Height = 1
		rows = append(rows, el)
	}
	m.container.SetChildren(rows)
	m.list.Rebuild(rows)
	m.container.ScrollTop = min(m.container.ScrollTop, max(len(rows)-m.container.ViewHeight, 0))
}

// Entry returns the file an element represents.
func (m *Model) Entry(el *element.Element) (navigator.Entry, bool) {
	if el == nil {
		return navigator.Entry{}, false
	}
	e, ok := el.Data.(navigator.Entry)
	return e, ok
}

// Paths returns the paths of all listed files, filtered or not.
func (m *Model) Paths() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Path
	}
	return out
}

// SortKey returns the active sort key.
func (m *Model) SortKey() navigator.SortKey { return m.sortKey }

// Descending reports whether rows sort in descending order.
func (m *Model) Descending() bool { return m.sortDir == navigator.Descending }

// CycleSort advances to the next file sort key and rebuilds.
func (m *Model) CycleSort() {
	m.sortKey = m.sortKey.Next(navigator.FileSortKeys)
	m.Rebuild()
}

// FlipSort reverses the sort direction and rebuilds.
func (m *Model) FlipSort() {
	m.sortDir = m.sortDir.Flip()
	m.Rebuild()
}

// SetSort sets key and direction without cycling.
func (m *Model) SetSort(key navigator.SortKey, dir navigator.Direction) {
	m.sortKey, m.sortDir = key, dir
	m.Rebuild()
}

// Renaming reports whether a row is being renamed.
func (m *Model) Renaming() bool { return m.renaming != nil }

// RenameElement returns the rename input element. It is attached to the
// row being renamed while a rename is in progress.
func (m *Model) RenameElement() *element.Element { return m.renameEl }

// BeginRename opens the rename input on el, prefilled with its name.
func (m *Model) BeginRename(el *element.Element) tea.Cmd {
	e, ok := m.Entry(el)
	if !ok || !el.IsAttached() {
		return nil
	}
	m.cancelRename()
	m.renaming = el
	el.AddClass(EditingClass)
	el.Append(m.renameEl)
	m.renameEl.Top = 0
	m.container.BottomInset = renameHintHeight

	m.renameInput.SetValue(e.Name)
	// Place the cursor before the extension.
	m.renameInput.SetCursor(len([]rune(strings.TrimSuffix(e.Name, filepath.Ext(e.Name)))))
	return m.renameInput.Focus()
}

// SetNameSuggester sets the source of names offered by FillSuggestedName.
// It returns "" when it has nothing to offer for a path.
func (m *Model) SetNameSuggester(fn func(path string) string) { m.suggestName = fn }

// FillSuggestedName replaces the rename text with the suggested name of the
// file being renamed. It reports whether a name was filled in.
func (m *Model) FillSuggestedName() bool {
	if m.renaming == nil || m.suggestName == nil {
		return false
	}
	e, ok := m.Entry(m.renaming)
	if !ok {
		return false
	}
	name := m.suggestName(e.Path)
	if name == "" {
		return false
	}
	m.renameInput.SetValue(name)
	m.renameInput.CursorEnd()
	return true
}

// UpdateRename forwards a message to the rename input.
func (m *Model) UpdateRename(msg tea.Msg) tea.Cmd {
	if m.renaming == nil {
		return nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return cmd
}

// RenameValue returns the text typed so far.
func (m *Model) RenameValue() string { return m.renameInput.Value() }

// EndRename closes the rename input. With commit set and a usable new name
// it returns the old and new paths; ok is false otherwise. The row being
// renamed is returned so focus can go back to it.
func (m *Model) EndRename(commit bool) (row *element.Element, from, to string, ok bool) {
	row = m.renaming
	if row == nil {
		return nil, "", "", false
	}
	e, _ := m.Entry(row)
	name := strings.TrimSpace(m.renameInput.Value())
	m.cancelRename()

	if !commit || !validName(name) || name == e.Name {
		return row, "", "", false
	}
	return row, e.Path, filepath.Join(filepath.Dir(e.Path), name), true
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/')
}

func (m *Model) cancelRename() {
	if m.renaming == nil {
		return
	}
	m.renaming.RemoveClass(EditingClass)
	m.renameEl.Detach()
	m.renameInput.Blur()
	m.renameInput.SetValue("")
	m.renaming = nil
	m.container.BottomInset = 0
}

// RenameHint returns the hint shown below the list while renaming.
func (m *Model) RenameHint() string {
	if m.renaming == nil {
		return ""
	}
	if e, ok := m.Entry(m.renaming); ok && m.suggestName != nil {
		if name := m.suggestName(e.Path); name != "" {
			return "ctrl+t " + name
		}
	}
	return "enter rename  esc cancel"
}
