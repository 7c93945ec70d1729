// Package navctl is the keyboard navigation engine of the three panes. It
// ties the focus ledger, the navigation state machine, the event router,
// the key repeat controller and list navigation to the folder tree, file
// list and metadata form.
package navctl

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/focus"
	"github.com/llehouerou/tagdeck/internal/keyrepeat"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/router"
	"github.com/llehouerou/tagdeck/internal/ui/filelist"
	"github.com/llehouerou/tagdeck/internal/ui/foldertree"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// paneOrder is the Tab cycle.
var paneOrder = []element.Pane{
	element.PaneFolders,
	element.PaneFiles,
	element.PaneMetadata,
}

// Callbacks connect the engine to the rest of the application. Any of them
// may be nil.
type Callbacks struct {
	// SelectTreeItem reports a folder selection.
	SelectTreeItem func(el *element.Element, viaKeyboard bool) tea.Cmd
	// SelectFileItem reports a file selection.
	SelectFileItem func(el *element.Element, viaKeyboard bool) tea.Cmd
	// LoadFile requests the tags of a file.
	LoadFile func(path string, el *element.Element) tea.Cmd
	// LoadFiles requests the file listing of a folder.
	LoadFiles func(folderPath string) tea.Cmd

	// ShowHelp opens the help overlay.
	ShowHelp func() tea.Cmd
	// CommitChange persists an edited tag field.
	CommitChange func(c *metaform.Change) tea.Cmd
	// RenameFile renames a file on disk.
	RenameFile func(from, to string) tea.Cmd
}

// Deps are the collaborators of a Manager. All are required except Log.
type Deps struct {
	Doc     *element.Document
	Ledger  *focus.Ledger
	Machine *navstate.Machine
	Router  *router.Router
	Repeat  *keyrepeat.Controller
	Lists   *listnav.Navigator
	Tree    *foldertree.Model
	Files   *filelist.Model
	Form    *metaform.Model
	Log     logr.Logger
}

// Manager owns pane focus and the navigation entry points used by routes
// and by the host UI.
type Manager struct {
	doc     *element.Document
	ledger  *focus.Ledger
	machine *navstate.Machine
	router  *router.Router
	repeat  *keyrepeat.Controller
	lists   *listnav.Navigator
	log     logr.Logger

	tree  *foldertree.Model
	files *filelist.Model
	form  *metaform.Model

	treePane *treePane
	filePane *filePane
	formPane *formPane

	cb         Callbacks
	current    element.Pane
	remembered map[element.Pane]*element.Element
}

// New wires a manager. The pane elements are attached to the document root
// and the manager becomes the router's context provider.
func New(d Deps) *Manager {
	m := &Manager{
		doc:        d.Doc,
		ledger:     d.Ledger,
		machine:    d.Machine,
		router:     d.Router,
		repeat:     d.Repeat,
		lists:      d.Lists,
		log:        d.Log.WithName("navctl"),
		tree:       d.Tree,
		files:      d.Files,
		form:       d.Form,
		current:    element.PaneFolders,
		remembered: make(map[element.Pane]*element.Element),
	}
	m.treePane = &treePane{Model: d.Tree, m: m}
	m.filePane = &filePane{Model: d.Files, m: m}
	m.formPane = newFormPane(d.Form, m)

	root := d.Doc.Root()
	for _, el := range []*element.Element{d.Tree.Element(), d.Files.Element(), d.Form.Element()} {
		if !el.IsAttached() {
			root.Append(el)
		}
	}

	d.Router.SetProvider(m)
	d.Lists.OnTopBoundary = func(pane element.Pane) tea.Cmd {
		m.NavigateToHeaderIcon(pane, headerbar.IconFilter)
		return nil
	}
	m.setCurrent(element.PaneFolders)
	return m
}

// Init installs the callbacks.
func (m *Manager) Init(cb Callbacks) {
	m.cb = cb
}

// ActiveElement implements router.ContextProvider.
func (m *Manager) ActiveElement() *element.Element {
	return m.doc.ActiveElement()
}

// CurrentPane returns the active pane. It implements router.ContextProvider.
func (m *Manager) CurrentPane() element.Pane {
	return m.current
}

// State returns the navigation state.
func (m *Manager) State() navstate.State {
	return m.machine.State()
}

func (m *Manager) setCurrent(pane element.Pane) {
	m.current = pane
	m.tree.SetActive(pane == element.PaneFolders)
	m.files.SetActive(pane == element.PaneFiles)
	m.form.SetActive(pane == element.PaneMetadata)
}

func (m *Manager) pane(name element.Pane) listnav.Pane {
	switch name {
	case element.PaneFolders:
		return m.treePane
	case element.PaneFiles:
		return m.filePane
	case element.PaneMetadata:
		return m.formPane
	}
	return nil
}

func (m *Manager) header(name element.Pane) *headerbar.Model {
	switch name {
	case element.PaneFolders:
		return m.tree.Header()
	case element.PaneFiles:
		return m.files.Header()
	}
	return nil
}

// focusTarget picks the element to focus when entering a pane: the
// remembered element if it is still listed, else the selection, else the
// first item. It returns nil when the pane has nothing to focus.
func (m *Manager) focusTarget(name element.Pane) *element.Element {
	if name == element.PaneMetadata && !m.form.Loaded() {
		return nil
	}
	p := m.pane(name)
	if p == nil || p.List().Len() == 0 {
		return nil
	}
	list := p.List()
	if el := m.remembered[name]; el != nil && list.IndexOf(el) >= 0 {
		return el
	}
	if el := list.Selected(); el != nil {
		return el
	}
	return list.At(0)
}

// FocusPane moves keyboard focus into a pane. It reports false, changing
// nothing, when the pane has nothing focusable. When the focused item is
// not the selected one it becomes selected and the pane's select callback
// runs.
func (m *Manager) FocusPane(name element.Pane) (bool, tea.Cmd) {
	el := m.focusTarget(name)
	if el == nil {
		m.log.V(1).Info("pane has nothing to focus", "pane", string(name))
		return false, nil
	}
	m.setCurrent(name)
	p := m.pane(name)
	var cmd tea.Cmd
	if p.List().Selected() != el {
		p.List().Select(el)
		cmd = p.Select(el, true)
	}
	m.ledger.Focus(el)
	m.remembered[name] = el
	return true, cmd
}

// SwitchPanes leaves any edit, filter or header mode and moves to the next
// pane in the cycle that has something to focus. Panes with nothing to
// focus are skipped; when no other pane qualifies focus returns to the
// current one.
func (m *Manager) SwitchPanes() tea.Cmd {
	if m.repeat != nil {
		m.repeat.Stop()
	}
	m.leaveMode()

	start := slices.Index(paneOrder, m.current)
	for i := 1; i < len(paneOrder); i++ {
		next := paneOrder[(start+i)%len(paneOrder)]
		if ok, cmd := m.FocusPane(next); ok {
			return cmd
		}
	}
	return m.refocus(m.current)
}

// leaveMode returns the machine to Normal, closing whatever the current
// state has open.
func (m *Manager) leaveMode() {
	switch m.machine.State() {
	case navstate.FormEdit:
		if _, err := m.form.EndEdit(false); err != nil {
			m.log.Error(err, "cancel field edit")
		}
	case navstate.InlineEdit:
		m.files.EndRename(false)
	case navstate.FilterActive:
		m.closeFilterInput(element.Pane(m.machine.Value(navstate.KeyPane)), true)
	case navstate.HeaderFocus:
		m.clearIconFocus()
	}
	m.machine.Reset()
}

// refocus focuses pane, or its list container when the pane is empty so
// that the pane stays current.
func (m *Manager) refocus(pane element.Pane) tea.Cmd {
	if ok, cmd := m.FocusPane(pane); ok {
		return cmd
	}
	m.setCurrent(pane)
	if p := m.pane(pane); p != nil {
		m.ledger.Focus(p.Container())
	}
	return nil
}

// Revalidate restores focus after the lists changed underneath it, for
// example when a watched folder was modified. It does nothing outside
// Normal or when the focused element is still shown.
func (m *Manager) Revalidate() tea.Cmd {
	if !m.machine.IsIn(navstate.Normal) {
		return nil
	}
	if el := m.ledger.Focused(); el != nil && el.IsVisible() && m.listed(el) {
		return nil
	}
	if ok, cmd := m.FocusPane(m.current); ok {
		return cmd
	}
	return m.refocus(element.PaneFolders)
}

// SaveFocus records the focused element before an overlay takes the
// keyboard.
func (m *Manager) SaveFocus() {
	m.ledger.PushFocus(m.doc.ActiveElement())
}

// RestoreFocus gives focus back to the element saved by SaveFocus.
func (m *Manager) RestoreFocus() {
	el := m.ledger.PopFocus()
	if el == nil {
		m.refocus(m.current)
		return
	}
	if pane := el.PaneOf(); pane != element.PaneNone {
		m.setCurrent(pane)
	}
}

// listed reports whether el is still a valid focus in the current pane:
// one of its items, or its container while the pane is empty.
func (m *Manager) listed(el *element.Element) bool {
	p := m.pane(m.current)
	if p == nil || m.current == element.PaneMetadata && !m.form.Loaded() {
		return false
	}
	if p.List().IndexOf(el) >= 0 {
		return true
	}
	return el == p.Container() && p.List().Len() == 0
}

func (m *Manager) remember(pane element.Pane, el *element.Element) {
	m.remembered[pane] = el
}

func (m *Manager) rebuild(pane element.Pane) {
	switch pane {
	case element.PaneFolders:
		m.tree.Rebuild()
	case element.PaneFiles:
		m.files.Rebuild()
	}
}
