package navctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/ui/filelist"
	"github.com/llehouerou/tagdeck/internal/ui/foldertree"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

var (
	_ listnav.Pane     = (*treePane)(nil)
	_ listnav.Expander = (*treePane)(nil)
	_ listnav.Pane     = (*filePane)(nil)
	_ listnav.Opener   = (*filePane)(nil)
	_ listnav.Pane     = (*formPane)(nil)
)

// treePane reports folder selections to the callbacks. Selecting a folder
// also requests its file listing.
type treePane struct {
	*foldertree.Model
	m *Manager
}

func (p *treePane) Select(el *element.Element, viaKeyboard bool) tea.Cmd {
	p.m.remember(element.PaneFolders, el)
	var cmds []tea.Cmd
	if fn := p.m.cb.SelectTreeItem; fn != nil {
		cmds = append(cmds, fn(el, viaKeyboard))
	}
	if e, ok := p.Entry(el); ok && p.m.cb.LoadFiles != nil {
		cmds = append(cmds, p.m.cb.LoadFiles(e.Path))
	}
	return tea.Batch(cmds...)
}

// filePane reports file selections; Enter loads the file's tags.
type filePane struct {
	*filelist.Model
	m *Manager
}

func (p *filePane) Select(el *element.Element, viaKeyboard bool) tea.Cmd {
	p.m.remember(element.PaneFiles, el)
	if fn := p.m.cb.SelectFileItem; fn != nil {
		return fn(el, viaKeyboard)
	}
	return nil
}

func (p *filePane) Open(el *element.Element) tea.Cmd {
	e, ok := p.Entry(el)
	if !ok || p.m.cb.LoadFile == nil {
		return nil
	}
	return p.m.cb.LoadFile(e.Path, el)
}

// formPane exposes the metadata fields as a list so that Up/Down, paging
// and Home/End move between them.
type formPane struct {
	form *metaform.Model
	list listnav.SelectionList
	m    *Manager
}

func newFormPane(form *metaform.Model, m *Manager) *formPane {
	p := &formPane{form: form, m: m}
	p.list.Rebuild(form.Fields())
	return p
}

func (p *formPane) Name() element.Pane           { return element.PaneMetadata }
func (p *formPane) List() *listnav.SelectionList { return &p.list }
func (p *formPane) Container() *element.Element  { return p.form.Container() }

func (p *formPane) Select(el *element.Element, _ bool) tea.Cmd {
	p.m.remember(element.PaneMetadata, el)
	return nil
}
