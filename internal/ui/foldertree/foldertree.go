// Package foldertree is the folder pane: a lazily loaded tree of the
// subfolders under the start folder, flattened into a selection list.
package foldertree

import (
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/ui"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
)

// ItemClass marks folder rows.
const ItemClass = "tree-item"

type node struct {
	entry      navigator.Entry
	depth      int
	parent     *node
	children   []*node
	loaded     bool
	expanded   bool
	subfolders listnav.Subfolders
	el         *element.Element
}

// Model is the folder tree pane.
type Model struct {
	ui.Base

	src *navigator.FileSource
	log logr.Logger

	el        *element.Element
	header    *headerbar.Model
	container *element.Element
	list      listnav.SelectionList

	roots  []*node
	byPath map[string]*node

	sortKey navigator.SortKey
	sortDir navigator.Direction
}

// New creates an empty tree reading from src. Call Load to populate it.
func New(src *navigator.FileSource, log logr.Logger) *Model {
	m := &Model{
		src:       src,
		log:       log.WithName("foldertree"),
		el:        element.New("folders-pane", element.KindDiv),
		header:    headerbar.New(element.PaneFolders),
		container: element.NewScroller("folders-list", element.KindList),
		byPath:    make(map[string]*node),
	}
	m.el.Pane = element.PaneFolders
	m.el.Append(m.header.Element(), m.container)
	m.el.LayoutRows()
	return m
}

// Name returns the pane name.
func (m *Model) Name() element.Pane { return element.PaneFolders }

// Element returns the pane root element.
func (m *Model) Element() *element.Element { return m.el }

// Header returns the header bar.
func (m *Model) Header() *headerbar.Model { return m.header }

// List returns the visible rows.
func (m *Model) List() *listnav.SelectionList { return &m.list }

// Container returns the scroll container of the rows.
func (m *Model) Container() *element.Element { return m.container }

// Root returns the folder the tree is rooted at.
func (m *Model) Root() string { return m.src.Root() }

// SetSize sets the outer pane size and the visible rows of the list.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.container.ViewHeight = m.ListHeight(headerbar.Height)
}

// Load reads the top-level folders and rebuilds the rows. Previously
// loaded subtrees are re-read so the tree reflects the disk.
func (m *Model) Load() error {
	entries, err := m.src.Subfolders(m.src.Root())
	if err != nil {
		return err
	}
	m.roots = m.sync(nil, m.roots, entries)
	m.Rebuild()
	return nil
}

// sync merges a fresh listing into existing nodes, reusing nodes (and
// their elements) for paths that are still present.
func (m *Model) sync(parent *node, old []*node, entries []navigator.Entry) []*node {
	prev := make(map[string]*node, len(old))
	for _, n := range old {
		prev[n.entry.Path] = n
	}
	depth := 0
	if parent != nil {
		depth = parent.depth + 1
	}

	out := make([]*node, 0, len(entries))
	for _, e := range entries {
		n, ok := prev[e.Path]
		if ok {
			delete(prev, e.Path)
			n.entry = e
			if n.loaded {
				m.reload(n)
			}
		} else {
			n = m.newNode(e, parent, depth)
		}
		out = append(out, n)
	}
	for _, gone := range prev {
		m.forget(gone)
	}
	return out
}

func (m *Model) newNode(e navigator.Entry, parent *node, depth int) *node {
	el := element.New(e.Path, element.KindListItem)
	el.AddClass(ItemClass)
	el.Label = e.Name
	n := &node{entry: e, depth: depth, parent: parent, el: el}
	el.Data = n
	m.byPath[e.Path] = n
	return n
}

func (m *Model) forget(n *node) {
	for _, c := range n.children {
		m.forget(c)
	}
	delete(m.byPath, n.entry.Path)
	n.el.Detach()
}

func (m *Model) reload(n *node) {
	entries, err := m.src.Subfolders(n.entry.Path)
	if err != nil {
		m.log.Error(err, "list subfolders", "path", n.entry.Path)
		entries = nil
	}
	n.children = m.sync(n, n.children, entries)
	n.loaded = true
	if len(n.children) == 0 {
		n.subfolders = listnav.SubfoldersNone
		n.expanded = false
	} else {
		n.subfolders = listnav.SubfoldersPresent
	}
}

func nodeOf(el *element.Element) *node {
	if el == nil {
		return nil
	}
	n, _ := el.Data.(*node)
	return n
}

// Entry returns the folder an element represents.
func (m *Model) Entry(el *element.Element) (navigator.Entry, bool) {
	n := nodeOf(el)
	if n == nil {
		return navigator.Entry{}, false
	}
	return n.entry, true
}

// Subfolders reports what is known about el's children.
func (m *Model) Subfolders(el *element.Element) listnav.Subfolders {
	if n := nodeOf(el); n != nil {
		return n.subfolders
	}
	return listnav.SubfoldersNone
}

// Expanded reports whether el is expanded.
func (m *Model) Expanded(el *element.Element) bool {
	n := nodeOf(el)
	return n != nil && n.expanded
}

// ParentOf returns the row of el's parent folder, or nil for top-level rows.
func (m *Model) ParentOf(el *element.Element) *element.Element {
	n := nodeOf(el)
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent.el
}

// SetExpanded expands or collapses el, reading its children on first
// expansion. A folder found to have no subfolders stays collapsed. The
// selection does not move and no files are loaded.
func (m *Model) SetExpanded(el *element.Element, expanded bool) tea.Cmd {
	n := nodeOf(el)
	if n == nil || n.expanded == expanded {
		return nil
	}
	if expanded && !n.loaded {
		m.reload(n)
	}
	n.expanded = expanded && n.subfolders != listnav.SubfoldersNone
	m.Rebuild()
	return nil
}

// Reveal expands every ancestor of path and selects its row. It returns
// nil when path is not under the root or no longer exists.
func (m *Model) Reveal(path string) *element.Element {
	rel, err := filepath.Rel(m.src.Root(), path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	cur := m.src.Root()
	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		cur = filepath.Join(cur, part)
		n, ok := m.byPath[cur]
		if !ok {
			return nil
		}
		if i < len(parts)-1 && !n.expanded {
			if !n.loaded {
				m.reload(n)
			}
			n.expanded = n.subfolders != listnav.SubfoldersNone
		}
	}
	m.Rebuild()
	return m.list.SelectID(cur)
}

// SortKey returns the active sort key.
func (m *Model) SortKey() navigator.SortKey { return m.sortKey }

// Descending reports whether rows sort in descending order.
func (m *Model) Descending() bool { return m.sortDir == navigator.Descending }

// CycleSort advances to the next folder sort key and rebuilds.
func (m *Model) CycleSort() {
	m.sortKey = m.sortKey.Next(navigator.FolderSortKeys)
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

// Rebuild recomputes the visible rows from the expansion state, sort and
// filter query. The selection is re-anchored by path or cleared.
func (m *Model) Rebuild() {
	match, err := navigator.NewMatcher(m.header.Query())
	if err != nil {
		match = func(string) bool { return false }
	}
	filtering := strings.TrimSpace(m.header.Query()) != ""
	cmp := navigator.SortFunc(m.sortKey, m.sortDir)

	var rows []*element.Element
	var walk func(nodes []*node)
	walk = func(nodes []*node) {
		nodes = slices.Clone(nodes)
		slices.SortStableFunc(nodes, func(a, b *node) int { return cmp(a.entry, b.entry) })
		for _, n := range nodes {
			hit := !filtering || match(n.entry.Name)
			below := filtering && hasMatch(n.children, match)
			if !hit && !below {
				continue
			}
			rows = append(rows, n.el)
			if n.expanded || below {
				walk(n.children)
			}
		}
	}
	walk(m.roots)

	for i, el := range rows {
		el.Top = i
		el.Height = 1
	}
	m.container.SetChildren(rows)
	m.list.Rebuild(rows)
	m.container.ScrollTop = min(m.container.ScrollTop, max(len(rows)-m.container.ViewHeight, 0))
}

func hasMatch(nodes []*node, match navigator.Matcher) bool {
	for _, n := range nodes {
		if match(n.entry.Name) || hasMatch(n.children, match) {
			return true
		}
	}
	return false
}

// SelectedPath returns the path of the selected folder, or "".
func (m *Model) SelectedPath() string {
	if n := nodeOf(m.list.Selected()); n != nil {
		return n.entry.Path
	}
	return ""
}
