// Package element provides the in-process element tree the navigation engine
// operates on. It plays the role a DOM plays in a browser: panes, lists,
// header controls and form fields are elements with a kind, classes, a
// logical-focus flag and row geometry.
package element

import "slices"

// Kind identifies what sort of control an element is.
type Kind string

const (
	KindDiv      Kind = "div"
	KindInput    Kind = "input"
	KindButton   Kind = "button"
	KindList     Kind = "list"
	KindListItem Kind = "listitem"
)

// Pane names one of the three top-level regions.
type Pane string

const (
	PaneNone     Pane = ""
	PaneFolders  Pane = "folders"
	PaneFiles    Pane = "files"
	PaneMetadata Pane = "metadata"
)

// Element is a node in the element tree.
//
// Geometry is expressed in terminal rows: Top is the offset of the element
// inside its parent's content, Height its rendered height. Scroll containers
// additionally track ScrollTop, ViewHeight and BottomInset (rows of the
// viewport hidden behind an overlapping bottom panel).
type Element struct {
	ID    string
	Kind  Kind
	Pane  Pane
	Label string
	Data  any

	Top    int
	Height int

	ScrollTop   int
	ViewHeight  int
	BottomInset int

	classes    []string
	parent     *Element
	children   []*Element
	focused    bool
	hidden     bool
	readOnly   bool
	scrollable bool
	root       bool
}

// New creates a detached element.
func New(id string, kind Kind) *Element {
	return &Element{ID: id, Kind: kind, Height: 1}
}

// NewScroller creates a detached scroll container.
func NewScroller(id string, kind Kind) *Element {
	e := New(id, kind)
	e.scrollable = true
	e.Height = 0
	return e
}

// Parent returns the parent element, or nil when detached or root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in order.
func (e *Element) Children() []*Element { return e.children }

// Append adds children at the end, detaching them from any previous parent.
func (e *Element) Append(children ...*Element) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = e
		e.children = append(e.children, c)
	}
}

// Remove detaches child from e. It is a no-op when child is not a child of e.
func (e *Element) Remove(child *Element) {
	idx := slices.Index(e.children, child)
	if idx < 0 {
		return
	}
	e.children = slices.Delete(e.children, idx, idx+1)
	child.parent = nil
}

// SetChildren replaces all children, detaching the previous ones.
func (e *Element) SetChildren(children []*Element) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.Append(children...)
}

// Detach removes e from its parent.
func (e *Element) Detach() {
	if e.parent != nil {
		e.parent.Remove(e)
	}
}

// IsAttached reports whether e is connected to a document root.
func (e *Element) IsAttached() bool {
	for n := e; n != nil; n = n.parent {
		if n.root {
			return true
		}
	}
	return false
}

// IsVisible reports whether e and all its ancestors are shown.
func (e *Element) IsVisible() bool {
	for n := e; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
	}
	return true
}

// SetHidden hides or shows the element.
func (e *Element) SetHidden(hidden bool) { e.hidden = hidden }

// Hidden reports the element's own hidden flag.
func (e *Element) Hidden() bool { return e.hidden }

// ReadOnly reports whether an input rejects edits.
func (e *Element) ReadOnly() bool { return e.readOnly }

// SetReadOnly marks an input as read-only or editable.
func (e *Element) SetReadOnly(readOnly bool) { e.readOnly = readOnly }

// LogicallyFocused reports whether e carries the keyboard-focus indicator.
func (e *Element) LogicallyFocused() bool { return e.focused }

// SetLogicalFocus sets the keyboard-focus indicator. Callers normally go
// through focus.Ledger so that at most one element is marked.
func (e *Element) SetLogicalFocus(focused bool) { e.focused = focused }

// Scrollable reports whether e is a scroll container.
func (e *Element) Scrollable() bool { return e.scrollable }

// AddClass adds a class marker.
func (e *Element) AddClass(class string) {
	if !slices.Contains(e.classes, class) {
		e.classes = append(e.classes, class)
	}
}

// RemoveClass removes a class marker.
func (e *Element) RemoveClass(class string) {
	if idx := slices.Index(e.classes, class); idx >= 0 {
		e.classes = slices.Delete(e.classes, idx, idx+1)
	}
}

// HasClass reports whether the class marker is set.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// Classes returns a copy of the class markers.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// PaneOf returns the pane e belongs to, walking up the ancestors.
func (e *Element) PaneOf() Pane {
	for n := e; n != nil; n = n.parent {
		if n.Pane != PaneNone {
			return n.Pane
		}
	}
	return PaneNone
}

// Closest returns the nearest element, starting with e itself, for which
// match returns true.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for n := e; n != nil; n = n.parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// ScrollParent returns the nearest scrollable ancestor, excluding e.
func (e *Element) ScrollParent() *Element {
	if e.parent == nil {
		return nil
	}
	return e.parent.Closest((*Element).Scrollable)
}

// OffsetWithin returns the row offset of e inside ancestor's content.
// ok is false when ancestor is not an ancestor of e.
func (e *Element) OffsetWithin(ancestor *Element) (offset int, ok bool) {
	for n := e; n != nil; n = n.parent {
		if n == ancestor {
			return offset, true
		}
		offset += n.Top
	}
	return 0, false
}

// ContentHeight returns the number of rows spanned by the children.
func (e *Element) ContentHeight() int {
	h := 0
	for _, c := range e.children {
		if c.hidden {
			continue
		}
		h = max(h, c.Top+c.Height)
	}
	return h
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Walk visits e and its descendants depth-first. Returning false from visit
// skips the element's subtree.
func (e *Element) Walk(visit func(*Element) bool) {
	if !visit(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(visit)
	}
}

// Find returns the first descendant (or e) matching the predicate.
func (e *Element) Find(match func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant (including e) matching the predicate.
func (e *Element) FindAll(match func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// LayoutRows stacks children vertically by assigning Top from their heights.
func (e *Element) LayoutRows() {
	top := 0
	for _, c := range e.children {
		c.Top = top
		if !c.hidden {
			top += c.Height
		}
	}
}
