// Package listnav moves a selection through the ordered, rebuildable item
// lists of the folder and file panes.
package listnav

import (
	"slices"

	"github.com/llehouerou/tagdeck/internal/element"
)

// SelectionList is an ordered sequence of items plus a selected pointer.
// The pointer is either nil or a member of the current items.
type SelectionList struct {
	items    []*element.Element
	selected *element.Element
}

// Items returns the current items in display order.
func (l *SelectionList) Items() []*element.Element { return l.items }

// Len returns the number of items.
func (l *SelectionList) Len() int { return len(l.items) }

// At returns the item at i, or nil when out of range.
func (l *SelectionList) At(i int) *element.Element {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Selected returns the selected item, or nil.
func (l *SelectionList) Selected() *element.Element { return l.selected }

// Index returns the position of the selected item, or -1.
func (l *SelectionList) Index() int {
	if l.selected == nil {
		return -1
	}
	return slices.Index(l.items, l.selected)
}

// IndexOf returns the position of el, or -1.
func (l *SelectionList) IndexOf(el *element.Element) int {
	return slices.Index(l.items, el)
}

// Select points the selection at el. Non-members are refused.
func (l *SelectionList) Select(el *element.Element) bool {
	if el == nil || !slices.Contains(l.items, el) {
		return false
	}
	l.selected = el
	return true
}

// SelectID selects the item with the given id.
func (l *SelectionList) SelectID(id string) *element.Element {
	for _, it := range l.items {
		if it.ID == id {
			l.selected = it
			return it
		}
	}
	return nil
}

// Clear drops the selection.
func (l *SelectionList) Clear() { l.selected = nil }

// Rebuild replaces the items. A previous selection is re-anchored to the
// item with the same id; when no such item exists the selection is cleared.
// It reports whether the selection survived.
func (l *SelectionList) Rebuild(items []*element.Element) bool {
	l.items = items
	if l.selected == nil {
		return false
	}
	id := l.selected.ID
	l.selected = nil
	return l.SelectID(id) != nil
}

// SelectFirstIfNone selects the first item when nothing is selected and
// returns it. It returns nil when a selection already existed or the list
// is empty.
func (l *SelectionList) SelectFirstIfNone() *element.Element {
	if l.selected != nil || len(l.items) == 0 {
		return nil
	}
	l.selected = l.items[0]
	return l.selected
}
