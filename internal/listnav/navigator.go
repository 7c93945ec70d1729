package listnav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/focus"
	"github.com/llehouerou/tagdeck/internal/keyrepeat"
	"github.com/llehouerou/tagdeck/internal/navstate"
)

// pageSample is the number of items measured to estimate row height.
const pageSample = 5

// Pane is a list pane the navigator can drive.
type Pane interface {
	Name() element.Pane
	List() *SelectionList
	// Container is the scroll container of the list items.
	Container() *element.Element
	// Select reports a selection change to the outside world.
	Select(el *element.Element, viaKeyboard bool) tea.Cmd
}

// Subfolders is what is known about a folder's children.
type Subfolders int

const (
	SubfoldersUnknown Subfolders = iota
	SubfoldersPresent
	SubfoldersNone
)

// Expander is implemented by tree panes.
type Expander interface {
	Subfolders(el *element.Element) Subfolders
	Expanded(el *element.Element) bool
	// SetExpanded expands or collapses el, loading children on first
	// expansion, and rebuilds the list.
	SetExpanded(el *element.Element, expanded bool) tea.Cmd
	ParentOf(el *element.Element) *element.Element
}

// Opener is implemented by panes whose items open on Enter.
type Opener interface {
	Open(el *element.Element) tea.Cmd
}

// Navigator implements directional movement within list panes.
type Navigator struct {
	ledger  *focus.Ledger
	machine *navstate.Machine
	repeat  *keyrepeat.Controller

	// OnTopBoundary is called when Up is pressed on the first item.
	OnTopBoundary func(pane element.Pane) tea.Cmd
}

// NewNavigator creates a navigator.
func NewNavigator(ledger *focus.Ledger, machine *navstate.Machine, repeat *keyrepeat.Controller) *Navigator {
	return &Navigator{ledger: ledger, machine: machine, repeat: repeat}
}

// MoveUp moves the selection one item up. With no selection it selects the
// last item. On the first item it hands focus to the header.
func (n *Navigator) MoveUp(p Pane) tea.Cmd {
	list := p.List()
	if list.Len() == 0 {
		return nil
	}
	idx := list.Index()
	switch {
	case idx < 0:
		return n.moveTo(p, list.Len()-1)
	case idx == 0:
		if n.OnTopBoundary == nil {
			return nil
		}
		if n.repeat != nil {
			n.repeat.Stop()
		}
		return n.OnTopBoundary(p.Name())
	}
	return n.moveTo(p, idx-1)
}

// MoveDown moves the selection one item down, clamped at the end. With no
// selection it selects the first item.
func (n *Navigator) MoveDown(p Pane) tea.Cmd {
	list := p.List()
	if list.Len() == 0 {
		return nil
	}
	idx := list.Index()
	if idx < 0 {
		return n.moveTo(p, 0)
	}
	return n.moveTo(p, min(idx+1, list.Len()-1))
}

// Step starts a repeat session for key that moves one item per tick.
func (n *Navigator) Step(key string, p Pane, down bool) tea.Cmd {
	move := func() tea.Cmd {
		if n.machine != nil && !n.machine.IsIn(navstate.Normal) {
			if n.repeat != nil {
				n.repeat.Stop()
			}
			return nil
		}
		if down {
			return n.MoveDown(p)
		}
		return n.MoveUp(p)
	}
	if n.repeat == nil {
		return move()
	}
	return n.repeat.Start(key, move)
}

// PageUp moves the selection one page up, clamped at the first item.
func (n *Navigator) PageUp(p Pane) tea.Cmd {
	return n.page(p, -1)
}

// PageDown moves the selection one page down, clamped at the last item.
func (n *Navigator) PageDown(p Pane) tea.Cmd {
	return n.page(p, 1)
}

func (n *Navigator) page(p Pane, dir int) tea.Cmd {
	list := p.List()
	if list.Len() == 0 {
		return nil
	}
	idx := list.Index()
	if idx < 0 {
		if dir > 0 {
			return n.moveTo(p, 0)
		}
		return n.moveTo(p, list.Len()-1)
	}
	target := idx + dir*ItemsPerPage(p.Container(), list.Items())
	return n.moveTo(p, min(max(target, 0), list.Len()-1))
}

// Home selects the first item.
func (n *Navigator) Home(p Pane) tea.Cmd {
	if p.List().Len() == 0 {
		return nil
	}
	return n.moveTo(p, 0)
}

// End selects the last item.
func (n *Navigator) End(p Pane) tea.Cmd {
	if p.List().Len() == 0 {
		return nil
	}
	return n.moveTo(p, p.List().Len()-1)
}

// Activate handles Enter on the selected item. Folders toggle expansion
// unless they are known to have no subfolders; openable items open.
func (n *Navigator) Activate(p Pane) tea.Cmd {
	el := p.List().Selected()
	if el == nil {
		return nil
	}
	if exp, ok := p.(Expander); ok {
		if exp.Subfolders(el) == SubfoldersNone {
			return nil
		}
		return exp.SetExpanded(el, !exp.Expanded(el))
	}
	if op, ok := p.(Opener); ok {
		return op.Open(el)
	}
	return nil
}

// Collapse collapses an expanded folder, or moves to its parent.
func (n *Navigator) Collapse(p Pane) tea.Cmd {
	exp, ok := p.(Expander)
	el := p.List().Selected()
	if !ok || el == nil {
		return nil
	}
	if exp.Expanded(el) {
		return exp.SetExpanded(el, false)
	}
	parent := exp.ParentOf(el)
	if idx := p.List().IndexOf(parent); idx >= 0 {
		return n.moveTo(p, idx)
	}
	return nil
}

// Expand expands a collapsed folder, or moves to the first child of an
// expanded one.
func (n *Navigator) Expand(p Pane) tea.Cmd {
	exp, ok := p.(Expander)
	el := p.List().Selected()
	if !ok || el == nil || exp.Subfolders(el) == SubfoldersNone {
		return nil
	}
	if !exp.Expanded(el) {
		return exp.SetExpanded(el, true)
	}
	list := p.List()
	idx := list.Index()
	if next := list.At(idx + 1); next != nil && exp.ParentOf(next) == el {
		return n.moveTo(p, idx+1)
	}
	return nil
}

// moveTo selects the item at idx. Staying on the selected item, as at a
// clamped end, only restores focus and does not call the select callback.
func (n *Navigator) moveTo(p Pane, idx int) tea.Cmd {
	el := p.List().At(idx)
	if el == nil {
		return nil
	}
	if idx == p.List().Index() {
		if n.ledger != nil && n.ledger.Focused() != el {
			n.ledger.Focus(el)
		}
		return nil
	}
	p.List().Select(el)
	cmd := p.Select(el, true)
	if n.ledger != nil {
		n.ledger.Focus(el)
	}
	return cmd
}

// ItemsPerPage estimates how many items fit in container's visible rows
// from the average height of the first few items, keeping one item of
// context. The result is at least 1.
func ItemsPerPage(container *element.Element, items []*element.Element) int {
	if container == nil || len(items) == 0 {
		return 1
	}
	sample := items[:min(pageSample, len(items))]
	total := 0
	for _, it := range sample {
		total += it.Height
	}
	if total <= 0 {
		return 1
	}
	visible := container.ViewHeight - container.BottomInset
	// visible / (total / len(sample)) without losing precision
	per := visible*len(sample)/total - 1
	return max(per, 1)
}
