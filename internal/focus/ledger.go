// Package focus tracks the logical keyboard-focus indicator, keeps a bounded
// history of focused elements and scrolls focused elements into view.
package focus

import "github.com/llehouerou/tagdeck/internal/element"

// HistoryCap bounds the focus history stack.
const HistoryCap = 50

// Default padding in rows kept between a focused element and the edges of
// its scroll container.
const (
	DefaultTopPadding    = 1
	DefaultBottomPadding = 1
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithPadding sets the top and bottom padding of the visible band.
func WithPadding(top, bottom int) Option {
	return func(l *Ledger) {
		l.padTop = max(0, top)
		l.padBottom = max(0, bottom)
	}
}

// Ledger owns the logical focus indicator and the focus history.
type Ledger struct {
	doc       *element.Document
	focused   *element.Element
	history   []*element.Element
	padTop    int
	padBottom int
}

// NewLedger creates a ledger for doc.
func NewLedger(doc *element.Document, opts ...Option) *Ledger {
	l := &Ledger{
		doc:       doc,
		padTop:    DefaultTopPadding,
		padBottom: DefaultBottomPadding,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Focused returns the element carrying the indicator, or nil. An element that
// has since been detached is reported as nil.
func (l *Ledger) Focused() *element.Element {
	if l.focused != nil && !l.focused.IsAttached() {
		return nil
	}
	return l.focused
}

// AddFocus marks el as logically focused. Any other marked element is cleared
// first so that at most one element carries the indicator.
func (l *Ledger) AddFocus(el *element.Element) {
	if el == nil {
		return
	}
	l.ClearAll()
	el.SetLogicalFocus(true)
	l.focused = el
}

// RemoveFocus clears the indicator from el.
func (l *Ledger) RemoveFocus(el *element.Element) {
	if el == nil {
		return
	}
	el.SetLogicalFocus(false)
	if l.focused == el {
		l.focused = nil
	}
}

// ClearAll removes the indicator from every element, including a previously
// focused element that is no longer attached.
func (l *Ledger) ClearAll() {
	if l.focused != nil {
		l.focused.SetLogicalFocus(false)
		l.focused = nil
	}
	for _, el := range l.doc.LogicallyFocused() {
		el.SetLogicalFocus(false)
	}
}

// Focus establishes el as the single focused element: it clears stray
// indicators, marks el, gives it native focus and scrolls it into view.
func (l *Ledger) Focus(el *element.Element) bool {
	if el == nil || !el.IsAttached() {
		return false
	}
	l.AddFocus(el)
	l.doc.Focus(el)
	l.EnsureVisible(el)
	return true
}

// EnsureVisible scrolls el's nearest scrollable ancestor by the minimal
// amount that places el inside the padded visible band. It reports whether
// the scroll offset changed.
func (l *Ledger) EnsureVisible(el *element.Element) bool {
	if el == nil {
		return false
	}
	sc := el.ScrollParent()
	if sc == nil || sc.ViewHeight <= 0 {
		return false
	}
	offset, ok := el.OffsetWithin(sc)
	if !ok {
		return false
	}

	// Usable rows shrink by whatever overlaps the bottom of the viewport.
	usable := sc.ViewHeight - sc.BottomInset
	padTop, padBottom := l.padTop, l.padBottom
	if padTop+padBottom+el.Height > usable {
		padTop, padBottom = 0, 0
	}

	bandTop := sc.ScrollTop + padTop
	bandBottom := sc.ScrollTop + usable - padBottom

	target := sc.ScrollTop
	switch {
	case offset < bandTop:
		target = offset - padTop
	case offset+el.Height > bandBottom:
		target = offset + el.Height - usable + padBottom
	}

	maxScroll := max(0, sc.ContentHeight()-usable)
	target = min(max(target, 0), maxScroll)
	if target == sc.ScrollTop {
		return false
	}
	sc.ScrollTop = target
	return true
}

// PushFocus records el on the history stack. The oldest entry is dropped
// once the stack exceeds HistoryCap.
func (l *Ledger) PushFocus(el *element.Element) {
	if el == nil {
		return
	}
	l.history = append(l.history, el)
	if len(l.history) > HistoryCap {
		l.history = l.history[len(l.history)-HistoryCap:]
	}
}

// PopFocus restores the most recent history entry that is still attached and
// visible, discarding stale ones. It returns nil when none is left.
func (l *Ledger) PopFocus() *element.Element {
	for len(l.history) > 0 {
		el := l.history[len(l.history)-1]
		l.history = l.history[:len(l.history)-1]
		if !el.IsAttached() || !el.IsVisible() {
			continue
		}
		l.Focus(el)
		return el
	}
	return nil
}

// HistoryLen returns the number of entries on the history stack.
func (l *Ledger) HistoryLen() int { return len(l.history) }
