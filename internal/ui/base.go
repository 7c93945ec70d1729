package ui

// Base provides the size and active-pane state shared by the panes.
// Embed it in pane models:
//
//	type Model struct {
//	    ui.Base
//	    list listnav.SelectionList
//	}
type Base struct {
	width, height int
	active        bool
}

// SetActive marks the pane as the one holding keyboard focus.
func (b *Base) SetActive(active bool) {
	b.active = active
}

// Active reports whether the pane holds keyboard focus.
func (b Base) Active() bool {
	return b.active
}

// SetSize sets the outer dimensions, border included.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the outer width.
func (b Base) Width() int {
	return b.width
}

// Height returns the outer height.
func (b Base) Height() int {
	return b.height
}

// InnerWidth returns the width inside the border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderWidth, 0)
}

// ListHeight returns the rows left for list content after the border and
// the given overhead.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-BorderHeight-overhead, 0)
}
