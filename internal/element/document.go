package element

// Document owns the element tree root and tracks which element holds native
// input focus.
type Document struct {
	root   *Element
	active *Element
}

// NewDocument creates a document with an empty root.
func NewDocument() *Document {
	root := New("root", KindDiv)
	root.root = true
	return &Document{root: root}
}

// Root returns the root element.
func (d *Document) Root() *Element { return d.root }

// ActiveElement returns the natively focused element, or nil. An element
// that was detached since it received focus is reported as nil.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && !d.active.IsAttached() {
		d.active = nil
	}
	return d.active
}

// Focus gives native input focus to el. Detached elements are ignored.
func (d *Document) Focus(el *Element) bool {
	if el == nil || !el.IsAttached() {
		return false
	}
	d.active = el
	return true
}

// Blur drops native focus.
func (d *Document) Blur() { d.active = nil }

// ByID finds an attached element by id.
func (d *Document) ByID(id string) *Element {
	return d.root.Find(func(e *Element) bool { return e.ID == id })
}

// LogicallyFocused returns every element carrying the focus indicator.
func (d *Document) LogicallyFocused() []*Element {
	return d.root.FindAll((*Element).LogicallyFocused)
}
