// Package metaform is the metadata pane: one read-only input per tag field
// that becomes editable on demand, with inline completion.
package metaform

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui"
)

// Element classes.
const (
	FieldClass   = "field"
	EditingClass = "editing"
)

// titleHeight is the file name row above the fields.
const titleHeight = 1

// maxSuggestions bounds the completion values remembered per field.
const maxSuggestions = 200

// AcceptSuggestionKey completes the input with the shown suggestion.
const AcceptSuggestionKey = "ctrl+y"

// CommonGenres seed genre completion.
var CommonGenres = []string{
	"Ambient", "Blues", "Classical", "Country", "Electronic", "Folk",
	"Hip-Hop", "Jazz", "Metal", "Pop", "Punk", "R&B", "Reggae", "Rock",
	"Soul", "Soundtrack", "World",
}

// Change describes a committed field edit.
type Change struct {
	Field  tags.Field
	Before *tags.Tag
	After  *tags.Tag
}

// Model is the metadata pane.
type Model struct {
	ui.Base

	el        *element.Element
	container *element.Element
	fields    []*element.Element

	tag *tags.Tag
	err string

	editing     *element.Element
	input       textinput.Model
	suggestions map[tags.Field][]string
}

// New creates an empty form.
func New() *Model {
	m := &Model{
		el:          element.New("metadata-pane", element.KindDiv),
		container:   element.NewScroller("metadata-form", element.KindDiv),
		suggestions: make(map[tags.Field][]string),
	}
	m.el.Pane = element.PaneMetadata
	m.container.Top = titleHeight
	m.el.Append(m.container)

	for i, f := range tags.Fields {
		el := element.New("field-"+string(f), element.KindInput)
		el.AddClass(FieldClass)
		el.SetReadOnly(true)
		el.Data = f
		el.Top = i
		m.fields = append(m.fields, el)
	}
	m.container.SetChildren(m.fields)
	m.suggestions[tags.FieldGenre] = slices.Clone(CommonGenres)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.ShowSuggestions = true
	ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys(AcceptSuggestionKey))
	m.input = ti
	return m
}

// Name returns the pane name.
func (m *Model) Name() element.Pane { return element.PaneMetadata }

// Element returns the pane root element.
func (m *Model) Element() *element.Element { return m.el }

// Container returns the scroll container of the fields.
func (m *Model) Container() *element.Element { return m.container }

// Fields returns the field elements in form order.
func (m *Model) Fields() []*element.Element { return m.fields }

// Field returns the element of one field.
func (m *Model) Field(f tags.Field) *element.Element {
	for _, el := range m.fields {
		if el.Data == f {
			return el
		}
	}
	return nil
}

// FieldOf returns the field an element edits.
func FieldOf(el *element.Element) (tags.Field, bool) {
	if el == nil || !el.HasClass(FieldClass) {
		return "", false
	}
	f, ok := el.Data.(tags.Field)
	return f, ok
}

// SetSize sets the outer pane size and the visible rows of the form.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.container.ViewHeight = m.ListHeight(titleHeight)
}

// SetTag shows t. Any edit in progress is abandoned and the values are
// remembered for completion.
func (m *Model) SetTag(t *tags.Tag) {
	m.cancelEdit()
	m.err = ""
	if t == nil {
		m.tag = nil
	} else {
		m.tag = t.Clone()
		m.remember(t)
	}
	for _, el := range m.fields {
		f, _ := FieldOf(el)
		el.Label = ""
		if m.tag != nil {
			el.Label = m.tag.Get(f)
		}
	}
}

// Clear empties the form.
func (m *Model) Clear() { m.SetTag(nil) }

// Loaded reports whether a file's tags are shown.
func (m *Model) Loaded() bool { return m.tag != nil }

// Path returns the path of the shown file, or "".
func (m *Model) Path() string {
	if m.tag == nil {
		return ""
	}
	return m.tag.Path
}

// Tag returns a copy of the shown tags, or nil.
func (m *Model) Tag() *tags.Tag {
	if m.tag == nil {
		return nil
	}
	return m.tag.Clone()
}

// Err returns the last validation error shown under the form.
func (m *Model) Err() string { return m.err }

// Editing returns the field element being edited, or nil.
func (m *Model) Editing() *element.Element { return m.editing }

// BeginEdit makes el editable and focuses the text input. It is refused
// when no file is loaded.
func (m *Model) BeginEdit(el *element.Element) tea.Cmd {
	f, ok := FieldOf(el)
	if !ok || m.tag == nil {
		return nil
	}
	m.cancelEdit()
	m.err = ""
	m.editing = el
	el.SetReadOnly(false)
	el.AddClass(EditingClass)

	m.input.SetValue(m.tag.Get(f))
	m.input.SetSuggestions(m.suggestions[f])
	m.input.CursorEnd()
	return m.input.Focus()
}

// UpdateInput forwards a message to the field being edited.
func (m *Model) UpdateInput(msg tea.Msg) tea.Cmd {
	if m.editing == nil {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// Value returns the text typed in the field being edited.
func (m *Model) Value() string { return m.input.Value() }

// EndEdit leaves edit mode. Without commit the field reverts. With commit
// the value is parsed: an invalid value keeps the field open and returns
// the error; an unchanged value returns a nil Change.
func (m *Model) EndEdit(commit bool) (*Change, error) {
	el := m.editing
	if el == nil {
		return nil, nil
	}
	f, _ := FieldOf(el)
	if !commit {
		m.err = ""
		m.cancelEdit()
		return nil, nil
	}

	after := m.tag.Clone()
	if err := after.Set(f, m.input.Value()); err != nil {
		m.err = err.Error()
		return nil, err
	}
	m.err = ""
	m.cancelEdit()
	if *after == *m.tag {
		return nil, nil
	}
	before := m.tag
	m.tag = after
	el.Label = after.Get(f)
	m.remember(after)
	return &Change{Field: f, Before: before.Clone(), After: after.Clone()}, nil
}

func (m *Model) cancelEdit() {
	if m.editing == nil {
		return
	}
	m.editing.SetReadOnly(true)
	m.editing.RemoveClass(EditingClass)
	m.input.Blur()
	m.input.SetSuggestions(nil)
	m.editing = nil
}

// remember adds t's values to the completion candidates.
func (m *Model) remember(t *tags.Tag) {
	for _, f := range tags.Fields {
		v := t.Get(f)
		if v == "" || f == tags.FieldTrack || f == tags.FieldDisc {
			continue
		}
		vals := m.suggestions[f]
		if slices.Contains(vals, v) {
			continue
		}
		vals = append(vals, v)
		if len(vals) > maxSuggestions {
			vals = vals[len(vals)-maxSuggestions:]
		}
		m.suggestions[f] = vals
	}
}

// Suggestions returns the completion candidates of a field.
func (m *Model) Suggestions(f tags.Field) []string {
	return slices.Clone(m.suggestions[f])
}
