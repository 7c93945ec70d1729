package state

import (
	"database/sql"
)

// Mock is a test double for Manager. Its edit history behaves like the
// sqlite one.
type Mock struct {
	navState *NavigationState
	saved    []NavigationState
	edits    []Edit
	undone   int // edits[len-undone:] are undone
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveNavigation(state NavigationState) {
	m.saved = append(m.saved, state)
	m.navState = &state
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	return m.navState, nil
}

func (m *Mock) RecordEdit(e Edit) error {
	m.edits = append(m.edits[:len(m.edits)-m.undone], e)
	m.undone = 0
	return nil
}

func (m *Mock) Undo() (*Edit, error) {
	if m.undone == len(m.edits) {
		return nil, nil //nolint:nilnil // nothing to undo
	}
	m.undone++
	e := m.edits[len(m.edits)-m.undone]
	return &e, nil
}

func (m *Mock) Redo() (*Edit, error) {
	if m.undone == 0 {
		return nil, nil //nolint:nilnil // nothing to redo
	}
	e := m.edits[len(m.edits)-m.undone]
	m.undone--
	return &e, nil
}

func (m *Mock) RenamePath(from, to string) error {
	for i := range m.edits {
		if m.edits[i].Path == from {
			m.edits[i].Path = to
		}
	}
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetNavigation(state *NavigationState) { m.navState = state }

func (m *Mock) Saved() []NavigationState { return m.saved }

func (m *Mock) Edits() []Edit { return m.edits }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
