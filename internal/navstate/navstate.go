// Package navstate holds the interaction mode of the UI. Every navigation
// handler consults or changes it before acting.
package navstate

import (
	"maps"
	"slices"

	"github.com/go-logr/logr"
)

// State is an interaction mode.
type State int

const (
	Normal State = iota
	HeaderFocus
	FilterActive
	FormEdit
	InlineEdit
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case HeaderFocus:
		return "HEADER_FOCUS"
	case FilterActive:
		return "FILTER_ACTIVE"
	case FormEdit:
		return "FORM_EDIT"
	case InlineEdit:
		return "INLINE_EDIT"
	}
	return "UNKNOWN"
}

// Context keys used by the navigation engine.
const (
	KeyPane  = "pane"
	KeyIcon  = "icon"
	KeyField = "field"
)

// Context is the auxiliary data carried alongside the state.
type Context map[string]string

// edges is the adjacency table. There are no implicit reverse edges.
var edges = map[State][]State{
	Normal:       {HeaderFocus, FilterActive, FormEdit, InlineEdit},
	HeaderFocus:  {Normal, FilterActive},
	FilterActive: {Normal},
	FormEdit:     {Normal},
	InlineEdit:   {Normal},
}

// CanTransition reports whether from -> to is a declared edge. Staying in the
// same state is always allowed.
func CanTransition(from, to State) bool {
	return from == to || slices.Contains(edges[from], to)
}

// Listener is notified after every successful transition.
type Listener func(from, to State, ctx Context)

// Machine is a synchronous state holder. It has no timers.
type Machine struct {
	state     State
	previous  State
	ctx       Context
	listeners map[int]Listener
	nextID    int
	log       logr.Logger
}

// New creates a machine in the Normal state.
func New(log logr.Logger) *Machine {
	return &Machine{
		ctx:       Context{},
		listeners: make(map[int]Listener),
		log:       log.WithName("navstate"),
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Previous returns the state before the last successful transition.
func (m *Machine) Previous() State { return m.previous }

// IsIn reports whether the machine is in s.
func (m *Machine) IsIn(s State) bool { return m.state == s }

// IsInAny reports whether the machine is in one of states.
func (m *Machine) IsInAny(states ...State) bool {
	return slices.Contains(states, m.state)
}

// Context returns a copy of the current context.
func (m *Machine) Context() Context {
	return maps.Clone(m.ctx)
}

// Value returns a single context value.
func (m *Machine) Value(key string) string { return m.ctx[key] }

// Transition moves to the given state, merging ctx into the current context.
// Illegal edges are refused with a warning and leave the machine untouched.
func (m *Machine) Transition(to State, ctx Context) bool {
	from := m.state
	if !CanTransition(from, to) {
		m.log.Info("refused state transition", "from", from.String(), "to", to.String())
		return false
	}
	m.previous = from
	m.state = to
	maps.Copy(m.ctx, ctx)
	m.notify(from, to)
	return true
}

// Reset forces the machine back to Normal and clears the context. Listeners
// are only notified when the state actually changed.
func (m *Machine) Reset() {
	from := m.state
	m.ctx = Context{}
	if from == Normal {
		return
	}
	m.previous = from
	m.state = Normal
	m.notify(from, Normal)
}

// Subscribe registers a listener and returns a function that removes it.
func (m *Machine) Subscribe(fn Listener) func() {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

func (m *Machine) notify(from, to State) {
	ids := slices.Sorted(maps.Keys(m.listeners))
	for _, id := range ids {
		m.listeners[id](from, to, m.Context())
	}
}
