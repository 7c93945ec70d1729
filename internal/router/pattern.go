package router

import (
	"slices"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/navstate"
)

// Opt is an optional pattern field. The zero value matches anything.
type Opt[T comparable] struct {
	value T
	set   bool
}

// Is returns an Opt that matches only v.
func Is[T comparable](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Any reports whether the field is the wildcard.
func (o Opt[T]) Any() bool { return !o.set }

// Value returns the required value and whether one is set.
func (o Opt[T]) Value() (T, bool) { return o.value, o.set }

// Match reports whether v satisfies the field.
func (o Opt[T]) Match(v T) bool { return !o.set || o.value == v }

// TargetPattern constrains the element that holds native focus.
type TargetPattern struct {
	Kind  Opt[element.Kind]
	ID    Opt[string]
	Class Opt[string]
}

// Pattern describes the events a route applies to. Every field left at its
// zero value is a wildcard. Panes matches by membership; nil means any pane.
type Pattern struct {
	Key    Opt[string]
	State  Opt[navstate.State]
	Panes  []element.Pane
	Target TargetPattern
	Ctrl   Opt[bool]
	Alt    Opt[bool]
	Shift  Opt[bool]
}

// On starts a pattern for key.
func On(key string) Pattern {
	return Pattern{Key: Is(key)}
}

// OnBinding starts a pattern from a key string such as "ctrl+z". The
// modifiers must match exactly, so "tab" does not match shift+tab.
func OnBinding(binding string) Pattern {
	key, mods := ParseKey(binding)
	return On(key).WithMods(mods)
}

// In restricts the pattern to a navigation state.
func (p Pattern) In(s navstate.State) Pattern {
	p.State = Is(s)
	return p
}

// InPanes restricts the pattern to the given panes.
func (p Pattern) InPanes(panes ...element.Pane) Pattern {
	p.Panes = slices.Clone(panes)
	return p
}

// OnKind restricts the pattern to targets of the given kind.
func (p Pattern) OnKind(k element.Kind) Pattern {
	p.Target.Kind = Is(k)
	return p
}

// OnClass restricts the pattern to targets carrying class.
func (p Pattern) OnClass(class string) Pattern {
	p.Target.Class = Is(class)
	return p
}

// OnID restricts the pattern to the target with the given id.
func (p Pattern) OnID(id string) Pattern {
	p.Target.ID = Is(id)
	return p
}

// WithMods requires the exact modifier combination.
func (p Pattern) WithMods(m Mods) Pattern {
	p.Ctrl = Is(m.Ctrl)
	p.Alt = Is(m.Alt)
	p.Shift = Is(m.Shift)
	return p
}

// Matches reports whether ev in ctx satisfies every non-wildcard field.
func (p Pattern) Matches(ev *Event, ctx Context) bool {
	if !p.Key.Match(ev.Key) {
		return false
	}
	if !p.State.Match(ctx.State) {
		return false
	}
	if p.Panes != nil && !slices.Contains(p.Panes, ctx.Pane) {
		return false
	}
	if !p.Target.Kind.Match(ctx.Target.Kind) || !p.Target.ID.Match(ctx.Target.ID) {
		return false
	}
	if class, ok := p.Target.Class.Value(); ok && !slices.Contains(ctx.Target.Classes, class) {
		return false
	}
	return p.Ctrl.Match(ev.Mods.Ctrl) &&
		p.Alt.Match(ev.Mods.Alt) &&
		p.Shift.Match(ev.Mods.Shift)
}
