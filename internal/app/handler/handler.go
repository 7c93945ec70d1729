// Package handler chains the key handlers tried after routing.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/keymap"
)

// Result represents the outcome of a key handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler doesn't handle the key.
var NotHandled = Result{}

// HandledNoCmd is returned by handlers that consume the key without a command.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result indicating the key was handled with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler attempts to handle a key.
type Handler func(key string) Result

// Resolver maps a key to the action bound to it.
type Resolver interface {
	Resolve(key string) keymap.Action
}

// OnAction returns a handler running fn for the keys r maps to action.
func OnAction(r Resolver, action keymap.Action, fn func() tea.Cmd) Handler {
	return func(key string) Result {
		if r.Resolve(key) != action {
			return NotHandled
		}
		return Handled(fn())
	}
}

// Chain offers key to handlers in order until one handles it.
func Chain(key string, handlers ...Handler) (bool, tea.Cmd) {
	for _, h := range handlers {
		if r := h(key); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
