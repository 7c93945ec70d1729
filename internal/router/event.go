package router

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mods holds the modifier keys of an event.
type Mods struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Event is a key press as seen by the router.
type Event struct {
	Key    string
	Mods   Mods
	Repeat bool
	Msg    tea.KeyMsg

	prevented bool
}

// PreventDefault suppresses the default effect of the key, which is
// forwarding it to the focused text input.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// FromKeyMsg converts a bubbletea key message. Modifier prefixes are split
// off the key name and the space bar is named "space".
func FromKeyMsg(msg tea.KeyMsg) *Event {
	ev := &Event{Msg: msg}
	ev.Key, ev.Mods = ParseKey(msg.String())
	return ev
}

// ParseKey splits a key string such as "ctrl+shift+up" into the key name
// and its modifiers.
func ParseKey(s string) (string, Mods) {
	var mods Mods
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			mods.Ctrl = true
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			mods.Alt = true
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			mods.Shift = true
			s = s[len("shift+"):]
			continue
		}
		break
	}
	if s == " " {
		s = "space"
	}
	return s, mods
}

// String renders the event the way bindings are written, e.g. "ctrl+up".
func (e *Event) String() string {
	var b strings.Builder
	if e.Mods.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Mods.Alt {
		b.WriteString("alt+")
	}
	if e.Mods.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(e.Key)
	return b.String()
}
