// Package popupctl owns the modal popups drawn over the panes.
package popupctl

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tagdeck/internal/ui/helpbindings"
	"github.com/llehouerou/tagdeck/internal/ui/overlay"
	"github.com/llehouerou/tagdeck/internal/ui/popup"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// Type identifies a popup.
type Type int

const (
	None Type = iota
	Help
	Error
)

// stack lists popups bottom to top. The topmost open popup gets the keys.
var stack = []Type{Help, Error}

type slot struct {
	pop  popup.Popup
	size popup.SizeConfig
	// dismiss closes the popup on any key instead of forwarding it.
	dismiss bool
}

// Manager keeps the open popups and routes keys to the topmost one.
type Manager struct {
	open   map[Type]*slot
	width  int
	height int
}

// New creates a Manager with nothing open.
func New() *Manager {
	return &Manager{open: make(map[Type]*slot)}
}

// SetSize updates the screen size popups are laid out in.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for _, s := range p.open {
		s.pop.SetSize(p.contentSize(s.size))
	}
}

// IsVisible reports whether a popup of type t is open.
func (p *Manager) IsVisible(t Type) bool {
	return p.open[t] != nil
}

// ActivePopup returns the topmost open popup, or None.
func (p *Manager) ActivePopup() Type {
	for i := len(stack) - 1; i >= 0; i-- {
		if p.IsVisible(stack[i]) {
			return stack[i]
		}
	}
	return None
}

func (p *Manager) show(t Type, s *slot) tea.Cmd {
	s.pop.SetSize(p.contentSize(s.size))
	p.open[t] = s
	return s.pop.Init()
}

// Hide closes the popup of type t.
func (p *Manager) Hide(t Type) {
	delete(p.open, t)
}

func (p *Manager) contentSize(size popup.SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		w := p.width * size.WidthPct / 100
		if size.MaxWidth > 0 {
			w = min(w, size.MaxWidth)
		}
		return w, p.height * size.HeightPct / 100
	}
	return p.width, p.height
}

// ShowHelp opens the key bindings of the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.show(Help, &slot{
		pop:  help,
		size: popup.SizeConfig{WidthPct: 60, HeightPct: 80, MaxWidth: 90},
	})
}

// ShowError shows msg until the next key press.
func (p *Manager) ShowError(msg string) {
	p.show(Error, &slot{
		pop:     &errorPopup{msg: msg},
		size:    popup.SizeConfig{MaxWidth: 70},
		dismiss: true,
	})
}

// ErrorMsg returns the error being shown, or "".
func (p *Manager) ErrorMsg() string {
	if s := p.open[Error]; s != nil {
		return s.pop.(*errorPopup).msg
	}
	return ""
}

// HandleKey gives a key to the topmost popup. It reports false when no
// popup is open.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	active := p.ActivePopup()
	if active == None {
		return false, nil
	}
	s := p.open[active]
	if s.dismiss {
		p.Hide(active)
		return true, nil
	}
	var cmd tea.Cmd
	s.pop, cmd = s.pop.Update(msg)
	return true, cmd
}

// RenderOverlay draws the open popups over base, bottom to top.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range stack {
		s := p.open[t]
		if s == nil {
			continue
		}
		rendered := popup.RenderBordered(s.pop.View(), p.width, p.height, s.size)
		base = overlay.Compose(base, rendered, p.width)
	}
	return base
}

// errorPopup shows one error message.
type errorPopup struct {
	msg string
}

func (e *errorPopup) Init() tea.Cmd { return nil }

func (e *errorPopup) Update(tea.Msg) (popup.Popup, tea.Cmd) { return e, nil }

func (e *errorPopup) SetSize(int, int) {}

func (e *errorPopup) View() string {
	s := styles.T().S()
	return strings.Join([]string{
		s.Error.Bold(true).Render("Error"),
		"",
		s.Base.Render(e.msg),
		"",
		s.Subtle.Render("Press any key to dismiss"),
	}, "\n")
}
