// Package helpbindings provides a scrollable popup listing the key
// bindings that apply where the user is.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/ui"
	"github.com/llehouerou/tagdeck/internal/ui/popup"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// CloseMsg asks the owner to close the popup.
type CloseMsg struct{}

// chrome is the rows used by the title, footer and popup border.
const chrome = 10

// categoryOrder is the display order of binding contexts.
var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextList,
	keymap.ContextFolders,
	keymap.ContextFiles,
	keymap.ContextHeader,
	keymap.ContextFilter,
	keymap.ContextMetadata,
	keymap.ContextEdit,
}

var categoryLabels = map[string]string{
	keymap.ContextGlobal:   "Global",
	keymap.ContextList:     "Lists",
	keymap.ContextFolders:  "Folder Tree",
	keymap.ContextFiles:    "Files",
	keymap.ContextHeader:   "Header Icons",
	keymap.ContextFilter:   "Filter",
	keymap.ContextMetadata: "Metadata",
	keymap.ContextEdit:     "Editing",
}

// Model is the help popup.
type Model struct {
	ui.Base
	bindings []keymap.Binding
	offset   int
}

// New creates an empty help popup.
func New() *Model {
	return &Model{}
}

// SetContexts selects the binding groups to show. Unknown contexts are
// ignored; the order is fixed regardless of the argument order.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.offset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	case "j", "down":
		m.offset = min(m.offset+1, m.maxScroll())
	case "k", "up":
		m.offset = max(m.offset-1, 0)
	case "home", "g":
		m.offset = 0
	case "end", "G":
		m.offset = m.maxScroll()
	}
	return m, nil
}

// View implements popup.Popup. The content has no border; the caller
// frames it.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	lines := m.lines()

	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}

	end := min(m.offset+m.visibleHeight(), len(lines))
	visible := slices.Clone(lines[min(m.offset, end):end])
	for i, line := range visible {
		if w := lipgloss.Width(line); w < width {
			visible[i] = line + strings.Repeat(" ", width-w)
		}
	}

	s := styles.T().S()
	var b strings.Builder
	b.WriteString(s.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(visible, "\n"))
	b.WriteString("\n\n")
	b.WriteString(s.Subtle.Render(m.footer()))
	return b.String()
}

func (m *Model) lines() []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(strings.Join(b.Keys, ", ")))
	}

	var lines []string
	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines,
				headerStyle.Render(label),
				t.S().Subtle.Render(strings.Repeat("─", keyWidth+15)))
			current = b.Context
		}
		keys := strings.Join(b.Keys, ", ")
		keys += strings.Repeat(" ", keyWidth-lipgloss.Width(keys))
		lines = append(lines, keyStyle.Render(keys)+"  "+t.S().Base.Render(b.Description))
	}
	return lines
}

func (m *Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m *Model) visibleHeight() int {
	return max(m.Height()-chrome, 5)
}

func (m *Model) maxScroll() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
