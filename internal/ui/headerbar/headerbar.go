// Package headerbar renders the header line of a list pane: the filter,
// sort, sort direction and help icons, and the filter text input.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/ui/render"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// IconClass marks header icon elements.
const IconClass = "header-icon"

// Icon identifies one header control.
type Icon string

const (
	IconFilter  Icon = "filter"
	IconSort    Icon = "sort"
	IconSortDir Icon = "sortdir"
	IconHelp    Icon = "help"
)

// Icons lists the header icons in left-to-right order.
var Icons = []Icon{IconFilter, IconSort, IconSortDir, IconHelp}

// Styles
var (
	iconStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	focusedIconStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Underline(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Model is the header of one list pane.
type Model struct {
	pane  element.Pane
	el    *element.Element
	icons map[Icon]*element.Element
	input *element.Element

	filter textinput.Model
	open   bool
}

// New creates the header for pane.
func New(pane element.Pane) *Model {
	m := &Model{
		pane:  pane,
		el:    element.New(string(pane)+"-header", element.KindDiv),
		icons: make(map[Icon]*element.Element, len(Icons)),
		input: element.New(string(pane)+"-filter-input", element.KindInput),
	}
	m.el.AddClass("header")
	for _, icon := range Icons {
		ic := element.New(string(pane)+"-"+string(icon), element.KindButton)
		ic.AddClass(IconClass)
		ic.Data = icon
		ic.Label = string(icon)
		m.icons[icon] = ic
		m.el.Append(ic)
	}
	m.input.AddClass("filter-input")
	m.input.SetHidden(true)
	m.el.Append(m.input)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "glob or fuzzy"
	ti.CharLimit = 256
	m.filter = ti
	return m
}

// Pane returns the pane the header belongs to.
func (m *Model) Pane() element.Pane { return m.pane }

// Element returns the header container.
func (m *Model) Element() *element.Element { return m.el }

// Icon returns the element of one icon.
func (m *Model) Icon(icon Icon) *element.Element { return m.icons[icon] }

// IconElements returns the icon elements in display order.
func (m *Model) IconElements() []*element.Element {
	out := make([]*element.Element, 0, len(Icons))
	for _, icon := range Icons {
		out = append(out, m.icons[icon])
	}
	return out
}

// IconOf returns the icon an element represents.
func IconOf(el *element.Element) (Icon, bool) {
	if el == nil || !el.HasClass(IconClass) {
		return "", false
	}
	icon, ok := el.Data.(Icon)
	return icon, ok
}

// InputElement returns the filter input element.
func (m *Model) InputElement() *element.Element { return m.input }

// FilterOpen reports whether the filter input is shown.
func (m *Model) FilterOpen() bool { return m.open }

// Query returns the current filter text.
func (m *Model) Query() string { return m.filter.Value() }

// OpenFilter shows and focuses the filter input.
func (m *Model) OpenFilter() tea.Cmd {
	m.open = true
	m.input.SetHidden(false)
	m.input.SetReadOnly(false)
	m.filter.CursorEnd()
	return m.filter.Focus()
}

// CloseFilter hides the filter input. Unless keep is set the query is
// cleared. It reports whether the query changed.
func (m *Model) CloseFilter(keep bool) bool {
	m.open = false
	m.input.SetHidden(true)
	m.filter.Blur()
	if keep || m.filter.Value() == "" {
		return false
	}
	m.filter.SetValue("")
	return true
}

// UpdateInput forwards a message to the filter input. It reports whether
// the query changed.
func (m *Model) UpdateInput(msg tea.Msg) (bool, tea.Cmd) {
	if !m.open {
		return false, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m.filter.Value() != before, cmd
}

// View renders the header for the given inner width. sortLabel names the
// active sort key.
func (m *Model) View(width int, sortLabel string, descending bool) string {
	if width <= 0 {
		return ""
	}

	labels := map[Icon]string{
		IconFilter:  "filter",
		IconSort:    sortLabel,
		IconSortDir: "↑",
		IconHelp:    "?",
	}
	if descending {
		labels[IconSortDir] = "↓"
	}
	if q := m.filter.Value(); q != "" && !m.open {
		labels[IconFilter] = "filter:" + q
	}

	parts := make([]string, 0, len(Icons))
	for _, icon := range Icons {
		style := iconStyle
		if m.icons[icon].LogicallyFocused() {
			style = focusedIconStyle
		}
		parts = append(parts, style.Render(labels[icon]))
	}
	icons := strings.Join(parts, separatorStyle.Render(" │ "))

	if !m.open {
		return render.Row(styles.T().S().Title.Render(string(m.pane)), icons, width)
	}

	m.filter.Width = max(width-lipgloss.Width(icons)-4, 4)
	return render.Row(m.filter.View(), icons, width)
}
