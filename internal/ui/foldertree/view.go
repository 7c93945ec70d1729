package foldertree

import (
	"strings"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/icons"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
	"github.com/llehouerou/tagdeck/internal/ui/render"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// View renders the pane inside its border.
func (m *Model) View() string {
	w, h := m.InnerWidth(), m.ListHeight(headerbar.Height)
	if w <= 0 || m.Height() <= 0 {
		return ""
	}

	lines := make([]string, 0, h+1)
	lines = append(lines, m.header.View(w, m.sortKey.String(), m.Descending()))

	rows := m.list.Items()
	if len(rows) == 0 {
		msg := "no folders"
		if m.header.Query() != "" {
			msg = "no match"
		}
		lines = append(lines, styles.T().S().Subtle.Render(render.Fit(msg, w)))
	}
	start := m.container.ScrollTop
	for i := start; i < len(rows) && i < start+h; i++ {
		lines = append(lines, m.renderRow(rows[i], w))
	}

	content := render.Block(lines, w, h+headerbar.Height)
	return styles.Panel(m.Active(), m.Width(), m.Height()).Render(content)
}

func (m *Model) renderRow(el *element.Element, width int) string {
	n := nodeOf(el)
	if n == nil {
		return ""
	}
	marker := "▸ "
	switch {
	case n.subfolders == listnav.SubfoldersNone:
		marker = "  "
	case n.expanded:
		marker = "▾ "
	}
	line := render.Fit(strings.Repeat("  ", n.depth)+marker+icons.FormatDir(n.entry.Name), width)

	s := styles.T().S()
	switch {
	case el.LogicallyFocused():
		return s.Focused.Render(line)
	case el == m.list.Selected():
		return s.Selected.Render(line)
	}
	return s.Base.Render(line)
}
