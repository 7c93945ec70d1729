package filelist

import (
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/icons"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
	"github.com/llehouerou/tagdeck/internal/ui/render"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// Column widths of the size and modification time columns.
const (
	sizeColWidth = 9
	timeColWidth = 15

	// Below this inner width only names are shown.
	minColumnsWidth = 40
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
		msg := "no files"
		switch {
		case m.dir == "":
			msg = "no folder selected"
		case m.header.Query() != "":
			msg = "no match"
		}
		lines = append(lines, styles.T().S().Subtle.Render(render.Fit(msg, w)))
	}
	visible := h - m.container.BottomInset
	start := m.container.ScrollTop
	for i := start; i < len(rows) && i < start+visible; i++ {
		lines = append(lines, m.renderRow(rows[i], w))
	}
	if hint := m.RenameHint(); hint != "" && visible >= 0 {
		for len(lines) < headerbar.Height+visible {
			lines = append(lines, "")
		}
		lines = append(lines, styles.T().S().Muted.Render(render.Fit(hint, w)))
	}

	content := render.Block(lines, w, h+headerbar.Height)
	return styles.Panel(m.Active(), m.Width(), m.Height()).Render(content)
}

func (m *Model) renderRow(el *element.Element, width int) string {
	e, ok := m.Entry(el)
	if !ok {
		return ""
	}
	s := styles.T().S()

	if el == m.renaming {
		m.renameInput.Width = max(width-1, 1)
		return s.Editing.Render(m.renameInput.View())
	}

	line := formatEntry(e, width)
	switch {
	case el.LogicallyFocused():
		return s.Focused.Render(line)
	case el == m.list.Selected():
		return s.Selected.Render(line)
	}
	return s.Base.Render(line)
}

func formatEntry(e navigator.Entry, width int) string {
	name := icons.FormatFile(e.Name)
	if width < minColumnsWidth {
		return render.Fit(name, width)
	}
	nameWidth := width - sizeColWidth - timeColWidth - 2
	size := humanize.Bytes(uint64(max(e.Size, 0)))
	modified := humanize.Time(e.ModTime)
	return render.Fit(name, nameWidth) + " " +
		render.Fit(size, sizeColWidth) + " " +
		render.Fit(modified, timeColWidth)
}
