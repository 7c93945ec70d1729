package metaform

import (
	"path/filepath"

	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/render"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

const labelWidth = 14

// View renders the pane inside its border.
func (m *Model) View() string {
	w, h := m.InnerWidth(), m.ListHeight(titleHeight)
	if w <= 0 || m.Height() <= 0 {
		return ""
	}
	s := styles.T().S()

	lines := make([]string, 0, h+titleHeight)
	if m.tag == nil {
		lines = append(lines, s.Title.Render(render.Fit("metadata", w)))
		lines = append(lines, s.Subtle.Render(render.Fit("no file loaded", w)))
		return styles.Panel(m.Active(), m.Width(), m.Height()).
			Render(render.Block(lines, w, h+titleHeight))
	}
	lines = append(lines, s.Title.Render(render.Fit(filepath.Base(m.tag.Path), w)))

	start := m.container.ScrollTop
	for i := start; i < len(m.fields) && i < start+h; i++ {
		lines = append(lines, m.renderField(i, w))
	}
	if m.err != "" && len(lines) < h+titleHeight {
		lines = append(lines, s.Error.Render(render.Fit(m.err, w)))
	}

	content := render.Block(lines, w, h+titleHeight)
	return styles.Panel(m.Active(), m.Width(), m.Height()).Render(content)
}

func (m *Model) renderField(i, width int) string {
	s := styles.T().S()
	el := m.fields[i]
	f, _ := FieldOf(el)

	label := render.Fit(f.Label(), labelWidth)
	valueWidth := max(width-labelWidth, 1)

	if el == m.editing {
		m.input.Width = max(valueWidth-1, 1)
		return s.Editing.Render(label) + m.input.View()
	}

	value := render.Fit(el.Label, valueWidth)
	switch {
	case el.LogicallyFocused():
		return s.Focused.Render(label + value)
	case el.Label == "" && f != tags.FieldComment:
		return s.Muted.Render(label) + s.Subtle.Render(render.Fit("-", valueWidth))
	}
	return s.Muted.Render(label) + s.Base.Render(value)
}

