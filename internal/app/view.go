// internal/app/view.go
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tagdeck/internal/config"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/ui/overlay"
	"github.com/llehouerou/tagdeck/internal/ui/render"
	"github.com/llehouerou/tagdeck/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.Tree.View(),
		m.Files.View(),
		m.Form.View(),
	)
	base := strings.Join([]string{m.renderTitle(), panes, ""}, "\n")
	base = overlay.Bottom(base, m.renderStatus(), m.Width)
	return m.Popups.RenderOverlay(base)
}

func (m Model) renderTitle() string {
	t := styles.T()
	left := styles.Gradient(config.AppName, t.Primary, t.Secondary)
	right := t.S().Muted.Render(render.Sanitize(m.Tree.Root()))
	return render.Row(left, right, m.Width)
}

// renderStatus shows the latest message, or the mode and pane.
func (m Model) renderStatus() string {
	s := styles.T().S()
	var left string
	switch {
	case m.Status.Text != "" && m.Status.Err:
		left = s.Error.Render(m.Status.Text)
	case m.Status.Text != "":
		left = s.Success.Render(m.Status.Text)
	default:
		left = s.Subtle.Render("? help")
	}
	right := s.Muted.Render(string(m.Nav.CurrentPane()) + " ")
	if mode := m.Machine.State(); mode != navstate.Normal {
		right = s.Warning.Render(fmt.Sprintf("%s · ", mode)) + right
	}
	return render.Row(" "+left, right, m.Width)
}
