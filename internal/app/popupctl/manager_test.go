package popupctl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/ui/helpbindings"
	"github.com/llehouerou/tagdeck/internal/ui/testutil"
)

func TestActivePopupPriority(t *testing.T) {
	p := New()
	p.SetSize(100, 40)
	assert.Equal(t, None, p.ActivePopup())

	p.ShowHelp([]string{keymap.ContextGlobal})
	assert.Equal(t, Help, p.ActivePopup())

	p.ShowError("disk full")
	assert.Equal(t, Error, p.ActivePopup())
	assert.True(t, p.IsVisible(Help))

	assert.Equal(t, "disk full", p.ErrorMsg())

	p.Hide(Error)
	assert.Empty(t, p.ErrorMsg())
	assert.Equal(t, Help, p.ActivePopup())
	p.Hide(Help)
	assert.Equal(t, None, p.ActivePopup())
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*Manager)
		wantHandled bool
		wantActive  Type
		wantClose   bool
	}{
		{
			name:        "no popup leaves key",
			setup:       func(*Manager) {},
			wantHandled: false,
			wantActive:  None,
		},
		{
			name:        "error dismissed by any key",
			setup:       func(p *Manager) { p.ShowError("boom") },
			wantHandled: true,
			wantActive:  None,
		},
		{
			name:        "help receives key",
			setup:       func(p *Manager) { p.ShowHelp([]string{keymap.ContextGlobal}) },
			wantHandled: true,
			wantActive:  Help,
			wantClose:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.SetSize(100, 40)
			tt.setup(p)

			handled, cmd := p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
			assert.Equal(t, tt.wantHandled, handled)
			assert.Equal(t, tt.wantActive, p.ActivePopup())
			if tt.wantClose {
				require.NotNil(t, cmd)
				assert.IsType(t, helpbindings.CloseMsg{}, testutil.ExecuteCmd(cmd))
			}
		})
	}
}

func TestRenderOverlay(t *testing.T) {
	p := New()
	p.SetSize(80, 30)
	base := testutil.StripANSI(p.RenderOverlay("base"))
	assert.Equal(t, "base", base)

	p.ShowError("cannot write tags")
	out := testutil.StripANSI(p.RenderOverlay(blank(80, 30)))
	assert.Contains(t, out, "cannot write tags")
	assert.Contains(t, out, "Press any key to dismiss")

	p.ShowHelp([]string{keymap.ContextGlobal})
	out = testutil.StripANSI(p.RenderOverlay(blank(80, 30)))
	assert.Contains(t, out, "cannot write tags", "error stays on top of help")
}

func blank(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}
	return strings.Join(lines, "\n")
}
