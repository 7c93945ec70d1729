package helpbindings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/keymap"
	"github.com/llehouerou/tagdeck/internal/ui/testutil"
)

func newHarness(contexts []string, height int) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetContexts(contexts)
	m.SetSize(80, height)
	return m, testutil.NewPopupHarness(m)
}

func TestClose(t *testing.T) {
	tests := []struct {
		name string
		send func(h *testutil.PopupHarness) tea.Cmd
	}{
		{"escape", func(h *testutil.PopupHarness) tea.Cmd { return h.SendEscape() }},
		{"q", func(h *testutil.PopupHarness) tea.Cmd { return h.SendKey("q") }},
		{"question mark", func(h *testutil.PopupHarness) tea.Cmd { return h.SendKey("?") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newHarness([]string{keymap.ContextGlobal}, 40)
			cmd := tt.send(h)
			require.NotNil(t, cmd)
			assert.IsType(t, CloseMsg{}, testutil.ExecuteCmd(cmd))
		})
	}
}

func TestOtherKeysDoNotClose(t *testing.T) {
	_, h := newHarness([]string{keymap.ContextGlobal}, 40)
	assert.Nil(t, h.SendKey("x"))
	assert.Nil(t, h.SendMsg(tea.WindowSizeMsg{Width: 10, Height: 10}))
}

func TestContextsInFixedOrder(t *testing.T) {
	m, h := newHarness([]string{keymap.ContextEdit, keymap.ContextGlobal, "bogus"}, 60)

	require.NotEmpty(t, m.bindings)
	assert.Equal(t, keymap.ContextGlobal, m.bindings[0].Context)
	assert.Equal(t, keymap.ContextEdit, m.bindings[len(m.bindings)-1].Context)

	assert.True(t, h.ViewContains("Global"))
	assert.True(t, h.ViewContains("Editing"))
	assert.True(t, h.ViewContains("Accept suggestion"))
	assert.False(t, h.ViewContains("Folder Tree"))
	assert.True(t, h.ViewContains("?/esc close"))
}

func TestScrollClamped(t *testing.T) {
	m, h := newHarness([]string{
		keymap.ContextGlobal, keymap.ContextList, keymap.ContextFolders,
	}, 12)
	require.Positive(t, m.maxScroll())
	assert.True(t, h.ViewContains("j/k scroll"))

	h.SendKey("k")
	assert.Equal(t, 0, m.offset)

	for range m.maxScroll() + 5 {
		h.SendKey("j")
	}
	assert.Equal(t, m.maxScroll(), m.offset)

	h.SendKey("g")
	assert.Equal(t, 0, m.offset)
	h.SendKey("G")
	assert.Equal(t, m.maxScroll(), m.offset)

	m.SetContexts([]string{keymap.ContextGlobal})
	assert.Equal(t, 0, m.offset)
}

func TestViewZeroSize(t *testing.T) {
	m := New()
	m.SetContexts([]string{keymap.ContextGlobal})
	assert.Empty(t, m.View())
}
