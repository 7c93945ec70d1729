package headerbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/ui/testutil"
)

func typeText(m *Model, s string) bool {
	changed := false
	for _, r := range s {
		c, _ := m.UpdateInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		changed = changed || c
	}
	return changed
}

func TestNewBuildsIcons(t *testing.T) {
	m := New(element.PaneFiles)

	els := m.IconElements()
	require.Len(t, els, len(Icons))
	for i, el := range els {
		icon, ok := IconOf(el)
		require.True(t, ok)
		assert.Equal(t, Icons[i], icon)
		assert.Equal(t, element.KindButton, el.Kind)
		assert.Same(t, m.Element(), el.Parent())
	}
	assert.Equal(t, "files-filter", m.Icon(IconFilter).ID)
	assert.True(t, m.InputElement().Hidden())
}

func TestIconOfRejectsOtherElements(t *testing.T) {
	_, ok := IconOf(nil)
	assert.False(t, ok)
	_, ok = IconOf(element.New("x", element.KindButton))
	assert.False(t, ok)
}

func TestFilterLifecycle(t *testing.T) {
	m := New(element.PaneFolders)

	changed, _ := m.UpdateInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.False(t, changed, "closed filter ignores input")

	m.OpenFilter()
	assert.True(t, m.FilterOpen())
	assert.False(t, m.InputElement().Hidden())

	assert.True(t, typeText(m, "abc"))
	assert.Equal(t, "abc", m.Query())

	assert.False(t, m.CloseFilter(true))
	assert.False(t, m.FilterOpen())
	assert.Equal(t, "abc", m.Query())

	m.OpenFilter()
	assert.True(t, m.CloseFilter(false))
	assert.Empty(t, m.Query())
	assert.False(t, m.CloseFilter(false))
}

func TestViewMarksFocusedIcon(t *testing.T) {
	m := New(element.PaneFiles)
	out := testutil.StripANSI(m.View(60, "name", false))
	assert.Contains(t, out, "files")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "↑")

	m.Icon(IconSort).SetLogicalFocus(true)
	assert.NotEqual(t, m.View(60, "size", true), "")
	assert.Contains(t, testutil.StripANSI(m.View(60, "size", true)), "↓")
}

func TestViewShowsKeptQuery(t *testing.T) {
	m := New(element.PaneFiles)
	m.OpenFilter()
	typeText(m, "*.mp3")
	m.CloseFilter(true)
	assert.Contains(t, testutil.StripANSI(m.View(80, "name", false)), "filter:*.mp3")
}

func TestViewZeroWidth(t *testing.T) {
	assert.Empty(t, New(element.PaneFiles).View(0, "name", false))
}
