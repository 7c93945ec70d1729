package navctl

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/focus"
	"github.com/llehouerou/tagdeck/internal/keyrepeat"
	"github.com/llehouerou/tagdeck/internal/listnav"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/router"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/filelist"
	"github.com/llehouerou/tagdeck/internal/ui/foldertree"
	"github.com/llehouerou/tagdeck/internal/ui/headerbar"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

type selectCall struct {
	label       string
	viaKeyboard bool
}

type fixture struct {
	m       *Manager
	doc     *element.Document
	ledger  *focus.Ledger
	machine *navstate.Machine
	router  *router.Router
	tree    *foldertree.Model
	files   *filelist.Model
	form    *metaform.Model
	root    string

	treeSelects []selectCall
	fileSelects []selectCall
	listings    []string
	loaded      []string
	changes     []*metaform.Change
	renames     [][2]string
	helps       int
}

// newFixture builds the engine over a folder tree:
//
//	Alpha/01 Intro.mp3, Alpha/02 Song.mp3, Alpha/Disc/
//	Beta/ (no files)
//	Gamma/x.flac
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Alpha", "Disc"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Beta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Gamma"), 0o755))
	for _, f := range []string{"Alpha/01 Intro.mp3", "Alpha/02 Song.mp3", "Gamma/x.flac"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(f)), []byte("x"), 0o644))
	}
	src, err := navigator.NewFileSource(root, navigator.Options{})
	require.NoError(t, err)

	f := &fixture{root: root, doc: element.NewDocument()}
	f.ledger = focus.NewLedger(f.doc)
	f.machine = navstate.New(logr.Discard())
	f.router = router.New(f.machine, nil, logr.Discard())
	repeat := keyrepeat.New()
	f.tree = foldertree.New(src, logr.Discard())
	f.files = filelist.New(logr.Discard())
	f.form = metaform.New()
	f.tree.SetSize(30, 12)
	f.files.SetSize(40, 12)
	f.form.SetSize(30, 12)
	require.NoError(t, f.tree.Load())

	f.m = New(Deps{
		Doc:     f.doc,
		Ledger:  f.ledger,
		Machine: f.machine,
		Router:  f.router,
		Repeat:  repeat,
		Lists:   listnav.NewNavigator(f.ledger, f.machine, repeat),
		Tree:    f.tree,
		Files:   f.files,
		Form:    f.form,
		Log:     logr.Discard(),
	})
	f.m.Init(Callbacks{
		SelectTreeItem: func(el *element.Element, via bool) tea.Cmd {
			f.treeSelects = append(f.treeSelects, selectCall{el.Label, via})
			return nil
		},
		SelectFileItem: func(el *element.Element, via bool) tea.Cmd {
			f.fileSelects = append(f.fileSelects, selectCall{el.Label, via})
			return nil
		},
		LoadFiles: func(path string) tea.Cmd {
			f.listings = append(f.listings, filepath.Base(path))
			entries, err := src.Files(path)
			require.NoError(t, err)
			f.files.SetFiles(path, entries)
			return nil
		},
		LoadFile: func(path string, _ *element.Element) tea.Cmd {
			f.loaded = append(f.loaded, filepath.Base(path))
			f.form.SetTag(&tags.Tag{Path: path, Title: filepath.Base(path), Date: "2020"})
			return nil
		},
		ShowHelp: func() tea.Cmd {
			f.helps++
			return nil
		},
		CommitChange: func(c *metaform.Change) tea.Cmd {
			f.changes = append(f.changes, c)
			return nil
		},
		RenameFile: func(from, to string) tea.Cmd {
			f.renames = append(f.renames, [2]string{filepath.Base(from), filepath.Base(to)})
			return nil
		},
	})
	f.m.RegisterRoutes()
	return f
}

func (f *fixture) key(msg tea.KeyMsg) bool {
	ok, _ := f.router.Route(router.FromKeyMsg(msg))
	if !ok {
		f.m.HandleInput(msg)
	}
	return ok
}

func (f *fixture) special(t tea.KeyType) bool { return f.key(tea.KeyMsg{Type: t}) }

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (f *fixture) focused() *element.Element { return f.ledger.Focused() }

func (f *fixture) assertSingleFocus(t *testing.T) {
	t.Helper()
	assert.LessOrEqual(t, len(f.doc.LogicallyFocused()), 1)
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	ok, _ := f.m.FocusPane(element.PaneFolders)
	require.True(t, ok)
}

func TestEndToEnd_TreeThenFilesAndEmptyFolderPolicy(t *testing.T) {
	f := newFixture(t)

	// Initial load selects the first folder through the keyboard path.
	f.start(t)
	assert.Equal(t, []selectCall{{"Alpha", true}}, f.treeSelects)
	assert.Equal(t, "Alpha", f.focused().Label)

	f.special(tea.KeyDown)
	f.special(tea.KeyDown)
	assert.Equal(t, "Gamma", f.tree.List().Selected().Label)
	assert.Equal(t, []selectCall{{"Alpha", true}, {"Beta", true}, {"Gamma", true}}, f.treeSelects)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, f.listings)
	f.assertSingleFocus(t)

	require.True(t, f.special(tea.KeyTab))
	assert.Equal(t, element.PaneFiles, f.m.CurrentPane())
	assert.Equal(t, "x.flac", f.focused().Label)
	assert.Equal(t, []selectCall{{"x.flac", true}}, f.fileSelects)
	assert.True(t, f.files.Active())
	assert.False(t, f.tree.Active())

	// No file loaded: metadata is skipped on the way back to folders.
	f.special(tea.KeyTab)
	assert.Equal(t, element.PaneFolders, f.m.CurrentPane())
	assert.Equal(t, "Gamma", f.focused().Label)

	// Beta has no files and no file is loaded: Tab does nothing.
	f.special(tea.KeyUp)
	require.Equal(t, "Beta", f.tree.List().Selected().Label)
	require.True(t, f.files.Empty())
	f.special(tea.KeyTab)
	assert.Equal(t, element.PaneFolders, f.m.CurrentPane())
	assert.Equal(t, "Beta", f.focused().Label)
	f.assertSingleFocus(t)

	// With a file loaded the empty file list is skipped in favour of the form.
	f.form.SetTag(&tags.Tag{Path: filepath.Join(f.root, "Gamma", "x.flac")})
	f.special(tea.KeyTab)
	assert.Equal(t, element.PaneMetadata, f.m.CurrentPane())
	assert.Same(t, f.form.Field(tags.FieldTitle), f.focused())
	f.assertSingleFocus(t)
}

func TestMetadataEnterEscape(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)
	require.True(t, f.special(tea.KeyEnter), "enter loads the file")
	assert.Equal(t, []string{"01 Intro.mp3"}, f.loaded)

	f.special(tea.KeyTab)
	require.Equal(t, element.PaneMetadata, f.m.CurrentPane())
	f.special(tea.KeyDown)
	artist := f.form.Field(tags.FieldArtist)
	require.Same(t, artist, f.focused())

	require.True(t, f.special(tea.KeyEnter))
	assert.Equal(t, navstate.FormEdit, f.m.State())
	assert.False(t, artist.ReadOnly())
	assert.Equal(t, string(tags.FieldArtist), f.machine.Value(navstate.KeyField))

	f.typeText("zzz")
	require.True(t, f.special(tea.KeyEsc))
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.True(t, artist.ReadOnly())
	assert.Same(t, artist, f.doc.ActiveElement())
	assert.True(t, artist.LogicallyFocused())
	assert.Empty(t, f.form.Tag().Artist)
	assert.Empty(t, f.changes)
	f.assertSingleFocus(t)
}

func TestMetadataCommit(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)
	f.special(tea.KeyEnter)
	f.special(tea.KeyTab)
	f.special(tea.KeyDown)

	f.special(tea.KeyEnter)
	f.typeText("Band")
	f.special(tea.KeyEnter)
	assert.Equal(t, navstate.Normal, f.m.State())
	require.Len(t, f.changes, 1)
	assert.Equal(t, tags.FieldArtist, f.changes[0].Field)
	assert.Equal(t, "Band", f.changes[0].After.Artist)
}

func TestMetadataInvalidValueStaysInEdit(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)
	f.special(tea.KeyEnter)
	f.special(tea.KeyTab)

	date := f.form.Field(tags.FieldDate)
	for f.focused() != date {
		require.True(t, f.special(tea.KeyDown))
	}
	f.special(tea.KeyEnter)
	f.typeText("x")
	f.special(tea.KeyEnter)

	assert.Equal(t, navstate.FormEdit, f.m.State())
	assert.NotEmpty(t, f.form.Err())
	assert.Empty(t, f.changes)

	// Leaving the pane abandons the edit.
	f.special(tea.KeyTab)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.Nil(t, f.form.Editing())
	assert.True(t, date.ReadOnly())
	assert.Equal(t, element.PaneFolders, f.m.CurrentPane())
}

func TestEnterOnFolderExpandsWithoutLoading(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	listings := len(f.listings)

	f.special(tea.KeyEnter)
	assert.Equal(t, 4, f.tree.List().Len())
	assert.Equal(t, "Alpha", f.tree.List().Selected().Label)
	assert.Len(t, f.listings, listings)

	f.special(tea.KeyRight)
	assert.Equal(t, "Disc", f.tree.List().Selected().Label)
	f.special(tea.KeyLeft)
	assert.Equal(t, "Alpha", f.tree.List().Selected().Label)
	f.special(tea.KeyLeft)
	assert.Equal(t, 3, f.tree.List().Len())

	// Beta is confirmed to have no subfolders after its first expansion.
	f.special(tea.KeyDown)
	f.special(tea.KeyEnter)
	f.special(tea.KeyEnter)
	assert.Equal(t, listnav.SubfoldersNone, f.tree.Subfolders(f.tree.List().Selected()))
	assert.Equal(t, 3, f.tree.List().Len())
}

func TestHeaderHandOff(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.special(tea.KeyUp)
	assert.Equal(t, navstate.HeaderFocus, f.m.State())
	assert.Equal(t, string(headerbar.IconFilter), f.machine.Value(navstate.KeyIcon))
	assert.Same(t, f.tree.Header().Icon(headerbar.IconFilter), f.focused())
	assert.Equal(t, element.PaneFolders, f.m.CurrentPane())

	f.special(tea.KeyLeft)
	assert.Equal(t, string(headerbar.IconFilter), f.machine.Value(navstate.KeyIcon), "clamped at the first icon")

	f.special(tea.KeyRight)
	assert.Same(t, f.tree.Header().Icon(headerbar.IconSort), f.focused())
	f.special(tea.KeyEnter)
	assert.Equal(t, navigator.SortByModified, f.tree.SortKey())

	f.special(tea.KeyRight)
	f.special(tea.KeySpace)
	assert.True(t, f.tree.Descending())

	f.special(tea.KeyRight)
	f.special(tea.KeyEnter)
	assert.Equal(t, 1, f.helps)

	f.special(tea.KeyRight)
	assert.Same(t, f.tree.Header().Icon(headerbar.IconHelp), f.focused(), "clamped at the last icon")

	f.special(tea.KeyDown)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.Equal(t, "Alpha", f.focused().Label)
	f.assertSingleFocus(t)
}

func TestFilterFromHeader(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyUp)
	f.special(tea.KeyEnter)

	require.Equal(t, navstate.FilterActive, f.m.State())
	assert.True(t, f.tree.Header().FilterOpen())
	assert.Same(t, f.tree.Header().InputElement(), f.doc.ActiveElement())

	f.typeText("bet")
	assert.Equal(t, 1, f.tree.List().Len())

	f.special(tea.KeyEnter)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.False(t, f.tree.Header().FilterOpen())
	assert.Equal(t, "bet", f.tree.Header().Query())
	assert.Equal(t, "Beta", f.focused().Label)
	assert.Equal(t, selectCall{"Beta", true}, f.treeSelects[len(f.treeSelects)-1])
}

func TestFilterEscapeClears(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	require.True(t, f.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}))
	require.Equal(t, navstate.FilterActive, f.m.State())

	f.typeText("gam")
	assert.Equal(t, 1, f.tree.List().Len())
	f.special(tea.KeyEsc)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.Empty(t, f.tree.Header().Query())
	assert.Equal(t, 3, f.tree.List().Len())
	assert.Equal(t, "Alpha", f.focused().Label)
}

func TestTabLeavesFilterAndHeader(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	f.typeText("a")
	f.special(tea.KeyTab)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.False(t, f.tree.Header().FilterOpen())
	assert.Equal(t, "a", f.tree.Header().Query(), "query is kept")
	assert.Equal(t, element.PaneFiles, f.m.CurrentPane())

	f.special(tea.KeyTab)
	require.Equal(t, element.PaneFolders, f.m.CurrentPane())
	f.m.NavigateToHeaderIcon(element.PaneFolders, headerbar.IconSort)
	f.special(tea.KeyTab)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.False(t, f.tree.Header().Icon(headerbar.IconSort).LogicallyFocused())
	assert.Equal(t, element.PaneFiles, f.m.CurrentPane())
	f.assertSingleFocus(t)
}

func TestTabCancelsEdits(t *testing.T) {
	t.Run("field edit", func(t *testing.T) {
		f := newFixture(t)
		f.start(t)
		f.special(tea.KeyTab)
		f.special(tea.KeyEnter)
		f.special(tea.KeyTab)
		f.special(tea.KeyDown)
		artist := f.form.Field(tags.FieldArtist)
		require.Same(t, artist, f.focused())

		require.True(t, f.special(tea.KeyEnter))
		f.typeText("Band")
		require.Equal(t, navstate.FormEdit, f.m.State())

		f.special(tea.KeyTab)
		assert.Equal(t, navstate.Normal, f.m.State())
		assert.Equal(t, element.PaneFolders, f.m.CurrentPane())
		assert.True(t, artist.ReadOnly())
		assert.Nil(t, f.form.Editing())
		assert.Empty(t, f.form.Tag().Artist)
		assert.Empty(t, f.changes)
		f.assertSingleFocus(t)
	})

	t.Run("inline rename", func(t *testing.T) {
		f := newFixture(t)
		f.start(t)
		f.special(tea.KeyTab)
		require.True(t, f.special(tea.KeyF2))
		f.typeText("zz")
		require.Equal(t, navstate.InlineEdit, f.m.State())

		f.special(tea.KeyTab)
		assert.Equal(t, navstate.Normal, f.m.State())
		assert.NotEqual(t, element.PaneFiles, f.m.CurrentPane())
		assert.False(t, f.files.Renaming())
		assert.Empty(t, f.renames)
		f.assertSingleFocus(t)
	})
}

func TestPaneRemembersFocus(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)
	f.special(tea.KeyDown)
	require.Equal(t, "02 Song.mp3", f.focused().Label)

	f.special(tea.KeyTab)
	f.special(tea.KeyTab)
	assert.Equal(t, element.PaneFiles, f.m.CurrentPane())
	assert.Equal(t, "02 Song.mp3", f.focused().Label)
}

func TestInlineRename(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)

	require.True(t, f.special(tea.KeyF2))
	assert.Equal(t, navstate.InlineEdit, f.m.State())
	assert.Same(t, f.files.RenameElement(), f.doc.ActiveElement())

	f.typeText("!")
	f.special(tea.KeyEnter)
	assert.Equal(t, navstate.Normal, f.m.State())
	assert.Equal(t, [][2]string{{"01 Intro.mp3", "01 Intro!.mp3"}}, f.renames)
	assert.Equal(t, "01 Intro.mp3", f.focused().Label)

	f.special(tea.KeyF2)
	f.typeText("zz")
	f.special(tea.KeyEsc)
	assert.Len(t, f.renames, 1)
	assert.False(t, f.files.Renaming())
}

func TestRenameRefusedOutsideFiles(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	assert.False(t, f.special(tea.KeyF2))
	assert.Nil(t, f.m.BeginInlineEdit())
	assert.Equal(t, navstate.Normal, f.m.State())
}

func TestUnmatchedKeys(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	assert.False(t, f.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	assert.False(t, f.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}), "quit is left to the host")
}

func TestRevalidateAfterListChange(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)
	f.special(tea.KeyDown)
	require.Equal(t, "02 Song.mp3", f.focused().Label)

	dir := filepath.Join(f.root, "Alpha")
	f.files.SetFiles(dir, []navigator.Entry{{Name: "01 Intro.mp3", Path: filepath.Join(dir, "01 Intro.mp3")}})
	f.m.Revalidate()
	assert.Equal(t, "01 Intro.mp3", f.focused().Label)

	f.files.SetFiles(dir, nil)
	f.m.Revalidate()
	assert.Equal(t, element.PaneFolders, f.m.CurrentPane())
	assert.Equal(t, "Alpha", f.focused().Label)
}

func TestSaveRestoreFocus(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.special(tea.KeyTab)

	f.m.SaveFocus()
	f.ledger.ClearAll()
	f.doc.Blur()
	f.m.RestoreFocus()
	assert.Equal(t, "01 Intro.mp3", f.focused().Label)
	assert.Equal(t, element.PaneFiles, f.m.CurrentPane())
}

func TestRoutesFollowKeymap(t *testing.T) {
	f := newFixture(t)
	routes := f.router.Routes()
	require.NotEmpty(t, routes)
	assert.Equal(t, PrioritySwitch, routes[0].Priority)
	assert.Equal(t, "global/switch_pane", routes[0].Name)
	assert.Equal(t, PriorityFiles, routes[len(routes)-1].Priority)
}
