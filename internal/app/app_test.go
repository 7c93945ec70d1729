package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagdeck/internal/app/popupctl"
	"github.com/llehouerou/tagdeck/internal/config"
	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/navstate"
	"github.com/llehouerou/tagdeck/internal/state"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/testutil"
)

// memDisk keeps tags in memory; renames go to the real file system.
type memDisk struct {
	mu        sync.Mutex
	tags      map[string]*tags.Tag
	failWrite bool
	reads     []string
}

func (d *memDisk) read(path string) (*tags.Tag, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads = append(d.reads, filepath.Base(path))
	if t, ok := d.tags[path]; ok {
		return t.Clone(), nil
	}
	return &tags.Tag{Path: path, Title: filepath.Base(path), Date: "2020"}, nil
}

func (d *memDisk) write(path string, t *tags.Tag) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWrite {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
	}
	d.tags[path] = t.Clone()
	return nil
}

func (d *memDisk) title(path string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.tags[path]; ok {
		return t.Title
	}
	return ""
}

type fakeWatcher struct {
	watched []string
	closed  bool
}

func (w *fakeWatcher) Watch(dir string) error {
	w.watched = append(w.watched, dir)
	return nil
}
func (w *fakeWatcher) Wait() tea.Cmd { return nil }
func (w *fakeWatcher) Close() error {
	w.closed = true
	return nil
}

type harness struct {
	m       Model
	root    string
	disk    *memDisk
	state   *state.Mock
	watcher *fakeWatcher
	copied  []string
	opened  []string

	// now advances by keyGap on every key-down.
	now    time.Time
	keyGap time.Duration
}

func (h *harness) clock() time.Time {
	h.now = h.now.Add(h.keyGap)
	return h.now
}

// newHarness builds the app over:
//
//	Alpha/01 Intro.mp3, Alpha/02 Song.mp3
//	Beta/ (empty)
//	Gamma/x.flac, Gamma/notes.txt
func newHarness(t *testing.T, setup ...func(h *harness)) *harness {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	for _, f := range []string{"Alpha/01 Intro.mp3", "Alpha/02 Song.mp3", "Gamma/x.flac", "Gamma/notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(f)), []byte("x"), 0o644))
	}

	h := &harness{
		root:    root,
		disk:    &memDisk{tags: make(map[string]*tags.Tag)},
		state:   state.NewMock(),
		watcher: &fakeWatcher{},
		now:     time.Unix(0, 0),
		keyGap:  time.Second,
	}
	for _, fn := range setup {
		fn(h)
	}

	cfg := &config.Config{ShowAllFiles: true, Load: config.LoadConfig{DebounceMS: 1}}
	disk := Disk{ReadTags: h.disk.read, WriteTags: h.disk.write, Rename: renameNoReplace}
	desktop := Desktop{
		Copy: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		Open: func(s string) error {
			h.opened = append(h.opened, s)
			return nil
		},
	}
	m, err := New(cfg, h.state, Options{
		Root:    root,
		Disk:    &disk,
		Desktop: &desktop,
		Watcher: h.watcher,
		Now:     h.clock,
	})
	require.NoError(t, err)
	h.m = m
	h.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	h.settle(m.Init())
	return h
}

func (h *harness) path(rel string) string {
	return filepath.Join(h.root, filepath.FromSlash(rel))
}

// run executes cmd and returns the messages it produces. Timers longer
// than the wait, such as key repeat delays, are abandoned.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle feeds the messages of cmd back into the model until it is idle.
func (h *harness) settle(cmd tea.Cmd) {
	pending := run(cmd)
	for i := 0; len(pending) > 0 && i < 20; i++ {
		var next []tea.Msg
		for _, msg := range pending {
			if _, ok := msg.(tea.QuitMsg); ok {
				continue
			}
			model, c := h.m.Update(msg)
			h.m = model.(Model)
			next = append(next, run(c)...)
		}
		pending = next
	}
}

func (h *harness) send(msg tea.Msg) {
	model, cmd := h.m.Update(msg)
	h.m = model.(Model)
	h.settle(cmd)
}

func (h *harness) key(k tea.KeyType) { h.send(tea.KeyMsg{Type: k}) }
func (h *harness) runes(s string)    { h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}) }

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.runes(string(r))
	}
}

func (h *harness) focusedLabel() string {
	if el := h.m.Doc.ActiveElement(); el != nil {
		return el.Label
	}
	return ""
}

func TestNewFocusesFolderTree(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, element.PaneFolders, h.m.Nav.CurrentPane())
	assert.Equal(t, "Alpha", h.focusedLabel())
	assert.Equal(t, h.path("Alpha"), h.m.Files.Dir())
	assert.Equal(t, 2, h.m.Files.List().Len())
	assert.Equal(t, []string{h.path("Alpha")}, h.watcher.watched)
	assert.False(t, h.m.Form.Loaded())
}

func TestFolderSelectionListsFiles(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyDown)
	assert.Equal(t, "Beta", h.focusedLabel())
	assert.True(t, h.m.Files.Empty())

	h.key(tea.KeyDown)
	assert.Equal(t, "Gamma", h.focusedLabel())
	assert.Equal(t, h.path("Gamma"), h.m.Files.Dir())
	assert.Equal(t, 2, h.m.Files.List().Len())
}

func TestTabCyclesPanes(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyTab)
	assert.Equal(t, element.PaneFiles, h.m.Nav.CurrentPane())
	assert.Equal(t, "01 Intro.mp3", h.focusedLabel())
	require.True(t, h.m.Form.Loaded(), "selecting a file loads its tags")
	assert.Equal(t, h.path("Alpha/01 Intro.mp3"), h.m.Form.Path())

	h.key(tea.KeyTab)
	assert.Equal(t, element.PaneMetadata, h.m.Nav.CurrentPane())
	assert.Equal(t, "01 Intro.mp3", h.focusedLabel(), "title field shows the file name")

	h.key(tea.KeyTab)
	assert.Equal(t, element.PaneFolders, h.m.Nav.CurrentPane())
	assert.Equal(t, "Alpha", h.focusedLabel())
}

func TestTabSkipsPanesWithNothingToFocus(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown) // Beta, no files

	h.key(tea.KeyTab)
	assert.Equal(t, element.PaneFolders, h.m.Nav.CurrentPane())
	assert.Equal(t, "Beta", h.focusedLabel())
}

func TestNonMusicFileDoesNotLoadTags(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown) // Gamma
	h.key(tea.KeyTab)
	require.Equal(t, "notes.txt", h.focusedLabel())

	assert.False(t, h.m.Form.Loaded())
	assert.NotContains(t, h.disk.reads, "notes.txt")

	h.key(tea.KeyDown)
	assert.Equal(t, "x.flac", h.focusedLabel())
	assert.True(t, h.m.Form.Loaded())
}

func TestFieldEditWritesAndRecordsHistory(t *testing.T) {
	h := newHarness(t)
	intro := h.path("Alpha/01 Intro.mp3")
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)

	h.key(tea.KeyEnter)
	require.Equal(t, navstate.FormEdit, h.m.Machine.State())
	h.typeText(" live")
	h.key(tea.KeyEnter)

	assert.Equal(t, navstate.Normal, h.m.Machine.State())
	assert.Equal(t, "01 Intro.mp3 live", h.disk.title(intro))
	require.Len(t, h.state.Edits(), 1)
	e := h.state.Edits()[0]
	assert.Equal(t, intro, e.Path)
	assert.Equal(t, string(tags.FieldTitle), e.Field)
	assert.Equal(t, "01 Intro.mp3", e.Before)
	assert.Equal(t, "01 Intro.mp3 live", e.After)
	assert.Contains(t, h.m.Status.Text, "Saved")
}

func TestUndoRedo(t *testing.T) {
	h := newHarness(t)
	intro := h.path("Alpha/01 Intro.mp3")
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.key(tea.KeyEnter)
	h.typeText("!")
	h.key(tea.KeyEnter)
	require.Equal(t, "01 Intro.mp3!", h.disk.title(intro))

	h.key(tea.KeyCtrlZ)
	assert.Equal(t, "01 Intro.mp3", h.disk.title(intro))
	assert.Equal(t, "01 Intro.mp3", h.m.Form.Tag().Title)
	assert.Contains(t, h.m.Status.Text, "Undid")

	h.key(tea.KeyCtrlZ)
	assert.Equal(t, "Nothing to undo", h.m.Status.Text)

	h.key(tea.KeyCtrlY)
	assert.Equal(t, "01 Intro.mp3!", h.disk.title(intro))
	assert.Equal(t, "01 Intro.mp3!", h.m.Form.Tag().Title)
}

func TestUndoWithoutHistory(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlZ)
	assert.Equal(t, "Nothing to undo", h.m.Status.Text)
}

func TestWriteFailureShowsErrorAndRevertsForm(t *testing.T) {
	h := newHarness(t)
	h.disk.failWrite = true
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.key(tea.KeyEnter)
	h.typeText("?")
	h.key(tea.KeyEnter)

	assert.Equal(t, popupctl.Error, h.m.Popups.ActivePopup())
	assert.Contains(t, h.m.Popups.ErrorMsg(), "write tags")
	assert.Equal(t, "01 Intro.mp3", h.m.Form.Tag().Title)
	assert.Empty(t, h.state.Edits())

	// Any key dismisses the error without acting.
	h.key(tea.KeyTab)
	assert.Equal(t, popupctl.None, h.m.Popups.ActivePopup())
	assert.Equal(t, element.PaneMetadata, h.m.Nav.CurrentPane())
}

func TestRenameSelectsRenamedFile(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	require.Equal(t, "01 Intro.mp3", h.focusedLabel())

	h.key(tea.KeyF2)
	require.Equal(t, navstate.InlineEdit, h.m.Machine.State())
	h.typeText(" (live)")
	h.key(tea.KeyEnter)

	renamed := h.path("Alpha/01 Intro (live).mp3")
	assert.FileExists(t, renamed)
	assert.NoFileExists(t, h.path("Alpha/01 Intro.mp3"))
	assert.Equal(t, navstate.Normal, h.m.Machine.State())
	assert.Equal(t, "01 Intro (live).mp3", h.focusedLabel())
	assert.Equal(t, renamed, h.m.Form.Path())
}

func TestRenameFromTags(t *testing.T) {
	h := newHarness(t, func(h *harness) {
		p := h.path("Alpha/01 Intro.mp3")
		h.disk.tags[p] = &tags.Tag{Path: p, Title: "Intro: Part 1", TrackNumber: 1}
	})
	h.key(tea.KeyTab)
	require.Equal(t, h.path("Alpha/01 Intro.mp3"), h.m.Form.Path())

	h.key(tea.KeyF2)
	h.key(tea.KeyCtrlT)
	assert.Equal(t, "01 - Intro - Part 1.mp3", h.m.Files.RenameValue())
	h.key(tea.KeyEnter)

	assert.FileExists(t, h.path("Alpha/01 - Intro - Part 1.mp3"))
	assert.Equal(t, "01 - Intro - Part 1.mp3", h.focusedLabel())
}

func TestRenameRefusesToOverwrite(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	h.key(tea.KeyF2)
	for range len("01 Intro") {
		h.key(tea.KeyBackspace)
	}
	h.typeText("02 Song")
	h.key(tea.KeyEnter)

	assert.Equal(t, popupctl.Error, h.m.Popups.ActivePopup())
	assert.FileExists(t, h.path("Alpha/01 Intro.mp3"))
}

func TestFilterTypingGoesToInput(t *testing.T) {
	h := newHarness(t)

	h.runes("/")
	require.Equal(t, navstate.FilterActive, h.m.Machine.State())
	h.typeText("Gam")
	assert.Equal(t, 1, h.m.Tree.List().Len())
	h.typeText("q")
	assert.False(t, h.state.IsClosed(), "q typed in a filter does not quit")
	h.key(tea.KeyBackspace)

	h.key(tea.KeyEsc)
	assert.Equal(t, navstate.Normal, h.m.Machine.State())
	assert.Equal(t, 3, h.m.Tree.List().Len())
}

func TestHelpPopupRestoresFocus(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	before := h.m.Doc.ActiveElement()

	h.runes("?")
	require.True(t, h.m.Popups.IsVisible(popupctl.Help))
	h.key(tea.KeyDown)
	assert.Same(t, before, h.m.Doc.ActiveElement(), "keys go to the popup")

	h.key(tea.KeyEsc)
	assert.False(t, h.m.Popups.IsVisible(popupctl.Help))
	assert.Same(t, before, h.m.Doc.ActiveElement())
	assert.Equal(t, element.PaneFiles, h.m.Nav.CurrentPane())
}

func TestDesktopShortcuts(t *testing.T) {
	h := newHarness(t)

	h.runes("y")
	assert.Equal(t, []string{h.path("Alpha")}, h.copied)
	assert.Contains(t, h.m.Status.Text, "Copied")

	h.key(tea.KeyTab)
	h.runes("o")
	assert.Equal(t, []string{h.path("Alpha/01 Intro.mp3")}, h.opened)
}

func TestDesktopErrorGoesToStatus(t *testing.T) {
	h := newHarness(t)
	h.m.Desktop.Copy = func(string) error { return errors.New("no clipboard") }

	h.runes("y")
	assert.True(t, h.m.Status.Err)
	assert.Contains(t, h.m.Status.Text, "no clipboard")
}

func TestQuitClosesState(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.state.IsClosed())
	assert.True(t, h.watcher.closed)
}

func TestSelectionIsPersisted(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	h.key(tea.KeyDown)

	saved := h.state.Saved()
	require.NotEmpty(t, saved)
	last := saved[len(saved)-1]
	assert.Equal(t, h.root, last.StartFolder)
	assert.Equal(t, h.path("Alpha"), last.SelectedFolder)
	assert.Equal(t, h.path("Alpha/02 Song.mp3"), last.SelectedFile)
	assert.Equal(t, string(element.PaneFiles), last.Pane)
}

func TestRestoreSession(t *testing.T) {
	h := newHarness(t, func(h *harness) {
		h.state.SetNavigation(&state.NavigationState{
			StartFolder:    h.root,
			SelectedFolder: h.path("Gamma"),
			SelectedFile:   h.path("Gamma/x.flac"),
			Pane:           string(element.PaneFiles),
		})
	})

	assert.Equal(t, element.PaneFolders, h.m.Nav.CurrentPane())
	assert.Equal(t, "Gamma", h.focusedLabel())
	assert.Equal(t, h.path("Gamma"), h.m.Files.Dir())
	assert.Equal(t, h.path("Gamma/x.flac"), h.m.Form.Path())

	h.key(tea.KeyTab)
	assert.Equal(t, "x.flac", h.focusedLabel())
}

func TestRestoreIgnoresOtherRoot(t *testing.T) {
	h := newHarness(t, func(h *harness) {
		h.state.SetNavigation(&state.NavigationState{
			StartFolder:    t.TempDir(),
			SelectedFolder: "/elsewhere/Gamma",
		})
	})

	assert.Equal(t, "Alpha", h.focusedLabel())
}

func TestFolderChangeRefreshesListing(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.path("Alpha/03 New.mp3"), []byte("x"), 0o644))

	h.send(navigator.ChangedMsg{Dir: h.path("Alpha")})
	assert.Equal(t, 3, h.m.Files.List().Len())

	h.send(navigator.ChangedMsg{Dir: h.path("Beta")})
	assert.Equal(t, 3, h.m.Files.List().Len())
}

func TestFocusedFileRemovedOnDisk(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	h.key(tea.KeyDown)
	require.Equal(t, "02 Song.mp3", h.focusedLabel())

	require.NoError(t, os.Remove(h.path("Alpha/02 Song.mp3")))
	h.send(navigator.ChangedMsg{Dir: h.path("Alpha")})

	assert.Equal(t, element.PaneFiles, h.m.Nav.CurrentPane())
	assert.Equal(t, "01 Intro.mp3", h.focusedLabel())
}

func TestBlurStopsRepeat(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)
	require.True(t, h.m.Repeat.Active("down"))

	h.send(tea.BlurMsg{})
	assert.False(t, h.m.Repeat.Active(""))
}

func TestQuickTapsEachMove(t *testing.T) {
	h := newHarness(t)
	h.keyGap = 150 * time.Millisecond
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	assert.Equal(t, "Gamma", h.focusedLabel())
}

func TestDownAtLastFolderDoesNotRelist(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	require.Equal(t, "Gamma", h.focusedLabel())
	listings := len(h.watcher.watched)

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)

	assert.Equal(t, "Gamma", h.focusedLabel())
	assert.Len(t, h.watcher.watched, listings)
}

func TestHostEchoesDoNotMove(t *testing.T) {
	h := newHarness(t)
	h.keyGap = 30 * time.Millisecond
	for range 10 {
		h.key(tea.KeyDown)
	}
	assert.Equal(t, "Beta", h.focusedLabel())
	assert.True(t, h.m.Repeat.Active("down"))
	assert.False(t, h.m.Repeat.IsRepeating(""))
}

func TestView(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)

	out := testutil.StripANSI(h.m.View())
	assert.Contains(t, out, "tagdeck")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "01 Intro.mp3")
	assert.Contains(t, out, "files")
	assert.Len(t, testutil.SplitLines(out), 30)
}

func TestHelpContexts(t *testing.T) {
	tests := []struct {
		name  string
		state navstate.State
		pane  element.Pane
		want  string
	}{
		{"folders", navstate.Normal, element.PaneFolders, "folders"},
		{"files", navstate.Normal, element.PaneFiles, "files"},
		{"metadata", navstate.Normal, element.PaneMetadata, "metadata"},
		{"filter", navstate.FilterActive, element.PaneFiles, "filter"},
		{"edit", navstate.FormEdit, element.PaneMetadata, "edit"},
		{"rename", navstate.InlineEdit, element.PaneFiles, "edit"},
		{"header", navstate.HeaderFocus, element.PaneFolders, "header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, helpContexts(tt.state, tt.pane), tt.want)
		})
	}
}
