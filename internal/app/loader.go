// internal/app/loader.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/tags"
)

// Loader debounces selection-driven loads. Every schedule bumps a version
// so older debounce ticks are ignored, and every load gets a request id so
// results that were superseded while in flight are dropped.
type Loader struct {
	source   *navigator.FileSource
	debounce time.Duration
	readTags func(path string) (*tags.Tag, error)
	log      logr.Logger

	filesVersion uint64
	filesReq     uint64
	tagsVersion  uint64
	tagsReq      uint64

	// pendingSelect is a file to select once dir is listed.
	pendingDir    string
	pendingSelect string
}

// NewLoader creates a loader listing folders from source and reading tags
// with read.
func NewLoader(
	source *navigator.FileSource,
	read func(path string) (*tags.Tag, error),
	debounce time.Duration,
	log logr.Logger,
) *Loader {
	return &Loader{
		source:   source,
		debounce: debounce,
		readTags: read,
		log:      log.WithName("loader"),
	}
}

// ScheduleFiles arms a debounced listing of dir.
func (l *Loader) ScheduleFiles(dir string) tea.Cmd {
	l.filesVersion++
	v := l.filesVersion
	return tea.Tick(l.debounce, func(time.Time) tea.Msg {
		return filesDebounceMsg{Version: v, Dir: dir}
	})
}

// FilesNow lists dir immediately and cancels a pending debounce.
func (l *Loader) FilesNow(dir string) tea.Cmd {
	l.filesVersion++
	return l.listFiles(dir)
}

// RefreshFiles lists dir again without touching a pending debounce.
func (l *Loader) RefreshFiles(dir string) tea.Cmd {
	return l.listFiles(dir)
}

// FilesDue starts the listing of a debounce tick that is still current.
func (l *Loader) FilesDue(msg filesDebounceMsg) tea.Cmd {
	if msg.Version != l.filesVersion {
		return nil
	}
	return l.listFiles(msg.Dir)
}

// FilesCurrent reports whether a listing result is the latest requested.
func (l *Loader) FilesCurrent(msg FilesLoadedMsg) bool {
	return msg.RequestID == l.filesReq
}

func (l *Loader) listFiles(dir string) tea.Cmd {
	l.filesReq++
	id := l.filesReq
	src := l.source
	l.log.V(1).Info("list files", "dir", dir, "request", id)
	return func() tea.Msg {
		entries, err := src.Files(dir)
		return FilesLoadedMsg{RequestID: id, Dir: dir, Entries: entries, Err: err}
	}
}

// ScheduleTags arms a debounced tag read of path.
func (l *Loader) ScheduleTags(path string) tea.Cmd {
	l.tagsVersion++
	v := l.tagsVersion
	return tea.Tick(l.debounce, func(time.Time) tea.Msg {
		return tagsDebounceMsg{Version: v, Path: path}
	})
}

// TagsNow reads path immediately and cancels a pending debounce.
func (l *Loader) TagsNow(path string) tea.Cmd {
	l.tagsVersion++
	return l.readFile(path)
}

// TagsDue starts the read of a debounce tick that is still current.
func (l *Loader) TagsDue(msg tagsDebounceMsg) tea.Cmd {
	if msg.Version != l.tagsVersion {
		return nil
	}
	return l.readFile(msg.Path)
}

// TagsCurrent reports whether a tag result is the latest requested.
func (l *Loader) TagsCurrent(msg TagsLoadedMsg) bool {
	return msg.RequestID == l.tagsReq
}

// CancelTags drops a pending debounce and any read in flight.
func (l *Loader) CancelTags() {
	l.tagsVersion++
	l.tagsReq++
}

func (l *Loader) readFile(path string) tea.Cmd {
	l.tagsReq++
	id := l.tagsReq
	read := l.readTags
	l.log.V(1).Info("read tags", "path", path, "request", id)
	return func() tea.Msg {
		t, err := read(path)
		return TagsLoadedMsg{RequestID: id, Path: path, Tag: t, Err: err}
	}
}

// SelectAfterListing remembers path to be selected when dir is next
// listed.
func (l *Loader) SelectAfterListing(dir, path string) {
	l.pendingDir, l.pendingSelect = dir, path
}

// TakePendingSelect returns and forgets the file waiting for dir's
// listing. A listing of another folder drops it.
func (l *Loader) TakePendingSelect(dir string) string {
	path := ""
	if l.pendingDir == dir {
		path = l.pendingSelect
	}
	l.pendingDir, l.pendingSelect = "", ""
	return path
}
