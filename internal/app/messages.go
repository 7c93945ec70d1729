// internal/app/messages.go
// Package app contains the bubbletea model of tagdeck and its messages.
package app

import (
	"github.com/llehouerou/tagdeck/internal/navigator"
	"github.com/llehouerou/tagdeck/internal/state"
	"github.com/llehouerou/tagdeck/internal/tags"
	"github.com/llehouerou/tagdeck/internal/ui/metaform"
)

// filesDebounceMsg fires when a folder selection has been stable for the
// load debounce. Version is compared against the loader's current value.
type filesDebounceMsg struct {
	Version uint64
	Dir     string
}

// tagsDebounceMsg is the file selection counterpart of filesDebounceMsg.
type tagsDebounceMsg struct {
	Version uint64
	Path    string
}

// FilesLoadedMsg carries a folder listing. Results whose RequestID is not
// the latest are dropped.
type FilesLoadedMsg struct {
	RequestID uint64
	Dir       string
	Entries   []navigator.Entry
	Err       error
}

// TagsLoadedMsg carries the tags of one file.
type TagsLoadedMsg struct {
	RequestID uint64
	Path      string
	Tag       *tags.Tag
	Err       error
}

// TagsWrittenMsg reports the outcome of writing an edited field.
type TagsWrittenMsg struct {
	Change *metaform.Change
	Err    error
}

// HistoryAppliedMsg reports an undo or redo written to disk.
type HistoryAppliedMsg struct {
	Edit state.Edit
	Undo bool
	Tag  *tags.Tag
	Err  error
}

// RenamedMsg reports a file rename.
type RenamedMsg struct {
	From string
	To   string
	Err  error
}

// ShowHelpMsg opens the help popup.
type ShowHelpMsg struct{}

// StatusMsg shows a line in the status bar.
type StatusMsg struct {
	Text string
	Err  bool
}

// clearStatusMsg clears the status bar unless a newer status replaced it.
type clearStatusMsg struct {
	Seq int
}
