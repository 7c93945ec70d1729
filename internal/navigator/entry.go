// Package navigator lists folders and music files from disk and filters,
// sorts and watches them for the browser panes.
package navigator

import (
	"path/filepath"
	"strings"
	"time"
)

// Entry is one folder or file on disk.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// ID returns the entry's stable identity, its absolute path.
func (e Entry) ID() string { return e.Path }

// Ext returns the lower-cased extension without the dot.
func (e Entry) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name)), ".")
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool {
	return strings.HasPrefix(e.Name, ".")
}
