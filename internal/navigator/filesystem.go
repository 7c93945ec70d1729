package navigator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/llehouerou/tagdeck/internal/tags"
)

// Options controls which entries a FileSource returns.
type Options struct {
	ShowHidden   bool
	ShowAllFiles bool // list every file, not just music files
}

// FileSource reads folders and files from disk.
type FileSource struct {
	root string
	opts Options
}

// NewFileSource creates a filesystem source rooted at startPath.
func NewFileSource(startPath string, opts Options) (*FileSource, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absPath)
	}
	return &FileSource{root: absPath, opts: opts}, nil
}

// Root returns the absolute start folder.
func (s *FileSource) Root() string { return s.root }

// Options returns the listing options.
func (s *FileSource) Options() Options { return s.opts }

// Subfolders lists the directories directly inside path, sorted by name.
func (s *FileSource) Subfolders(path string) ([]Entry, error) {
	return s.list(path, true)
}

// Files lists the files directly inside path, sorted by name.
func (s *FileSource) Files(path string) ([]Entry, error) {
	return s.list(path, false)
}

// HasSubfolders reports whether path has at least one visible directory.
func (s *FileSource) HasSubfolders(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if s.visible(e) && isDir(path, e) {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileSource) list(path string, dirs bool) ([]Entry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !s.visible(e) || isDir(path, e) != dirs {
			continue
		}
		full := filepath.Join(path, e.Name())
		if !dirs && !s.opts.ShowAllFiles && !tags.IsMusicFile(full) {
			continue
		}
		entry := Entry{Name: e.Name(), Path: full, IsDir: dirs}
		if info, err := e.Info(); err == nil {
			entry.ModTime = info.ModTime()
			if !dirs {
				entry.Size = info.Size()
			}
		}
		result = append(result, entry)
	}

	Sort(result, SortByName, Ascending)
	return result, nil
}

func (s *FileSource) visible(e fs.DirEntry) bool {
	return s.opts.ShowHidden || e.Name()[0] != '.'
}

// isDir follows symlinks so linked folders show up in the tree.
func isDir(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}
