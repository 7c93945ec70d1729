package navigator

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// coalesceWindow groups bursts of events (a tag write touches a file several
// times) into one change message.
const coalesceWindow = 150 * time.Millisecond

// ChangedMsg reports that the watched folder's contents changed.
type ChangedMsg struct {
	Dir string
}

// Watcher follows a single folder, the one whose files are listed.
type Watcher struct {
	fs  *fsnotify.Watcher
	log logr.Logger

	mu  sync.Mutex
	dir string
}

// NewWatcher creates an idle watcher.
func NewWatcher(log logr.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{fs: fw, log: log.WithName("watcher")}, nil
}

// Watch replaces the watched folder with dir. An empty dir stops watching.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
	}
	w.dir = ""
	if dir == "" {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dir = dir
	w.log.V(1).Info("watching folder", "dir", dir)
	return nil
}

// Dir returns the watched folder.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Wait returns a command that blocks until the watched folder changes. The
// command yields nil once the watcher is closed. Callers re-issue Wait
// after every ChangedMsg.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				dir := w.Dir()
				if dir == "" || filepath.Dir(ev.Name) != dir {
					continue
				}
				w.drain()
				w.log.V(1).Info("folder changed", "dir", dir, "op", ev.Op.String())
				return ChangedMsg{Dir: dir}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				w.log.Error(err, "watch error")
			}
		}
	}
}

// drain swallows events that follow within the coalesce window.
func (w *Watcher) drain() {
	timer := time.NewTimer(coalesceWindow)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
