// Package state persists navigation state and tag edit history in sqlite.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-logr/logr"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tagdeck"
	dbFileName   = "tagdeck.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager is the sqlite-backed Interface.
type Manager struct {
	db        *sql.DB
	log       logr.Logger
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavigationState
}

// Open opens the database under $XDG_DATA_HOME/tagdeck.
func Open(log logr.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath, log)
}

// OpenAt opens or creates the database at dbPath. Background save
// failures go to log.
func OpenAt(dbPath string, log logr.Logger) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}

	log.V(1).Info("state opened", "path", dbPath)
	return &Manager{db: db, log: log}, nil
}

// Close flushes a pending navigation save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	m.flush(pending)
	return m.db.Close()
}

func (m *Manager) flush(pending *NavigationState) {
	if pending == nil {
		return
	}
	if err := saveNavigation(m.db, *pending); err != nil {
		m.log.Error(err, "save navigation")
	}
}

func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveNavigation stores state after a short quiet period; only the last
// state of a burst is written.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()
		m.flush(pending)
	})
}

func (m *Manager) RecordEdit(e Edit) error         { return recordEdit(m.db, e) }
func (m *Manager) Undo() (*Edit, error)            { return undo(m.db) }
func (m *Manager) Redo() (*Edit, error)            { return redo(m.db) }
func (m *Manager) RenamePath(from, to string) error { return renamePath(m.db, from, to) }

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
