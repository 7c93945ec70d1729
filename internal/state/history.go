package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tagdeck/internal/db"
)

// maxHistory bounds the stored edits; the oldest are dropped first.
const maxHistory = 500

// Edit is one committed tag field change.
type Edit struct {
	ID     int64
	Path   string
	Field  string
	Before string
	After  string
	At     time.Time
}

// recordEdit appends e and discards every undone edit, so a new edit ends
// the redo chain.
func recordEdit(sqlDB *sql.DB, e Edit) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	return dbutil.WithTx(context.Background(), sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM edit_history WHERE undone = 1`); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO edit_history (path, field, before_value, after_value, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.Path, e.Field, e.Before, e.After, at.Unix())
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			DELETE FROM edit_history WHERE id NOT IN (
				SELECT id FROM edit_history ORDER BY id DESC LIMIT ?
			)
		`, maxHistory)
		return err
	})
}

// undo marks the newest applied edit as undone and returns it, or nil when
// there is nothing to undo.
func undo(sqlDB *sql.DB) (*Edit, error) {
	return flip(sqlDB, `SELECT id, path, field, before_value, after_value, created_at
		FROM edit_history WHERE undone = 0 ORDER BY id DESC LIMIT 1`, 1)
}

// redo re-applies the oldest undone edit and returns it, or nil.
func redo(sqlDB *sql.DB) (*Edit, error) {
	return flip(sqlDB, `SELECT id, path, field, before_value, after_value, created_at
		FROM edit_history WHERE undone = 1 ORDER BY id ASC LIMIT 1`, 0)
}

func flip(sqlDB *sql.DB, query string, undone int) (*Edit, error) {
	var e *Edit
	err := dbutil.WithTx(context.Background(), sqlDB, func(tx *sql.Tx) error {
		var got Edit
		var at int64
		err := tx.QueryRow(query).Scan(&got.ID, &got.Path, &got.Field, &got.Before, &got.After, &at)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		got.At = time.Unix(at, 0)
		if _, err := tx.Exec(`UPDATE edit_history SET undone = ? WHERE id = ?`, undone, got.ID); err != nil {
			return err
		}
		e = &got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// renamePath keeps history entries pointing at a renamed file.
func renamePath(sqlDB *sql.DB, from, to string) error {
	_, err := sqlDB.Exec(`UPDATE edit_history SET path = ? WHERE path = ?`, to, from)
	return err
}
