package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/tagdeck/internal/db"
)

type NavigationState struct {
	StartFolder    string
	SelectedFolder string
	SelectedFile   string
	Pane           string // "folders", "files" or "metadata"
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`
		SELECT start_folder, selected_folder, selected_file, pane
		FROM navigation_state WHERE id = 1
	`)

	var state NavigationState
	var selectedFolder, selectedFile, pane sql.NullString

	err := row.Scan(&state.StartFolder, &selectedFolder, &selectedFile, &pane)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.SelectedFolder = dbutil.NullStringValue(selectedFolder)
	state.SelectedFile = dbutil.NullStringValue(selectedFile)
	state.Pane = dbutil.NullStringValue(pane)

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, start_folder, selected_folder, selected_file, pane)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_folder = excluded.start_folder,
			selected_folder = excluded.selected_folder,
			selected_file = excluded.selected_file,
			pane = excluded.pane
	`, state.StartFolder, dbutil.NullString(state.SelectedFolder),
		dbutil.NullString(state.SelectedFile), dbutil.NullString(state.Pane))

	return err
}
