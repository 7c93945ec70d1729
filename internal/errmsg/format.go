// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Tag operations
	OpTagRead  Op = "read tags"
	OpTagWrite Op = "write tags"

	// File system operations
	OpFolderLoad Op = "list folder"
	OpFilesLoad  Op = "list files"
	OpFileRename Op = "rename file"
	OpWatch      Op = "watch folder"

	// History
	OpUndo Op = "undo"
	OpRedo Op = "redo"

	// Desktop integration
	OpClipboard Op = "copy path"
	OpOpen      Op = "open file"

	// State
	OpStateLoad Op = "restore session"
	OpStateSave Op = "save session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, cause(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, cause(err))
}

// cause drops the path from file system errors; the context already
// names the file.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
