//go:build windows

// Package stderr is a no-op on Windows; the console has no descriptor to
// redirect.
package stderr

import (
	"os"

	"github.com/go-logr/logr"
)

// Capture is empty on Windows.
type Capture struct{}

// Start does nothing on Windows.
func Start(logr.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing on Windows.
func (c *Capture) Stop() {}
