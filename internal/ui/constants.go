// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across panes.
const (
	// BorderHeight is the vertical space consumed by a pane border.
	BorderHeight = 2

	// BorderWidth is the horizontal space consumed by a pane border.
	BorderWidth = 2

	// HeaderHeight is the header bar row at the top of list panes.
	HeaderHeight = 1

	// PanelOverhead is what a list pane loses to border and header.
	PanelOverhead = BorderHeight + HeaderHeight

	// MinPaneWidth is the narrowest a pane is drawn.
	MinPaneWidth = 12
)
