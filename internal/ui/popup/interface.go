// Package popup renders modal overlays and defines the contract they meet.
package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal overlay component.
type Popup interface {
	// Init returns any initial command.
	Init() tea.Cmd

	// Update handles messages and returns the updated popup.
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without border or centering.
	View() string

	// SetSize sets the dimensions available to the content.
	SetSize(width, height int)
}
