// internal/app/status.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status message stays up.
const statusTimeout = 4 * time.Second

// Status is the message shown in the bottom row.
type Status struct {
	Text string
	Err  bool
	seq  int
}

// Set shows text and returns the command that clears it later.
func (s *Status) Set(text string, isErr bool) tea.Cmd {
	s.Text, s.Err = text, isErr
	s.seq++
	seq := s.seq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{Seq: seq}
	})
}

// clear drops the text unless a newer message replaced it.
func (s *Status) clear(seq int) {
	if seq == s.seq {
		s.Text, s.Err = "", false
	}
}
