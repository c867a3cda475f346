package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for Bubble Tea update loop.

// tickMsg fires every poll interval to step the machine.
type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
