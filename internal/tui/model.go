package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snakeworks/termsnake/internal/app"
)

// Model is the root Bubble Tea model. It owns no game state of its own: every
// key press and tick is forwarded to the wrapped app.Machine and View renders
// the machine's current Frame.
type Model struct {
	machine *app.Machine
	now     func() time.Time

	width    int
	height   int
	quitting bool

	renderer Renderer
	help     help.Model

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel wraps m for use with tea.NewProgram.
func NewModel(m *app.Machine) Model {
	return Model{
		machine:  m,
		now:      time.Now,
		renderer: NewRenderer(),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick(m.machine.PollInterval())
}
