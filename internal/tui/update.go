package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snakeworks/termsnake/internal/app"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case tickMsg:
		m.machine.Step(time.Time(x))
		if m.machine.Done() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick(m.machine.PollInterval())
	}

	return m, nil
}

// handleKey processes global bindings, then forwards the press to the machine.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	k := decodeKey(msg)
	if k.Code == app.KeyNone {
		return m, nil
	}
	m.machine.HandleKey(k)
	if m.machine.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	// Step right away so state changes show without waiting for the next tick.
	m.machine.Step(m.now())
	return m, nil
}

// decodeKey maps a Bubble Tea key event onto the machine's key codes.
func decodeKey(msg tea.KeyMsg) app.Key {
	switch msg.Type {
	case tea.KeyUp:
		return app.Key{Code: app.KeyUp}
	case tea.KeyDown:
		return app.Key{Code: app.KeyDown}
	case tea.KeyLeft:
		return app.Key{Code: app.KeyLeft}
	case tea.KeyRight:
		return app.Key{Code: app.KeyRight}
	case tea.KeyEnter:
		return app.Key{Code: app.KeyEnter}
	case tea.KeyEsc:
		return app.Key{Code: app.KeyEscape}
	case tea.KeySpace:
		return app.Key{Code: app.KeySpace}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return app.Key{Code: app.KeyBackspace}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return app.RuneKey(msg.Runes[0])
		}
	}
	return app.Key{}
}
