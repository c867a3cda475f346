package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/snakeworks/termsnake/internal/app"
	"github.com/snakeworks/termsnake/internal/engine"
)

// keyMap describes the bindings shown in the footer. Input itself is decoded
// by decodeKey; the bindings only drive help and the global quit/help keys.
type keyMap struct {
	Move   key.Binding
	Select key.Binding
	Toggle key.Binding
	Back   key.Binding
	Digits key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("↑/↓/←/→ wasd", "move"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2"),
			key.WithHelp("0-2", "difficulty"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Select, k.Toggle, k.Digits, k.Back, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Select, k.Toggle},
		{k.Digits, k.Back},
		{k.Help, k.Quit},
	}
}

// forFrame enables and relabels bindings for what the current screen accepts.
func (k keyMap) forFrame(f app.Frame) keyMap {
	k.Move.SetEnabled(false)
	k.Select.SetEnabled(false)
	k.Toggle.SetEnabled(false)
	k.Digits.SetEnabled(false)
	k.Back.SetEnabled(true)
	k.Back.SetHelp("esc", "back")

	switch f.State {
	case app.MainMenu:
		k.Move.SetEnabled(true)
		k.Move.SetHelp("↑/↓ ws", "navigate")
		k.Select.SetEnabled(true)
		k.Back.SetEnabled(false)
	case app.EnterName:
		k.Select.SetEnabled(true)
		k.Select.SetHelp("enter", "confirm")
	case app.EnterDifficulty:
		k.Digits.SetEnabled(true)
		k.Digits.SetHelp(digitRange(len(f.Difficulties)), "difficulty")
	case app.Options:
		k.Move.SetEnabled(true)
		k.Move.SetHelp("↑/↓ ws", "navigate")
		k.Select.SetEnabled(true)
		k.Toggle.SetEnabled(true)
		k.Toggle.SetHelp("space", "toggle")
	case app.SnakeGame:
		switch f.SubState {
		case engine.Lost:
			k.Select.SetEnabled(true)
			k.Select.SetHelp("enter", "restart")
			k.Toggle.SetEnabled(true)
			k.Toggle.SetHelp("space", "change difficulty")
			k.Back.SetHelp("esc", "menu")
		case engine.Won:
			k.Back.SetHelp("esc", "menu")
		case engine.NotInitialized, engine.CanBegin, engine.Ongoing:
			k.Move.SetEnabled(true)
			k.Move.SetHelp("↑/↓/←/→ wasd", "steer")
			k.Back.SetHelp("esc", "abort")
		}
	case app.Scoreboard:
	}
	return k
}

func digitRange(n int) string {
	if n <= 1 {
		return "0"
	}
	return "0-" + string(rune('0'+n-1))
}
