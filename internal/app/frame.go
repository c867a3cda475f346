package app

import (
	"github.com/snakeworks/termsnake/internal/engine"
	"github.com/snakeworks/termsnake/internal/leaderboard"
	"github.com/snakeworks/termsnake/internal/storage"
)

// Header is the status line shown above the play-field.
type Header struct {
	Difficulty string
	Score      int
	Player     string
	Elapsed    string
	// Length and Capacity describe how much of the interior the snake fills.
	Length   int
	Capacity int
}

// Frame is everything a Display needs to draw the current state. It carries
// content only; layout and cursor handling belong to the Display.
type Frame struct {
	State    State
	SubState engine.Status

	// Menu labels and cursor for MainMenu and Options.
	Menu     []string
	Selected int

	// NameBuffer is the text typed so far in EnterName.
	NameBuffer   string
	Options      storage.Options
	Difficulties []engine.Difficulty

	Header      Header
	Grid        []string
	Leaderboard []leaderboard.Entry

	Notice string
}

// Frame describes the current state for rendering.
func (m *Machine) Frame() Frame {
	f := Frame{
		State:      m.state,
		SubState:   m.GameStatus(),
		NameBuffer: string(m.name),
		Notice:     m.notice,
	}

	switch m.state {
	case MainMenu:
		f.Menu = []string{"New game", "Options", "Scoreboard", "Exit"}
		f.Selected = int(m.menuSel)
	case Options:
		f.Options = m.opts
		f.Menu = []string{
			"Snake can cut itself  " + onOff(m.opts.CutItself),
			"Snake can pass border " + onOff(m.opts.PassBorder),
			"Back",
		}
		f.Selected = int(m.optionsSel)
	case EnterDifficulty:
		f.Difficulties = m.cfg.Difficulties
		f.Header.Player = m.session.Name
	case Scoreboard:
		f.Leaderboard = m.cfg.Leaderboard.Entries()
	case SnakeGame:
		f.Header = Header{
			Difficulty: m.difficulty.Level.String(),
			Score:      m.session.Score,
			Player:     m.session.Name,
		}
		if m.game != nil {
			f.Header.Elapsed = m.game.Elapsed().String()
			f.Header.Length = m.game.Length()
			f.Header.Capacity = m.game.Grid().Interior()
			f.Grid = m.game.Rows()
		}
	case EnterName:
	}
	return f
}

func onOff(b bool) string {
	if b {
		return "[on]"
	}
	return "[off]"
}
