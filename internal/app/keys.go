package app

import (
	"strings"
	"unicode/utf8"

	"github.com/snakeworks/termsnake/internal/engine"
)

// KeyCode is the symbolic identity of a key press.
type KeyCode uint8

const (
	// KeyNone is an undecodable input; it never changes state.
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	// KeyRune carries a printable character in Key.Rune.
	KeyRune
)

// Raw byte values of the single-byte keys.
const (
	byteBackspaceCtrlH = 8
	byteEnter          = 10
	byteCarriageReturn = 13
	byteEscape         = 27
	byteSpace          = 32
	byteDelete         = 127
)

// Key is one decoded key press.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds a KeyRune press, mapping space to KeySpace.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Code: KeySpace}
	}
	return Key{Code: KeyRune, Rune: r}
}

// Letter returns the ASCII letter carried by k, if any.
func (k Key) Letter() (rune, bool) {
	if k.Code != KeyRune {
		return 0, false
	}
	if (k.Rune >= 'a' && k.Rune <= 'z') || (k.Rune >= 'A' && k.Rune <= 'Z') {
		return k.Rune, true
	}
	return 0, false
}

// Digit returns the decimal digit carried by k, if any.
func (k Key) Digit() (int, bool) {
	if k.Code != KeyRune || k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

// Direction maps arrow keys and W/A/S/D to headings.
func (k Key) Direction() (engine.Direction, bool) {
	switch k.Code {
	case KeyUp:
		return engine.Up, true
	case KeyDown:
		return engine.Down, true
	case KeyLeft:
		return engine.Left, true
	case KeyRight:
		return engine.Right, true
	case KeyRune:
		switch k.Rune {
		case 'w', 'W':
			return engine.Up, true
		case 'a', 'A':
			return engine.Left, true
		case 's', 'S':
			return engine.Down, true
		case 'd', 'D':
			return engine.Right, true
		}
	}
	return 0, false
}

// menuStep returns -1 or +1 for keys that move a menu cursor.
func (k Key) menuStep() int {
	switch k.Code {
	case KeyUp:
		return -1
	case KeyDown:
		return 1
	case KeyRune:
		switch k.Rune {
		case 'w', 'W':
			return -1
		case 's', 'S':
			return 1
		}
	}
	return 0
}

func (k Key) String() string {
	switch k.Code {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	case KeyRune:
		return string(k.Rune)
	default:
		return "none"
	}
}

// DecodeKey turns one raw terminal read into a Key. Arrow keys arrive as
// the three-byte sequences ESC [ A..D; anything unrecognised is KeyNone.
func DecodeKey(b []byte) Key {
	switch len(b) {
	case 0:
		return Key{}
	case 1:
		switch b[0] {
		case byteEnter, byteCarriageReturn:
			return Key{Code: KeyEnter}
		case byteEscape:
			return Key{Code: KeyEscape}
		case byteSpace:
			return Key{Code: KeySpace}
		case byteDelete, byteBackspaceCtrlH:
			return Key{Code: KeyBackspace}
		}
		if b[0] > byteSpace && b[0] < byteDelete {
			return Key{Code: KeyRune, Rune: rune(b[0])}
		}
		return Key{}
	case 3: //nolint:mnd // CSI arrow sequence
		if b[0] != byteEscape || (b[1] != '[' && b[1] != 'O') {
			return Key{}
		}
		switch b[2] {
		case 'A':
			return Key{Code: KeyUp}
		case 'B':
			return Key{Code: KeyDown}
		case 'C':
			return Key{Code: KeyRight}
		case 'D':
			return Key{Code: KeyLeft}
		}
	}
	return Key{}
}

// ParseKey reads the textual key names used by replay scripts: the names
// printed by Key.String, plus "escape", "return" and any single character.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "up":
		return Key{Code: KeyUp}, true
	case "down":
		return Key{Code: KeyDown}, true
	case "left":
		return Key{Code: KeyLeft}, true
	case "right":
		return Key{Code: KeyRight}, true
	case "enter", "return":
		return Key{Code: KeyEnter}, true
	case "esc", "escape":
		return Key{Code: KeyEscape}, true
	case "space", " ":
		return Key{Code: KeySpace}, true
	case "backspace":
		return Key{Code: KeyBackspace}, true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return RuneKey(r), true
	}
	return Key{}, false
}
