package engine

import (
	"fmt"
	"math"
	"time"
)

// Level names a difficulty tier.
type Level uint8

const (
	Easy Level = iota
	Normal
	Hard
)

func (l Level) String() string {
	switch l {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Difficulty is the grid size and tick speed of a tier.
type Difficulty struct {
	Level      Level
	Width      int
	Height     int
	TickFactor float64 // multiple of the base tick
}

// TickPeriod is how long one simulation step lasts for the given base tick.
func (d Difficulty) TickPeriod(base time.Duration) time.Duration {
	return time.Duration(math.Round(float64(base) * d.TickFactor))
}

// Difficulties is the fixed tier table, indexed by Level.
//
//nolint:gochecknoglobals,mnd // immutable lookup table.
var Difficulties = [...]Difficulty{
	Easy:   {Level: Easy, Width: 10, Height: 10, TickFactor: 1.0},
	Normal: {Level: Normal, Width: 15, Height: 15, TickFactor: 0.8},
	Hard:   {Level: Hard, Width: 20, Height: 20, TickFactor: 0.6},
}

// DifficultyFor returns the table entry for l.
func DifficultyFor(l Level) (Difficulty, bool) {
	if int(l) >= len(Difficulties) {
		return Difficulty{}, false
	}
	return Difficulties[l], true
}
