package engine

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// Elapsed is a duration split into whole hours, minutes and seconds.
type Elapsed struct {
	Hours   int
	Minutes int
	Seconds int
}

// NewElapsed splits d by successive integer division. Hours and minutes stay
// zero below their thresholds.
func NewElapsed(d time.Duration) Elapsed {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	var e Elapsed
	if total >= secondsPerHour {
		e.Hours = total / secondsPerHour
		total %= secondsPerHour
		e.Minutes = total / secondsPerMinute
		e.Seconds = total % secondsPerMinute
		return e
	}
	if total >= secondsPerMinute {
		e.Minutes = total / secondsPerMinute
		e.Seconds = total % secondsPerMinute
		return e
	}
	e.Seconds = total
	return e
}

// String formats as "45s", "2m 5s" or "1h 2m 5s".
func (e Elapsed) String() string {
	switch {
	case e.Hours > 0:
		return fmt.Sprintf("%dh %dm %ds", e.Hours, e.Minutes, e.Seconds)
	case e.Minutes > 0:
		return fmt.Sprintf("%dm %ds", e.Minutes, e.Seconds)
	default:
		return fmt.Sprintf("%ds", e.Seconds)
	}
}
