package engine

// Direction is a heading on the grid.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists every heading.
//
//nolint:gochecknoglobals // immutable lookup table.
var Directions = [...]Direction{Up, Left, Down, Right}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta is the one-step offset for d. Y grows downwards.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{Y: -1}
	case Down:
		return Point{Y: 1}
	case Left:
		return Point{X: -1}
	default:
		return Point{X: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
