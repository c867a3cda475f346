package engine

import (
	"errors"
	"fmt"
)

// minGridSide is the smallest width or height that leaves a playable interior.
const minGridSide = 4

// ErrGridTooSmall is returned when a play-field has no usable interior.
var ErrGridTooSmall = errors.New("grid too small")

// Cell is the content of one play-field square.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	Food
	SnakeBody
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Food:
		return "food"
	case SnakeBody:
		return "snake"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Point is a zero-based grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p moved by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Grid is a row-major width×height array of cells whose outer ring is wall.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// NewGrid allocates a grid and stamps the border walls.
func NewGrid(width, height int) (*Grid, error) {
	if width < minGridSide || height < minGridSide {
		return nil, fmt.Errorf("%w: %dx%d (both sides must exceed %d)", ErrGridTooSmall, width, height, minGridSide-1)
	}
	g := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	g.stampBorder()
	return g, nil
}

func (g *Grid) index(p Point) int { return p.Y*g.Width + p.X }

// At returns the cell at p. Points outside the grid read as Wall.
func (g *Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.index(p)]
}

// Set stores c at p; out-of-bounds points are ignored.
func (g *Grid) Set(p Point, c Cell) {
	if !g.InBounds(p) {
		return
	}
	g.cells[g.index(p)] = c
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// OnBorder reports whether p is part of the outer wall ring.
func (g *Grid) OnBorder(p Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == g.Width-1 || p.Y == g.Height-1
}

// Interior is the number of non-border cells.
func (g *Grid) Interior() int { return (g.Width - 2) * (g.Height - 2) }

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

func (g *Grid) stampBorder() {
	for x := range g.Width {
		g.Set(Point{X: x, Y: 0}, Wall)
		g.Set(Point{X: x, Y: g.Height - 1}, Wall)
	}
	for y := range g.Height {
		g.Set(Point{X: 0, Y: y}, Wall)
		g.Set(Point{X: g.Width - 1, Y: y}, Wall)
	}
}

func (g *Grid) clearInterior() {
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			g.Set(Point{X: x, Y: y}, Empty)
		}
	}
}

// emptyCells lists the interior cells currently Empty, in row-major order.
func (g *Grid) emptyCells() []Point {
	out := make([]Point, 0, g.Interior())
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			p := Point{X: x, Y: y}
			if g.At(p) == Empty {
				out = append(out, p)
			}
		}
	}
	return out
}

// wrap maps a border point onto the opposite interior edge.
func (g *Grid) wrap(p Point) Point {
	switch {
	case p.X <= 0:
		p.X = g.Width - 2
	case p.X >= g.Width-1:
		p.X = 1
	}
	switch {
	case p.Y <= 0:
		p.Y = g.Height - 2
	case p.Y >= g.Height-1:
		p.Y = 1
	}
	return p
}
