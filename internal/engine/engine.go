package engine

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FoodScore is awarded for every food eaten.
const FoodScore = 10

// ErrNotInitialized is returned by Start before a successful Initialize.
var ErrNotInitialized = errors.New("engine not initialized")

// Status is the lifecycle of one round.
type Status uint8

const (
	NotInitialized Status = iota
	CanBegin
	Ongoing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotInitialized:
		return "not initialized"
	case CanBegin:
		return "can begin"
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Finished reports whether the round has ended.
func (s Status) Finished() bool { return s == Won || s == Lost }

// Rules are the gameplay switches in effect for a round.
type Rules struct {
	CutItself  bool
	PassBorder bool
}

// Recorder receives the final result of a round.
type Recorder interface {
	Submit(name string, score int) error
}

// Glyphs used by Rows.
const (
	GlyphWall  = '#'
	GlyphEmpty = ' '
	GlyphFood  = '*'
	GlyphHead  = '@'
	GlyphBody  = 'o'
)

// Engine simulates one snake on one grid. It is not safe for concurrent use.
type Engine struct {
	rules    Rules
	player   string
	recorder Recorder
	rng      *rand.Rand
	now      func() time.Time
	log      *logrus.Entry

	difficulty Difficulty
	grid       *Grid
	body       []Point // head first
	dir        Direction
	pending    Direction
	hasPending bool
	food       Point
	score      int
	status     Status
	startedAt  time.Time
	finishedAt time.Time

	submitted bool
	submitErr error
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules sets the cut-itself and pass-border switches.
func WithRules(r Rules) Option { return func(e *Engine) { e.rules = r } }

// WithPlayer names the player the result is recorded under.
func WithPlayer(name string) Option { return func(e *Engine) { e.player = name } }

// WithRecorder sets where the final score is submitted.
func WithRecorder(r Recorder) Option { return func(e *Engine) { e.recorder = r } }

// WithRand sets the random source used for placement.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// WithClock sets the time source used for elapsed time.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithLogger attaches structured fields to engine logs.
func WithLogger(l *logrus.Entry) Option { return func(e *Engine) { e.log = l } }

// New returns an engine in the NotInitialized state.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		log: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // gameplay randomness
	}
	return e
}

// Initialize allocates the play-field for d. A previous grid is replaced.
func (e *Engine) Initialize(d Difficulty) error {
	grid, err := NewGrid(d.Width, d.Height)
	if err != nil {
		return err
	}
	e.difficulty = d
	e.grid = grid
	e.body = nil
	e.hasPending = false
	e.score = 0
	e.submitted = false
	e.submitErr = nil
	e.status = CanBegin
	return nil
}

// Start places the snake and the first food and begins the round.
func (e *Engine) Start() error {
	if e.grid == nil {
		return ErrNotInitialized
	}
	e.grid.clearInterior()

	head := Point{
		X: 1 + e.rng.IntN(e.grid.Width-2),
		Y: 1 + e.rng.IntN(e.grid.Height-2),
	}
	e.body = []Point{head}
	e.grid.Set(head, SnakeBody)
	e.dir = e.initialDirection(head)
	e.hasPending = false

	e.placeFood()
	e.score = 0
	e.submitted = false
	e.submitErr = nil
	e.startedAt = e.now()
	e.finishedAt = time.Time{}
	e.status = Ongoing

	e.log.WithFields(logrus.Fields{
		"difficulty": e.difficulty.Level,
		"head":       head,
		"direction":  e.dir,
	}).Debug("Round started")
	return nil
}

// initialDirection picks uniformly among the headings that do not step
// straight into a wall.
func (e *Engine) initialDirection(head Point) Direction {
	candidates := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if e.grid.At(head.Add(d.Delta())) != Wall {
			candidates = append(candidates, d)
		}
	}
	// An interior of at least 2x2 always leaves two open headings.
	return candidates[e.rng.IntN(len(candidates))]
}

// placeFood puts one food on a random empty interior cell.
func (e *Engine) placeFood() bool {
	free := e.grid.emptyCells()
	if len(free) == 0 {
		return false
	}
	e.food = free[e.rng.IntN(len(free))]
	e.grid.Set(e.food, Food)
	return true
}

// SetPendingDirection buffers d for the next tick. The exact reverse of the
// current heading is refused unless the snake may cut itself.
func (e *Engine) SetPendingDirection(d Direction) bool {
	if e.status != Ongoing {
		return false
	}
	if d == e.dir.Opposite() && !e.rules.CutItself {
		return false
	}
	e.pending = d
	e.hasPending = true
	return true
}

// Tick advances the round by one step and returns the resulting status.
func (e *Engine) Tick() Status {
	if e.status != Ongoing {
		return e.status
	}
	if e.hasPending {
		e.dir = e.pending
		e.hasPending = false
	}

	next := e.body[0].Add(e.dir.Delta())
	if e.rules.PassBorder && e.grid.OnBorder(next) {
		next = e.grid.wrap(next)
	}

	switch e.grid.At(next) {
	case Food:
		e.pushHead(next)
		e.score += FoodScore
		if len(e.body) == e.grid.Interior() {
			e.finish(Won)
			return e.status
		}
		e.placeFood()
	case Wall:
		e.finish(Lost)
	case SnakeBody:
		if !e.rules.CutItself {
			e.finish(Lost)
			return e.status
		}
		e.cutAt(next)
		e.pushHead(next)
	case Empty:
		e.pushHead(next)
		e.popTail()
	}
	return e.status
}

func (e *Engine) pushHead(p Point) {
	e.body = append(e.body, Point{})
	copy(e.body[1:], e.body)
	e.body[0] = p
	e.grid.Set(p, SnakeBody)
}

func (e *Engine) popTail() {
	last := len(e.body) - 1
	e.grid.Set(e.body[last], Empty)
	e.body = e.body[:last]
}

// cutAt drops the segment at p and every segment behind it.
func (e *Engine) cutAt(p Point) {
	for i, seg := range e.body {
		if seg != p {
			continue
		}
		for _, dropped := range e.body[i:] {
			e.grid.Set(dropped, Empty)
		}
		e.body = e.body[:i]
		e.log.WithField("length", len(e.body)+1).Debug("Snake cut itself")
		return
	}
}

func (e *Engine) finish(s Status) {
	e.status = s
	e.finishedAt = e.now()
	e.log.WithFields(logrus.Fields{
		"status":  s,
		"score":   e.score,
		"length":  len(e.body),
		"elapsed": e.Elapsed(),
	}).Info("Round finished")

	if e.submitted || e.recorder == nil {
		return
	}
	e.submitted = true
	if err := e.recorder.Submit(e.player, e.score); err != nil {
		e.submitErr = err
		e.log.WithError(err).Warn("Unable to record score")
	}
}

// Elapsed is the time since Start, split for display. It stops when the
// round finishes.
func (e *Engine) Elapsed() Elapsed {
	if e.startedAt.IsZero() {
		return Elapsed{}
	}
	end := e.finishedAt
	if end.IsZero() {
		end = e.now()
	}
	return NewElapsed(end.Sub(e.startedAt))
}

// Status returns the current round status.
func (e *Engine) Status() Status { return e.status }

// Score returns the points collected this round.
func (e *Engine) Score() int { return e.score }

// Length is the number of body segments.
func (e *Engine) Length() int { return len(e.body) }

// Body returns a copy of the segments, head first.
func (e *Engine) Body() []Point {
	out := make([]Point, len(e.body))
	copy(out, e.body)
	return out
}

// Head returns the head segment.
func (e *Engine) Head() Point {
	if len(e.body) == 0 {
		return Point{}
	}
	return e.body[0]
}

// Food returns the current food position.
func (e *Engine) Food() Point { return e.food }

// Direction is the heading applied on the last tick.
func (e *Engine) Direction() Direction { return e.dir }

// Difficulty returns the tier passed to Initialize.
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// Grid exposes the play-field for inspection.
func (e *Engine) Grid() *Grid { return e.grid }

// SubmitErr is the error from recording the final score, if any.
func (e *Engine) SubmitErr() error { return e.submitErr }

// Rows renders the grid as one string per row using the Glyph constants.
func (e *Engine) Rows() []string {
	if e.grid == nil {
		return nil
	}
	rows := make([]string, 0, e.grid.Height)
	var b strings.Builder
	for y := range e.grid.Height {
		b.Reset()
		for x := range e.grid.Width {
			p := Point{X: x, Y: y}
			switch e.grid.At(p) {
			case Wall:
				b.WriteRune(GlyphWall)
			case Food:
				b.WriteRune(GlyphFood)
			case SnakeBody:
				if len(e.body) > 0 && p == e.body[0] {
					b.WriteRune(GlyphHead)
				} else {
					b.WriteRune(GlyphBody)
				}
			default:
				b.WriteRune(GlyphEmpty)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}
