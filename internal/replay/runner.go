package replay

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/snakeworks/termsnake/internal/app"
	"github.com/snakeworks/termsnake/internal/engine"
	"github.com/snakeworks/termsnake/internal/leaderboard"
	"github.com/snakeworks/termsnake/internal/storage"
)

// epoch is the virtual wall-clock time every replay starts at.
//
//nolint:gochecknoglobals // fixed start of the virtual clock.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Result is how a replay ended.
type Result struct {
	Script   string
	State    app.State
	Status   engine.Status
	Score    int
	Entries  []leaderboard.Entry
	Frame    app.Frame
	Frames   int
	Duration time.Duration
}

// Runner plays scripts.
type Runner struct {
	// Leaderboard receives the scores of finished rounds. When nil each
	// replay gets a fresh in-memory board.
	Leaderboard app.Leaderboard
	// BaseTick defaults to app.DefaultBaseTick.
	BaseTick time.Duration
}

// Run plays s to the end of its steps, or until Exit is chosen.
func (r Runner) Run(ctx context.Context, s *Script) (Result, error) {
	board := r.Leaderboard
	if board == nil {
		mem, err := leaderboard.New("")
		if err != nil {
			return Result{}, err
		}
		board = mem
	}

	p := newPlayer(s)
	src := rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15)
	m := app.NewMachine(app.Config{
		Options:     &memoryOptions{opts: storage.Options(s.Options)},
		Leaderboard: board,
		BaseTick:    r.BaseTick,
		Now:         p.now,
		NewRand:     func() *rand.Rand { return rand.New(src) },
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.cancel = cancel

	out := &frameCounter{}
	log := logrus.WithField("script", s.Name)
	log.Debug("Replay started")
	if err := app.Run(ctx, m, p, out, app.WithRunClock(p.now, p.sleep)); err != nil {
		return Result{}, fmt.Errorf("replay %q: %w", s.Name, err)
	}
	if !p.finished() && !m.Done() {
		// The caller's context was cancelled before the script ran out.
		return Result{}, fmt.Errorf("replay %q: %w", s.Name, context.Cause(ctx))
	}

	res := Result{
		Script:   s.Name,
		State:    m.State(),
		Status:   m.GameStatus(),
		Score:    m.Session().Score,
		Entries:  board.Entries(),
		Frame:    m.Frame(),
		Frames:   out.count,
		Duration: p.clock.Sub(epoch),
	}
	log.WithFields(logrus.Fields{"state": res.State, "status": res.Status, "score": res.Score}).Debug("Replay finished")
	return res, nil
}

// Check compares res with the script's expectation, if any.
func (s *Script) Check(res Result) error {
	e := s.Expect
	if e == nil {
		return nil
	}
	if want, ok, _ := e.state(); ok && res.State != want {
		return fmt.Errorf("%w: state is %s, want %s", ErrExpectation, res.State, want)
	}
	if want, ok, _ := e.status(); ok && res.Status != want {
		return fmt.Errorf("%w: status is %s, want %s", ErrExpectation, res.Status, want)
	}
	if e.Score != nil && res.Score != *e.Score {
		return fmt.Errorf("%w: score is %d, want %d", ErrExpectation, res.Score, *e.Score)
	}
	if e.Entries != nil && len(res.Entries) != *e.Entries {
		return fmt.Errorf("%w: leaderboard has %d entries, want %d", ErrExpectation, len(res.Entries), *e.Entries)
	}
	return nil
}

// player is the scripted InputSource. It owns the virtual clock: time only
// moves when the loop sleeps, and a wait step holds input back until the
// clock has passed it.
type player struct {
	script *Script
	step   int
	queue  []app.Key

	clock     time.Time
	waitUntil time.Time
	cancel    context.CancelFunc
}

func newPlayer(s *Script) *player {
	return &player{script: s, clock: epoch}
}

func (p *player) now() time.Time { return p.clock }

func (p *player) Poll() (app.Key, bool) {
	if p.clock.Before(p.waitUntil) {
		return app.Key{}, false
	}
	for len(p.queue) == 0 {
		if p.step >= len(p.script.Steps) {
			return app.Key{}, false
		}
		step := p.script.Steps[p.step]
		p.queue = append(p.queue, p.script.keys[p.step]...)
		p.step++
		if step.Wait > 0 {
			p.waitUntil = p.clock.Add(step.Wait)
			return app.Key{}, false
		}
	}
	k := p.queue[0]
	p.queue = p.queue[1:]
	return k, true
}

func (p *player) finished() bool {
	return p.step >= len(p.script.Steps) && len(p.queue) == 0 && !p.clock.Before(p.waitUntil)
}

func (p *player) sleep(ctx context.Context, d time.Duration) error {
	p.clock = p.clock.Add(d)
	if p.finished() {
		p.cancel()
	}
	return ctx.Err()
}

// frameCounter is a Display that only counts frames; the result is read
// from the machine once the replay ends.
type frameCounter struct{ count int }

func (c *frameCounter) Draw(app.Frame) error {
	c.count++
	return nil
}

// memoryOptions serves a script's options without touching disk.
type memoryOptions struct{ opts storage.Options }

func (m *memoryOptions) Options() (storage.Options, error) { return m.opts, nil }

func (m *memoryOptions) Save(o storage.Options) error {
	m.opts = o
	return nil
}
