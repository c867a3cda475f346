package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// InputSource yields at most one pending key press without blocking.
type InputSource interface {
	Poll() (Key, bool)
}

// Display draws a Frame.
type Display interface {
	Draw(Frame) error
}

type runConfig struct {
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// RunOption customises Run.
type RunOption func(*runConfig)

// WithRunClock replaces the wall clock and sleep used by Run.
func WithRunClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) RunOption {
	return func(c *runConfig) {
		c.now = now
		c.sleep = sleep
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run drives m until Exit is chosen or ctx is cancelled: read one input,
// dispatch it, step, redraw, sleep. Cancellation is checked at the top of
// every iteration and during the sleep, so a stop request is honoured within
// one poll interval and never in the middle of a step.
func Run(ctx context.Context, m *Machine, in InputSource, out Display, opts ...RunOption) error {
	cfg := runConfig{now: time.Now, sleep: Sleep}
	for _, opt := range opts {
		opt(&cfg)
	}

	for {
		if ctx.Err() != nil {
			logrus.Debug("Loop stopped by cancellation")
			return nil
		}
		if k, ok := in.Poll(); ok {
			m.HandleKey(k)
		}
		if m.Done() {
			return nil
		}
		m.Step(cfg.now())
		if err := out.Draw(m.Frame()); err != nil {
			return err
		}
		if err := cfg.sleep(ctx, m.PollInterval()); err != nil {
			logrus.Debug("Loop stopped during sleep")
			return nil
		}
	}
}
