package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/snakeworks/termsnake/internal/app"
)

// Run starts the Bubble Tea program on the alternate screen and blocks until
// the player exits or ctx is cancelled. Cancellation is a clean stop.
func Run(ctx context.Context, m *app.Machine, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(m), opts...)

	// Silence logs written to the terminal during the TUI to avoid corrupting
	// the view; a log file set up by the caller is left alone.
	logger := logrus.StandardLogger()
	if logger.Out == nil || isTerminalWriter(logger.Out) {
		prevOut := logger.Out
		logrus.SetOutput(io.Discard)
		defer logrus.SetOutput(prevOut)
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logrus.Debug("TUI stopped by cancellation")
		return nil
	}
	return err
}

type fdWriter interface {
	Fd() uintptr
}

// isTerminalWriter reports whether w is one of the process's standard streams.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	const stderrFd = 2
	return f.Fd() <= stderrFd
}
