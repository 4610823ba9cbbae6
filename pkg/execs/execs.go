package execs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/macropower/nepo/pkg/log"
)

var (
	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")

	// ErrSpawn is returned when a command could not be started.
	ErrSpawn = errors.New("failed to execute command")

	// ErrWait is returned when waiting on a started command failed.
	ErrWait = errors.New("failed to wait on command")

	// ErrExit is returned when a command ran to completion but exited with a
	// non-zero status or was terminated by a signal.
	ErrExit = errors.New("command exited abnormally")
)

// Streams are the standard streams handed to a child process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the caller's own standard streams.
func StdStreams() Streams {
	return Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// Launcher starts commands with a fixed set of [Streams] and waits for them
// to exit. Only one command runs at a time per call to [Launcher.Launch].
type Launcher struct {
	streams Streams
}

// NewLauncher creates a new [Launcher].
func NewLauncher(streams Streams) *Launcher {
	return &Launcher{streams: streams}
}

// Launch runs cmd and blocks until it exits. ctx only carries the logger:
// cancelling it does not stop the child.
//
// A start failure is wrapped in [ErrSpawn]. An exit status other than zero is
// wrapped in [ErrExit] with the underlying [*exec.ExitError] kept in the
// chain. Any other failure while waiting is wrapped in [ErrWait].
//
// While the child runs, SIGINT is delivered to it through the shared
// process group and is ignored by nepo, so interactive programs decide for
// themselves what Ctrl-C means.
func (l *Launcher) Launch(ctx context.Context, c *Command) error {
	if c.Command == "" {
		return ErrEmptyCommand
	}

	logger := log.FromContext(ctx).With(slog.String("command", c.String()))

	//nolint:gosec // G204: Subprocess launched with configured command.
	cmd := exec.Command(c.Command, c.Args...)
	cmd.Env = c.GetEnv()
	cmd.Stdin = l.streams.In
	cmd.Stdout = l.streams.Out
	cmd.Stderr = l.streams.Err

	start := time.Now()

	err := cmd.Start()
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrSpawn, c.Command, err)
	}

	logger.DebugContext(ctx, "command started", slog.Int("pid", cmd.Process.Pid))

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	err = cmd.Wait()
	if err != nil {
		logger.DebugContext(ctx, "command failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w %q: %w", ErrExit, c.Command, err)
		}

		return fmt.Errorf("%w %q: %w", ErrWait, c.Command, err)
	}

	logger.DebugContext(ctx, "command exited",
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}
