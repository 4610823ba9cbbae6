package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/execs"
	"github.com/macropower/nepo/pkg/log"
)

// Launcher runs a command and waits for it to finish.
type Launcher interface {
	Launch(ctx context.Context, cmd *execs.Command) error
}

// Executor runs the commands planned for an association, one at a time.
type Executor struct {
	launcher Launcher
	out      io.Writer
}

type ExecutorOpt func(*Executor)

// WithLauncher replaces the default [execs.Launcher].
func WithLauncher(l Launcher) ExecutorOpt {
	return func(e *Executor) {
		e.launcher = l
	}
}

// WithOutput sets where print messages are written. Defaults to stdout.
func WithOutput(w io.Writer) ExecutorOpt {
	return func(e *Executor) {
		e.out = w
	}
}

func NewExecutor(opts ...ExecutorOpt) *Executor {
	e := &Executor{
		launcher: execs.NewLauncher(execs.StdStreams()),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run plans a for paths and runs each invocation in order.
//
// A command that exits abnormally ([execs.ErrExit]) does not stop the run;
// the last such error is returned once every invocation has been launched.
// Any other launch error is returned immediately, and commands that already
// finished are not undone.
func (e *Executor) Run(ctx context.Context, a association.Association, paths []string) error {
	invs, err := Plan(a, paths)
	if err != nil {
		return fmt.Errorf("plan %q: %w", a.Name, err)
	}

	ctx = log.With(ctx, slog.String("association", a.Name))
	logger := log.FromContext(ctx)

	var exitErr error

	for i, inv := range invs {
		if inv.HasMessage {
			_, err := fmt.Fprint(e.out, "\n"+inv.Message+"\n")
			if err != nil {
				return fmt.Errorf("print message: %w", err)
			}
		}

		logger.DebugContext(ctx, "launch",
			slog.Int("index", i),
			slog.Int("total", len(invs)),
			slog.Any("argv", inv.Command.Argv()),
		)

		err := e.launcher.Launch(ctx, inv.Command)
		switch {
		case errors.Is(err, execs.ErrExit):
			logger.InfoContext(ctx, "continuing after abnormal exit",
				slog.Int("index", i),
				slog.Any("error", err),
			)

			exitErr = err

		case err != nil:
			return err //nolint:wrapcheck // Launcher errors already name the command.
		}
	}

	return exitErr
}

// DryRun is a [Launcher] that writes each command line instead of running it.
type DryRun struct {
	w io.Writer
}

func NewDryRun(w io.Writer) *DryRun {
	return &DryRun{w: w}
}

func (d *DryRun) Launch(_ context.Context, cmd *execs.Command) error {
	if cmd.Command == "" {
		return execs.ErrEmptyCommand
	}

	var line strings.Builder
	for _, ev := range cmd.Env {
		if ev.Name != "" {
			line.WriteString(ev.Name + "=" + ev.Value + " ")
		}
	}

	line.WriteString(cmd.String())

	_, err := fmt.Fprintln(d.w, line.String())
	if err != nil {
		return fmt.Errorf("write dry run: %w", err)
	}

	return nil
}
