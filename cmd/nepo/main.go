package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/nepo/internal/cli"
	"github.com/macropower/nepo/pkg/version"
)

func main() {
	// Interrupts are not turned into cancellation: a launched command owns
	// Ctrl-C until it exits, see execs.Launcher.Launch.
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
