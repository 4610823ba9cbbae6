package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/nepo/pkg/log"
	"github.com/macropower/nepo/pkg/version"
)

const (
	cmdName = "nepo"
	cmdDesc = `Open files with the right tool.`
	cmdLong = `nepo opens files with the command configured for their type.

Associations are read from ~/.nepo.yml, or from nepo/config.yaml in the XDG
config directories. Later associations take priority over earlier ones, and
the first association is used when nothing else matches.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
	Debug     bool
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "warn", fmt.Sprintf("Log level, one of: %s", log.Levels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.Formats))
	cmd.PersistentFlags().
		BoolVarP(&ra.Debug, "debug", "d", false, "Print the associations and the match, and log at debug level")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.Formats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.Levels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	cmd := &cobra.Command{
		Use:               cmdName + " [flags] <path>...",
		Short:             cmdDesc,
		Long:              cmdLong,
		Example:           cmdExamples,
		ValidArgsFunction: runCompletion,
		Args:              runArgs.validateArgs,
		RunE: func(cmd *cobra.Command, paths []string) error {
			return run(cmd, runArgs, paths)
		},
		SilenceUsage: true,
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)

	envErr := bindEnv(cmd, os.LookupEnv)
	cmd.PersistentPreRunE = func(cmd *cobra.Command, paths []string) error {
		if envErr != nil {
			return envErr
		}

		return setupLogging(args)(cmd, paths)
	}

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		level := ra.LogLevel
		if ra.Debug {
			level = slog.LevelDebug.String()
		}

		logHandler, err := log.NewHandler(cmd.ErrOrStderr(), level, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)

		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		logger.Debug("starting", slog.String("version", version.String()))

		return nil
	}
}
