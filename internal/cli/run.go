package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/config"
	"github.com/macropower/nepo/pkg/dispatch"
	"github.com/macropower/nepo/pkg/execs"
	"github.com/macropower/nepo/pkg/log"
)

const (
	// Modes selected by --view and --edit.
	ModeView = "view"
	ModeEdit = "edit"

	cmdExamples = `  # Open files in the default mode:
  nepo report.pdf notes.md

  # Open in view or edit mode:
  nepo -v README.md
  nepo -e main.go

  # Use any mode defined in the config:
  nepo -m print invoice.pdf

  # Show what would run, without running it:
  nepo -n -d *.png

  # Create a config file:
  nepo --write-config`
)

var ErrInvalidArgument = errors.New("invalid argument")

type RunArgs struct {
	*RootArgs

	ConfigPath  string
	Mode        string
	View        bool
	Edit        bool
	DryRun      bool
	ShowConfig  bool
	WriteConfig bool
	Force       bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the nepo configuration file")
	cmd.Flags().StringVarP(&ra.Mode, "mode", "m", "", "Open files in the given mode")
	cmd.Flags().BoolVarP(&ra.View, "view", "v", false, `Open files in "view" mode`)
	cmd.Flags().BoolVarP(&ra.Edit, "edit", "e", false, `Open files in "edit" mode`)
	cmd.Flags().BoolVarP(&ra.DryRun, "dry-run", "n", false, "Print the commands instead of running them")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration files and exit")
	cmd.Flags().BoolVar(&ra.Force, "force", false, "With --write-config, back up and replace an existing config")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

// SelectedMode applies the mode flags in order of precedence: --mode, then
// --view, then --edit.
func (ra *RunArgs) SelectedMode() string {
	switch {
	case ra.Mode != "":
		return ra.Mode
	case ra.View:
		return ModeView
	case ra.Edit:
		return ModeEdit
	}

	return association.ModeDefault
}

func (ra *RunArgs) validateArgs(_ *cobra.Command, args []string) error {
	if ra.ShowConfig || ra.WriteConfig {
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: requires at least one path", ErrInvalidArgument)
	}

	return nil
}

func runCompletion(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveDefault
}

func run(cmd *cobra.Command, ra *RunArgs, paths []string) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	if ra.WriteConfig {
		return writeConfig(ra)
	}

	configPath, err := config.GetPath(ra.ConfigPath)
	if err != nil {
		return fmt.Errorf("find config: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if ra.ShowConfig {
		logger.Info("active configuration", slog.String("path", configPath))

		b, err := cfg.MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}

		return writeYAML(cmd.OutOrStdout(), b)
	}

	as := cfg.Associations()
	mode := ra.SelectedMode()

	ctx = log.With(ctx, slog.String("mode", mode))
	logger = log.FromContext(ctx)

	m, err := association.Resolve(as, mode, paths)
	if err != nil {
		return fmt.Errorf("resolve association: %w", err)
	}

	logger.DebugContext(ctx, "resolved association",
		slog.String("config", configPath),
		slog.String("association", m.Association.Name),
		slog.Bool("fallback", m.Fallback),
		slog.Any("paths", m.Paths),
	)

	if ra.Debug {
		err = writeDebug(cmd.OutOrStdout(), mode, as, m)
		if err != nil {
			return err
		}
	}

	var launcher dispatch.Launcher = execs.NewLauncher(execs.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if ra.DryRun {
		launcher = dispatch.NewDryRun(cmd.OutOrStdout())
	}

	ex := dispatch.NewExecutor(
		dispatch.WithLauncher(launcher),
		dispatch.WithOutput(cmd.OutOrStdout()),
	)

	return asExitError(ex.Run(ctx, m.Association, m.Paths))
}

func loadConfig(path string) (*config.Config, error) {
	cl, err := config.NewLoaderFromFile(path, config.WithColor(isTerminal(os.Stderr)))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

func writeConfig(ra *RunArgs) error {
	path := ra.ConfigPath
	if path == "" {
		var err error

		path, err = config.DefaultWritePath()
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}
	}

	err := config.WriteDefaultConfig(path, ra.Force)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
