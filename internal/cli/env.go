package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envName returns the variable read for a flag: "dry-run" is NEPO_DRY_RUN.
func envName(flag string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flag, "-", "_"))
}

// bindEnv gives every flag of cmd a NEPO_<FLAG> variable, looked up with
// lookup. A set variable replaces the flag's default, so the command line
// still wins over the environment. The variable name is appended to each
// flag's usage for --help.
//
// Values the flag rejects are reported together, wrapped in
// [ErrInvalidArgument]; the remaining flags are still bound.
func bindEnv(cmd *cobra.Command, lookup func(string) (string, bool)) error {
	var errs []error

	seen := map[string]bool{}
	visit := func(flag *pflag.Flag) {
		if seen[flag.Name] {
			return
		}

		seen[flag.Name] = true

		name := envName(flag.Name)
		flag.Usage += fmt.Sprintf(" ($%s)", name)

		value, ok := lookup(name)
		if !ok || flag.Changed {
			return
		}

		err := flag.Value.Set(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("$%s=%q: %w", name, value, err))

			return
		}

		flag.DefValue = flag.Value.String()
	}

	cmd.PersistentFlags().VisitAll(visit)
	cmd.Flags().VisitAll(visit)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, errors.Join(errs...))
	}

	return nil
}
