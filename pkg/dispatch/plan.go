package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/execs"
)

// Template placeholders.
const (
	PlaceholderFile  = "${file}"
	PlaceholderFiles = "${files}"
)

var (
	ErrNoPaths = errors.New("no paths to open")
	ErrSplit   = errors.New("split command")
)

// Invocation is one planned command, with the message to print before it.
type Invocation struct {
	Command    *execs.Command
	Message    string
	HasMessage bool
}

// Plan expands a into invocations for paths, in the order they should run.
func Plan(a association.Association, paths []string) ([]Invocation, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	if !a.Iterate {
		inv, err := batch(a, paths)
		if err != nil {
			return nil, err
		}

		return []Invocation{inv}, nil
	}

	invs := make([]Invocation, 0, len(paths))
	for _, p := range paths {
		inv, err := single(a, p)
		if err != nil {
			return nil, err
		}

		invs = append(invs, inv)
	}

	return invs, nil
}

func batch(a association.Association, paths []string) (Invocation, error) {
	joined := strings.Join(paths, " ")

	argv, err := split(a, paths, func(s string) string {
		s = strings.ReplaceAll(s, PlaceholderFile, paths[0])
		return strings.ReplaceAll(s, PlaceholderFiles, joined)
	})
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Command:    newCommand(a, argv),
		Message:    strings.ReplaceAll(a.Print, PlaceholderFiles, joined),
		HasMessage: a.Print != "",
	}, nil
}

func single(a association.Association, path string) (Invocation, error) {
	argv, err := split(a, []string{path}, func(s string) string {
		s = strings.ReplaceAll(s, PlaceholderFile, path)
		return strings.ReplaceAll(s, PlaceholderFiles, path)
	})
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Command:    newCommand(a, argv),
		Message:    strings.ReplaceAll(a.Print, PlaceholderFile, path),
		HasMessage: a.Print != "",
	}, nil
}

// split produces argv for a's command template.
//
// With [association.SplitNaive] the template is expanded first and the
// result is split on every single space, so paths containing spaces become
// several arguments and repeated spaces produce empty arguments.
//
// With [association.SplitShell] the template is split with shell quoting
// rules first, then each word is expanded on its own. A word that is exactly
// ${files} becomes one argument per path, so paths are never re-split.
func split(a association.Association, paths []string, expand func(string) string) ([]string, error) {
	if a.Split != association.SplitShell {
		return strings.Split(expand(a.Cmd), " "), nil
	}

	words, err := shellwords.Parse(a.Cmd)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSplit, a.Cmd, err)
	}

	argv := make([]string, 0, len(words)+len(paths))
	for _, w := range words {
		if w == PlaceholderFiles {
			argv = append(argv, paths...)
			continue
		}

		argv = append(argv, expand(w))
	}

	return argv, nil
}

func newCommand(a association.Association, argv []string) *execs.Command {
	var name string

	var args []string
	if len(argv) > 0 {
		name, args = argv[0], argv[1:]
	}

	cmd := execs.NewCommand(name, args...)
	cmd.AddEnvVar(a.Env...)

	return cmd
}
