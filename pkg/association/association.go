package association

import (
	"fmt"
	"slices"
	"strings"

	"github.com/macropower/nepo/pkg/execs"
)

// ModeDefault is the mode used when none was requested.
const ModeDefault = "default"

// Policy governs how many of the requested paths must match an association's
// extensions for the association to apply.
type Policy int

const (
	// PolicyAll requires every path to match.
	PolicyAll Policy = iota
	// PolicyOne requires at least one path to match.
	PolicyOne
	// PolicyMajority requires at least half of the paths to match.
	PolicyMajority
	// PolicyMinority requires at least a quarter of the paths to match.
	PolicyMinority
)

func (p Policy) String() string {
	switch p {
	case PolicyAll:
		return DirectiveMatchAll
	case PolicyOne:
		return DirectiveMatchOne
	case PolicyMajority:
		return DirectiveMatchMajority
	case PolicyMinority:
		return DirectiveMatchMinority
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy picks the policy from a list of directives. The first
// recognized directive in the fixed order match-one, match-all,
// match-majority, match-minority wins, regardless of where it appears in the
// list. Without any of them the policy is [PolicyAll].
func ParsePolicy(directives []string) Policy {
	switch {
	case slices.Contains(directives, DirectiveMatchOne):
		return PolicyOne
	case slices.Contains(directives, DirectiveMatchAll):
		return PolicyAll
	case slices.Contains(directives, DirectiveMatchMajority):
		return PolicyMajority
	case slices.Contains(directives, DirectiveMatchMinority):
		return PolicyMinority
	default:
		return PolicyAll
	}
}

// Split selects how an expanded command line is turned into arguments.
type Split string

const (
	// SplitNaive splits on every single space. Quoting is not supported.
	SplitNaive Split = "naive"
	// SplitShell splits using shell word rules.
	SplitShell Split = "shell"
)

// ParseSplit returns [SplitShell] for "shell" and [SplitNaive] otherwise.
func ParseSplit(s string) Split {
	if Split(strings.ToLower(strings.TrimSpace(s))) == SplitShell {
		return SplitShell
	}

	return SplitNaive
}

// Association is one resolved rule. It is read-only after [New].
type Association struct {
	Name    string
	Ext     []string
	Mime    []string
	Mode    []string
	Env     []execs.EnvVar
	Cmd     string
	Print   string
	Split   Split
	Policy  Policy
	Iterate bool
}

// New builds an [Association] from its configuration. It never fails:
// unknown directives are ignored.
func New(name string, cfg *Config) Association {
	if cfg == nil {
		cfg = &Config{}
	}

	return Association{
		Name:    name,
		Ext:     normalizeExtensions(cfg.Ext),
		Mime:    slices.Clone([]string(cfg.Mime)),
		Mode:    slices.Clone([]string(cfg.Mode)),
		Env:     slices.Clone(cfg.Env),
		Cmd:     cfg.Cmd,
		Print:   cfg.Print,
		Split:   ParseSplit(cfg.Split),
		Policy:  ParsePolicy(cfg.MultipleFiles),
		Iterate: slices.Contains(cfg.MultipleFiles, DirectiveIterate),
	}
}

func (a Association) String() string {
	return fmt.Sprintf("%s: %s", a.Name, a.Cmd)
}

// normalizeExtensions accepts "pdf", ".pdf" and "*.pdf" and returns them in
// lower case without the prefix, preserving order.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*.")
		ext = strings.TrimPrefix(ext, ".")
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}

		out = append(out, ext)
	}

	return out
}
