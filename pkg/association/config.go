package association

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/macropower/nepo/pkg/execs"
)

// Directives accepted in [Config.MultipleFiles].
const (
	DirectiveMatchOne      = "match-one"
	DirectiveMatchAll      = "match-all"
	DirectiveMatchMajority = "match-majority"
	DirectiveMatchMinority = "match-minority"
	DirectiveIterate       = "iterate"
)

// Config is the configured form of one association, as found in the
// configuration file under the association's name.
type Config struct {
	// Ext lists the file extensions this association applies to. An empty
	// list matches any file that has an extension.
	Ext StringList `json:"ext,omitempty" jsonschema:"title=Extensions"`
	// Mime lists MIME types. It is informational and not used for matching.
	Mime StringList `json:"mime,omitempty" jsonschema:"title=MIME Types"`
	// Mode lists the modes this association is restricted to. An empty list
	// makes it eligible in every mode. A non-empty list excludes it from the
	// default mode.
	Mode StringList `json:"mode,omitempty" jsonschema:"title=Modes"`
	// MultipleFiles holds directives controlling how several files are
	// handled: one of match-one, match-all, match-majority, match-minority,
	// optionally combined with iterate.
	MultipleFiles StringList `json:"multiple_files,omitempty" jsonschema:"title=Multiple Files"`
	// Cmd is the command template. ${file} and ${files} are substituted.
	Cmd string `json:"cmd" jsonschema:"title=Command,required"`
	// Print is an optional message template written before the command runs.
	Print string `json:"print,omitempty" jsonschema:"title=Print"`
	// Split selects how the expanded command line is split into arguments.
	Split string `json:"split,omitempty" jsonschema:"title=Split,enum=naive,enum=shell"`
	// Env contains extra environment variables for the command.
	Env []execs.EnvVar `json:"env,omitempty" jsonschema:"title=Environment Variables"`
}

// StringList is a list of strings that can also be written as a single
// string in YAML.
type StringList []string

// UnmarshalYAML accepts a string, a list of strings, or null.
func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var v any

	err := unmarshal(&v)
	if err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*l = nil

	case string:
		*l = StringList{t}

	case []any:
		out := make(StringList, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("item %d: expected string, got %T", i, item)
			}

			out = append(out, s)
		}

		*l = out

	default:
		return fmt.Errorf("expected string or list of strings, got %T", v)
	}

	return nil
}

// JSONSchema describes the string-or-list form.
func (StringList) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			{Type: "null"},
		},
	}
}
