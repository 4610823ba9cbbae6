package execs

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// EnvVar represents an environment variable definition.
type EnvVar struct {
	// Name is the environment variable name.
	Name string `json:"name" jsonschema:"title=Name,required"`
	// Value is the environment variable value. References to the caller's
	// environment ($VAR or ${VAR}) are expanded.
	Value string `json:"value,omitempty" jsonschema:"title=Value"`
}

// Command is one fully expanded command line.
type Command struct {
	baseEnv []string
	// Command is the program to execute.
	Command string
	// Args contains the command line arguments.
	Args []string
	// Env contains environment variables layered over the base environment.
	Env []EnvVar
}

// NewCommand creates a new [Command] that uses [os.Environ] as its base
// environment.
func NewCommand(name string, args ...string) *Command {
	return &Command{
		Command: name,
		Args:    args,
		baseEnv: os.Environ(),
	}
}

// SetBaseEnv replaces the environment the command's [EnvVar]s are applied to.
func (c *Command) SetBaseEnv(baseEnv []string) {
	c.baseEnv = slices.Clone(baseEnv)
}

// AddEnvVar adds environment variables.
func (c *Command) AddEnvVar(envVars ...EnvVar) {
	c.Env = append(c.Env, envVars...)
}

// GetEnv returns the environment for the child process. It returns nil when
// no variables are configured, in which case the child inherits the
// caller's environment unchanged.
func (c *Command) GetEnv() []string {
	if len(c.Env) == 0 {
		return nil
	}

	lookup := func(key string) string {
		for _, kv := range slices.Backward(c.baseEnv) {
			if k, v, ok := strings.Cut(kv, "="); ok && k == key {
				return v
			}
		}

		return ""
	}

	env := slices.Clone(c.baseEnv)
	for _, ev := range c.Env {
		if ev.Name == "" {
			continue
		}

		// Later entries win for duplicate keys.
		env = append(env, ev.Name+"="+os.Expand(ev.Value, lookup))
	}

	return env
}

// Argv returns the command name followed by its arguments.
func (c *Command) Argv() []string {
	return append([]string{c.Command}, c.Args...)
}

func (c *Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// GoString is used by %#v, mostly in test failures.
func (c *Command) GoString() string {
	return fmt.Sprintf("execs.Command%q", c.Argv())
}
