package execs_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/nepo/pkg/execs"
)

func TestNewCommand(t *testing.T) {
	t.Parallel()

	c := execs.NewCommand("xpdf", "a.pdf", "b.pdf")
	assert.Equal(t, "xpdf", c.Command)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, c.Args)
	assert.Equal(t, []string{"xpdf", "a.pdf", "b.pdf"}, c.Argv())
	assert.Equal(t, "xpdf a.pdf b.pdf", c.String())
	assert.Empty(t, c.Env)
}

func TestCommand_GetEnv(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		baseEnv []string
		env     []execs.EnvVar
		want    []string
	}{
		"no variables inherits caller environment": {
			baseEnv: []string{"PATH=/usr/bin"},
			want:    nil,
		},
		"static value appended": {
			baseEnv: []string{"PATH=/usr/bin"},
			env:     []execs.EnvVar{{Name: "PAGER", Value: "less"}},
			want:    []string{"PATH=/usr/bin", "PAGER=less"},
		},
		"value expanded from base environment": {
			baseEnv: []string{"HOME=/home/test", "HOME=/home/override"},
			env:     []execs.EnvVar{{Name: "DATA", Value: "${HOME}/data"}},
			want:    []string{"HOME=/home/test", "HOME=/home/override", "DATA=/home/override/data"},
		},
		"unknown reference expands to empty": {
			baseEnv: []string{},
			env:     []execs.EnvVar{{Name: "X", Value: "$MISSING-y"}},
			want:    []string{"X=-y"},
		},
		"unnamed variables are skipped": {
			baseEnv: []string{"A=1"},
			env:     []execs.EnvVar{{Value: "ignored"}, {Name: "B", Value: "2"}},
			want:    []string{"A=1", "B=2"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := execs.NewCommand("true")
			c.SetBaseEnv(tc.baseEnv)
			c.AddEnvVar(tc.env...)

			assert.Equal(t, tc.want, c.GetEnv())
		})
	}
}

func TestLauncher_Launch(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Run("forwards streams", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer

		l := execs.NewLauncher(execs.Streams{
			In:  strings.NewReader("from stdin"),
			Out: &stdout,
			Err: &stderr,
		})

		err := l.Launch(t.Context(), execs.NewCommand("sh", "-c", "cat; echo oops >&2"))
		require.NoError(t, err)
		assert.Equal(t, "from stdin", stdout.String())
		assert.Equal(t, "oops\n", stderr.String())
	})

	t.Run("applies environment", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer

		l := execs.NewLauncher(execs.Streams{Out: &stdout})

		c := execs.NewCommand("sh", "-c", `printf %s "$NEPO_TEST"`)
		c.AddEnvVar(execs.EnvVar{Name: "NEPO_TEST", Value: "hello"})

		require.NoError(t, l.Launch(t.Context(), c))
		assert.Equal(t, "hello", stdout.String())
	})

	t.Run("non-zero exit is an abnormal exit", func(t *testing.T) {
		t.Parallel()

		l := execs.NewLauncher(execs.Streams{})

		err := l.Launch(t.Context(), execs.NewCommand("sh", "-c", "exit 3"))
		require.ErrorIs(t, err, execs.ErrExit)
		assert.NotErrorIs(t, err, execs.ErrWait)
		assert.NotErrorIs(t, err, execs.ErrSpawn)

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 3, exitErr.ExitCode())
	})

	t.Run("cancelled context does not stop the child", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer

		l := execs.NewLauncher(execs.Streams{Out: &stdout})

		ctx, cancel := context.WithCancel(t.Context())
		timer := time.AfterFunc(50*time.Millisecond, cancel)
		t.Cleanup(func() { timer.Stop() })

		start := time.Now()
		err := l.Launch(ctx, execs.NewCommand("sh", "-c", "sleep 0.4; printf done"))
		require.NoError(t, err)
		require.ErrorIs(t, ctx.Err(), context.Canceled)
		assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
		assert.Equal(t, "done", stdout.String())
	})

	t.Run("missing program is a spawn failure", func(t *testing.T) {
		t.Parallel()

		l := execs.NewLauncher(execs.Streams{})

		err := l.Launch(t.Context(), execs.NewCommand("nepo-definitely-missing-program"))
		require.ErrorIs(t, err, execs.ErrSpawn)
		assert.NotErrorIs(t, err, execs.ErrWait)
		assert.NotErrorIs(t, err, execs.ErrExit)
		assert.Contains(t, err.Error(), "nepo-definitely-missing-program")
	})

	t.Run("empty command", func(t *testing.T) {
		t.Parallel()

		l := execs.NewLauncher(execs.Streams{})

		err := l.Launch(context.Background(), &execs.Command{})
		require.ErrorIs(t, err, execs.ErrEmptyCommand)
		assert.False(t, errors.Is(err, execs.ErrSpawn))
	})
}
