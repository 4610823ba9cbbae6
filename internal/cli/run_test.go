package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/nepo/internal/cli"
	"github.com/macropower/nepo/pkg/config"
)

const testConfig = `any:
  cmd: open ${files}
images:
  ext: [png, jpg]
  multiple_files: match-majority
  cmd: imv ${files}
pdf:
  ext: pdf
  print: opening ${file}
  multiple_files: [match-one, iterate]
  cmd: zathura ${file}
markdown:
  ext: md
  mode: view
  cmd: glow ${file}
edit:
  mode: edit
  multiple_files: match-one
  cmd: vim ${files}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nepo.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, testConfig)

	tcs := map[string]struct {
		args []string
		want string
	}{
		"majority of images": {
			args: []string{"a.png", "b.jpg", "c.txt"},
			want: "imv a.png b.jpg\n",
		},
		"pdf iterates with print": {
			args: []string{"a.pdf", "b.png", "c.pdf"},
			want: "\nopening a.pdf\nzathura a.pdf\n\nopening c.pdf\nzathura c.pdf\n",
		},
		"view mode": {
			args: []string{"-v", "a.md"},
			want: "glow a.md\n",
		},
		"association without modes applies in view mode": {
			args: []string{"-v", "a.pdf"},
			want: "\nopening a.pdf\nzathura a.pdf\n",
		},
		"mode restricted association skipped in default mode": {
			args: []string{"a.md"},
			want: "open a.md\n",
		},
		"edit mode": {
			args: []string{"-e", "a.pdf", "b.txt"},
			want: "vim a.pdf b.txt\n",
		},
		"mode flag wins over view": {
			args: []string{"-v", "-m", "edit", "a.pdf"},
			want: "vim a.pdf\n",
		},
		"fallback": {
			args: []string{"README", "x.txt"},
			want: "open README x.txt\n",
		},
		"unknown mode falls back": {
			args: []string{"-m", "print", "a.png"},
			want: "imv a.png\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"--config", cfgPath, "-n"}, tc.args...)

			got, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRun_Debug(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, testConfig)

	got, err := execute(t, "--config", cfgPath, "-n", "-d", "README")
	require.NoError(t, err)

	assert.Contains(t, got, "mode: default")
	assert.Contains(t, got, "associations:")
	assert.Contains(t, got, "name: images")
	assert.Contains(t, got, "policy: match-majority")
	assert.Contains(t, got, "association: any")
	assert.Contains(t, got, "fallback: true")
	assert.Contains(t, got, "open README\n")
}

func TestRun_ShowConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, testConfig)

	got, err := execute(t, "--config", cfgPath, "--show-config")
	require.NoError(t, err)

	cfg, err := config.NewLoaderFromBytes([]byte(got)).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"any", "images", "pdf", "markdown", "edit"}, cfg.Names())
}

func TestRun_WriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nepo", "config.yaml")

	_, err := execute(t, "--config", path, "--write-config")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML(), b)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), config.SchemaFile))
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		config   string
		args     []string
		contains string
		exitCode int
	}{
		"no paths": {
			config:   testConfig,
			contains: "requires at least one path",
			exitCode: 1,
		},
		"empty config": {
			config:   "# nothing\n",
			args:     []string{"a"},
			contains: config.ErrNoAssociations.Error(),
			exitCode: 1,
		},
		"invalid config": {
			config:   "a:\n  ext: pdf\n",
			args:     []string{"a.pdf"},
			contains: "$.a",
			exitCode: 1,
		},
		"child exit status": {
			config:   "a:\n  cmd: sh -c \"exit 3\"\n  split: shell\n",
			args:     []string{"x"},
			contains: "exit status 3",
			exitCode: 3,
		},
		"missing program": {
			config:   "a:\n  cmd: nepo-test-missing-program ${file}\n",
			args:     []string{"x"},
			contains: "failed to execute command",
			exitCode: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"--config", writeConfig(t, tc.config)}, tc.args...)

			_, err := execute(t, args...)
			require.ErrorContains(t, err, tc.contains)
			assert.Equal(t, tc.exitCode, cli.ExitCode(err))
		})
	}
}

func TestRun_MissingConfig(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yml"), "a")
	require.ErrorIs(t, err, os.ErrNotExist)
}
