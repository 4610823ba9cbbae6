package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/nepo/pkg/yaml"
)

const errorSource = `pdf:
  cmd: zathura ${files}
  ext: pdf
text:
  cmd: 42
`

func TestError_Error(t *testing.T) {
	t.Parallel()

	cmdPath := yaml.NewPathBuilder().Root().Child("text").Child("cmd").Build()

	tcs := map[string]struct {
		err      *yaml.Error
		want     string
		contains []string
	}{
		"nil error": {
			err:  &yaml.Error{},
			want: "",
		},
		"no location": {
			err:  yaml.NewError(errors.New("boom")),
			want: "boom",
		},
		"path without source": {
			err:  yaml.NewError(errors.New("boom"), yaml.WithPath(cmdPath)),
			want: "$.text.cmd: boom",
		},
		"path with source": {
			err: yaml.NewError(errors.New("expected string"),
				yaml.WithPath(cmdPath),
				yaml.WithSource([]byte(errorSource)),
			),
			contains: []string{"[5:3] expected string at $.text.cmd", "cmd: 42"},
		},
		"path not in source": {
			err: yaml.NewError(errors.New("boom"),
				yaml.WithPath(yaml.NewPathBuilder().Root().Child("missing").Build()),
				yaml.WithSource([]byte(errorSource)),
			),
			want: "$.missing: boom",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			if tc.contains == nil {
				assert.Equal(t, tc.want, got)

				return
			}

			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	src := []byte(errorSource)

	plain := errors.New("plain")
	assert.Same(t, plain, yaml.WrapError(plain, yaml.WithSource(src)))
	require.NoError(t, yaml.WrapError(nil))

	yerr := yaml.NewError(errors.New("boom"))
	wrapped := yaml.WrapError(yerr, yaml.WithSource(src), yaml.WithColor(true))

	var got *yaml.Error
	require.ErrorAs(t, wrapped, &got)
	assert.Equal(t, src, got.Source)
	assert.True(t, got.Color)
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := yaml.NewError(sentinel)

	require.ErrorIs(t, err, sentinel)
}
