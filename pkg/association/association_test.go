package association_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/execs"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		directives []string
		want       association.Policy
	}{
		"no directives defaults to all": {
			directives: nil,
			want:       association.PolicyAll,
		},
		"iterate alone defaults to all": {
			directives: []string{"iterate"},
			want:       association.PolicyAll,
		},
		"unknown directives are ignored": {
			directives: []string{"match-some", "bogus"},
			want:       association.PolicyAll,
		},
		"match-one": {
			directives: []string{"match-one"},
			want:       association.PolicyOne,
		},
		"match-majority": {
			directives: []string{"match-majority"},
			want:       association.PolicyMajority,
		},
		"match-minority": {
			directives: []string{"match-minority"},
			want:       association.PolicyMinority,
		},
		"match-one wins over everything regardless of position": {
			directives: []string{"match-minority", "match-majority", "match-all", "match-one"},
			want:       association.PolicyOne,
		},
		"match-all wins over majority and minority": {
			directives: []string{"match-minority", "match-majority", "match-all"},
			want:       association.PolicyAll,
		},
		"match-majority wins over minority": {
			directives: []string{"match-minority", "iterate", "match-majority"},
			want:       association.PolicyMajority,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, association.ParsePolicy(tc.directives))
		})
	}
}

func TestPolicy_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "match-all", association.PolicyAll.String())
	assert.Equal(t, "match-one", association.PolicyOne.String())
	assert.Equal(t, "match-majority", association.PolicyMajority.String())
	assert.Equal(t, "match-minority", association.PolicyMinority.String())
	assert.Equal(t, "Policy(42)", association.Policy(42).String())
}

func TestParseSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, association.SplitNaive, association.ParseSplit(""))
	assert.Equal(t, association.SplitNaive, association.ParseSplit("naive"))
	assert.Equal(t, association.SplitNaive, association.ParseSplit("unknown"))
	assert.Equal(t, association.SplitShell, association.ParseSplit("shell"))
	assert.Equal(t, association.SplitShell, association.ParseSplit(" Shell "))
}

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := &association.Config{
		Ext:           association.StringList{"PDF", ".ps", "*.DjVu", "", "  "},
		Mime:          association.StringList{"application/pdf"},
		Mode:          association.StringList{"view"},
		MultipleFiles: association.StringList{"iterate", "match-one"},
		Cmd:           "zathura ${file}",
		Print:         "opening ${file}",
		Split:         "shell",
		Env:           []execs.EnvVar{{Name: "FOO", Value: "bar"}},
	}

	a := association.New("pdf", cfg)

	assert.Equal(t, "pdf", a.Name)
	assert.Equal(t, []string{"pdf", "ps", "djvu"}, a.Ext)
	assert.Equal(t, []string{"application/pdf"}, a.Mime)
	assert.Equal(t, []string{"view"}, a.Mode)
	assert.Equal(t, association.PolicyOne, a.Policy)
	assert.True(t, a.Iterate)
	assert.Equal(t, "zathura ${file}", a.Cmd)
	assert.Equal(t, "opening ${file}", a.Print)
	assert.Equal(t, association.SplitShell, a.Split)
	assert.Equal(t, []execs.EnvVar{{Name: "FOO", Value: "bar"}}, a.Env)
	assert.Equal(t, "pdf: zathura ${file}", a.String())
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	a := association.New("default", &association.Config{Cmd: "xdg-open ${files}"})

	assert.Empty(t, a.Ext)
	assert.Empty(t, a.Mime)
	assert.Empty(t, a.Mode)
	assert.Equal(t, association.PolicyAll, a.Policy)
	assert.False(t, a.Iterate)
	assert.Empty(t, a.Print)
	assert.Equal(t, association.SplitNaive, a.Split)

	// A nil config is tolerated.
	empty := association.New("empty", nil)
	assert.Equal(t, "empty", empty.Name)
	assert.Empty(t, empty.Cmd)
}

func TestNew_DoesNotShareSlices(t *testing.T) {
	t.Parallel()

	cfg := &association.Config{
		Ext:  association.StringList{"txt"},
		Mode: association.StringList{"edit"},
		Cmd:  "vi ${file}",
	}

	a := association.New("text", cfg)
	cfg.Ext[0] = "md"
	cfg.Mode[0] = "view"

	require.Len(t, a.Ext, 1)
	assert.Equal(t, "txt", a.Ext[0])
	assert.Equal(t, "edit", a.Mode[0])
}
