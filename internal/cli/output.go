package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/yaml"
)

type debugAssociation struct {
	Name    string   `yaml:"name"`
	Ext     []string `yaml:"ext,omitempty"`
	Mime    []string `yaml:"mime,omitempty"`
	Mode    []string `yaml:"mode,omitempty"`
	Policy  string   `yaml:"policy"`
	Iterate bool     `yaml:"iterate,omitempty"`
	Cmd     string   `yaml:"cmd"`
	Print   string   `yaml:"print,omitempty"`
	Split   string   `yaml:"split"`
}

type debugMatch struct {
	Association string   `yaml:"association"`
	Paths       []string `yaml:"paths"`
	Fallback    bool     `yaml:"fallback"`
}

type debugDump struct {
	Mode         string             `yaml:"mode"`
	Associations []debugAssociation `yaml:"associations"`
	Match        debugMatch         `yaml:"match"`
}

func writeDebug(w io.Writer, mode string, as []association.Association, m association.Match) error {
	d := debugDump{
		Mode:         mode,
		Associations: make([]debugAssociation, 0, len(as)),
		Match: debugMatch{
			Association: m.Association.Name,
			Paths:       m.Paths,
			Fallback:    m.Fallback,
		},
	}

	for _, a := range as {
		d.Associations = append(d.Associations, debugAssociation{
			Name:    a.Name,
			Ext:     a.Ext,
			Mime:    a.Mime,
			Mode:    a.Mode,
			Policy:  a.Policy.String(),
			Iterate: a.Iterate,
			Cmd:     a.Cmd,
			Print:   a.Print,
			Split:   string(a.Split),
		})
	}

	b, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal debug output: %w", err)
	}

	return writeYAML(w, b)
}

// writeYAML writes b to w, highlighted when w is a terminal.
func writeYAML(w io.Writer, b []byte) error {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		profile = termenv.NewOutput(f).EnvColorProfile()
	}

	out, err := yaml.NewHighlighter(profile, "").Highlight(b)
	if err != nil {
		out = b
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: File descriptors fit in an int.
}
