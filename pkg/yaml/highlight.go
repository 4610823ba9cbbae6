package yaml

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "github-dark"

// Highlighter renders YAML with ANSI syntax highlighting.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter returns a [Highlighter] whose formatter matches profile.
// [termenv.Ascii] produces plain, unstyled output.
func NewHighlighter(profile termenv.Profile, style string) *Highlighter {
	name := "noop"
	switch profile {
	case termenv.TrueColor:
		name = "terminal16m"
	case termenv.ANSI256:
		name = "terminal256"
	case termenv.ANSI:
		name = "terminal8"
	}

	if style == "" {
		style = DefaultStyle
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lexers.Get("YAML")),
		formatter: formatters.Get(name),
		style:     styles.Get(style),
	}
}

func (h *Highlighter) Highlight(src []byte) ([]byte, error) {
	it, err := h.lexer.Tokenise(nil, string(src))
	if err != nil {
		return nil, fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}

	err = h.formatter.Format(buf, h.style, it)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	return buf.Bytes(), nil
}
