package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder returns a builder for YAML paths such as "$.name.cmd".
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a YAML error that knows where it happened. Either Token or Path
// locates it; when only Path is set, Source is parsed to find the token.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
	Color  bool
}

type ErrorOpt func(e *Error)

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in the annotated source.
func WithColor(color bool) ErrorOpt {
	return func(e *Error) {
		e.Color = color
	}
}

// WrapError applies opts to err if it is an [*Error], and returns any other
// error unchanged.
func WrapError(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range opts {
		opt(yamlErr)
	}

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	tk := e.Token
	if tk == nil && e.Path != nil && e.Source != nil {
		tk = tokenAtPath(e.Source, e.Path)
	}

	if tk == nil {
		if e.Path != nil {
			return fmt.Sprintf("%s: %v", e.Path.String(), e.Err)
		}

		return e.Err.Error()
	}

	msg := fmt.Sprintf("[%d:%d] %v", tk.Position.Line, tk.Position.Column, e.Err)
	if e.Path != nil {
		msg = fmt.Sprintf("%s at %s", msg, e.Path.String())
	}

	pp := printer.Printer{LineNumber: true}
	src := pp.PrintErrorToken(tk, e.Color)
	if strings.TrimSpace(src) == "" {
		return msg
	}

	return msg + ":\n" + src
}

// tokenAtPath finds the token for path in source. Mapping values resolve to
// their key, since that is what a reader looks for.
func tokenAtPath(source []byte, path *yaml.Path) *token.Token {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil
	}

	node, err := path.FilterFile(file)
	if err != nil || node == nil {
		return nil
	}

	if tk := keyToken(file, path); tk != nil {
		return tk
	}

	return node.GetToken()
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	s := path.String()

	dot := strings.LastIndex(s, ".")
	if dot <= 0 || dot < strings.LastIndex(s, "[") {
		return nil
	}

	parent, err := yaml.PathString(s[:dot])
	if err != nil {
		return nil
	}

	node, err := parent.FilterFile(file)
	if err != nil {
		return nil
	}

	name := strings.Trim(s[dot+1:], `'"`)

	for _, mv := range mappingValues(node) {
		if mv.Key.GetToken().Value == name {
			return mv.Key.GetToken()
		}
	}

	return nil
}

// mappingValues returns the key/value pairs of a mapping node. A mapping with
// a single entry may be parsed as a bare [*ast.MappingValueNode].
func mappingValues(node ast.Node) []*ast.MappingValueNode {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}
	}

	return nil
}

// MappingValues returns the top-level key/value pairs of doc in document
// order. A nil or null body yields no pairs; any other non-mapping body is an
// error.
func MappingValues(doc *ast.DocumentNode) ([]*ast.MappingValueNode, error) {
	if doc == nil || doc.Body == nil {
		return nil, nil
	}

	switch doc.Body.(type) {
	case *ast.MappingNode, *ast.MappingValueNode:
		return mappingValues(doc.Body), nil
	case *ast.NullNode, *ast.CommentGroupNode:
		return nil, nil
	}

	return nil, NewError(
		fmt.Errorf("expected a mapping, got %s", doc.Body.Type()),
		WithToken(doc.Body.GetToken()),
	)
}
