package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Decoder decodes YAML documents. Duplicate mapping keys are an error.
type Decoder struct {
	d *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r),
	}
}

func (d *Decoder) Decode(v any) error {
	return convertError(d.d.Decode(v))
}

// Parse parses data into an AST.
func Parse(data []byte) (*ast.File, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, convertError(err)
	}

	return file, nil
}

// NodeToValue decodes a single AST node into v.
func NodeToValue(node ast.Node, v any) error {
	err := yaml.NodeToValue(node, v)
	if err == nil {
		return nil
	}

	converted := convertError(err)

	var yamlErr *Error
	if errors.As(converted, &yamlErr) {
		if yamlErr.Token == nil {
			yamlErr.Token = node.GetToken()
		}

		return yamlErr
	}

	return &Error{Err: err, Token: node.GetToken()}
}

// convertError turns goccy errors into [*Error]s carrying the token where
// the error occurred.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}
