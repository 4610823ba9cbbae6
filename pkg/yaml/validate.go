package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validator checks decoded YAML against a JSON schema.
type Validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var doc any

	err := json.Unmarshal(schemaData, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{
		schema:  schema,
		printer: message.NewPrinter(language.English),
	}, nil
}

func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate returns nil if data satisfies the schema. Otherwise it returns an
// [*Error] whose Path points at the deepest failing location, with that
// location's message.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	leaf := deepestCause(verr)

	return &Error{
		Err:  errors.New(leaf.ErrorKind.LocalizedString(v.printer)),
		Path: pathFromLocation(leaf.InstanceLocation),
	}
}

// deepestCause follows the causes of err down to the leaf with the longest
// instance location. The first such leaf wins ties.
func deepestCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	var best *jsonschema.ValidationError
	for _, cause := range err.Causes {
		c := deepestCause(cause)
		if best == nil || len(c.InstanceLocation) > len(best.InstanceLocation) {
			best = c
		}
	}

	if best == nil {
		return err
	}

	return best
}

func pathFromLocation(location []string) *yaml.Path {
	b := NewPathBuilder().Root()

	for _, part := range location {
		if i, err := strconv.ParseUint(part, 10, 64); err == nil {
			b = b.Index(uint(i))
		} else {
			b = b.Child(part)
		}
	}

	return b.Build()
}
