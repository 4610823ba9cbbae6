package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/yaml"
)

// Validator validates decoded configuration data.
type Validator interface {
	Validate(data any) error
}

type Loader struct {
	validator Validator
	data      []byte
	color     bool
}

type LoaderOpt func(*Loader)

// WithValidator replaces [DefaultValidator]. A nil validator disables
// schema validation.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// WithColor colors the source excerpts in returned errors.
func WithColor(color bool) LoaderOpt {
	return func(l *Loader) {
		l.color = color
	}
}

func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		data:      data,
		validator: DefaultValidator,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the document against the schema without loading it.
func (l *Loader) Validate() error {
	var v any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&v)
	if errors.Is(err, io.EOF) {
		return ErrNoAssociations
	}

	if err != nil {
		return l.wrap(err)
	}

	if v == nil {
		return ErrNoAssociations
	}

	if l.validator == nil {
		return nil
	}

	return l.wrap(l.validator.Validate(v))
}

// Load decodes the document into a [Config], keeping the order of names.
func (l *Loader) Load() (*Config, error) {
	file, err := yaml.Parse(l.data)
	if err != nil {
		return nil, l.wrap(err)
	}

	if len(file.Docs) == 0 {
		return nil, ErrNoAssociations
	}

	if len(file.Docs) > 1 {
		slog.Debug("ignoring extra documents in config",
			slog.Int("documents", len(file.Docs)),
		)
	}

	values, err := yaml.MappingValues(file.Docs[0])
	if err != nil {
		return nil, l.wrap(err)
	}

	if len(values) == 0 {
		return nil, ErrNoAssociations
	}

	c := &Config{Entries: make([]Entry, 0, len(values))}
	seen := make(map[string]bool, len(values))

	for _, mv := range values {
		tk := mv.Key.GetToken()
		name := tk.Value

		if seen[name] {
			return nil, l.wrap(yaml.NewError(
				fmt.Errorf("%w: %q", ErrDuplicateName, name),
				yaml.WithToken(tk),
			))
		}

		seen[name] = true

		ac := &association.Config{}

		err := yaml.NodeToValue(mv.Value, ac)
		if err != nil {
			return nil, l.wrap(err)
		}

		c.Entries = append(c.Entries, Entry{Name: name, Config: ac})
	}

	return c, nil
}

func (l *Loader) wrap(err error) error {
	return yaml.WrapError(err, yaml.WithSource(l.data), yaml.WithColor(l.color))
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
