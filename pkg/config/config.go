package config

import (
	"errors"
	"fmt"

	_ "embed"

	"github.com/macropower/nepo/pkg/association"
	"github.com/macropower/nepo/pkg/yaml"
)

//go:generate go run ../../internal/schemagen/main.go -o config.v1.json

// SchemaFile is the name of the JSON schema written next to the config file.
const SchemaFile = "config.v1.json"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed config.v1.json
	schemaJSON []byte

	DefaultValidator = yaml.MustNewValidator("/"+SchemaFile, schemaJSON)

	ErrNoAssociations = errors.New("no associations configured")
	ErrDuplicateName  = errors.New("duplicate association name")
)

// Entry is a named association config.
type Entry struct {
	Config *association.Config
	Name   string
}

// Config is a loaded configuration file. Entries are in document order.
type Config struct {
	Entries []Entry
}

// Associations builds the associations in document order.
func (c *Config) Associations() []association.Association {
	as := make([]association.Association, 0, len(c.Entries))
	for _, e := range c.Entries {
		as = append(as, association.New(e.Name, e.Config))
	}

	return as
}

// Names returns the association names in document order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		names = append(names, e.Name)
	}

	return names
}

// MarshalYAML encodes the config as a mapping in document order.
func (c *Config) MarshalYAML() ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(c.Entries))
	for _, e := range c.Entries {
		ms = append(ms, yaml.MapItem{Key: e.Name, Value: e.Config})
	}

	b, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b, nil
}

// DefaultConfigYAML returns the embedded default configuration.
func DefaultConfigYAML() []byte {
	return defaultConfigYAML
}

// SchemaJSON returns the embedded JSON schema.
func SchemaJSON() []byte {
	return schemaJSON
}
