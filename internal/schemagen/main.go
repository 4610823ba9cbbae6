// Command schemagen writes the JSON schema for the nepo configuration file.
//
// It is run by go generate from pkg/config.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/macropower/nepo/pkg/association"
)

const modulePath = "github.com/macropower/nepo"

var (
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
	rootDir = flag.String("root", "../..", "Module root, used to read doc comments")
)

func main() {
	flag.Parse()

	out, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("create schema file: %v", err)
	}

	err = os.Chdir(*rootDir)
	if err != nil {
		log.Fatalf("change to module root: %v", err)
	}

	data, err := generate("./pkg")
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	_, err = out.Write(data)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}

	err = out.Close()
	if err != nil {
		log.Fatalf("close schema file: %v", err)
	}
}

// generate reflects the config document. Doc comments are read from
// commentsDir, relative to the module root; empty skips them.
func generate(commentsDir string) ([]byte, error) {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  true,
	}

	if commentsDir != "" {
		err := r.AddGoComments(modulePath, commentsDir)
		if err != nil {
			return nil, fmt.Errorf("read go comments: %w", err)
		}
	}

	s := r.Reflect(map[string]*association.Config{})
	s.Title = "nepo configuration"
	s.Description = "Mapping from association name to association. " +
		"Later entries take priority; the first is the fallback."

	minProperties := uint64(1)
	s.MinProperties = &minProperties

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
