package importer

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// ShapeError reports a document whose structure does not match its JSON
// schema: missing required fields or values of the wrong type. Domain rules
// (known grades, positive credits) are checked later by the Validate
// functions.
type ShapeError struct {
	Document string
	Problems []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s does not match its schema: %s", e.Document, strings.Join(e.Problems, "; "))
}

var compiledSchemas sync.Map

func loadSchema(name string) (*gojsonschema.Schema, error) {
	if s, ok := compiledSchemas.Load(name); ok {
		return s.(*gojsonschema.Schema), nil
	}
	raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	actual, _ := compiledSchemas.LoadOrStore(name, schema)
	return actual.(*gojsonschema.Schema), nil
}

// checkShape validates a raw document against the named embedded schema.
func checkShape(name, document string, data []byte) error {
	schema, err := loadSchema(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating %s: %w", document, err)
	}
	if result.Valid() {
		return nil
	}
	shapeErr := &ShapeError{Document: document}
	for _, desc := range result.Errors() {
		shapeErr.Problems = append(shapeErr.Problems, desc.String())
	}
	return shapeErr
}
