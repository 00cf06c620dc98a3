package jsonfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://tracker.local/taskfile.schema.json"

//go:embed taskfile.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// SchemaError lists every place a document breaks the task file schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid task document: " + strings.Join(e.Problems, "; ")
}

// ParseTaskFile checks data against the task file schema and decodes it.
func ParseTaskFile(data []byte) (TaskFile, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile task file schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode task document: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, err
		}
		serr := &SchemaError{}
		collectSchemaProblems(serr, ve)
		return nil, serr
	}

	var file TaskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode task document: %w", err)
	}
	return file, nil
}

func collectSchemaProblems(serr *SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		serr.Problems = append(serr.Problems, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaProblems(serr, cause)
	}
}
