package lulu

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/create_job.schema.json
var createJobSchemaJSON string

var createJobSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(createJobSchemaJSON))
})

// SchemaViolation is a single problem found in a document.
type SchemaViolation struct {
	Field       string
	Description string
}

// SchemaError lists every violation found while checking a document.
type SchemaError struct {
	Violations []SchemaViolation
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Description
	}
	return "create print job input is invalid: " + strings.Join(msgs, "; ")
}

// DecodeCreateJobInput reads a simplified create print job document and
// checks its structure before decoding it.
func DecodeCreateJobInput(r io.Reader) (*CreateJobInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading create print job input: %w", err)
	}

	schema, err := createJobSchema()
	if err != nil {
		return nil, fmt.Errorf("loading create print job schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validating create print job input: %w", err)
	}

	if !result.Valid() {
		schemaErr := &SchemaError{}
		for _, desc := range result.Errors() {
			schemaErr.Violations = append(schemaErr.Violations, SchemaViolation{
				Field:       desc.Field(),
				Description: desc.Description(),
			})
		}
		return nil, schemaErr
	}

	var in CreateJobInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding create print job input: %w", err)
	}

	return &in, nil
}
