package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SupportedSchemaVersion is the catalog format this build reads. Catalogs
// with the same major version and an equal or older minor version are
// accepted.
const SupportedSchemaVersion = "v1.0.0"

const catalogSchemaURL = "schema://speakup-catalog.json"

// catalogSchema is the JSON Schema every catalog document must satisfy.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"schema_version": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+(\.[0-9]+){0,2}$`,
		},
		"title": map[string]any{"type": "string"},
		"vocabulary": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":      map[string]any{"type": "integer", "minimum": 1},
					"present": map[string]any{"type": "string", "minLength": 1},
					"past":    map[string]any{"type": "string", "minLength": 1},
					"korean":  map[string]any{"type": "string"},
				},
				"required":             []any{"id", "present", "past", "korean"},
				"additionalProperties": false,
			},
		},
		"sentences": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":     map[string]any{"type": "integer", "minimum": 1},
					"korean": map[string]any{"type": "string"},
					"scrambled": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
					"answer": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "korean", "scrambled", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"schema_version", "vocabulary", "sentences"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON document, not Go literals.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(catalogSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw catalog JSON against the catalog schema.
func validateDocument(raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
