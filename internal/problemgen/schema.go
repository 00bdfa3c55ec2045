package problemgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionSchemaURL = "schema://fraction-question.json"

var fractionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"numerator": map[string]any{"type": "integer"},
		"denominator": map[string]any{
			"type": "integer",
			"not":  map[string]any{"const": 0},
		},
	},
	"required":             []any{"numerator", "denominator"},
	"additionalProperties": false,
}

// QuestionSchema is the JSON schema for the question wire format.
var QuestionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"operation": map[string]any{
			"type": "string",
			"enum": []any{"add", "subtract", "simplify"},
		},
		"operand1":       fractionSchema,
		"operand2":       fractionSchema,
		"correct_answer": fractionSchema,
		"options": map[string]any{
			"type":     "array",
			"items":    fractionSchema,
			"minItems": 4,
			"maxItems": 4,
		},
		"correct_index": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": 3,
		},
		"question_text": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required": []any{
		"operation", "operand1", "correct_answer",
		"options", "correct_index", "question_text",
	},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidateJSON checks raw against QuestionSchema.
func ValidateJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := questionSchema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func questionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the map.
		defBytes, err := json.Marshal(QuestionSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(questionSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(questionSchemaURL)
	})
	return compiledSchema, compileErr
}
