package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// AnalysisSchema is the shape a proposal analysis reply must have.
const AnalysisSchema = `{
  "type": "object",
  "required": ["overallScore", "criteriaAnalysis", "aiSummary", "strengths", "weaknesses"],
  "properties": {
    "overallScore": {"type": "number", "minimum": 0, "maximum": 100},
    "personalFeedback": {"type": "string"},
    "aiSummary": {"type": "string"},
    "criteriaAnalysis": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["criteriaName", "score"],
        "properties": {
          "criteriaName": {"type": "string"},
          "score": {"type": "number", "minimum": 0, "maximum": 10},
          "feedback": {"type": "string"},
          "evidence": {"type": "string"}
        }
      }
    },
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "extractedData": {"type": ["object", "null"]}
  }
}`

// ComparisonSchema is the shape a comparison reply must have.
const ComparisonSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["proposalIndex", "rank", "isRecommended", "reasoning"],
    "properties": {
      "proposalIndex": {"type": "integer", "minimum": 0},
      "rank": {"type": "integer", "minimum": 1},
      "isRecommended": {"type": "boolean"},
      "reasoning": {"type": "string"},
      "comparisonNotes": {"type": "string"},
      "riskFactors": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

// SchemaValidationError lists every field that failed validation.
type SchemaValidationError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

var compiledSchemas sync.Map // schema source -> *gojsonschema.Schema

// ValidateJSONSchema checks document against the JSON schema in schemaSource.
func ValidateJSONSchema(schemaSource string, document []byte) error {
	schema, err := loadSchema(schemaSource)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &SchemaValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

func loadSchema(source string) (*gojsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(source); ok {
		return cached.(*gojsonschema.Schema), nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	compiledSchemas.Store(source, schema)
	return schema, nil
}
