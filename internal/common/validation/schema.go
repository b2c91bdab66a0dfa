package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ActionRequestSchema describes the body the dialogue manager posts to the
// webhook. Unknown fields are allowed; the manager adds fields across versions.
const ActionRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["next_action", "tracker"],
  "properties": {
    "next_action": {"type": "string", "minLength": 1},
    "sender_id": {"type": ["string", "null"]},
    "version": {"type": ["string", "null"]},
    "domain": {"type": ["object", "null"]},
    "tracker": {
      "type": "object",
      "properties": {
        "sender_id": {"type": ["string", "null"]},
        "slots": {"type": ["object", "null"]},
        "active_loop": {"type": ["object", "null"]},
        "latest_message": {
          "type": ["object", "null"],
          "properties": {
            "text": {"type": ["string", "null"]},
            "intent": {
              "type": ["object", "null"],
              "properties": {
                "name": {"type": ["string", "null"]},
                "confidence": {"type": ["number", "null"]}
              }
            },
            "entities": {
              "type": ["array", "null"],
              "items": {
                "type": "object",
                "required": ["entity"],
                "properties": {
                  "entity": {"type": "string"},
                  "start": {"type": ["integer", "null"]},
                  "end": {"type": ["integer", "null"]}
                }
              }
            }
          }
        }
      }
    }
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// SchemaValidator validates JSON documents against one compiled schema.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

func NewSchemaValidator(schemaJSON string) (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// NewRequestValidator compiles ActionRequestSchema.
func NewRequestValidator() (*SchemaValidator, error) {
	return NewSchemaValidator(ActionRequestSchema)
}

// ValidateBytes validates a raw JSON document. Unparseable input is reported
// as a single error on the root field.
func (v *SchemaValidator) ValidateBytes(body []byte) *ValidationResult {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "INVALID_JSON",
		}}}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
