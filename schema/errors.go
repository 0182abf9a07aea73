package schema

import (
	"errors"
	"fmt"
	"strings"
)

// rootField marks an error raised by a check that does not know the key of
// the field it belongs to. Field.Validate rewrites it to the real key.
const rootField = "root"

// Error represents a single field-scoped validation error.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors represents a collection of validation errors. It is never empty
// when returned from a validation call.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Message
	}

	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) Add(err Error) {
	*e = append(*e, err)
}

func (e Errors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (e Errors) Get(field string) []string {
	var messages []string
	for _, err := range e {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (e Errors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range e {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Extract returns the Errors wrapped in err, or nil if err does not carry
// validation errors.
func Extract(err error) Errors {
	if err == nil {
		return nil
	}

	var verr Errors
	if errors.As(err, &verr) {
		return verr
	}

	return nil
}

// IsValidationError reports whether err carries validation errors.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var verr Errors
	return errors.As(err, &verr)
}

// fail builds a single-record validation error scoped to the root sentinel.
// Checks use it because they run without access to the enclosing field key.
func fail(message string) Errors {
	return Errors{{Field: rootField, Message: message}}
}

// typeName returns the wire-level name of a decoded JSON value for use in
// type-mismatch messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
