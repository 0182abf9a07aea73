package schema

import (
	"math"
	"strings"
)

// BooleanField validates and coerces boolean values. The coercion rules
// are fixed at construction: booleans pass through, the strings
// true/1/yes/on and false/0/no/off (case-insensitive) coerce, integers
// coerce via truthiness, anything else is a type mismatch.
type BooleanField struct {
	rules
}

// Boolean creates a boolean field.
func Boolean() *BooleanField {
	f := &BooleanField{}
	f.addCheck(func(value any) (any, error) {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(v) {
			case "true", "1", "yes", "on":
				return true, nil
			case "false", "0", "no", "off":
				return false, nil
			}
		case int:
			return v != 0, nil
		case int32:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			// JSON decoding yields float64 for every number; only
			// integral values count as integers here.
			if v == math.Trunc(v) {
				return v != 0, nil
			}
		}
		return nil, fail("Expected boolean, got " + typeName(value))
	})
	return f
}

func (f *BooleanField) Required(msg ...string) *BooleanField {
	f.markRequired(msg...)
	return f
}

func (f *BooleanField) Optional() *BooleanField {
	f.markOptional()
	return f
}

func (f *BooleanField) Default(v any) *BooleanField {
	f.setDefault(v)
	return f
}

func (f *BooleanField) Custom(pred func(any) bool, msg string) *BooleanField {
	f.addCustom(pred, msg)
	return f
}
