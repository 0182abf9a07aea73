package schema

import (
	"fmt"
	"strings"
)

// EnumField validates membership in a fixed set of allowed values.
type EnumField struct {
	rules
	values []any
}

// Enum creates an enum field over the given allowed values. The failure
// message lists every allowed value in the order given.
//
// Default does not re-check membership against the allowed set; a default
// outside the set is returned as-is for a missing input.
func Enum(values ...any) *EnumField {
	f := &EnumField{values: values}
	f.addCheck(func(value any) (any, error) {
		for _, allowed := range f.values {
			if sameValue(value, allowed) {
				return value, nil
			}
		}
		return nil, fail("Value must be one of: " + joinValues(f.values))
	})
	return f
}

func (f *EnumField) Required(msg ...string) *EnumField {
	f.markRequired(msg...)
	return f
}

func (f *EnumField) Optional() *EnumField {
	f.markOptional()
	return f
}

func (f *EnumField) Default(v any) *EnumField {
	f.setDefault(v)
	return f
}

func (f *EnumField) Custom(pred func(any) bool, msg string) *EnumField {
	f.addCustom(pred, msg)
	return f
}

// sameValue reports whether a candidate matches an allowed value.
// Numbers compare by magnitude regardless of Go type, so an allowed
// int matches the float64 a JSON decoder produces for it.
func sameValue(value, allowed any) bool {
	if value == allowed {
		return true
	}
	a, ok := numeric(value)
	if !ok {
		return false
	}
	b, ok := numeric(allowed)
	return ok && a == b
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func joinValues(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}
