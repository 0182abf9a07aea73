package schema

import "sort"

// Schema is a named collection of fields describing one record shape. It
// is the validation entry point for a whole request body.
//
// Build a schema once at startup and reuse it: the fluent field builders
// mutate in place, so construction must happen before the schema is shared
// across goroutines. Validate itself holds no per-call state and is safe
// for concurrent use.
type Schema struct {
	fields map[string]Field
	keys   []string
}

// New creates a schema over the given fields. Keys are validated in
// sorted order so error ordering is deterministic.
func New(fields map[string]Field) *Schema {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Schema{fields: fields, keys: keys}
}

// Validate checks data against every declared field and returns the
// validated record. Failures aggregate across fields: every failing key
// contributes its records, while each individual field stays fail-fast
// internally.
//
// On success the result contains every declared key, including an explicit
// nil for unset optional fields, with defaults, coercions, and transforms
// applied.
func (s *Schema) Validate(data any) (map[string]any, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, Errors{{Field: rootField, Message: "Expected object, got " + typeName(data)}}
	}

	validated := make(map[string]any, len(s.keys))
	var errs Errors

	for _, key := range s.keys {
		v, err := s.fields[key].Validate(obj[key], key)
		if err != nil {
			if nested := Extract(err); len(nested) > 0 {
				errs = append(errs, nested...)
				continue
			}
			return nil, err
		}
		validated[key] = v
	}

	if !errs.IsEmpty() {
		return nil, errs
	}

	return validated, nil
}

// SafeValidate never returns a raw error: it reports success with the
// validated record, or failure with the same records Validate would have
// returned.
func (s *Schema) SafeValidate(data any) (bool, map[string]any, Errors) {
	validated, err := s.Validate(data)
	if err != nil {
		return false, nil, Extract(err)
	}
	return true, validated, nil
}
