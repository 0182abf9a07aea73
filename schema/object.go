package schema

import "sort"

// ObjectField validates a nested mapping against a field set. Unlike
// ArrayField, it aggregates failures across its keys: one bad key does not
// stop the others from being checked.
type ObjectField struct {
	rules
	fields map[string]Field
	keys   []string
}

// Object creates an object field over the given nested fields. Keys are
// validated in sorted order so error ordering is deterministic.
func Object(fields map[string]Field) *ObjectField {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &ObjectField{fields: fields, keys: keys}
}

func (f *ObjectField) Required(msg ...string) *ObjectField {
	f.markRequired(msg...)
	return f
}

func (f *ObjectField) Optional() *ObjectField {
	f.markOptional()
	return f
}

func (f *ObjectField) Default(v any) *ObjectField {
	f.setDefault(v)
	return f
}

// Validate resolves missing values exactly like the base ladder, rejects
// non-mapping values, then validates every declared key independently and
// reports all failures together.
func (f *ObjectField) Validate(value any, name string) (any, error) {
	if isMissing(value) {
		if f.required {
			return nil, Errors{{Field: name, Message: f.requiredMessage()}}
		}
		if f.hasDefault {
			return f.defaultValue, nil
		}
		if f.optional {
			return nil, nil
		}
		return nil, Errors{{Field: name, Message: defaultRequiredMessage}}
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, Errors{{Field: name, Message: "Expected object, got " + typeName(value)}}
	}

	validated := make(map[string]any, len(f.keys))
	var errs Errors

	for _, key := range f.keys {
		v, err := f.fields[key].Validate(obj[key], key)
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
