package schema

import "fmt"

// ArrayField validates list values, optionally checking every element
// against an item field.
type ArrayField struct {
	rules
	item Field
}

// Array creates an array field. item may be nil, in which case elements
// pass through unvalidated.
func Array(item Field) *ArrayField {
	return &ArrayField{item: item}
}

func (f *ArrayField) Required(msg ...string) *ArrayField {
	f.markRequired(msg...)
	return f
}

func (f *ArrayField) Optional() *ArrayField {
	f.markOptional()
	return f
}

func (f *ArrayField) Default(v any) *ArrayField {
	f.setDefault(v)
	return f
}

func (f *ArrayField) Custom(pred func(any) bool, msg string) *ArrayField {
	f.addCustom(pred, msg)
	return f
}

// Min requires at least length elements.
func (f *ArrayField) Min(length int, msg ...string) *ArrayField {
	f.addCheck(func(value any) (any, error) {
		list, ok := value.([]any)
		if !ok {
			return nil, fail("Expected array, got " + typeName(value))
		}
		if len(list) < length {
			return nil, fail(pick(msg, fmt.Sprintf("Array must have at least %d items", length)))
		}
		return value, nil
	})
	return f
}

// Max allows at most length elements.
func (f *ArrayField) Max(length int, msg ...string) *ArrayField {
	f.addCheck(func(value any) (any, error) {
		list, ok := value.([]any)
		if !ok {
			return nil, fail("Expected array, got " + typeName(value))
		}
		if len(list) > length {
			return nil, fail(pick(msg, fmt.Sprintf("Array must have at most %d items", length)))
		}
		return value, nil
	})
	return f
}

// Validate runs the base pipeline and then, if an item field is set,
// validates every element under the name "key[i]". Element validation is
// fail-fast: the first failing element's error is returned alone, unlike
// object and schema validation which aggregate across keys.
func (f *ArrayField) Validate(value any, name string) (any, error) {
	value, err := f.rules.Validate(value, name)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	list, ok := value.([]any)
	if !ok {
		return nil, Errors{{Field: name, Message: "Expected array, got " + typeName(value)}}
	}

	if f.item == nil {
		return list, nil
	}

	validated := make([]any, 0, len(list))
	for i, element := range list {
		elementName := fmt.Sprintf("%s[%d]", name, i)
		v, err := f.item.Validate(element, elementName)
		if err != nil {
			if errs := Extract(err); len(errs) > 0 {
				return nil, Errors{{Field: elementName, Message: errs[0].Message}}
			}
			return nil, err
		}
		validated = append(validated, v)
	}

	return validated, nil
}
