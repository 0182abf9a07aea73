package schema

import (
	"fmt"
	"strconv"
)

// NumberField validates numeric values. Decoded JSON numbers arrive as
// float64; Int narrows to int64 and numeric strings are coerced where a
// check needs a number.
type NumberField struct {
	rules
	isInt bool
}

// Number creates a number field.
func Number() *NumberField {
	return &NumberField{}
}

func (f *NumberField) Required(msg ...string) *NumberField {
	f.markRequired(msg...)
	return f
}

func (f *NumberField) Optional() *NumberField {
	f.markOptional()
	return f
}

func (f *NumberField) Default(v any) *NumberField {
	f.setDefault(v)
	return f
}

func (f *NumberField) Transform(fn func(any) any) *NumberField {
	f.setTransform(fn)
	return f
}

func (f *NumberField) Custom(pred func(any) bool, msg string) *NumberField {
	f.addCustom(pred, msg)
	return f
}

// Int appends an integer coercion check. The check replaces the value in
// the chain with the coerced int64, so checks registered after Int see the
// integer. Call Int before Min or Max when exact integer comparison and an
// integer result are wanted.
func (f *NumberField) Int() *NumberField {
	f.isInt = true
	f.addCheck(func(value any) (any, error) {
		n, err := toInt(value)
		if err != nil {
			return nil, fail("Expected integer, got " + typeName(value))
		}
		return n, nil
	})
	return f
}

// Min requires the numeric value to be at least min. The check compares
// the coerced number but returns the original value unchanged.
func (f *NumberField) Min(min float64, msg ...string) *NumberField {
	f.addCheck(func(value any) (any, error) {
		n, err := f.numeric(value)
		if err != nil {
			return nil, fail(pick(msg, "Expected number, got "+typeName(value)))
		}
		if n < min {
			return nil, fail(pick(msg, fmt.Sprintf("Number must be at least %v", min)))
		}
		return value, nil
	})
	return f
}

// Max requires the numeric value to be at most max. The check compares
// the coerced number but returns the original value unchanged.
func (f *NumberField) Max(max float64, msg ...string) *NumberField {
	f.addCheck(func(value any) (any, error) {
		n, err := f.numeric(value)
		if err != nil {
			return nil, fail(pick(msg, "Expected number, got "+typeName(value)))
		}
		if n > max {
			return nil, fail(pick(msg, fmt.Sprintf("Number must be at most %v", max)))
		}
		return value, nil
	})
	return f
}

// Positive excludes zero: the bound is 1 in integer mode and a small
// epsilon otherwise. The mode is resolved when the check runs, so Int
// anywhere in the chain puts the field in integer mode.
func (f *NumberField) Positive(msg ...string) *NumberField {
	message := pick(msg, "Number must be positive")
	f.addCheck(func(value any) (any, error) {
		bound := 0.0001
		if f.isInt {
			bound = 1
		}
		n, err := f.numeric(value)
		if err != nil || n < bound {
			return nil, fail(message)
		}
		return value, nil
	})
	return f
}

// Negative excludes zero, mirroring Positive.
func (f *NumberField) Negative(msg ...string) *NumberField {
	message := pick(msg, "Number must be negative")
	f.addCheck(func(value any) (any, error) {
		bound := -0.0001
		if f.isInt {
			bound = -1
		}
		n, err := f.numeric(value)
		if err != nil || n > bound {
			return nil, fail(message)
		}
		return value, nil
	})
	return f
}

// numeric coerces value for comparison. In integer mode the fractional
// part is truncated first, matching the narrowing Int performs.
func (f *NumberField) numeric(value any) (float64, error) {
	if f.isInt {
		n, err := toInt(value)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	return toFloat(value)
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("not an integer: %T", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}
