package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	urlRegex   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

	alphaPattern        = `^[A-Za-z]+$`
	alphanumericPattern = `^[A-Za-z0-9]+$`
)

// StringField validates textual values.
type StringField struct {
	rules
}

// String creates a string field.
func String() *StringField {
	return &StringField{}
}

func (f *StringField) Required(msg ...string) *StringField {
	f.markRequired(msg...)
	return f
}

func (f *StringField) Optional() *StringField {
	f.markOptional()
	return f
}

func (f *StringField) Default(v any) *StringField {
	f.setDefault(v)
	return f
}

// Transform replaces any previously set transform. It runs once, after all
// checks pass, and must not fail.
func (f *StringField) Transform(fn func(any) any) *StringField {
	f.setTransform(fn)
	return f
}

// Custom appends a predicate check failing with msg when the predicate
// returns false.
func (f *StringField) Custom(pred func(any) bool, msg string) *StringField {
	f.addCustom(pred, msg)
	return f
}

// Min requires at least length characters.
func (f *StringField) Min(length int, msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(pick(msg, "Expected string, got "+typeName(value)))
		}
		if utf8.RuneCountInString(s) < length {
			return nil, fail(pick(msg, fmt.Sprintf("String must be at least %d characters", length)))
		}
		return value, nil
	})
	return f
}

// Max allows at most length characters.
func (f *StringField) Max(length int, msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(pick(msg, "Expected string, got "+typeName(value)))
		}
		if utf8.RuneCountInString(s) > length {
			return nil, fail(pick(msg, fmt.Sprintf("String must be at most %d characters", length)))
		}
		return value, nil
	})
	return f
}

// Email validates the value against a pragmatic email address pattern.
func (f *StringField) Email(msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || !emailRegex.MatchString(s) {
			return nil, fail(pick(msg, "Invalid email address"))
		}
		return value, nil
	})
	return f
}

// URL requires an http or https URL.
func (f *StringField) URL(msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || !urlRegex.MatchString(s) {
			return nil, fail(pick(msg, "Invalid URL"))
		}
		return value, nil
	})
	return f
}

// Pattern validates the value against the given regular expression.
// The match is anchored at the start of the string but may stop short
// of the end. The expression is compiled when the field is built; an
// invalid expression panics, which surfaces misconfigured schemas at
// startup.
func (f *StringField) Pattern(expr string, msg ...string) *StringField {
	re := regexp.MustCompile(`\A(?:` + expr + `)`)
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return nil, fail(pick(msg, "Invalid format"))
		}
		return value, nil
	})
	return f
}

// Alpha allows letters only.
func (f *StringField) Alpha(msg ...string) *StringField {
	return f.Pattern(alphaPattern, pick(msg, "String must contain only letters"))
}

// Alphanumeric allows letters and digits only.
func (f *StringField) Alphanumeric(msg ...string) *StringField {
	return f.Pattern(alphanumericPattern, pick(msg, "String must contain only letters and numbers"))
}

func (f *StringField) Lowercase(msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || s != strings.ToLower(s) {
			return nil, fail(pick(msg, "String must be lowercase"))
		}
		return value, nil
	})
	return f
}

func (f *StringField) Uppercase(msg ...string) *StringField {
	f.addCheck(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok || s != strings.ToUpper(s) {
			return nil, fail(pick(msg, "String must be uppercase"))
		}
		return value, nil
	})
	return f
}

// Trim strips leading and trailing whitespace. It is a transform, not a
// check: length and pattern checks see the untrimmed value. That ordering
// is part of the contract and must not change.
func (f *StringField) Trim() *StringField {
	return f.Transform(func(value any) any {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
		return value
	})
}

// pick returns the first custom message if one was given, otherwise def.
func pick(msg []string, def string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return def
}
