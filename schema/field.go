package schema

// Field is a single-key validation rule chain. Concrete field types
// (StringField, NumberField, BooleanField, EnumField, ArrayField,
// ObjectField) implement it; ArrayField and ObjectField override the base
// behavior with their own structural validation.
//
// Validate checks value against the chain and returns the validated
// (possibly coerced or transformed) value. name is the key the value was
// found under; it scopes every error record the call produces.
type Field interface {
	Validate(value any, name string) (any, error)
}

// check is one rule in a field's ordered chain. A check may replace the
// value it receives (numeric coercion does); the next check sees the
// replacement. Failing checks return an Errors value scoped to rootField.
type check func(value any) (any, error)

const defaultRequiredMessage = "This field is required"

// rules holds the state shared by every field type: the ordered check
// chain plus required/optional/default/transform flags. The fluent
// builders on the concrete types mutate it in place, so schemas must be
// fully built before they are shared between goroutines.
type rules struct {
	required     bool
	optional     bool
	requiredMsg  string
	hasDefault   bool
	defaultValue any
	checks       []check
	transform    func(any) any
}

func (r *rules) markRequired(msg ...string) {
	r.required = true
	r.optional = false
	if len(msg) > 0 {
		r.requiredMsg = msg[0]
	}
}

func (r *rules) markOptional() {
	r.optional = true
	r.required = false
}

func (r *rules) setDefault(v any) {
	r.defaultValue = v
	r.hasDefault = true
	r.optional = true
	r.required = false
}

func (r *rules) setTransform(fn func(any) any) {
	r.transform = fn
}

func (r *rules) addCheck(c check) {
	r.checks = append(r.checks, c)
}

func (r *rules) addCustom(pred func(any) bool, msg string) {
	if msg == "" {
		msg = "Validation failed"
	}
	r.addCheck(func(value any) (any, error) {
		if !pred(value) {
			return nil, fail(msg)
		}
		return value, nil
	})
}

func (r *rules) requiredMessage() string {
	if r.requiredMsg != "" {
		return r.requiredMsg
	}
	return defaultRequiredMessage
}

// isMissing reports whether a value counts as "not provided". Both nil and
// the empty string are treated identically as absent.
func isMissing(value any) bool {
	return value == nil || value == ""
}

// Validate runs the missing-value ladder and then the check chain.
//
// Absent values resolve in order: required fails, a default is returned
// verbatim (no checks run), optional yields an explicit nil. A field that
// is neither required nor optional nor defaulted still fails as required.
//
// Present values thread through every check in registration order,
// fail-fast: the first failing check wins and later checks never run. A
// failure scoped to the root sentinel is rewritten to name. The transform,
// if any, runs exactly once after all checks pass and is never validated.
func (r *rules) Validate(value any, name string) (any, error) {
	if isMissing(value) {
		if r.required {
			return nil, Errors{{Field: name, Message: r.requiredMessage()}}
		}
		if r.hasDefault {
			return r.defaultValue, nil
		}
		if r.optional {
			return nil, nil
		}
		return nil, Errors{{Field: name, Message: defaultRequiredMessage}}
	}

	for _, c := range r.checks {
		next, err := c(value)
		if err != nil {
			return nil, scopeError(err, name)
		}
		value = next
	}

	if r.transform != nil {
		value = r.transform(value)
	}

	return value, nil
}

// scopeError rewrites a root-scoped failure to the given field name.
// Errors already scoped to a concrete field pass through unchanged.
func scopeError(err error, name string) error {
	errs := Extract(err)
	if len(errs) == 0 {
		return err
	}
	if errs[0].Field == rootField {
		return Errors{{Field: name, Message: errs[0].Message}}
	}
	return errs
}
