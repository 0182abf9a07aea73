// Package schema provides declarative validation for decoded JSON request
// bodies, with composable per-field rule chains, coercion, defaults, and
// field-scoped error aggregation.
//
// A Schema maps field keys to fields. Fields are built with a fluent API
// and run their checks in the exact order they were registered:
//
//	createUser := schema.New(map[string]schema.Field{
//		"email":    schema.String().Email().Trim().Required(),
//		"name":     schema.String().Min(2).Max(100).Trim().Required(),
//		"age":      schema.Number().Int().Min(18).Optional(),
//		"role":     schema.Enum("admin", "user", "guest").Default("user"),
//		"tags":     schema.Array(schema.String().Min(2)).Max(10).Optional(),
//	})
//
//	validated, err := createUser.Validate(body)
//	if err != nil {
//		errs := schema.Extract(err) // []schema.Error, one per failing field
//	}
//
// # Values
//
// Inputs are decoded JSON values: nil, bool, float64 (or int), string,
// []any, and map[string]any. A nil value and an empty string are both
// treated as "not provided". On success the validated record contains
// every declared key; unset optional fields are present with an explicit
// nil, never omitted.
//
// # Error semantics
//
// Validation within one field is fail-fast: the first failing check wins
// and later checks on that field never run. Schema and ObjectField
// validation aggregate across sibling keys, so callers get a complete
// per-field report. ArrayField element validation is fail-fast and stops
// at the first bad element. This asymmetry is deliberate and part of the
// contract.
//
// # Checks and transforms
//
// Checks may replace the value they receive (Number().Int() narrows to
// int64, Boolean() coerces recognized tokens); the next check in the chain
// sees the replacement. A transform, such as String().Trim(), runs exactly
// once after every check has passed and is never validated, so length and
// pattern checks observe the untrimmed value.
//
// # Concurrency
//
// The fluent builders mutate the field being built. Construct schemas at
// startup, then share them freely: Validate is pure and safe for
// concurrent use on a schema that is no longer being mutated.
package schema
