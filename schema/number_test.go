package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forinda/contentapi/schema"
)

func TestNumberInt(t *testing.T) {
	t.Parallel()

	t.Run("coerces numeric strings", func(t *testing.T) {
		t.Parallel()

		v, err := schema.Number().Int().Validate("42", "age")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("truncates floats", func(t *testing.T) {
		t.Parallel()

		v, err := schema.Number().Int().Validate(float64(3.7), "count")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})

	t.Run("fails on non-numeric strings", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Number().Int().Validate("abc", "age")
		require.Error(t, err)
		assert.Equal(t, "Expected integer, got string", err.Error())
	})

	t.Run("int then min validates the coerced value", func(t *testing.T) {
		t.Parallel()

		field := schema.Number().Int().Min(18)

		_, err := field.Validate("17", "age")
		require.Error(t, err)
		assert.Equal(t, "Number must be at least 18", err.Error())

		v, err := field.Validate("18", "age")
		require.NoError(t, err)
		assert.Equal(t, int64(18), v)
	})
}

func TestNumberBounds(t *testing.T) {
	t.Parallel()

	t.Run("min compares but returns the original value", func(t *testing.T) {
		t.Parallel()

		// Without Int the numeric string is compared as a number but not
		// replaced in the chain.
		v, err := schema.Number().Min(10).Validate("17", "age")
		require.NoError(t, err)
		assert.Equal(t, "17", v)
	})

	t.Run("max fails above the bound", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Number().Max(100).Validate(float64(101), "limit")
		require.Error(t, err)
		assert.Equal(t, "Number must be at most 100", err.Error())
	})

	t.Run("positive excludes zero", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Number().Int().Positive().Validate(float64(0), "count")
		require.Error(t, err)
		assert.Equal(t, "Number must be positive", err.Error())

		v, err := schema.Number().Int().Positive().Validate(float64(1), "count")
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
	})

	t.Run("negative excludes zero", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Number().Negative().Validate(float64(0), "delta")
		require.Error(t, err)
		assert.Equal(t, "Number must be negative", err.Error())

		v, err := schema.Number().Negative().Validate(float64(-0.5), "delta")
		require.NoError(t, err)
		assert.Equal(t, float64(-0.5), v)
	})

	t.Run("non-numeric value fails the bound check", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Number().Min(1).Validate([]any{}, "age")
		require.Error(t, err)
		assert.Equal(t, "Expected number, got array", err.Error())
	})
}
