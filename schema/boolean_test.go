package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forinda/contentapi/schema"
)

func TestBoolean(t *testing.T) {
	t.Parallel()

	t.Run("booleans pass through unchanged", func(t *testing.T) {
		t.Parallel()

		v, err := schema.Boolean().Validate(true, "published")
		require.NoError(t, err)
		assert.Equal(t, true, v)

		v, err = schema.Boolean().Validate(false, "published")
		require.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("recognized string tokens coerce case-insensitively", func(t *testing.T) {
		t.Parallel()

		truthy := []string{"true", "1", "yes", "on", "TRUE", "Yes", "ON"}
		for _, s := range truthy {
			v, err := schema.Boolean().Validate(s, "published")
			require.NoError(t, err, s)
			assert.Equal(t, true, v, s)
		}

		falsy := []string{"false", "0", "no", "off", "FALSE", "No", "OFF"}
		for _, s := range falsy {
			v, err := schema.Boolean().Validate(s, "published")
			require.NoError(t, err, s)
			assert.Equal(t, false, v, s)
		}
	})

	t.Run("integers coerce via truthiness", func(t *testing.T) {
		t.Parallel()

		v, err := schema.Boolean().Validate(float64(0), "published")
		require.NoError(t, err)
		assert.Equal(t, false, v)

		v, err = schema.Boolean().Validate(float64(2), "published")
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("fractional floats are a type mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Boolean().Validate(1.5, "published")
		require.Error(t, err)
		assert.Equal(t, "Expected boolean, got float", err.Error())

		_, err = schema.Boolean().Validate(0.25, "published")
		require.Error(t, err)
		assert.Equal(t, "Expected boolean, got float", err.Error())
	})

	t.Run("unrecognized strings are a type mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Boolean().Validate("maybe", "published")
		require.Error(t, err)
		assert.Equal(t, "Expected boolean, got string", err.Error())
	})

	t.Run("other types are a type mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := schema.Boolean().Validate([]any{true}, "published")
		require.Error(t, err)
		assert.Equal(t, "Expected boolean, got array", err.Error())
	})
}
