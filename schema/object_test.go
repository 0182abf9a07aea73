package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forinda/contentapi/schema"
)

func TestObject(t *testing.T) {
	t.Parallel()

	address := func() *schema.ObjectField {
		return schema.Object(map[string]schema.Field{
			"city": schema.String().Min(2).Required(),
			"zip":  schema.String().Pattern(`^[0-9]{5}$`, "Invalid zip code").Required(),
		})
	}

	t.Run("validates every declared key", func(t *testing.T) {
		t.Parallel()

		v, err := address().Validate(map[string]any{"city": "Berlin", "zip": "10115"}, "address")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"city": "Berlin", "zip": "10115"}, v)
	})

	t.Run("aggregates failures across keys", func(t *testing.T) {
		t.Parallel()

		_, err := address().Validate(map[string]any{"city": "B", "zip": "abc"}, "address")
		require.Error(t, err)

		errs := schema.Extract(err)
		require.Len(t, errs, 2)
		assert.Equal(t, "city", errs[0].Field)
		assert.Equal(t, "String must be at least 2 characters", errs[0].Message)
		assert.Equal(t, "zip", errs[1].Field)
		assert.Equal(t, "Invalid zip code", errs[1].Message)
	})

	t.Run("non-mapping value is a type mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := address().Validate("not-an-object", "address")
		require.Error(t, err)

		errs := schema.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "address", errs[0].Field)
		assert.Equal(t, "Expected object, got string", errs[0].Message)
	})

	t.Run("missing required object fails with its own name", func(t *testing.T) {
		t.Parallel()

		_, err := address().Required().Validate(nil, "address")
		require.Error(t, err)

		errs := schema.Extract(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "address", errs[0].Field)
		assert.Equal(t, "This field is required", errs[0].Message)
	})

	t.Run("optional missing object yields nil", func(t *testing.T) {
		t.Parallel()

		v, err := address().Optional().Validate(nil, "address")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("default object is returned without nested validation", func(t *testing.T) {
		t.Parallel()

		def := map[string]any{"city": "", "zip": ""}
		v, err := address().Default(def).Validate(nil, "address")
		require.NoError(t, err)
		assert.Equal(t, def, v)
	})

	t.Run("undeclared keys are dropped from the result", func(t *testing.T) {
		t.Parallel()

		v, err := address().Validate(map[string]any{
			"city":  "Oslo",
			"zip":   "01234",
			"extra": "ignored",
		}, "address")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"city": "Oslo", "zip": "01234"}, v)
	})
}
