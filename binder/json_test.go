package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forinda/contentapi/binder"
)

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a JSON object", func(t *testing.T) {
		t.Parallel()

		body, err := binder.JSON(jsonRequest(`{"name":"Alice","age":30}`, "application/json"))
		require.NoError(t, err)
		assert.Equal(t, "Alice", body["name"])
		assert.Equal(t, float64(30), body["age"])
	})

	t.Run("accepts a charset parameter", func(t *testing.T) {
		t.Parallel()

		body, err := binder.JSON(jsonRequest(`{"ok":true}`, "application/json; charset=utf-8"))
		require.NoError(t, err)
		assert.Equal(t, true, body["ok"])
	})

	t.Run("rejects a missing content type", func(t *testing.T) {
		t.Parallel()

		_, err := binder.JSON(jsonRequest(`{}`, ""))
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("rejects other media types", func(t *testing.T) {
		t.Parallel()

		_, err := binder.JSON(jsonRequest(`{}`, "text/plain"))
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := binder.JSON(jsonRequest(`{"name":`, "application/json"))
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		t.Parallel()

		_, err := binder.JSON(jsonRequest(``, "application/json"))
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()

		_, err := binder.JSON(jsonRequest(`{"a":1}{"b":2}`, "application/json"))
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})
}
