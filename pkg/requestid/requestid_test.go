package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forinda/contentapi/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
		t.Helper()

		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestid.FromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(requestid.Header, header)
		}
		rec := httptest.NewRecorder()
		requestid.Middleware(next).ServeHTTP(rec, req)
		return rec, seen
	}

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		t.Parallel()

		rec, seen := run(t, "")
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("keeps a well-formed client id", func(t *testing.T) {
		t.Parallel()

		_, seen := run(t, "client-id-123")
		assert.Equal(t, "client-id-123", seen)
	})

	t.Run("replaces a malformed client id", func(t *testing.T) {
		t.Parallel()

		_, seen := run(t, "bad id with spaces")
		assert.NotEqual(t, "bad id with spaces", seen)
		assert.NotEmpty(t, seen)
	})

	t.Run("replaces an oversized client id", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 200)
		_, seen := run(t, long)
		assert.NotEqual(t, long, seen)
	})
}

func TestLogAttr(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithContext(context.Background(), "req-1")
	attr, ok := requestid.LogAttr(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())

	_, ok = requestid.LogAttr(context.Background())
	assert.False(t, ok)
}
