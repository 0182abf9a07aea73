package articles

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/forinda/contentapi/pkg/jwt"
)

type fakeStore struct {
	articles map[string]*Article
	bySlug   map[string]*Article
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		articles: map[string]*Article{},
		bySlug:   map[string]*Article{},
	}
}

func (s *fakeStore) Create(_ context.Context, a *Article) (string, error) {
	a.ID = bson.NewObjectID()
	id := a.ID.Hex()
	s.articles[id] = a
	s.bySlug[a.Slug] = a
	return id, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*Article, error) {
	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *fakeStore) FindBySlug(_ context.Context, slug string) (*Article, error) {
	a, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *fakeStore) List(_ context.Context, _ Filter, _, _ int) ([]Article, error) {
	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeStore) Count(_ context.Context, _ Filter) (int64, error) {
	return int64(len(s.articles)), nil
}

func (s *fakeStore) Search(_ context.Context, _ string, _, _ int) ([]Article, error) {
	return nil, nil
}

func (s *fakeStore) Update(_ context.Context, id string, fields map[string]any) error {
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		a.Title = title
	}
	if slug, ok := fields["slug"].(string); ok {
		delete(s.bySlug, a.Slug)
		a.Slug = slug
		s.bySlug[slug] = a
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.bySlug, a.Slug)
	delete(s.articles, id)
	return nil
}

func (s *fakeStore) SetPublished(_ context.Context, id string, published bool) error {
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	a.Published = published
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authed(r *http.Request) *http.Request {
	claims := jwt.AccessClaims{UserID: bson.NewObjectID().Hex(), Email: "author@example.com"}
	return r.WithContext(jwt.SetClaims(r.Context(), claims))
}

const validArticle = `{
	"title": "Getting Started",
	"slug": "getting-started",
	"content": "This is a long enough body of content to pass the minimum length validation.",
	"category_id": "cat-1"
}`

func TestHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates an article from a valid payload", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		h := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(validArticle))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.create(rec, authed(req))

		require.Equal(t, http.StatusCreated, rec.Code)

		var got Article
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Getting Started", got.Title)
		assert.Equal(t, "getting-started", got.Slug)
		assert.False(t, got.Published, "published defaults to false")
		assert.NotEmpty(t, got.AuthorID)
	})

	t.Run("rejects an invalid payload with field errors", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(newFakeStore(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Hi"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.create(rec, authed(req))

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Errors []map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Errors)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		h := NewHandler(store, testLogger())

		for i, wantCode := range []int{http.StatusCreated, http.StatusConflict} {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(validArticle))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.create(rec, authed(req))
			require.Equal(t, wantCode, rec.Code, "request %d", i)
		}
	})

	t.Run("requires an authenticated user", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(newFakeStore(), testLogger())

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(validArticle))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlerUpdate(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, store *fakeStore) string {
		t.Helper()
		id, err := store.Create(context.Background(), &Article{
			Title:   "Original",
			Slug:    "original",
			Content: strings.Repeat("x", 60),
		})
		require.NoError(t, err)
		return id
	}

	withID := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("applies only the fields the client sent", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		id := seed(t, store)
		h := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodPut, "/"+id, strings.NewReader(`{"title":"Updated title"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.update(rec, withID(authed(req), id))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Updated title", store.articles[id].Title)
		assert.Equal(t, "original", store.articles[id].Slug, "unsent fields stay untouched")
	})

	t.Run("rejects an empty update", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		id := seed(t, store)
		h := NewHandler(store, testLogger())

		req := httptest.NewRequest(http.MethodPut, "/"+id, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.update(rec, withID(authed(req), id))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns not found for an unknown article", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(newFakeStore(), testLogger())

		req := httptest.NewRequest(http.MethodPut, "/missing", strings.NewReader(`{"title":"Updated title"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.update(rec, withID(authed(req), bson.NewObjectID().Hex()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlerPublish(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	id, err := store.Create(context.Background(), &Article{Title: "Draft", Slug: "draft"})
	require.NoError(t, err)

	h := NewHandler(store, testLogger())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	req := httptest.NewRequest(http.MethodPost, "/"+id+"/publish", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.setPublished(true)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.articles[id].Published)
}
