package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/forinda/contentapi/pkg/jwt"
)

type fakeStore struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (s *fakeStore) Create(_ context.Context, u *User) (string, error) {
	u.ID = bson.NewObjectID()
	s.byEmail[u.Email] = u
	s.byID[u.ID.Hex()] = u
	return u.ID.Hex(), nil
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func newTestHandler(t *testing.T, store Store) *Handler {
	t.Helper()
	service, err := jwt.New(jwt.Config{SigningKey: "test-signing-key", AccessTTL: time.Hour})
	require.NoError(t, err)
	return NewHandler(store, service, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates a user and lowercases the email", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		h := newTestHandler(t, store)

		rec := httptest.NewRecorder()
		h.register(rec, postJSON("/register", `{
			"email": "User@Example.COM",
			"password": "Password1",
			"name": "Test User"
		}`))

		require.Equal(t, http.StatusCreated, rec.Code)

		user, ok := store.byEmail["user@example.com"]
		require.True(t, ok, "email stored lowercased")
		assert.Equal(t, "Test User", user.Name)
		assert.NotContains(t, rec.Body.String(), "password_hash")
	})

	t.Run("rejects a weak password with the specific rule message", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, newFakeStore())

		rec := httptest.NewRecorder()
		h.register(rec, postJSON("/register", `{
			"email": "user@example.com",
			"password": "password1",
			"name": "Test User"
		}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Password must contain at least one uppercase letter")
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		h := newTestHandler(t, store)

		body := `{"email": "dup@example.com", "password": "Password1", "name": "Test User"}`

		rec := httptest.NewRecorder()
		h.register(rec, postJSON("/register", body))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = httptest.NewRecorder()
		h.register(rec, postJSON("/register", body))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, store *fakeStore) {
		t.Helper()
		hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
		require.NoError(t, err)
		_, err = store.Create(context.Background(), &User{
			Email:        "user@example.com",
			Name:         "Test User",
			PasswordHash: hash,
		})
		require.NoError(t, err)
	}

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		seed(t, store)
		h := newTestHandler(t, store)

		rec := httptest.NewRecorder()
		h.login(rec, postJSON("/login", `{"email": "User@example.com", "password": "Password1"}`))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Token)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		seed(t, store)
		h := newTestHandler(t, store)

		rec := httptest.NewRecorder()
		h.login(rec, postJSON("/login", `{"email": "user@example.com", "password": "Wrong1wrong"}`))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	t.Run("does not reveal whether the email exists", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		seed(t, store)
		h := newTestHandler(t, store)

		recWrongPassword := httptest.NewRecorder()
		h.login(recWrongPassword, postJSON("/login", `{"email": "user@example.com", "password": "Wrong1wrong"}`))

		recUnknownEmail := httptest.NewRecorder()
		h.login(recUnknownEmail, postJSON("/login", `{"email": "ghost@example.com", "password": "Password1"}`))

		assert.Equal(t, recWrongPassword.Code, recUnknownEmail.Code)
		assert.JSONEq(t, recWrongPassword.Body.String(), recUnknownEmail.Body.String())
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("returns the authenticated user", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		id, err := store.Create(context.Background(), &User{Email: "user@example.com", Name: "Test User"})
		require.NoError(t, err)

		h := newTestHandler(t, store)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req = req.WithContext(jwt.SetClaims(req.Context(), jwt.AccessClaims{UserID: id}))
		rec := httptest.NewRecorder()
		h.me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user@example.com")
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, newFakeStore())

		rec := httptest.NewRecorder()
		h.me(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
