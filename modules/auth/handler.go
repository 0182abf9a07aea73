package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/forinda/contentapi/binder"
	"github.com/forinda/contentapi/core"
	"github.com/forinda/contentapi/pkg/jwt"
)

type Store interface {
	Create(ctx context.Context, u *User) (string, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type Handler struct {
	store Store
	jwt   *jwt.Service
	log   *slog.Logger
}

func NewHandler(store Store, jwtService *jwt.Service, log *slog.Logger) *Handler {
	return &Handler{store: store, jwt: jwtService, log: log}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	body, err := binder.JSON(r)
	if err != nil {
		core.Error(w, core.BadRequest(err.Error()))
		return
	}

	data, err := registerSchema.Validate(body)
	if err != nil {
		core.Error(w, err)
		return
	}

	email := data["email"].(string)
	if _, err := h.store.FindByEmail(r.Context(), email); err == nil {
		core.Error(w, core.Conflict("User already exists"))
		return
	} else if !errors.Is(err, ErrNotFound) {
		h.log.ErrorContext(r.Context(), "failed to check email", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data["password"].(string)), bcrypt.DefaultCost)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to hash password", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	user := &User{
		Email:        email,
		Name:         data["name"].(string),
		PasswordHash: hash,
	}
	if _, err := h.store.Create(r.Context(), user); err != nil {
		h.log.ErrorContext(r.Context(), "failed to create user", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	h.log.InfoContext(r.Context(), "user registered", "email", user.Email)
	core.Message(w, http.StatusCreated, "User registered successfully", map[string]any{"user": user})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := binder.JSON(r)
	if err != nil {
		core.Error(w, core.BadRequest(err.Error()))
		return
	}

	data, err := loginSchema.Validate(body)
	if err != nil {
		core.Error(w, err)
		return
	}

	user, err := h.store.FindByEmail(r.Context(), data["email"].(string))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NewHTTPError(http.StatusUnauthorized, "Invalid email or password"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load user", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(data["password"].(string))) != nil {
		core.Error(w, core.NewHTTPError(http.StatusUnauthorized, "Invalid email or password"))
		return
	}

	token, err := h.jwt.IssueAccess(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to issue token", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	h.log.InfoContext(r.Context(), "user logged in", "email", user.Email)
	core.Message(w, http.StatusOK, "Login successful", map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok {
		core.Error(w, core.ErrUnauthorized)
		return
	}

	user, err := h.store.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("User"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load user", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.JSON(w, http.StatusOK, user)
}
