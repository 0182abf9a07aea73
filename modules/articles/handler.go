package articles

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/binder"
	"github.com/forinda/contentapi/core"
	"github.com/forinda/contentapi/pkg/jwt"
	"github.com/forinda/contentapi/pkg/pagination"
)

// Store is the persistence surface the handlers need.
type Store interface {
	Create(ctx context.Context, a *Article) (string, error)
	FindByID(ctx context.Context, id string) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, filter Filter, skip, limit int) ([]Article, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Search(ctx context.Context, term string, skip, limit int) ([]Article, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) error
}

type Handler struct {
	store Store
	log   *slog.Logger
}

func NewHandler(store Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQuery(r.URL.Query())

	if term := r.URL.Query().Get("search"); term != "" {
		articles, err := h.store.Search(r.Context(), term, page.Skip, page.Limit)
		if err != nil {
			h.log.ErrorContext(r.Context(), "failed to search articles", "error", err)
			core.Error(w, core.ErrInternal)
			return
		}
		core.JSON(w, http.StatusOK, map[string]any{"articles": articles})
		return
	}

	filter := Filter{CategoryID: r.URL.Query().Get("category_id")}

	articles, err := h.store.List(r.Context(), filter, page.Skip, page.Limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list articles", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	total, err := h.store.Count(r.Context(), filter)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to count articles", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.JSON(w, http.StatusOK, map[string]any{
		"articles":   articles,
		"pagination": pagination.NewMeta(page, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	article, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Article"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load article", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.JSON(w, http.StatusOK, article)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	body, err := binder.JSON(r)
	if err != nil {
		core.Error(w, core.BadRequest(err.Error()))
		return
	}

	data, err := createSchema.Validate(body)
	if err != nil {
		core.Error(w, err)
		return
	}

	slug := data["slug"].(string)
	if _, err := h.store.FindBySlug(r.Context(), slug); err == nil {
		core.Error(w, core.Conflict("Article with this slug already exists"))
		return
	} else if !errors.Is(err, ErrNotFound) {
		h.log.ErrorContext(r.Context(), "failed to check slug", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok {
		core.Error(w, core.ErrUnauthorized)
		return
	}

	article := &Article{
		Title:      data["title"].(string),
		Slug:       slug,
		Content:    data["content"].(string),
		Excerpt:    optionalString(data, "excerpt"),
		CategoryID: data["category_id"].(string),
		AuthorID:   userID,
		Published:  data["published"].(bool),
		Tags:       stringSlice(data["tags"]),
	}

	if _, err := h.store.Create(r.Context(), article); err != nil {
		h.log.ErrorContext(r.Context(), "failed to create article", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.JSON(w, http.StatusCreated, article)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := binder.JSON(r)
	if err != nil {
		core.Error(w, core.BadRequest(err.Error()))
		return
	}

	data, err := updateSchema.Validate(body)
	if err != nil {
		core.Error(w, err)
		return
	}

	fields := presentFields(data)
	if len(fields) == 0 {
		core.Error(w, core.BadRequest("No fields to update"))
		return
	}

	if slug, ok := fields["slug"].(string); ok {
		if existing, err := h.store.FindBySlug(r.Context(), slug); err == nil && existing.ID.Hex() != id {
			core.Error(w, core.Conflict("Article with this slug already exists"))
			return
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			h.log.ErrorContext(r.Context(), "failed to check slug", "error", err)
			core.Error(w, core.ErrInternal)
			return
		}
	}
	if tags, ok := fields["tags"]; ok {
		fields["tags"] = stringSlice(tags)
	}

	if err := h.store.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Article"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to update article", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	article, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to reload article", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.JSON(w, http.StatusOK, article)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Article"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to delete article", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.Message(w, http.StatusOK, "Article deleted", nil)
}

func (h *Handler) setPublished(published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.SetPublished(r.Context(), chi.URLParam(r, "id"), published); err != nil {
			if errors.Is(err, ErrNotFound) {
				core.Error(w, core.NotFound("Article"))
				return
			}
			h.log.ErrorContext(r.Context(), "failed to change publish state", "error", err)
			core.Error(w, core.ErrInternal)
			return
		}
		if published {
			core.Message(w, http.StatusOK, "Article published", nil)
			return
		}
		core.Message(w, http.StatusOK, "Article unpublished", nil)
	}
}

// presentFields keeps only the keys the client actually sent. Validation
// fills optional fields with nil, which would otherwise clobber stored
// values on partial updates.
func presentFields(data map[string]any) map[string]any {
	fields := make(map[string]any, len(data))
	for k, v := range data {
		if v != nil {
			fields[k] = v
		}
	}
	return fields
}

func optionalString(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}
