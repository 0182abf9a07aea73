package categories

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/binder"
	"github.com/forinda/contentapi/core"
	"github.com/forinda/contentapi/pkg/pagination"
)

type Store interface {
	Create(ctx context.Context, c *Category) (string, error)
	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, skip, limit int) ([]Category, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
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

	categories, err := h.store.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list categories", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	total, err := h.store.Count(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to count categories", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.JSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"pagination": pagination.NewMeta(page, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	category, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Category"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load category", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.JSON(w, http.StatusOK, category)
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
		core.Error(w, core.Conflict("Category with this slug already exists"))
		return
	} else if !errors.Is(err, ErrNotFound) {
		h.log.ErrorContext(r.Context(), "failed to check slug", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	category := &Category{
		Name: data["name"].(string),
		Slug: slug,
	}
	if desc, ok := data["description"].(string); ok {
		category.Description = desc
	}

	id, err := h.store.Create(r.Context(), category)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to create category", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	h.log.InfoContext(r.Context(), "category created", "name", category.Name, "category_id", id)
	core.JSON(w, http.StatusCreated, category)
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

	fields := make(map[string]any, len(data))
	for k, v := range data {
		if v != nil {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		core.Error(w, core.BadRequest("No fields to update"))
		return
	}

	current, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Category"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load category", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	if slug, ok := fields["slug"].(string); ok && slug != current.Slug {
		if _, err := h.store.FindBySlug(r.Context(), slug); err == nil {
			core.Error(w, core.Conflict("Category with this slug already exists"))
			return
		} else if !errors.Is(err, ErrNotFound) {
			h.log.ErrorContext(r.Context(), "failed to check slug", "error", err)
			core.Error(w, core.ErrInternal)
			return
		}
	}

	if err := h.store.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Category"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to update category", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	h.log.InfoContext(r.Context(), "category updated", "category_id", id)
	core.Message(w, http.StatusOK, "Category updated successfully", nil)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Category"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to delete category", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	h.log.InfoContext(r.Context(), "category deleted", "category_id", id)
	core.Message(w, http.StatusOK, "Category deleted successfully", nil)
}
