package collections

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

type Store interface {
	Create(ctx context.Context, c *Collection) (string, error)
	FindByID(ctx context.Context, id string) (*Collection, error)
	List(ctx context.Context, filter Filter, skip, limit int) ([]Collection, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	AddArticle(ctx context.Context, id, articleID string) error
	RemoveArticle(ctx context.Context, id, articleID string) error
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
	filter := Filter{UserID: r.URL.Query().Get("user_id")}

	collections, err := h.store.List(r.Context(), filter, page.Skip, page.Limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list collections", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	total, err := h.store.Count(r.Context(), filter)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to count collections", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.JSON(w, http.StatusOK, map[string]any{
		"collections": collections,
		"pagination":  pagination.NewMeta(page, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	collection, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Collection"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.JSON(w, http.StatusOK, collection)
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

	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok {
		core.Error(w, core.ErrUnauthorized)
		return
	}

	collection := &Collection{
		Name:     data["name"].(string),
		UserID:   userID,
		IsPublic: data["is_public"].(bool),
	}
	if desc, ok := data["description"].(string); ok {
		collection.Description = desc
	}

	if _, err := h.store.Create(r.Context(), collection); err != nil {
		h.log.ErrorContext(r.Context(), "failed to create collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.JSON(w, http.StatusCreated, collection)
}

// owned loads a collection and checks the requester owns it.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*Collection, bool) {
	collection, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("Collection"))
			return nil, false
		}
		h.log.ErrorContext(r.Context(), "failed to load collection", "error", err)
		core.Error(w, core.ErrInternal)
		return nil, false
	}

	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok || collection.UserID != userID {
		core.Error(w, core.ErrForbidden)
		return nil, false
	}
	return collection, true
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.owned(w, r)
	if !ok {
		return
	}

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

	if err := h.store.Update(r.Context(), collection.ID.Hex(), fields); err != nil {
		h.log.ErrorContext(r.Context(), "failed to update collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.Message(w, http.StatusOK, "Collection updated successfully", nil)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), collection.ID.Hex()); err != nil {
		h.log.ErrorContext(r.Context(), "failed to delete collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.Message(w, http.StatusOK, "Collection deleted successfully", nil)
}

func (h *Handler) addArticle(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.owned(w, r)
	if !ok {
		return
	}

	body, err := binder.JSON(r)
	if err != nil {
		core.Error(w, core.BadRequest(err.Error()))
		return
	}

	data, err := addArticleSchema.Validate(body)
	if err != nil {
		core.Error(w, err)
		return
	}

	if err := h.store.AddArticle(r.Context(), collection.ID.Hex(), data["article_id"].(string)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to add article to collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.Message(w, http.StatusOK, "Article added to collection", nil)
}

func (h *Handler) removeArticle(w http.ResponseWriter, r *http.Request) {
	collection, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.store.RemoveArticle(r.Context(), collection.ID.Hex(), chi.URLParam(r, "articleID")); err != nil {
		h.log.ErrorContext(r.Context(), "failed to remove article from collection", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	core.Message(w, http.StatusOK, "Article removed from collection", nil)
}
