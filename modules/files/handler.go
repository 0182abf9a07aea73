package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/forinda/contentapi/core"
	"github.com/forinda/contentapi/file"
	"github.com/forinda/contentapi/pkg/jwt"
	"github.com/forinda/contentapi/pkg/pagination"
)

type Store interface {
	Create(ctx context.Context, rec *Record) (string, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, search string, skip, limit int) ([]Record, error)
	Count(ctx context.Context, search string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	store   Store
	storage file.Storage
	log     *slog.Logger
}

func NewHandler(store Store, storage file.Storage, log *slog.Logger) *Handler {
	return &Handler{store: store, storage: storage, log: log}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromQueryLimits(r.URL.Query(), 20, 100)
	search := r.URL.Query().Get("search")

	records, err := h.store.List(r.Context(), search, page.Skip, page.Limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list files", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	total, err := h.store.Count(r.Context(), search)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to count files", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	for i := range records {
		records[i].URL = h.storage.URL(records[i].Path)
	}

	core.JSON(w, http.StatusOK, map[string]any{
		"files":      records,
		"pagination": pagination.NewMeta(page, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("File"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load file", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	record.URL = h.storage.URL(record.Path)
	core.JSON(w, http.StatusOK, record)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(file.MaxUploadSize); err != nil {
		core.Error(w, core.BadRequest("Invalid multipart form"))
		return
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		core.Error(w, core.BadRequest("No file provided"))
		return
	}

	data, err := uploadSchema.Validate(formMetadata(r))
	if err != nil {
		core.Error(w, err)
		return
	}

	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok {
		core.Error(w, core.ErrUnauthorized)
		return
	}

	// Store under a generated name so uploads never collide or leak the
	// original filename into paths.
	path := fmt.Sprintf("%s/%s", userID, uuid.NewString())
	meta, err := h.storage.Save(r.Context(), fh, path)
	if err != nil {
		switch {
		case errors.Is(err, file.ErrFileTooLarge):
			core.Error(w, core.BadRequest("File exceeds the maximum upload size"))
		case errors.Is(err, file.ErrMIMETypeNotAllowed):
			core.Error(w, core.BadRequest("File type is not allowed"))
		default:
			h.log.ErrorContext(r.Context(), "failed to store file", "error", err)
			core.Error(w, core.ErrInternal)
		}
		return
	}

	record := &Record{
		Filename:   meta.Filename,
		Size:       meta.Size,
		MIMEType:   meta.MIMEType,
		Extension:  meta.Extension,
		Path:       meta.RelativePath,
		UploaderID: userID,
	}
	if desc, ok := data["description"].(string); ok {
		record.Description = desc
	}
	if tags, ok := data["tags"].([]any); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				record.Tags = append(record.Tags, s)
			}
		}
	}

	if _, err := h.store.Create(r.Context(), record); err != nil {
		// Keep storage consistent with metadata.
		if derr := h.storage.Delete(r.Context(), record.Path); derr != nil {
			h.log.ErrorContext(r.Context(), "failed to roll back stored file", "error", derr)
		}
		h.log.ErrorContext(r.Context(), "failed to save file record", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	record.URL = h.storage.URL(record.Path)
	h.log.InfoContext(r.Context(), "file uploaded", "filename", record.Filename, "size", record.Size)
	core.Message(w, http.StatusCreated, "File uploaded successfully", map[string]any{"file": record})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.Error(w, core.NotFound("File"))
			return
		}
		h.log.ErrorContext(r.Context(), "failed to load file", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	userID, ok := jwt.UserIDFromContext(r.Context())
	if !ok || record.UploaderID != userID {
		core.Error(w, core.ErrForbidden)
		return
	}

	if err := h.storage.Delete(r.Context(), record.Path); err != nil && !errors.Is(err, file.ErrFileNotFound) {
		h.log.ErrorContext(r.Context(), "failed to delete stored file", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}
	if err := h.store.Delete(r.Context(), record.ID.Hex()); err != nil {
		h.log.ErrorContext(r.Context(), "failed to delete file record", "error", err)
		core.Error(w, core.ErrInternal)
		return
	}

	core.Message(w, http.StatusOK, "File deleted successfully", nil)
}

// formMetadata lifts the optional metadata fields out of the multipart
// form into the shape the upload schema validates. Absent fields stay
// nil so optional semantics apply.
func formMetadata(r *http.Request) map[string]any {
	data := map[string]any{}
	if desc := r.FormValue("description"); desc != "" {
		data["description"] = desc
	}
	if tags, ok := r.MultipartForm.Value["tags"]; ok && len(tags) > 0 {
		items := make([]any, len(tags))
		for i, t := range tags {
			items[i] = t
		}
		data["tags"] = items
	}
	return data
}
