package files

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/file"
	"github.com/forinda/contentapi/pkg/jwt"
)

// Router mounts the file endpoints. Uploads and deletes require an
// authenticated user.
func Router(store Store, storage file.Storage, jwtService *jwt.Service, log *slog.Logger) chi.Router {
	h := NewHandler(store, storage, log)

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(jwtService))
		r.Post("/upload", h.upload)
		r.Delete("/{id}", h.delete)
	})

	return r
}
