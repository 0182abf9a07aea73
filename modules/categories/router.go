package categories

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/pkg/jwt"
)

// Router mounts the category endpoints.
func Router(store Store, jwtService *jwt.Service, log *slog.Logger) chi.Router {
	h := NewHandler(store, log)

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(jwtService))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}
