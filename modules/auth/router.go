package auth

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/pkg/jwt"
)

// Router mounts the auth endpoints.
func Router(store Store, jwtService *jwt.Service, log *slog.Logger) chi.Router {
	h := NewHandler(store, jwtService, log)

	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(jwt.Middleware(jwtService))
		r.Get("/me", h.me)
	})

	return r
}
