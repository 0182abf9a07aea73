// Package health exposes liveness and readiness probes.
package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forinda/contentapi/core"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Router mounts the probe endpoints. Readiness runs every registered
// check and fails if any dependency is down.
func Router(checks map[string]Check) chi.Router {
	r := chi.NewRouter()

	r.Get("/live", func(w http.ResponseWriter, _ *http.Request) {
		core.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		core.JSON(w, status, map[string]any{"checks": results})
	})

	return r
}
