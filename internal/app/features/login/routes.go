// internal/app/features/login/routes.go
package login

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the token endpoints (typically under "/auth"). Login is
// public; /me runs behind authenticate.
func Routes(h *Handler, authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	r.With(authenticate).Get("/me", h.ServeMe)
	return r
}
