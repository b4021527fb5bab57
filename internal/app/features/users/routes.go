// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user endpoints (typically under "/users"). The caller
// applies the bearer-token middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Auditors read users of their own company; superadmins read everyone.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuditor)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSuperAdmin)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
