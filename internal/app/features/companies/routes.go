// internal/app/features/companies/routes.go
package companies

import (
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the company endpoints (typically under "/companies").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Reads are filtered to the caller's company in the handlers.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireEmployee)
		pr.Get("/", h.ServeList)
		pr.Get("/user/{user_id}", h.ServeByOwner)
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
