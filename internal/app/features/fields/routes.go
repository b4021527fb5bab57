// internal/app/features/fields/routes.go
package fields

import (
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the field endpoints (typically under "/fields").
// Any authenticated user may read; auditors and superadmins may write.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireEmployee)
		pr.Get("/", h.ServeList)
		pr.Get("/type/{field_type}", h.ServeByType)
		pr.Get("/{id}", h.ServeView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuditor)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
