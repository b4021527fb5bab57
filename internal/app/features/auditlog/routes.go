// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit event routes under the path where this
// router is mounted (typically "/admin/audit-events" from bootstrap).
//
// Access is restricted to superadmins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSuperAdmin)

		pr.Get("/", h.ServeList)
	})

	return r
}
