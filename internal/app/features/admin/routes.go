// internal/app/features/admin/routes.go
package admin

import (
	"net/http"

	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin endpoints (typically under "/admin").
//
// create-superadmin is the unauthenticated bootstrap route and only works
// while no superadmin exists; everything else runs behind authenticate and
// is restricted to superadmins.
func Routes(h *Handler, authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/create-superadmin", h.HandleCreateSuperAdmin)

	r.Group(func(pr chi.Router) {
		pr.Use(authenticate)
		pr.Use(auth.RequireSuperAdmin)

		pr.Get("/system-status", h.ServeSystemStatus)
		pr.Get("/users/role/{role}", h.ServeUsersByRole)
		pr.Post("/reset-password/{id}", h.HandleResetPassword)
		pr.Post("/deactivate-user/{id}", h.HandleDeactivate)
	})

	return r
}
