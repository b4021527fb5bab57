// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the question-assignment endpoints (typically under "/assignments").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Any signed-in user; access to the target user is checked per request.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireEmployee)
		pr.Get("/questions/role-based", h.ServeRoleBasedQuestions)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAuditor)

		pr.Post("/questions/assign", h.HandleAssign)
		pr.Get("/controls/company/{company_id}", h.ServeCompanyControls)
		pr.Get("/users/company/{company_id}", h.ServeCompanyUsers)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
