// internal/app/features/educationaid/routes.go
package educationaid

import (
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the sponsorship page under its mount point (e.g.
// "/education-aid").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServePage)
	})

	return r
}
