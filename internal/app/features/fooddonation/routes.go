// internal/app/features/fooddonation/routes.go
package fooddonation

import (
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the donation board under its mount point (e.g.
// "/food-donation"). Role checks finer than "signed in" live in the
// handlers, because the board page itself is shared by every role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeBoard)
		pr.Get("/stream", h.ServeStream)
		pr.Get("/new", h.ServeCreateForm)
		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}/claim", h.HandleClaim)
	})

	return r
}
