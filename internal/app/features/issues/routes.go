// internal/app/features/issues/routes.go
package issues

import (
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the community-issue board under its mount point (e.g.
// "/issues"). The board itself is visible to every signed-in role; submit
// and verify are gated in the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeBoard)
		pr.Get("/stream", h.ServeStream)
		pr.Get("/new", h.ServeNewForm)
		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}/verify", h.HandleVerify)
	})

	return r
}
