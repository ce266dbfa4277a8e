// internal/app/features/comingsoon/routes.go
package comingsoon

import (
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServePage)
	})

	return r
}
