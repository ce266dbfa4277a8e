// internal/app/features/comingsoon/handler.go
package comingsoon

import (
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// Handler serves a placeholder page for programs that are announced but not
// built yet. One handler covers every such mount; the title comes from the
// route registration.
type Handler struct {
	Title       string
	Description string
}

func NewHandler(title, description string) *Handler {
	return &Handler{Title: title, Description: description}
}

type pageData struct {
	viewdata.BaseVM
	Description string
}

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "coming_soon", pageData{
		BaseVM:      viewdata.NewBaseVM(r, h.Title, "/dashboard"),
		Description: h.Description,
	})
}
