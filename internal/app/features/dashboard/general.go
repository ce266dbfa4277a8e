// internal/app/features/dashboard/general.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeGeneral renders the module grid for donors and any role without a
// dedicated work queue.
func (h *Handler) ServeGeneral(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Dashboard", "/")
	data := baseDashboardData{
		BaseVM:  base,
		Modules: VisibleModules(base.Role),
	}

	h.Log.Debug("general dashboard served", zap.String("user", base.UserName))

	templates.Render(w, r, "general_dashboard", data)
}
