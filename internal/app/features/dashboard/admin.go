// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type adminData struct {
	viewdata.BaseVM
	Modules []Module

	UsersByRole       map[string]int64
	DonationsByStatus map[string]int64
	IssuesByStatus    map[string]int64
}

// ServeAdmin renders the module grid plus site-wide counts.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Admin Dashboard", "/")

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	// Count failures degrade to empty maps; the grid still renders.
	usersByRole, err := h.Users.CountByRole(ctx)
	if err != nil {
		h.Log.Error("count users failed", zap.Error(err))
	}
	donationsByStatus, err := h.Donations.CountByStatus(ctx)
	if err != nil {
		h.Log.Error("count donations failed", zap.Error(err))
	}
	issuesByStatus, err := h.Issues.CountByStatus(ctx)
	if err != nil {
		h.Log.Error("count issues failed", zap.Error(err))
	}

	templates.Render(w, r, "admin_dashboard", adminData{
		BaseVM:            base,
		Modules:           VisibleModules(base.Role),
		UsersByRole:       usersByRole,
		DonationsByStatus: donationsByStatus,
		IssuesByStatus:    issuesByStatus,
	})
}
