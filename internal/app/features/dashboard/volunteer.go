// internal/app/features/dashboard/volunteer.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/authz"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type volunteerData struct {
	viewdata.BaseVM
	Pending       []models.FoodDonation
	Mine          []models.FoodDonation
	PendingIssues []models.CommunityIssue
}

// ServeVolunteer shows the volunteer's work queues: donations waiting for a
// pickup, the ones this volunteer has claimed, and community issues awaiting
// verification.
func (h *Handler) ServeVolunteer(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Volunteer Dashboard", "/")
	_, _, uid, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	pending, err := h.Donations.List(ctx, models.DonationPending)
	if err != nil {
		h.Log.Error("list pending donations failed", zap.Error(err))
	}
	mine, err := h.Donations.ListByVolunteer(ctx, uid)
	if err != nil {
		h.Log.Error("list claimed donations failed", zap.Error(err))
	}
	pendingIssues, err := h.Issues.ListByStatuses(ctx, models.IssuePending)
	if err != nil {
		h.Log.Error("list pending issues failed", zap.Error(err))
	}

	templates.Render(w, r, "volunteer_dashboard", volunteerData{
		BaseVM:        base,
		Pending:       pending,
		Mine:          mine,
		PendingIssues: pendingIssues,
	})
}
