// internal/app/features/dashboard/community.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type communityData struct {
	viewdata.BaseVM
	Pending  []models.CommunityIssue
	Verified []models.CommunityIssue
}

// ServeCommunitySupport shows the rep's submission pipeline: issues still
// awaiting a volunteer's verification and the ones already verified.
func (h *Handler) ServeCommunitySupport(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Community Support Dashboard", "/")

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	pending, err := h.Issues.ListByStatuses(ctx, models.IssuePending)
	if err != nil {
		h.Log.Error("list pending issues failed", zap.Error(err))
	}
	verified, err := h.Issues.ListByStatuses(ctx, models.IssueVerified, models.IssueInProgress, models.IssueResolved)
	if err != nil {
		h.Log.Error("list verified issues failed", zap.Error(err))
	}

	templates.Render(w, r, "community_dashboard", communityData{
		BaseVM:   base,
		Pending:  pending,
		Verified: verified,
	})
}
