// internal/app/features/educationaid/handler.go
package educationaid

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/app/store/students"
	"github.com/dalemusser/sevahub/internal/app/system/timeouts"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Students *studentstore.Store
	Issues   *issuestore.Store
}

func NewHandler(students *studentstore.Store, issues *issuestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Students: students,
		Issues:   issues,
	}
}

type pageData struct {
	viewdata.BaseVM
	Students       []models.Student
	VerifiedIssues []models.CommunityIssue
}

// ServePage renders the Vidya Jyothi sponsorship page: student cards
// awaiting sponsors plus community issues that passed verification, so
// donors see both curated students and field-reported needs in one place.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Vidya Jyothi", "/dashboard")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	students, err := h.Students.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list students failed", err, "A server error occurred.", "/dashboard")
		return
	}

	// Verified issues are supplementary; if the query fails the student
	// cards still render.
	verified, err := h.Issues.ListByStatuses(ctx, models.IssueVerified, models.IssueInProgress)
	if err != nil {
		h.Log.Error("list verified issues failed", zap.Error(err))
	}

	templates.Render(w, r, "educationaid_page", pageData{
		BaseVM:         base,
		Students:       students,
		VerifiedIssues: verified,
	})
}
