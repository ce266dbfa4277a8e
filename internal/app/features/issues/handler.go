// internal/app/features/issues/handler.go
package issues

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/app/system/auditlog"
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/dalemusser/sevahub/internal/app/system/authz"
	"github.com/dalemusser/sevahub/internal/app/system/gates"
	"github.com/dalemusser/sevahub/internal/app/system/inputval"
	"github.com/dalemusser/sevahub/internal/app/system/livequery"
	"github.com/dalemusser/sevahub/internal/app/system/timeouts"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Issues   *issuestore.Store
	Watcher  *livequery.Watcher
	AuditLog *auditlog.Logger
}

func NewHandler(issues *issuestore.Store, watcher *livequery.Watcher, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Issues:   issues,
		Watcher:  watcher,
		AuditLog: audit,
	}
}

type issueBoardData struct {
	viewdata.BaseVM
	Issues    []models.CommunityIssue
	CanSubmit bool
	CanVerify bool
	Flash     string
}

type issueFormData struct {
	viewdata.BaseVM
	Errors    []string
	Form      inputval.IssueInput
	Urgencies []string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /issues                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeBoard lists community issues. Community-support reps submit them,
// volunteers verify pending ones, and donors and admins follow the list to
// see verified needs.
func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Community Issues", "/dashboard")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Issues.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list issues failed", err, "A server error occurred.", "/dashboard")
		return
	}

	templates.Render(w, r, "issue_board", issueBoardData{
		BaseVM:    base,
		Issues:    list,
		CanSubmit: authz.IsCommunitySupport(r),
		CanVerify: authz.IsVolunteer(r),
		Flash:     query.Get(r, "flash"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /issues/new                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNewForm(w http.ResponseWriter, r *http.Request) {
	if g := gates.RequireCommunitySupport(w, r); !g.OK {
		return
	}

	templates.Render(w, r, "issue_new", issueFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Report a Student in Need", "/issues"),
		Urgencies: models.UrgencyLevels,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /issues                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireCommunitySupport(w, r)
	if !g.OK {
		return
	}
	u, _ := auth.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse issue form failed", err, "Invalid form data.", "/issues")
		return
	}

	age, _ := strconv.Atoi(r.FormValue("age"))
	in := inputval.IssueInput{
		StudentName:      r.FormValue("student_name"),
		Age:              age,
		RequiredSupport:  r.FormValue("required_support"),
		SupportDetails:   r.FormValue("support_details"),
		UrgencyLevel:     r.FormValue("urgency_level"),
		ContactNumber:    r.FormValue("contact_number"),
		AlternateContact: r.FormValue("alternate_contact"),
	}
	if msgs := inputval.Check(in); msgs != nil {
		templates.Render(w, r, "issue_new", issueFormData{
			BaseVM:    viewdata.NewBaseVM(r, "Report a Student in Need", "/issues"),
			Errors:    msgs,
			Form:      in,
			Urgencies: models.UrgencyLevels,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	issue, err := h.Issues.Create(ctx, models.CommunityIssue{
		StudentName:      in.StudentName,
		Age:              in.Age,
		RequiredSupport:  in.RequiredSupport,
		SupportDetails:   in.SupportDetails,
		UrgencyLevel:     in.UrgencyLevel,
		ContactNumber:    in.ContactNumber,
		AlternateContact: in.AlternateContact,
		SubmittedBy:      g.UserID,
		SubmitterName:    g.Name,
		SubmitterEmail:   u.Email,
		City:             u.City,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create issue failed", err, "A server error occurred.", "/issues")
		return
	}

	h.AuditLog.IssueSubmitted(ctx, r, g.UserID, issue.ID)
	h.Log.Info("issue submitted",
		zap.String("issue_id", issue.ID.Hex()),
		zap.String("submitted_by", g.UserID.Hex()),
		zap.String("urgency", issue.UrgencyLevel))

	h.redirectWithFlash(w, r, "Issue submitted for verification.")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /issues/{id}/verify                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireVolunteer(w, r)
	if !g.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad issue id", err, "That issue doesn't exist.", "/issues")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	issue, err := h.Issues.Verify(ctx, id, g.UserID, g.Name)
	switch {
	case errors.Is(err, issuestore.ErrAlreadyVerified):
		h.redirectWithFlash(w, r, "That issue was already verified.")
		return
	case errors.Is(err, issuestore.ErrNotFound):
		h.redirectWithFlash(w, r, "That issue no longer exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "verify issue failed", err, "A server error occurred.", "/issues")
		return
	}

	h.AuditLog.IssueVerified(ctx, r, g.UserID, issue.ID)
	h.Log.Info("issue verified",
		zap.String("issue_id", issue.ID.Hex()),
		zap.String("verified_by", g.UserID.Hex()))

	h.redirectWithFlash(w, r, "Issue verified. Donors can now see it.")
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, msg string) {
	dest := "/issues?flash=" + url.QueryEscape(msg)
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
