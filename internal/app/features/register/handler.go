// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/store/registration"
	"github.com/dalemusser/sevahub/internal/app/system/auditlog"
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/inputval"
	"github.com/dalemusser/sevahub/internal/app/system/metrics"
	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/app/system/timeouts"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Registrar  *registration.Registrar
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, registrar *registration.Registrar, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Registrar:  registrar,
		AuditLog:   audit,
	}
}

type registerFormData struct {
	viewdata.BaseVM
	Errors []string
	Form   inputval.RegistrationInput
	Roles  []roleOption
}

type roleOption struct {
	Value string
	Label string
}

// Admin accounts are provisioned, not self-registered.
var selectableRoles = []roleOption{
	{Value: models.RoleDonor, Label: "Donor"},
	{Value: models.RoleVolunteer, Label: "Volunteer"},
	{Value: models.RoleCommunitySupport, Label: "Community Support"},
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /register                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create an account", "/login"),
		Form:   inputval.RegistrationInput{Role: models.RoleDonor},
		Roles:  selectableRoles,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse register form failed", err, "Invalid form data.", "/register")
		return
	}

	in := inputval.RegistrationInput{
		DisplayName:              normalize.Name(r.FormValue("display_name")),
		Email:                    normalize.Email(r.FormValue("email")),
		Password:                 r.FormValue("password"),
		ConfirmPassword:          r.FormValue("confirm_password"),
		Role:                     normalize.Role(r.FormValue("role")),
		Location:                 strings.TrimSpace(r.FormValue("location")),
		EducationalQualification: strings.TrimSpace(r.FormValue("educational_qualification")),
		City:                     strings.TrimSpace(r.FormValue("city")),
	}

	// Self-registration never grants admin.
	if in.Role == models.RoleAdmin {
		in.Role = ""
	}

	if msgs := inputval.Check(in); msgs != nil {
		h.renderFormWithErrors(w, r, msgs, in)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profile, err := h.Registrar.Register(ctx, registration.Input{
		DisplayName:              in.DisplayName,
		Email:                    in.Email,
		Password:                 in.Password,
		Role:                     in.Role,
		Location:                 in.Location,
		EducationalQualification: in.EducationalQualification,
		City:                     in.City,
	})
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		h.renderFormWithErrors(w, r, []string{"An account with this email already exists. Try signing in instead."}, in)
		return
	case errors.Is(err, identity.ErrWeakPassword):
		h.renderFormWithErrors(w, r, []string{"Password must be at least 6 characters."}, in)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "registration failed", err, "A server error occurred.", "/register")
		return
	}

	h.AuditLog.Registered(ctx, r, profile.ID, profile.Role)
	metrics.Registrations.WithLabelValues(profile.Role).Inc()

	// Sign the new account in right away.
	if err := h.SessionMgr.SignIn(w, r, profile.ID.Hex()); err != nil {
		h.Log.Error("post-registration sign-in failed", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/dashboard")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) renderFormWithErrors(w http.ResponseWriter, r *http.Request, msgs []string, in inputval.RegistrationInput) {
	in.Password = ""
	in.ConfirmPassword = ""
	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create an account", "/login"),
		Errors: msgs,
		Form:   in,
		Roles:  selectableRoles,
	})
}
