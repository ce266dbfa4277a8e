// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/store/users"
	"github.com/dalemusser/sevahub/internal/app/system/auditlog"
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/metrics"
	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/app/system/ratelimit"
	"github.com/dalemusser/sevahub/internal/app/system/timeouts"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Identities    *identity.Provider
	Users         *userstore.Store
	AuditLog      *auditlog.Logger
	Limiter       *ratelimit.LoginLimiter
	GoogleEnabled bool
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	idp *identity.Provider,
	audit *auditlog.Logger,
	limiter *ratelimit.LoginLimiter,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		Identities:    idp,
		Users:         userstore.New(db),
		AuditLog:      audit,
		Limiter:       limiter,
		GoogleEnabled: googleEnabled,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		h.AuditLog.LoginRateLimited(ctx, r, email)
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		h.renderFormWithError(w, r, reason, email, ret)
		return
	}

	ident, err := h.Identities.SignIn(ctx, email, password)
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		h.AuditLog.LoginFailed(ctx, r, email)
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		h.renderFormWithError(w, r, "Invalid email or password.", email, ret)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "identity sign-in failed", err, "A server error occurred.", "/login")
		return
	}

	u, err := h.Users.GetByID(ctx, ident.ID)
	if err != nil {
		// An identity without a profile means registration was interrupted.
		h.Log.Warn("identity has no profile", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, "Your account setup is incomplete. Please register again.", email, ret)
		return
	}
	if normalize.Status(u.Status) == "disabled" {
		h.renderFormWithError(w, r, "Your account is currently disabled. Please contact an administrator.", email, ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "A server error occurred.", "/login")
		return
	}

	h.Limiter.ResetEmail(email)
	h.AuditLog.LoginSuccess(ctx, r, u.ID, "password", email)
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	dest := urlutil.SafeReturn(ret, "", "/dashboard")
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}
