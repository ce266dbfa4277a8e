// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/sevahub/internal/app/features/authgoogle"
	comingsoonfeature "github.com/dalemusser/sevahub/internal/app/features/comingsoon"
	dashboardfeature "github.com/dalemusser/sevahub/internal/app/features/dashboard"
	educationaidfeature "github.com/dalemusser/sevahub/internal/app/features/educationaid"
	errorsfeature "github.com/dalemusser/sevahub/internal/app/features/errors"
	fooddonationfeature "github.com/dalemusser/sevahub/internal/app/features/fooddonation"
	healthfeature "github.com/dalemusser/sevahub/internal/app/features/health"
	homefeature "github.com/dalemusser/sevahub/internal/app/features/home"
	issuesfeature "github.com/dalemusser/sevahub/internal/app/features/issues"
	loginfeature "github.com/dalemusser/sevahub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/sevahub/internal/app/features/logout"
	registerfeature "github.com/dalemusser/sevahub/internal/app/features/register"
	"github.com/dalemusser/sevahub/internal/app/store/audit"
	donationstore "github.com/dalemusser/sevahub/internal/app/store/donations"
	issuestore "github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/app/store/registration"
	studentstore "github.com/dalemusser/sevahub/internal/app/store/students"
	userstore "github.com/dalemusser/sevahub/internal/app/store/users"
	"github.com/dalemusser/sevahub/internal/app/system/auditlog"
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/livequery"
	"github.com/dalemusser/sevahub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	// Each views package registers its template set in init().
	_ "github.com/dalemusser/sevahub/internal/app/features/comingsoon/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/dashboard/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/educationaid/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/errors/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/fooddonation/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/issues/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/login/views"
	_ "github.com/dalemusser/sevahub/internal/app/features/register/views"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. SevaHub initializes the template engine,
// applies session and CSRF middleware, and mounts feature routers for every
// application area: home, auth, dashboards, the donation board, the
// sponsorship page, and community issues.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Role changes and disabled accounts take effect
	// immediately instead of at next sign-in.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Shared infrastructure.
	errLog := errorsfeature.NewErrorLogger(logger)
	idp := identity.New(db)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:   appCfg.AuditLogAuth,
		Action: appCfg.AuditLogAction,
	})
	loginLimiter := ratelimit.NewLoginLimiter()
	watcher := livequery.NewWatcher(db, logger)
	registrar := registration.New(deps.MongoClient, db, idp, logger)

	r := chi.NewRouter()

	// Global middleware: CSRF protection on all form posts, then the session
	// user loaded into context so auth.CurrentUser(r) works everywhere.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/")))
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, auditLogger,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, idp,
		auditLogger, loginLimiter, googleHandler.IsConfigured(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	registerHandler := registerfeature.NewHandler(sessionMgr, errLog, registrar, auditLogger, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(db, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Annamitra Seva: the food donation board
	donationHandler := fooddonationfeature.NewHandler(donationstore.New(db), watcher, errLog, auditLogger, logger)
	r.Mount("/food-donation", fooddonationfeature.Routes(donationHandler, sessionMgr))

	// Vidya Jyothi: education sponsorship
	eduHandler := educationaidfeature.NewHandler(studentstore.New(db), issuestore.New(db), errLog, logger)
	r.Mount("/education-aid", educationaidfeature.Routes(eduHandler, sessionMgr))

	// Community issues: report and verify students in need
	issueHandler := issuesfeature.NewHandler(issuestore.New(db), watcher, errLog, auditLogger, logger)
	r.Mount("/issues", issuesfeature.Routes(issueHandler, sessionMgr))

	// Announced programs without a build yet
	for _, m := range []struct{ path, title, desc string }{
		{"/ngo-support", "Suraksha Setu", "Partner NGOs request and receive bulk assistance."},
		{"/waste-donation", "PunarAsha", "Recyclable waste collected and routed for reuse."},
		{"/emergency-rescue", "Raksha Jyothi", "Rapid-response rescue coordination."},
		{"/shelter", "Jyothi Nilayam", "Shelter placement for people without housing."},
	} {
		h := comingsoonfeature.NewHandler(m.title, m.desc)
		r.Mount(m.path, comingsoonfeature.Routes(h, sessionMgr))
	}

	return r, nil
}
