package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/features/login"
	"github.com/dalemusser/sevahub/internal/app/store/registration"
	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/ratelimit"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/sevahub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	idp := identity.New(db)
	handler := login.NewHandler(db, sessionMgr, errLog, idp, nil, ratelimit.NewLoginLimiter(), false, logger)
	return handler, db
}

func registerDonor(t *testing.T, db *mongo.Database, email, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rg := registration.New(db.Client(), db, identity.New(db), zap.NewNop())
	if _, err := rg.Register(ctx, registration.Input{
		DisplayName: "Test Donor",
		Email:       email,
		Password:    password,
		Role:        models.RoleDonor,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func postLogin(handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failure paths render a template, which panics without a booted
	// template engine; successes redirect before rendering.
	func() {
		defer func() { _ = recover() }()
		handler.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, db := newTestHandler(t)
	registerDonor(t, db, "donor@example.com", "secret-pass")

	rec := postLogin(handler, url.Values{
		"email":    {"donor@example.com"},
		"password": {"secret-pass"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Location: got %q, want %q", location, "/dashboard")
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_CaseInsensitiveEmail(t *testing.T) {
	handler, db := newTestHandler(t)
	registerDonor(t, db, "donor@example.com", "secret-pass")

	rec := postLogin(handler, url.Values{
		"email":    {"  DONOR@EXAMPLE.COM  "},
		"password": {"secret-pass"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d (email should be normalized)", http.StatusSeeOther, rec.Code)
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	handler, db := newTestHandler(t)
	registerDonor(t, db, "donor@example.com", "secret-pass")

	rec := postLogin(handler, url.Values{
		"email":    {"donor@example.com"},
		"password": {"wrong-pass"},
	})

	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			t.Error("session cookie should not be set for a wrong password")
		}
	}
}

func TestHandleLoginPost_UnknownEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postLogin(handler, url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	})

	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			t.Error("session cookie should not be set for an unknown email")
		}
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	handler, db := newTestHandler(t)
	registerDonor(t, db, "donor@example.com", "secret-pass")

	// Exhaust the per-account allowance with bad passwords.
	for i := 0; i < 6; i++ {
		postLogin(handler, url.Values{
			"email":    {"donor@example.com"},
			"password": {"wrong-pass"},
		})
	}

	// Even the correct password is refused while the limit holds.
	rec := postLogin(handler, url.Values{
		"email":    {"donor@example.com"},
		"password": {"secret-pass"},
	})

	if rec.Code == http.StatusSeeOther {
		t.Error("rate-limited login should not redirect to the dashboard")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	handler, db := newTestHandler(t)
	registerDonor(t, db, "donor@example.com", "secret-pass")

	rec := postLogin(handler, url.Values{
		"email":    {"donor@example.com"},
		"password": {"secret-pass"},
		"return":   {"/food-donation"},
	})

	if location := rec.Header().Get("Location"); location != "/food-donation" {
		t.Errorf("Location: got %q, want %q", location, "/food-donation")
	}
}
