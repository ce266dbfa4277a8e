package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func volunteerRequest(target string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:          primitive.NewObjectID().Hex(),
		DisplayName: "Test Volunteer",
		Email:       "volunteer@test.com",
		Role:        "volunteer",
	})
}

// nextProbe is a terminal handler that records whether the middleware let
// the request through.
func nextProbe() (http.Handler, *bool) {
	called := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestRequireSignedIn_PassesAuthenticatedUser(t *testing.T) {
	sm := newSessionManager(t)
	next, called := nextProbe()

	rec := httptest.NewRecorder()
	sm.RequireSignedIn(next).ServeHTTP(rec, volunteerRequest("/food-donation"))

	if !*called {
		t.Error("signed-in request should reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireSignedIn_RedirectsAnonymousHTMLToLogin(t *testing.T) {
	sm := newSessionManager(t)
	next, called := nextProbe()

	req := httptest.NewRequest("GET", "/food-donation", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(next).ServeHTTP(rec, req)

	if *called {
		t.Error("anonymous request must not reach the handler")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?return=") || !strings.Contains(location, "food-donation") {
		t.Errorf("Location: got %q, want a /login redirect carrying the return path", location)
	}
}

func TestRequireSignedIn_AnonymousHTMXGetsHXRedirect(t *testing.T) {
	sm := newSessionManager(t)
	next, _ := nextProbe()

	req := httptest.NewRequest("GET", "/food-donation", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login?return=") {
		t.Errorf("HX-Redirect: got %q, want a /login redirect", hx)
	}
}

func TestRequireSignedIn_AnonymousAPIGets401(t *testing.T) {
	sm := newSessionManager(t)
	next, _ := nextProbe()

	req := httptest.NewRequest("GET", "/food-donation", nil)
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for API callers, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	sm := newSessionManager(t)
	next, called := nextProbe()

	// Role comparison is case-insensitive on both sides.
	mw := sm.RequireRole("Volunteer")
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, volunteerRequest("/food-donation"))

	if !*called {
		t.Error("matching role should reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_WrongRoleHTMLRedirectsToDashboard(t *testing.T) {
	sm := newSessionManager(t)
	next, called := nextProbe()

	req := volunteerRequest("/admin-only")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireRole("admin")(next).ServeHTTP(rec, req)

	if *called {
		t.Error("wrong role must not reach the handler")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Location: got %q, want %q", location, "/dashboard")
	}
}

func TestRequireRole_WrongRoleHTMXGetsHXRedirect(t *testing.T) {
	sm := newSessionManager(t)
	next, _ := nextProbe()

	req := volunteerRequest("/admin-only")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	sm.RequireRole("admin")(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusForbidden, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); hx != "/dashboard" {
		t.Errorf("HX-Redirect: got %q, want %q", hx, "/dashboard")
	}
}

func TestRequireRole_WrongRoleAPIGets403(t *testing.T) {
	sm := newSessionManager(t)
	next, _ := nextProbe()

	rec := httptest.NewRecorder()
	sm.RequireRole("admin")(next).ServeHTTP(rec, volunteerRequest("/admin-only"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d for API callers, got %d", http.StatusForbidden, rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Error("API callers should get a plain 403, not a redirect")
	}
}

func TestRequireRole_AnonymousRedirectsToLogin(t *testing.T) {
	sm := newSessionManager(t)
	next, called := nextProbe()

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireRole("admin")(next).ServeHTTP(rec, req)

	if *called {
		t.Error("anonymous request must not reach the handler")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.HasPrefix(location, "/login?return=") {
		t.Errorf("Location: got %q, want a /login redirect", location)
	}
}
