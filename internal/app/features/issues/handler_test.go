package issues_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/features/issues"
	issuestore "github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/sevahub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*issues.Handler, *testutil.Fixtures, *issuestore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := issuestore.New(db)

	handler := issues.NewHandler(store, nil, uierrors.NewErrorLogger(logger), nil, logger)
	return handler, testutil.NewFixtures(t, db), store
}

func TestHandleCreate_Success(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"student_name":     {"Lakshmi"},
		"age":              {"11"},
		"required_support": {"school fees"},
		"support_details":  {"Father lost his job"},
		"urgency_level":    {"high"},
		"contact_number":   {"+91 12345 67890"},
	}

	rep := testutil.CommunityUser()
	req := httptest.NewRequest("POST", "/issues", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, rep)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("issues: got %d, want 1", len(list))
	}

	issue := list[0]
	if issue.StudentName != "Lakshmi" {
		t.Errorf("student_name: got %q, want %q", issue.StudentName, "Lakshmi")
	}
	if issue.Status != models.IssuePending {
		t.Errorf("status: got %q, want %q", issue.Status, models.IssuePending)
	}
	if issue.SubmitterName != rep.Name {
		t.Errorf("submitter_name: got %q, want %q", issue.SubmitterName, rep.Name)
	}
	if issue.City != rep.City {
		t.Errorf("city: got %q, want %q", issue.City, rep.City)
	}
	// Contact numbers are stored in compact form.
	if issue.ContactNumber != "+911234567890" {
		t.Errorf("contact_number: got %q, want %q", issue.ContactNumber, "+911234567890")
	}
}

func TestHandleCreate_NonRepForbidden(t *testing.T) {
	handler, _, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"student_name":     {"Ramu"},
		"age":              {"10"},
		"required_support": {"books"},
		"urgency_level":    {"low"},
		"contact_number":   {"+911234567890"},
	}

	req := httptest.NewRequest("POST", "/issues", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := httptest.NewRecorder()

	// The forbidden page renders a template, which panics without a booted
	// template engine; no issue may be written either way.
	func() {
		defer func() { _ = recover() }()
		handler.HandleCreate(rec, req)
	}()

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("issues: got %d, want 0", len(list))
	}
}

func TestHandleVerify_Success(t *testing.T) {
	handler, fixtures, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Field Rep", "rep@example.com")
	issue := fixtures.CreateIssue(ctx, "Sita", rep)

	verifier := testutil.VolunteerUser()
	req := testutil.NewAuthenticatedRequest("POST", "/issues/"+issue.ID.Hex()+"/verify", verifier)
	req = testutil.WithChiURLParam(req, "id", issue.ID.Hex())
	rec := httptest.NewRecorder()

	handler.HandleVerify(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	got, err := store.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.IssueVerified {
		t.Errorf("status: got %q, want %q", got.Status, models.IssueVerified)
	}
	if got.VerifierName != verifier.Name {
		t.Errorf("verifier_name: got %q, want %q", got.VerifierName, verifier.Name)
	}
}

func TestHandleVerify_AlreadyVerified(t *testing.T) {
	handler, fixtures, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Field Rep", "rep@example.com")
	first := fixtures.CreateVolunteer(ctx, "First Volunteer", "first@example.com")
	issue := fixtures.CreateIssue(ctx, "Ramu", rep)
	if _, err := store.Verify(ctx, issue.ID, first.ID, first.DisplayName); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("POST", "/issues/"+issue.ID.Hex()+"/verify", testutil.VolunteerUser())
	req = testutil.WithChiURLParam(req, "id", issue.ID.Hex())
	rec := httptest.NewRecorder()

	handler.HandleVerify(rec, req)

	// A redirect with a flash, not an error page.
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "flash=") {
		t.Errorf("Location: got %q, want a flash message", location)
	}

	got, err := store.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.VerifiedBy == nil || *got.VerifiedBy != first.ID {
		t.Error("second verify overwrote the first verifier")
	}
}
