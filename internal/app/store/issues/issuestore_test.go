package issuestore_test

import (
	"errors"
	"testing"

	issuestore "github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/sevahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_ForcesPendingStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Test Rep", "rep@example.com")

	created, err := store.Create(ctx, models.CommunityIssue{
		StudentName:     "Lakshmi",
		Age:             11,
		RequiredSupport: "school fees",
		SupportDetails:  "Father lost his job",
		UrgencyLevel:    models.UrgencyHigh,
		ContactNumber:   "+91 12345 67890",
		SubmittedBy:     rep.ID,
		SubmitterName:   rep.DisplayName,
		SubmitterEmail:  rep.Email,
		City:            rep.City,

		Status: models.IssueResolved, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != models.IssuePending {
		t.Errorf("status: got %q, want %q", created.Status, models.IssuePending)
	}
	if created.VerifiedBy != nil || created.VerifierName != "" {
		t.Error("verification fields should be empty on create")
	}
}

func TestVerify_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Test Rep", "rep@example.com")
	verifier := fixtures.CreateCommunityRep(ctx, "Senior Rep", "senior@example.com")
	issue := fixtures.CreateIssue(ctx, "Ramu", rep)

	verified, err := store.Verify(ctx, issue.ID, verifier.ID, verifier.DisplayName)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if verified.Status != models.IssueVerified {
		t.Errorf("status: got %q, want %q", verified.Status, models.IssueVerified)
	}
	if verified.VerifiedBy == nil || *verified.VerifiedBy != verifier.ID {
		t.Error("verified_by not recorded")
	}
	if verified.VerifiedAt == nil {
		t.Error("verified_at not recorded")
	}
}

func TestVerify_SecondVerifierLoses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Test Rep", "rep@example.com")
	first := fixtures.CreateCommunityRep(ctx, "First Rep", "first@example.com")
	second := fixtures.CreateCommunityRep(ctx, "Second Rep", "second@example.com")
	issue := fixtures.CreateIssue(ctx, "Sita", rep)

	if _, err := store.Verify(ctx, issue.ID, first.ID, first.DisplayName); err != nil {
		t.Fatalf("first Verify failed: %v", err)
	}

	_, err := store.Verify(ctx, issue.ID, second.ID, second.DisplayName)
	if !errors.Is(err, issuestore.ErrAlreadyVerified) {
		t.Fatalf("second Verify: got %v, want ErrAlreadyVerified", err)
	}

	got, err := store.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.VerifiedBy == nil || *got.VerifiedBy != first.ID {
		t.Error("second verify overwrote the first verifier")
	}
}

func TestVerify_MissingIssue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Verify(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "Nobody")
	if !errors.Is(err, issuestore.ErrNotFound) {
		t.Fatalf("Verify on missing issue: got %v, want ErrNotFound", err)
	}
}

func TestListByStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep := fixtures.CreateCommunityRep(ctx, "Test Rep", "rep@example.com")
	fixtures.CreateIssue(ctx, "Pending Kid", rep)
	verifiedIssue := fixtures.CreateIssue(ctx, "Verified Kid", rep)
	if _, err := store.Verify(ctx, verifiedIssue.ID, rep.ID, rep.DisplayName); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	pending, err := store.ListByStatuses(ctx, models.IssuePending)
	if err != nil {
		t.Fatalf("ListByStatuses(pending) failed: %v", err)
	}
	if len(pending) != 1 || pending[0].StudentName != "Pending Kid" {
		t.Errorf("pending list: got %d items, want the one pending issue", len(pending))
	}

	verified, err := store.ListByStatuses(ctx, models.IssueVerified, models.IssueInProgress)
	if err != nil {
		t.Fatalf("ListByStatuses(verified) failed: %v", err)
	}
	if len(verified) != 1 || verified[0].StudentName != "Verified Kid" {
		t.Errorf("verified list: got %d items, want the one verified issue", len(verified))
	}
}

func TestListBySubmitter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := issuestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	repA := fixtures.CreateCommunityRep(ctx, "Rep A", "a@example.com")
	repB := fixtures.CreateCommunityRep(ctx, "Rep B", "b@example.com")
	fixtures.CreateIssue(ctx, "From A", repA)
	fixtures.CreateIssue(ctx, "From B", repB)

	mine, err := store.ListBySubmitter(ctx, repA.ID)
	if err != nil {
		t.Fatalf("ListBySubmitter failed: %v", err)
	}
	if len(mine) != 1 || mine[0].StudentName != "From A" {
		t.Errorf("ListBySubmitter: got %d items, want only Rep A's issue", len(mine))
	}
}
