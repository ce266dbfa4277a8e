package registration_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/sevahub/internal/app/store/registration"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/indexes"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/sevahub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newRegistrar(t *testing.T) (*registration.Registrar, *identity.Provider, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// The unique email index is the duplicate check; without it duplicate
	// registrations would both succeed.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	idp := identity.New(db)
	rg := registration.New(db.Client(), db, idp, zap.NewNop())
	return rg, idp, testutil.NewFixtures(t, db)
}

func TestRegister_Donor(t *testing.T) {
	rg, idp, _ := newRegistrar(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, err := rg.Register(ctx, registration.Input{
		DisplayName: "Asha Donor",
		Email:       "asha@example.com",
		Password:    "secret-pass",
		Role:        models.RoleDonor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Role != models.RoleDonor {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleDonor)
	}

	// Identity and profile must share the same _id.
	ident, err := idp.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if ident.ID != user.ID {
		t.Error("identity and profile IDs differ")
	}

	// Credentials must verify.
	if _, err := idp.SignIn(ctx, "asha@example.com", "secret-pass"); err != nil {
		t.Errorf("SignIn after Register failed: %v", err)
	}
}

func TestRegister_VolunteerWritesRosterRecord(t *testing.T) {
	rg, _, fixtures := newRegistrar(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, err := rg.Register(ctx, registration.Input{
		DisplayName:              "Vikram Volunteer",
		Email:                    "vikram@example.com",
		Password:                 "secret-pass",
		Role:                     models.RoleVolunteer,
		Location:                 "Hyderabad",
		EducationalQualification: "B.Sc.",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Location != "Hyderabad" {
		t.Errorf("location: got %q, want %q", user.Location, "Hyderabad")
	}

	n, err := fixtures.DB().Collection("volunteers").CountDocuments(ctx, bson.M{"_id": user.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("volunteer roster records: got %d, want 1", n)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rg, _, _ := newRegistrar(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := registration.Input{
		DisplayName: "First User",
		Email:       "dup@example.com",
		Password:    "secret-pass",
		Role:        models.RoleDonor,
	}
	if _, err := rg.Register(ctx, in); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	in.DisplayName = "Second User"
	_, err := rg.Register(ctx, in)
	if !errors.Is(err, identity.ErrEmailInUse) {
		t.Fatalf("duplicate Register: got %v, want ErrEmailInUse", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	rg, _, _ := newRegistrar(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := rg.Register(ctx, registration.Input{
		DisplayName: "Weak User",
		Email:       "weak@example.com",
		Password:    "123",
		Role:        models.RoleDonor,
	})
	if !errors.Is(err, identity.ErrWeakPassword) {
		t.Fatalf("weak password Register: got %v, want ErrWeakPassword", err)
	}
}
