package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user profile with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, displayName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		EmailCI:     text.Fold(email),
		DisplayName: displayName,
		Role:        role,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch role {
	case models.RoleVolunteer:
		user.Location = "Test Town"
		user.EducationalQualification = "Graduate"
	case models.RoleCommunitySupport:
		user.City = "Test City"
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleAdmin)
}

// CreateDonor creates a test donor user.
func (f *Fixtures) CreateDonor(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleDonor)
}

// CreateVolunteer creates a test volunteer user.
func (f *Fixtures) CreateVolunteer(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleVolunteer)
}

// CreateCommunityRep creates a test community-support user.
func (f *Fixtures) CreateCommunityRep(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleCommunitySupport)
}

// CreateDisabledUser creates a test user with disabled status.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, displayName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		EmailCI:     text.Fold(email),
		DisplayName: displayName,
		Role:        models.RoleDonor,
		Status:      "disabled",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create disabled test user: %v", err)
	}
	return user
}

// CreateDonation creates a pending food donation owned by the given donor.
func (f *Fixtures) CreateDonation(ctx context.Context, title string, donor models.User) models.FoodDonation {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.FoodDonation{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test donation description",
		FoodType:    "cooked meals",
		Quantity:    "serves 20",
		Location:    "Test Kitchen, Test Town",
		PickupTime:  now.Add(4 * time.Hour),
		DonorID:     donor.ID,
		DonorName:   donor.DisplayName,
		Status:      models.DonationPending,
		CreatedAt:   now,
	}

	if _, err := f.db.Collection("food_donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	return d
}

// CreateIssue creates a pending community issue submitted by the given rep.
func (f *Fixtures) CreateIssue(ctx context.Context, studentName string, submitter models.User) models.CommunityIssue {
	f.t.Helper()

	now := time.Now().UTC()
	is := models.CommunityIssue{
		ID:              primitive.NewObjectID(),
		StudentName:     studentName,
		Age:             12,
		RequiredSupport: "school fees",
		SupportDetails:  "Test support details",
		UrgencyLevel:    models.UrgencyMedium,
		ContactNumber:   "+911234567890",
		SubmittedBy:     submitter.ID,
		SubmitterName:   submitter.DisplayName,
		SubmitterEmail:  submitter.Email,
		City:            submitter.City,
		Status:          models.IssuePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("community_issues").InsertOne(ctx, is); err != nil {
		f.t.Fatalf("failed to create test issue: %v", err)
	}
	return is
}

// CreateStudent creates an unsponsored education-aid student.
func (f *Fixtures) CreateStudent(ctx context.Context, name string) models.Student {
	f.t.Helper()

	st := models.Student{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Age:               10,
		Grade:             "5th",
		School:            "Test Primary School",
		Location:          "Test Town",
		Story:             "Test story",
		MonthlyNeed:       1500,
		DocumentsVerified: true,
		CreatedAt:         time.Now().UTC(),
	}

	if _, err := f.db.Collection("students").InsertOne(ctx, st); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return st
}
