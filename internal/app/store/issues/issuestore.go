// Package issuestore owns the community_issues collection.
//
// Verify mirrors the donation claim: a conditional update on the pending
// status so two community-support reps can't both verify the same issue.
package issuestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyVerified is returned when verifying an issue that is no
	// longer pending.
	ErrAlreadyVerified = errors.New("issue has already been verified")
	// ErrNotFound is returned when the issue does not exist.
	ErrNotFound = errors.New("issue not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("community_issues")}
}

// Create inserts a new issue in pending status.
func (s *Store) Create(ctx context.Context, is models.CommunityIssue) (models.CommunityIssue, error) {
	is.ID = primitive.NewObjectID()
	is.StudentName = htmlsanitize.Strict(normalize.Name(is.StudentName))
	is.RequiredSupport = htmlsanitize.Strict(is.RequiredSupport)
	is.SupportDetails = htmlsanitize.Strict(is.SupportDetails)
	is.ContactNumber = normalize.Phone(is.ContactNumber)
	is.AlternateContact = normalize.Phone(is.AlternateContact)
	is.Status = models.IssuePending
	is.VerifiedBy = nil
	is.VerifierName = ""
	is.VerifiedAt = nil

	now := time.Now().UTC()
	is.CreatedAt = now
	is.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, is); err != nil {
		return models.CommunityIssue{}, err
	}
	return is, nil
}

// GetByID loads one issue.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommunityIssue, error) {
	var is models.CommunityIssue
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&is)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &is, nil
}

// List returns every issue, newest first.
func (s *Store) List(ctx context.Context) ([]models.CommunityIssue, error) {
	return s.find(ctx, bson.M{})
}

// ListByStatuses returns issues in any of the given statuses, newest first.
func (s *Store) ListByStatuses(ctx context.Context, statuses ...string) ([]models.CommunityIssue, error) {
	return s.find(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

// ListBySubmitter returns issues one user submitted, newest first.
func (s *Store) ListBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]models.CommunityIssue, error) {
	return s.find(ctx, bson.M{"submitted_by": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.CommunityIssue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CommunityIssue
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Verify marks a pending issue verified by the given rep. The filter
// includes the pending status; a concurrent verify loses with
// ErrAlreadyVerified.
func (s *Store) Verify(ctx context.Context, issueID, verifierID primitive.ObjectID, verifierName string) (*models.CommunityIssue, error) {
	now := time.Now().UTC()
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": issueID, "status": models.IssuePending},
		bson.M{"$set": bson.M{
			"status":        models.IssueVerified,
			"verified_by":   verifierID,
			"verifier_name": verifierName,
			"verified_at":   now,
			"updated_at":    now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var is models.CommunityIssue
	err := res.Decode(&is)
	if err == mongo.ErrNoDocuments {
		if _, getErr := s.GetByID(ctx, issueID); getErr == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyVerified
	}
	if err != nil {
		return nil, err
	}
	return &is, nil
}

// CountByStatus returns issue counts per status for dashboards.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	statuses := []string{models.IssuePending, models.IssueVerified, models.IssueInProgress, models.IssueResolved}
	counts := make(map[string]int64, len(statuses))
	for _, st := range statuses {
		n, err := s.c.CountDocuments(ctx, bson.M{"status": st})
		if err != nil {
			return nil, err
		}
		counts[st] = n
	}
	return counts, nil
}
