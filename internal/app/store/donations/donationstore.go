// Package donationstore owns the food_donations collection.
//
// Claim uses a conditional update keyed on the current status, so two
// volunteers racing for the same donation resolve on the server: exactly
// one update matches, the other gets ErrAlreadyAssigned.
package donationstore

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
	// ErrAlreadyAssigned is returned when claiming a donation that is no
	// longer pending.
	ErrAlreadyAssigned = errors.New("donation has already been assigned")
	// ErrNotFound is returned when the donation does not exist.
	ErrNotFound  = errors.New("donation not found")
	errBadStatus = errors.New("unrecognized donation status")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("food_donations")}
}

// Create inserts a new donation in pending status.
func (s *Store) Create(ctx context.Context, d models.FoodDonation) (models.FoodDonation, error) {
	d.ID = primitive.NewObjectID()
	d.Title = htmlsanitize.Strict(normalize.Name(d.Title))
	d.Description = htmlsanitize.Strict(d.Description)
	d.FoodType = htmlsanitize.Strict(d.FoodType)
	d.Quantity = htmlsanitize.Strict(d.Quantity)
	d.Location = htmlsanitize.Strict(d.Location)
	d.Status = models.DonationPending
	d.VolunteerID = nil
	d.VolunteerName = ""
	d.AssignedAt = nil
	d.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.FoodDonation{}, err
	}
	return d, nil
}

// GetByID loads one donation.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FoodDonation, error) {
	var d models.FoodDonation
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &d, nil
}

// List returns donations newest first, optionally filtered by status.
// An empty status returns every donation.
func (s *Store) List(ctx context.Context, status string) ([]models.FoodDonation, error) {
	filter := bson.M{}
	if status != "" {
		valid := false
		for _, st := range models.DonationStatuses {
			if status == st {
				valid = true
				break
			}
		}
		if !valid {
			return nil, errBadStatus
		}
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FoodDonation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDonor returns a donor's own donations, newest first.
func (s *Store) ListByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.FoodDonation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"donor_id": donorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FoodDonation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByVolunteer returns donations a volunteer has claimed, newest first.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.FoodDonation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"volunteer_id": volunteerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FoodDonation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Claim assigns a pending donation to a volunteer. The filter includes the
// pending status, so a concurrent claim loses cleanly instead of
// overwriting.
func (s *Store) Claim(ctx context.Context, donationID, volunteerID primitive.ObjectID, volunteerName string) (*models.FoodDonation, error) {
	now := time.Now().UTC()
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": donationID, "status": models.DonationPending},
		bson.M{"$set": bson.M{
			"status":         models.DonationAssigned,
			"volunteer_id":   volunteerID,
			"volunteer_name": volunteerName,
			"assigned_at":    now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var d models.FoodDonation
	err := res.Decode(&d)
	if err == mongo.ErrNoDocuments {
		// Either the donation doesn't exist or someone else got it first.
		if _, getErr := s.GetByID(ctx, donationID); getErr == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyAssigned
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountByStatus returns donation counts per status for dashboards.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.DonationStatuses))
	for _, st := range models.DonationStatuses {
		n, err := s.c.CountDocuments(ctx, bson.M{"status": st})
		if err != nil {
			return nil, err
		}
		counts[st] = n
	}
	return counts, nil
}
