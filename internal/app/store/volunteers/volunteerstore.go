package volunteerstore

import (
	"context"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the volunteers collection, the roster the coordination views
// read. A volunteer record shares its _id with the user's profile document.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteers")}
}

// Create inserts a roster record for a newly registered volunteer. Called
// inside the registration transaction alongside the profile insert.
func (s *Store) Create(ctx context.Context, v models.VolunteerRecord) (models.VolunteerRecord, error) {
	v.DisplayName = normalize.Name(v.DisplayName)
	v.Email = normalize.Email(v.Email)
	v.IsActive = true
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.VolunteerRecord{}, err
	}
	return v, nil
}

// GetByID loads one roster record.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VolunteerRecord, error) {
	var v models.VolunteerRecord
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListActive returns active volunteers ordered by name.
func (s *Store) ListActive(ctx context.Context) ([]models.VolunteerRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.VolunteerRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetActive flips the availability flag.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active}})
	return err
}
