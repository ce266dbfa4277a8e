package studentstore

import (
	"context"
	"time"

	"github.com/dalemusser/sevahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the students collection behind the education-aid pages.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("students")}
}

// List returns every student profile ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Student
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUnsponsored returns students still waiting for a sponsor, ordered by
// name.
func (s *Store) ListUnsponsored(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"sponsored": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Student
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one student profile.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Count returns the number of student profiles. Seeding runs only when the
// collection is empty.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// SeedDefaults inserts the starter student profiles shown on the
// education-aid page before real data exists. A non-empty collection is
// left alone.
func (s *Store) SeedDefaults(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	seed := []models.Student{
		{
			Name: "Ananya Sharma", Age: 12, Grade: "7th Standard",
			School: "Govt High School, Rajajinagar", Location: "Bengaluru",
			Story:       "Ananya lost her father last year and her mother works as a domestic helper. She is top of her class in mathematics.",
			MonthlyNeed: 1500, SponsorshipType: models.SponsorshipFull,
		},
		{
			Name: "Ravi Kumar", Age: 14, Grade: "9th Standard",
			School: "Municipal School, Kurla", Location: "Mumbai",
			Story:       "Ravi helps at his uncle's tea stall after school. He wants to become an engineer.",
			MonthlyNeed: 2000, SponsorshipType: models.SponsorshipFull,
		},
		{
			Name: "Meena Patel", Age: 10, Grade: "5th Standard",
			School: "Zilla Parishad School, Nashik", Location: "Nashik",
			Story:       "Meena walks five kilometres to school every day. Her family farms a small plot and cannot afford books.",
			MonthlyNeed: 1000, SponsorshipType: models.SponsorshipPartial,
		},
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(seed))
	for i, st := range seed {
		st.ID = primitive.NewObjectID()
		st.DocumentsVerified = true
		st.CreatedAt = now
		docs[i] = st
	}
	_, err = s.c.InsertMany(ctx, docs)
	return err
}
