package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user whose email already
	// has a profile.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "donor"|"volunteer"|"admin"|"community-support"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a profile document after normalizing and validating
// fields. The caller supplies u.ID so the profile shares its _id with the
// user's identity; a zero ID gets a fresh ObjectID.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.DisplayName = normalize.Name(u.DisplayName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.Status == "" {
		u.Status = "active"
	}

	switch u.Role {
	case models.RoleDonor, models.RoleVolunteer, models.RoleAdmin, models.RoleCommunitySupport:
	default:
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CountByRole returns the number of users holding each role. Used by the
// admin dashboard.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.AllRoles))
	for _, role := range models.AllRoles {
		n, err := s.c.CountDocuments(ctx, bson.M{"role": role})
		if err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, nil
}
