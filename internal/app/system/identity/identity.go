// Package identity is the credential boundary: it owns the identities
// collection (email + bcrypt hash) and nothing else. Profile data lives in
// the users collection under the same _id, written by store/registration.
//
// Error kinds mirror what a hosted auth provider reports, so callers branch
// on sentinel errors rather than provider-specific codes.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/sevahub/internal/app/system/normalize"
	"github.com/dalemusser/sevahub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password; callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailInUse is returned when registering an email that already has
	// an identity.
	ErrEmailInUse = errors.New("an account with this email already exists")
	// ErrWeakPassword is returned when the password is shorter than
	// MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// Provider performs credential checks against the identities collection.
type Provider struct {
	c *mongo.Collection
}

// New returns a Provider over the given database.
func New(db *mongo.Database) *Provider {
	return &Provider{c: db.Collection("identities")}
}

// SignUp creates a new identity and returns it. The returned identity's ID
// is the key for the profile document the caller writes next.
func (p *Provider) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalize.Email(email)
	if len(password) < MinPasswordLen {
		return models.Identity{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := p.c.InsertOne(ctx, id); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Identity{}, ErrEmailInUse
		}
		return models.Identity{}, err
	}
	return id, nil
}

// SignIn verifies the email/password pair and returns the identity.
func (p *Provider) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	email = normalize.Email(email)

	var id models.Identity
	err := p.c.FindOne(ctx, bson.M{"email": email}).Decode(&id)
	switch {
	case err == mongo.ErrNoDocuments:
		return models.Identity{}, ErrInvalidCredentials
	case err != nil:
		return models.Identity{}, err
	}

	if bcrypt.CompareHashAndPassword(id.PasswordHash, []byte(password)) != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

// GetByEmail looks up an identity without checking credentials. Used by the
// Google OAuth callback, where Google has already verified the email.
func (p *Provider) GetByEmail(ctx context.Context, email string) (models.Identity, error) {
	var id models.Identity
	if err := p.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&id); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}
