// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists OAuth state tokens so the callback can verify the flow
// started here. States are single use: Validate deletes on match.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

type record struct {
	State     string    `bson:"_id"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Save stores a state token with its return URL and expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.c.InsertOne(ctx, record{
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt,
	})
	return err
}

// Validate consumes a state token. It returns the stored return URL and
// whether the token existed and had not expired.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	var rec record
	e := s.c.FindOneAndDelete(ctx, bson.M{"_id": state}).Decode(&rec)
	switch {
	case e == mongo.ErrNoDocuments:
		return "", false, nil
	case e != nil:
		return "", false, e
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return "", false, nil
	}
	return rec.ReturnURL, true, nil
}
