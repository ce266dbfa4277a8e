// Package registration performs the multi-document write behind sign-up:
// an identity, a profile, and for volunteers a roster record, all sharing
// one _id. The writes run in a Mongo transaction where the server supports
// one; on a standalone server they run sequentially and a failed profile
// write removes the identity so sign-up can be retried.
package registration

import (
	"context"

	"github.com/dalemusser/sevahub/internal/app/store/users"
	"github.com/dalemusser/sevahub/internal/app/store/volunteers"
	"github.com/dalemusser/sevahub/internal/app/system/identity"
	"github.com/dalemusser/sevahub/internal/app/system/txn"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Registrar coordinates the sign-up writes.
type Registrar struct {
	client     *mongo.Client
	db         *mongo.Database
	identities *identity.Provider
	users      *userstore.Store
	volunteers *volunteerstore.Store
	log        *zap.Logger
}

// New builds a Registrar over the given database.
func New(client *mongo.Client, db *mongo.Database, idp *identity.Provider, logger *zap.Logger) *Registrar {
	return &Registrar{
		client:     client,
		db:         db,
		identities: idp,
		users:      userstore.New(db),
		volunteers: volunteerstore.New(db),
		log:        logger,
	}
}

// Input carries the validated registration form.
type Input struct {
	DisplayName string
	Email       string
	Password    string
	Role        string

	Location                 string
	EducationalQualification string
	City                     string
}

// Register creates the identity, then writes the profile (and the roster
// record for volunteers) under a transaction. It returns the created
// profile.
//
// The identity insert happens first and outside the transaction: its unique
// email index is the duplicate check, and a duplicate must surface as
// identity.ErrEmailInUse before any profile exists.
func (rg *Registrar) Register(ctx context.Context, in Input) (models.User, error) {
	ident, err := rg.identities.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return models.User{}, err
	}

	var profile models.User
	usedTxn, err := txn.WithTransaction(ctx, rg.client, func(ctx context.Context) error {
		u := models.User{
			ID:          ident.ID,
			Email:       ident.Email,
			DisplayName: in.DisplayName,
			Role:        in.Role,
		}
		switch in.Role {
		case models.RoleVolunteer:
			u.Location = in.Location
			u.EducationalQualification = in.EducationalQualification
		case models.RoleCommunitySupport:
			u.City = in.City
		}

		created, err := rg.users.Create(ctx, u)
		if err != nil {
			return err
		}

		if in.Role == models.RoleVolunteer {
			_, err := rg.volunteers.Create(ctx, models.VolunteerRecord{
				ID:                       created.ID,
				DisplayName:              created.DisplayName,
				Email:                    created.Email,
				Location:                 created.Location,
				EducationalQualification: created.EducationalQualification,
			})
			if err != nil {
				return err
			}
		}

		profile = created
		return nil
	})
	if err != nil {
		// Without a transaction the identity survives a failed profile
		// write; remove it so the user can register again.
		if !usedTxn {
			rg.cleanupIdentity(ctx, ident)
		}
		return models.User{}, err
	}
	return profile, nil
}

func (rg *Registrar) cleanupIdentity(ctx context.Context, ident models.Identity) {
	if _, err := rg.db.Collection("identities").DeleteOne(ctx, bson.M{"_id": ident.ID}); err != nil {
		rg.log.Error("failed to remove identity after registration failure",
			zap.String("email", ident.Email),
			zap.Error(err))
	}
}
