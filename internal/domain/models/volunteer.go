// internal/domain/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VolunteerRecord is the denormalized copy of a volunteer's profile kept in
// the volunteers collection, written alongside the User document when a
// volunteer registers. It shares the user's _id. The registration store
// writes both documents in one transaction where the server supports it;
// see store/registration.
type VolunteerRecord struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName              string             `bson:"display_name" json:"display_name"`
	Email                    string             `bson:"email" json:"email"`
	Location                 string             `bson:"location" json:"location"`
	EducationalQualification string             `bson:"educational_qualification" json:"educational_qualification"`
	IsActive                 bool               `bson:"is_active" json:"is_active"`
	CreatedAt                time.Time          `bson:"created_at" json:"created_at"`
}
