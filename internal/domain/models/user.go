// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used by view models when no site settings exist.
const DefaultSiteName = "SevaHub"

// Roles. A user has exactly one role; it selects the dashboard variant
// and the mutations the user may perform.
const (
	RoleDonor            = "donor"
	RoleVolunteer        = "volunteer"
	RoleAdmin            = "admin"
	RoleCommunitySupport = "community-support"
)

// AllRoles lists every role accepted at registration.
var AllRoles = []string{RoleDonor, RoleVolunteer, RoleAdmin, RoleCommunitySupport}

// User is the application-level profile for an identity. The document is
// keyed by the identity's ObjectID (users._id == identities._id), so a
// profile lookup by identity is a point read.
//
// Role-specific fields are present only for the matching role:
//   - volunteer: Location, EducationalQualification
//   - community-support: City
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	EmailCI     string             `bson:"email_ci" json:"email_ci"` // lowercase, diacritics-stripped
	DisplayName string             `bson:"display_name" json:"display_name"`
	Role        string             `bson:"role" json:"role"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`

	Location                 string `bson:"location,omitempty" json:"location,omitempty"`
	EducationalQualification string `bson:"educational_qualification,omitempty" json:"educational_qualification,omitempty"`
	City                     string `bson:"city,omitempty" json:"city,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
