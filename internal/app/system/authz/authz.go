// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/sevahub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), display name, ObjectID, and
// a found flag. If no user is present or the stored ID is malformed it
// returns "visitor", "", NilObjectID, false. ok=true always means a valid
// authenticated user with a parseable ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.DisplayName, userID, true
}

// HasAnyRole reports whether the current request's user has any of the
// given roles. False when not signed in.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsDonor reports whether the current request's user is a donor.
func IsDonor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "donor"
}

// IsVolunteer reports whether the current request's user is a volunteer.
func IsVolunteer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "volunteer"
}

// IsCommunitySupport reports whether the current request's user is a
// community-support representative.
func IsCommunitySupport(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "community-support"
}

// CanCreateDonations reports whether the current user may create food
// donations. Donors create their own; admins can create on behalf of
// walk-in donors.
func CanCreateDonations(r *http.Request) bool {
	return HasAnyRole(r, "donor", "admin")
}
