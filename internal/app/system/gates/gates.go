// Package gates provides handler-level authorization checks for handlers
// that sit on mixed-access routes, where route middleware can't express the
// role requirement. A gate renders the error page itself and returns the
// user context, so handlers read:
//
//	g := gates.RequireVolunteer(w, r)
//	if !g.OK {
//	    return
//	}
//
// Routes whose whole group shares one requirement should use
// auth.RequireSignedIn / auth.RequireRole middleware instead.
package gates

import (
	"net/http"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the outcome of a gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated, rendering the unauthorized
// page when not.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireVolunteer ensures the user is an authenticated volunteer.
func RequireVolunteer(w http.ResponseWriter, r *http.Request) Result {
	return requireRole(w, r, "Only volunteers can perform this action.", "volunteer")
}

// RequireCommunitySupport ensures the user is an authenticated
// community-support representative.
func RequireCommunitySupport(w http.ResponseWriter, r *http.Request) Result {
	return requireRole(w, r, "Only community-support representatives can perform this action.", "community-support")
}

// RequireDonorOrAdmin ensures the user may create donations.
func RequireDonorOrAdmin(w http.ResponseWriter, r *http.Request) Result {
	return requireRole(w, r, "Only donors and admins can perform this action.", "donor", "admin")
}

func requireRole(w http.ResponseWriter, r *http.Request, forbiddenMsg string, roles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	for _, want := range roles {
		if role == want {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}
	uierrors.RenderForbidden(w, r, forbiddenMsg, "/dashboard")
	return Result{OK: false}
}
