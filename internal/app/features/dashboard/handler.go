// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/sevahub/internal/app/store/donations"
	"github.com/dalemusser/sevahub/internal/app/store/issues"
	"github.com/dalemusser/sevahub/internal/app/store/users"
	"github.com/dalemusser/sevahub/internal/app/system/authz"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const dashboardTimeout = 5 * time.Second

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Donations *donationstore.Store
	Issues    *issuestore.Store
	Users     *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Donations: donationstore.New(db),
		Issues:    issuestore.New(db),
		Users:     userstore.New(db),
	}
}

// ServeDashboard dispatches to the role-specific view. Every signed-in role
// lands somewhere: volunteers and community-support reps get their work
// queues, everyone else gets the module grid.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleVolunteer:
		h.ServeVolunteer(w, r)
	case models.RoleCommunitySupport:
		h.ServeCommunitySupport(w, r)
	case models.RoleAdmin:
		h.ServeAdmin(w, r)
	default:
		h.ServeGeneral(w, r)
	}
}
