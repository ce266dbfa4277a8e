// internal/app/features/fooddonation/handler.go
package fooddonation

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	uierrors "github.com/dalemusser/sevahub/internal/app/features/errors"
	"github.com/dalemusser/sevahub/internal/app/store/donations"
	"github.com/dalemusser/sevahub/internal/app/system/auditlog"
	"github.com/dalemusser/sevahub/internal/app/system/authz"
	"github.com/dalemusser/sevahub/internal/app/system/gates"
	"github.com/dalemusser/sevahub/internal/app/system/inputval"
	"github.com/dalemusser/sevahub/internal/app/system/livequery"
	"github.com/dalemusser/sevahub/internal/app/system/timeouts"
	"github.com/dalemusser/sevahub/internal/app/system/viewdata"
	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Donations *donationstore.Store
	Watcher   *livequery.Watcher
	AuditLog  *auditlog.Logger
}

func NewHandler(donations *donationstore.Store, watcher *livequery.Watcher, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		ErrLog:    errLog,
		Donations: donations,
		Watcher:   watcher,
		AuditLog:  audit,
	}
}

type boardData struct {
	viewdata.BaseVM
	Donations    []models.FoodDonation
	StatusFilter string
	Statuses     []string
	CanCreate    bool
	IsVolunteer  bool
	Flash        string
}

type createFormData struct {
	viewdata.BaseVM
	Errors []string
	Form   inputval.DonationInput
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /food-donation                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Annamitra Seva", "/dashboard")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status := query.Get(r, "status")
	donations, err := h.Donations.List(ctx, status)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donations failed", err, "A server error occurred.", "/dashboard")
		return
	}

	templates.Render(w, r, "donation_board", boardData{
		BaseVM:       base,
		Donations:    donations,
		StatusFilter: status,
		Statuses:     models.DonationStatuses,
		CanCreate:    authz.CanCreateDonations(r),
		IsVolunteer:  authz.IsVolunteer(r),
		Flash:        query.Get(r, "flash"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /food-donation/new                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCreateForm(w http.ResponseWriter, r *http.Request) {
	if g := gates.RequireDonorOrAdmin(w, r); !g.OK {
		return
	}

	templates.Render(w, r, "donation_new", createFormData{
		BaseVM: viewdata.NewBaseVM(r, "Post a Donation", "/food-donation"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /food-donation                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireDonorOrAdmin(w, r)
	if !g.OK {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse donation form failed", err, "Invalid form data.", "/food-donation")
		return
	}

	in := inputval.DonationInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		FoodType:    r.FormValue("food_type"),
		Quantity:    r.FormValue("quantity"),
		Location:    r.FormValue("location"),
		PickupTime:  r.FormValue("pickup_time"),
	}
	msgs := inputval.Check(in)

	pickupAt, perr := time.Parse("2006-01-02T15:04", in.PickupTime)
	if perr != nil && in.PickupTime != "" {
		msgs = append(msgs, "Pickup time is not a valid date and time.")
	}
	if msgs != nil {
		templates.Render(w, r, "donation_new", createFormData{
			BaseVM: viewdata.NewBaseVM(r, "Post a Donation", "/food-donation"),
			Errors: msgs,
			Form:   in,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.Create(ctx, models.FoodDonation{
		Title:       in.Title,
		Description: in.Description,
		FoodType:    in.FoodType,
		Quantity:    in.Quantity,
		Location:    in.Location,
		PickupTime:  pickupAt,
		DonorID:     g.UserID,
		DonorName:   g.Name,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create donation failed", err, "A server error occurred.", "/food-donation")
		return
	}

	h.AuditLog.DonationCreated(ctx, r, g.UserID, d.ID)
	h.Log.Info("donation created",
		zap.String("donation_id", d.ID.Hex()),
		zap.String("donor_id", g.UserID.Hex()))

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/food-donation")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/food-donation", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /food-donation/{id}/claim                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireVolunteer(w, r)
	if !g.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad donation id", err, "That donation doesn't exist.", "/food-donation")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.Claim(ctx, id, g.UserID, g.Name)
	switch {
	case errors.Is(err, donationstore.ErrAlreadyAssigned):
		h.redirectWithFlash(w, r, "That donation was just claimed by someone else.")
		return
	case errors.Is(err, donationstore.ErrNotFound):
		h.redirectWithFlash(w, r, "That donation no longer exists.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "claim donation failed", err, "A server error occurred.", "/food-donation")
		return
	}

	h.AuditLog.DonationClaimed(ctx, r, g.UserID, d.ID)
	h.Log.Info("donation claimed",
		zap.String("donation_id", d.ID.Hex()),
		zap.String("volunteer_id", g.UserID.Hex()))

	h.redirectWithFlash(w, r, "Donation claimed. Thank you!")
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, msg string) {
	dest := "/food-donation?flash=" + url.QueryEscape(msg)
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
