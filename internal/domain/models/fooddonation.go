// internal/domain/models/fooddonation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food donation statuses. A donation is created pending and moves to
// assigned when a volunteer claims it. Picked and delivered are reserved for
// the pickup flow, which has no transitions yet.
const (
	DonationPending   = "pending"
	DonationAssigned  = "assigned"
	DonationPicked    = "picked"
	DonationDelivered = "delivered"
)

// DonationStatuses lists every status the filter UI accepts.
var DonationStatuses = []string{DonationPending, DonationAssigned, DonationPicked, DonationDelivered}

// FoodDonation is one surplus-food offer. Donor name is denormalized onto
// the document so list views render without a join; volunteer fields are
// set when the donation is claimed.
type FoodDonation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	FoodType    string             `bson:"food_type" json:"food_type"`
	Quantity    string             `bson:"quantity" json:"quantity"`
	Location    string             `bson:"location" json:"location"`
	PickupTime  time.Time          `bson:"pickup_time" json:"pickup_time"`

	DonorID   primitive.ObjectID `bson:"donor_id" json:"donor_id"`
	DonorName string             `bson:"donor_name" json:"donor_name"`

	Status        string              `bson:"status" json:"status"`
	VolunteerID   *primitive.ObjectID `bson:"volunteer_id,omitempty" json:"volunteer_id,omitempty"`
	VolunteerName string              `bson:"volunteer_name,omitempty" json:"volunteer_name,omitempty"`
	AssignedAt    *time.Time          `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
