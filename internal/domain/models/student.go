// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sponsorship types for education-aid students.
const (
	SponsorshipFull    = "full"
	SponsorshipPartial = "partial"
)

// Student is an education-aid sponsorship card shown to donors on the
// Vidya Jyothi page. The sponsor action is presentational for now: no
// mutation is persisted when a donor clicks sponsor, pending a payment
// integration.
type Student struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Age               int                `bson:"age" json:"age"`
	Grade             string             `bson:"grade" json:"grade"`
	School            string             `bson:"school" json:"school"`
	Location          string             `bson:"location" json:"location"`
	Story             string             `bson:"story" json:"story"`
	MonthlyNeed       int                `bson:"monthly_need" json:"monthly_need"`
	Sponsored         bool               `bson:"sponsored" json:"sponsored"`
	SponsorshipType   string             `bson:"sponsorship_type,omitempty" json:"sponsorship_type,omitempty"`
	SponsorName       string             `bson:"sponsor_name,omitempty" json:"sponsor_name,omitempty"`
	DocumentsVerified bool               `bson:"documents_verified" json:"documents_verified"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
