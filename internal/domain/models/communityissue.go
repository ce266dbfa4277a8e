// internal/domain/models/communityissue.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community issue statuses. Issues are submitted pending and verified by a
// volunteer before donors see them. "in-progress" and "resolved" are
// declared but nothing transitions into them yet.
const (
	IssuePending    = "pending"
	IssueVerified   = "verified"
	IssueInProgress = "in-progress"
	IssueResolved   = "resolved"
)

// Urgency levels for community issues.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// UrgencyLevels lists the accepted urgency values in escalation order.
var UrgencyLevels = []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent}

// CommunityIssue is an education-support request raised by a
// community-support representative on behalf of a student. Submitter
// identity and city are denormalized from the submitter's profile.
type CommunityIssue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentName     string             `bson:"student_name" json:"student_name"`
	Age             int                `bson:"age" json:"age"`
	RequiredSupport string             `bson:"required_support" json:"required_support"`
	SupportDetails  string             `bson:"support_details" json:"support_details"`
	UrgencyLevel    string             `bson:"urgency_level" json:"urgency_level"`
	ContactNumber   string             `bson:"contact_number" json:"contact_number"`
	AlternateContact string            `bson:"alternate_contact,omitempty" json:"alternate_contact,omitempty"`

	SubmittedBy    primitive.ObjectID `bson:"submitted_by" json:"submitted_by"`
	SubmitterName  string             `bson:"submitter_name" json:"submitter_name"`
	SubmitterEmail string             `bson:"submitter_email" json:"submitter_email"`
	City           string             `bson:"city" json:"city"`

	Status       string              `bson:"status" json:"status"`
	VerifiedBy   *primitive.ObjectID `bson:"verified_by,omitempty" json:"verified_by,omitempty"`
	VerifierName string              `bson:"verifier_name,omitempty" json:"verifier_name,omitempty"`
	VerifiedAt   *time.Time          `bson:"verified_at,omitempty" json:"verified_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
