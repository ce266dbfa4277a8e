package inputval_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/sevahub/internal/app/system/inputval"
)

func validRegistration() inputval.RegistrationInput {
	return inputval.RegistrationInput{
		DisplayName:     "Asha Kumari",
		Email:           "asha@example.com",
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
		Role:            "donor",
	}
}

func TestRegistration_Valid(t *testing.T) {
	if msgs := inputval.Check(validRegistration()); msgs != nil {
		t.Errorf("expected no errors, got %v", msgs)
	}
}

func TestRegistration_PasswordMismatch(t *testing.T) {
	in := validRegistration()
	in.ConfirmPassword = "different"

	msgs := inputval.Check(in)
	if msgs == nil {
		t.Fatal("expected validation errors")
	}
	if !containsMsg(msgs, "Passwords do not match.") {
		t.Errorf("expected mismatch message, got %v", msgs)
	}
}

func TestRegistration_ShortPassword(t *testing.T) {
	in := validRegistration()
	in.Password = "abc"
	in.ConfirmPassword = "abc"

	msgs := inputval.Check(in)
	if !containsSubstring(msgs, "at least 6 characters") {
		t.Errorf("expected short password message, got %v", msgs)
	}
}

func TestRegistration_UnknownRole(t *testing.T) {
	in := validRegistration()
	in.Role = "overlord"

	msgs := inputval.Check(in)
	if !containsSubstring(msgs, "unrecognized") {
		t.Errorf("expected unrecognized role message, got %v", msgs)
	}
}

func TestRegistration_VolunteerNeedsLocationAndQualification(t *testing.T) {
	in := validRegistration()
	in.Role = "volunteer"

	msgs := inputval.Check(in)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 errors for a bare volunteer registration, got %v", msgs)
	}

	in.Location = "Hyderabad"
	in.EducationalQualification = "B.A."
	if msgs := inputval.Check(in); msgs != nil {
		t.Errorf("expected no errors once fields are filled, got %v", msgs)
	}
}

func TestRegistration_CommunitySupportNeedsCity(t *testing.T) {
	in := validRegistration()
	in.Role = "community-support"

	msgs := inputval.Check(in)
	if !containsSubstring(msgs, "City") {
		t.Errorf("expected city requirement, got %v", msgs)
	}

	in.City = "Chennai"
	if msgs := inputval.Check(in); msgs != nil {
		t.Errorf("expected no errors with city set, got %v", msgs)
	}
}

func TestDonationInput(t *testing.T) {
	in := inputval.DonationInput{
		Title:      "Canteen surplus",
		FoodType:   "cooked meals",
		Quantity:   "serves 30",
		Location:   "College canteen",
		PickupTime: "2026-09-01T18:00",
	}
	if msgs := inputval.Check(in); msgs != nil {
		t.Errorf("expected no errors, got %v", msgs)
	}

	in.Title = ""
	if msgs := inputval.Check(in); !containsSubstring(msgs, "Title") {
		t.Errorf("expected title requirement, got %v", msgs)
	}
}

func TestIssueInput_AgeBounds(t *testing.T) {
	in := inputval.IssueInput{
		StudentName:     "Ramu",
		Age:             12,
		RequiredSupport: "school fees",
		UrgencyLevel:    "high",
		ContactNumber:   "+911234567890",
	}
	if msgs := inputval.Check(in); msgs != nil {
		t.Errorf("expected no errors, got %v", msgs)
	}

	in.Age = 40
	if msgs := inputval.Check(in); !containsSubstring(msgs, "out of range") {
		t.Errorf("expected age range error, got %v", msgs)
	}
}

func TestIssueInput_UrgencyValues(t *testing.T) {
	in := inputval.IssueInput{
		StudentName:     "Sita",
		Age:             10,
		RequiredSupport: "books",
		UrgencyLevel:    "catastrophic",
		ContactNumber:   "+911234567890",
	}
	if msgs := inputval.Check(in); !containsSubstring(msgs, "unrecognized") {
		t.Errorf("expected urgency error, got %v", msgs)
	}
}

func containsMsg(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func containsSubstring(msgs []string, want string) bool {
	for _, m := range msgs {
		if strings.Contains(m, want) {
			return true
		}
	}
	return false
}
