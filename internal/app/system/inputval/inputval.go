// Package inputval validates form input before it reaches the stores.
// Struct tags carry the per-field rules; role-dependent requirements that
// tags can't express live in struct-level validators registered here.
package inputval

import (
	"strings"

	"github.com/dalemusser/sevahub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(registrationStructLevel, RegistrationInput{})
}

// RegistrationInput is the registration form. Role decides which of the
// optional fields are required: volunteers must give a location and
// qualification, community-support reps must give a city.
type RegistrationInput struct {
	DisplayName     string `validate:"required,min=2,max=100"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required"`
	Role            string `validate:"required"`

	Location                 string `validate:"max=200"`
	EducationalQualification string `validate:"max=200"`
	City                     string `validate:"max=100"`
}

func registrationStructLevel(sl validator.StructLevel) {
	in := sl.Current().Interface().(RegistrationInput)

	if in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		sl.ReportError(in.ConfirmPassword, "ConfirmPassword", "ConfirmPassword", "eqfield", "Password")
	}

	valid := false
	for _, r := range models.AllRoles {
		if in.Role == r {
			valid = true
			break
		}
	}
	if !valid {
		sl.ReportError(in.Role, "Role", "Role", "oneof", "")
		return
	}

	switch in.Role {
	case models.RoleVolunteer:
		if strings.TrimSpace(in.Location) == "" {
			sl.ReportError(in.Location, "Location", "Location", "required_for_role", "")
		}
		if strings.TrimSpace(in.EducationalQualification) == "" {
			sl.ReportError(in.EducationalQualification, "EducationalQualification", "EducationalQualification", "required_for_role", "")
		}
	case models.RoleCommunitySupport:
		if strings.TrimSpace(in.City) == "" {
			sl.ReportError(in.City, "City", "City", "required_for_role", "")
		}
	}
}

// DonationInput is the food donation form.
type DonationInput struct {
	Title       string `validate:"required,min=2,max=200"`
	Description string `validate:"max=2000"`
	FoodType    string `validate:"required,max=100"`
	Quantity    string `validate:"required,max=100"`
	Location    string `validate:"required,max=200"`
	PickupTime  string `validate:"required"`
}

// IssueInput is the community issue submission form.
type IssueInput struct {
	StudentName      string `validate:"required,min=2,max=100"`
	Age              int    `validate:"required,gte=3,lte=25"`
	RequiredSupport  string `validate:"required,max=200"`
	SupportDetails   string `validate:"max=2000"`
	UrgencyLevel     string `validate:"required,oneof=low medium high urgent"`
	ContactNumber    string `validate:"required,min=7,max=20"`
	AlternateContact string `validate:"max=20"`
}

// Check validates v and returns user-facing messages, one per failed field.
// A nil slice means the input passed.
func Check(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid input"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		if fe.Field() == "Password" {
			return "Password must be at least " + fe.Param() + " characters."
		}
		return field + " must be at least " + fe.Param() + " characters."
	case "max":
		return field + " is too long."
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return field + " has an unrecognized value."
	case "required_for_role":
		return field + " is required for the selected role."
	case "gte", "lte":
		return field + " is out of range."
	default:
		return field + " is invalid."
	}
}

// humanize splits a CamelCase field name into words.
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
