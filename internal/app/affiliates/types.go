package affiliates

import (
	"strings"
	"time"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
)

// RegisterInput carries the fields required to register an affiliate. All
// fields are required; BirthDate must be a parsed calendar date (date parsing
// and shape validation happen at the transport boundary).
type RegisterInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	DNI         string
	Gender      domain.Gender
	BirthDate   time.Time
}

// ListQuery selects a page of the affiliate listing. Zero values fall back to
// the service defaults (page 1, configured page limit, no filter).
type ListQuery struct {
	Page        int
	Limit       int
	FilterByDNI string
}

// registerRules keeps the registration field rules declarative and in one
// place. Each rule returns "" when the field is acceptable.
var registerRules = []struct {
	field string
	check func(RegisterInput) string
}{
	{"firstName", func(in RegisterInput) string {
		if strings.TrimSpace(in.FirstName) == "" {
			return "firstName must be a non-empty string"
		}
		return ""
	}},
	{"lastName", func(in RegisterInput) string {
		if strings.TrimSpace(in.LastName) == "" {
			return "lastName must be a non-empty string"
		}
		return ""
	}},
	{"phoneNumber", func(in RegisterInput) string {
		if strings.TrimSpace(in.PhoneNumber) == "" {
			return "phoneNumber must be a non-empty string"
		}
		return ""
	}},
	{"dni", func(in RegisterInput) string {
		if strings.TrimSpace(in.DNI) == "" {
			return "dni must be a non-empty string"
		}
		return ""
	}},
	{"gender", func(in RegisterInput) string {
		if !in.Gender.IsValid() {
			return "gender must be one of the following values: M, F"
		}
		return ""
	}},
	{"birthDate", func(in RegisterInput) string {
		if in.BirthDate.IsZero() {
			return "birthDate must be a valid ISO 8601 date string"
		}
		return ""
	}},
}

// validateRegisterInput applies registerRules and collects every failing field
// into one validation error so callers see all problems at once.
func validateRegisterInput(in RegisterInput) error {
	details := map[string]any{}
	for _, r := range registerRules {
		if msg := r.check(in); msg != "" {
			details[r.field] = msg
		}
	}
	if len(details) == 0 {
		return nil
	}
	return &Error{
		Status:  400,
		Code:    "VALIDATION_ERROR",
		Message: "invalid registration input",
		Details: details,
	}
}
