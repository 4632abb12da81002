package domain

import "time"

// AffiliateID is an internal identifier for an affiliate record.
// It is assigned once at creation and treated as opaque by callers.
type AffiliateID string

// Gender is the affiliate's registered gender.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// IsValid reports whether g is one of the accepted gender values.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Affiliate is the domain representation of an enrolled affiliate.
//
// Age and USDAnnualFee are computed once at registration time and stored;
// they are never recomputed from BirthDate afterwards.
type Affiliate struct {
	ID AffiliateID

	FirstName   string
	LastName    string
	PhoneNumber string
	// DNI is the natural unique business key. Uniqueness is enforced by the store.
	DNI       string
	Gender    Gender
	BirthDate time.Time

	Age          int
	USDAnnualFee int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName is derived on read and never stored.
func (a Affiliate) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AffiliateSummary is the listing projection of an affiliate. It deliberately
// excludes phone number, gender, birth date and timestamps.
type AffiliateSummary struct {
	ID           AffiliateID
	FirstName    string
	LastName     string
	FullName     string
	DNI          string
	Age          int
	USDAnnualFee int
}

// SummaryOf projects an affiliate into its listing shape.
func SummaryOf(a Affiliate) AffiliateSummary {
	return AffiliateSummary{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		FullName:     a.FullName(),
		DNI:          a.DNI,
		Age:          a.Age,
		USDAnnualFee: a.USDAnnualFee,
	}
}
