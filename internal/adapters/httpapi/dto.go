package httpapi

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
)

// dataEnvelope wraps every successful response body.
type dataEnvelope struct {
	Data any `json:"data"`
}

// registerAffiliateRequest is the POST /affiliates body. BirthDate is a
// date-only ISO 8601 string on the wire.
type registerAffiliateRequest struct {
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	PhoneNumber string             `json:"phoneNumber"`
	DNI         string             `json:"dni"`
	Gender      string             `json:"gender"`
	BirthDate   openapi_types.Date `json:"birthDate"`
}

type affiliateResponse struct {
	ID           string             `json:"id"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	FullName     string             `json:"fullName"`
	PhoneNumber  string             `json:"phoneNumber"`
	DNI          string             `json:"dni"`
	Gender       string             `json:"gender"`
	BirthDate    openapi_types.Date `json:"birthDate"`
	Age          int                `json:"age"`
	USDAnnualFee int                `json:"usdAnnualFee"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type affiliateSummaryResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	DNI          string `json:"dni"`
	Age          int    `json:"age"`
	USDAnnualFee int    `json:"usdAnnualFee"`
}

type paginatedAffiliatesResponse struct {
	Items      []affiliateSummaryResponse `json:"items"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalItems int                        `json:"totalItems"`
	HasPrev    bool                       `json:"hasPrev"`
	HasNext    bool                       `json:"hasNext"`
}

func affiliateFromDomain(a domain.Affiliate) affiliateResponse {
	return affiliateResponse{
		ID:           string(a.ID),
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		FullName:     a.FullName(),
		PhoneNumber:  a.PhoneNumber,
		DNI:          a.DNI,
		Gender:       string(a.Gender),
		BirthDate:    openapi_types.Date{Time: a.BirthDate},
		Age:          a.Age,
		USDAnnualFee: a.USDAnnualFee,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func paginatedFromDomain(p domain.Page[domain.AffiliateSummary]) paginatedAffiliatesResponse {
	items := make([]affiliateSummaryResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, affiliateSummaryResponse{
			ID:           string(s.ID),
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			FullName:     s.FullName,
			DNI:          s.DNI,
			Age:          s.Age,
			USDAnnualFee: s.USDAnnualFee,
		})
	}
	return paginatedAffiliatesResponse{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: p.TotalItems,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}
