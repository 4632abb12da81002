package listsync

// Affiliate is the listing entry as served by GET /affiliates.
type Affiliate struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	DNI          string `json:"dni"`
	Age          int    `json:"age"`
	USDAnnualFee int    `json:"usdAnnualFee"`
}

// Result is one page of the affiliate listing.
type Result struct {
	Items      []Affiliate `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalItems int         `json:"totalItems"`
	HasPrev    bool        `json:"hasPrev"`
	HasNext    bool        `json:"hasNext"`
}

func (r Result) clone() Result {
	out := r
	out.Items = make([]Affiliate, len(r.Items))
	copy(out.Items, r.Items)
	return out
}
