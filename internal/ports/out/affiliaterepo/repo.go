package affiliaterepo

import (
	"context"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
)

// ListFilter narrows a listing query. A zero value matches all affiliates.
type ListFilter struct {
	// DNI is matched as a case-insensitive substring of the stored DNI.
	DNI string
}

// Repository provides access to persisted affiliates.
//
// Result ordering expectations:
//   - FindPage returns results ordered by creation time ascending, ID ascending
//     on ties, so pagination is deterministic.
type Repository interface {
	// Create persists a fully-populated affiliate in a single attempt. A
	// uniqueness-constraint failure is reported as *UniqueViolationError; the
	// repository performs no check-then-insert and no retries.
	Create(ctx context.Context, a domain.Affiliate) error

	// FindPage returns at most limit affiliates matching filter, after
	// skipping offset matching rows.
	FindPage(ctx context.Context, filter ListFilter, offset, limit int) ([]domain.Affiliate, error)

	// Count returns the total number of affiliates matching filter. It is
	// issued independently of FindPage and the two are not required to be
	// mutually consistent under concurrent writes.
	Count(ctx context.Context, filter ListFilter) (int, error)
}
