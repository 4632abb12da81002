package affiliaterepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
	"github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

// Repo is an in-memory implementation of affiliaterepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID    map[domain.AffiliateID]domain.Affiliate
	idByDNI map[string]domain.AffiliateID
}

func NewRepo() *Repo {
	return &Repo{
		byID:    make(map[domain.AffiliateID]domain.Affiliate),
		idByDNI: make(map[string]domain.AffiliateID),
	}
}

func (r *Repo) Create(ctx context.Context, a domain.Affiliate) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; ok {
		return &affiliaterepo.UniqueViolationError{Field: "id"}
	}
	if _, ok := r.idByDNI[a.DNI]; ok {
		return &affiliaterepo.UniqueViolationError{Field: "dni"}
	}

	r.byID[a.ID] = a
	r.idByDNI[a.DNI] = a.ID
	return nil
}

func (r *Repo) FindPage(ctx context.Context, filter affiliaterepo.ListFilter, offset, limit int) ([]domain.Affiliate, error) {
	_ = ctx
	r.mu.RLock()
	matched := r.matchLocked(filter)
	r.mu.RUnlock()

	sortByCreation(matched)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.Affiliate{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *Repo) Count(ctx context.Context, filter affiliaterepo.ListFilter) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matchLocked(filter)), nil
}

func (r *Repo) matchLocked(filter affiliaterepo.ListFilter) []domain.Affiliate {
	needle := strings.ToLower(strings.TrimSpace(filter.DNI))
	out := make([]domain.Affiliate, 0, len(r.byID))
	for _, a := range r.byID {
		if needle != "" && !strings.Contains(strings.ToLower(a.DNI), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func sortByCreation(as []domain.Affiliate) {
	sort.Slice(as, func(i, j int) bool {
		if as[i].CreatedAt.Equal(as[j].CreatedAt) {
			return as[i].ID < as[j].ID
		}
		return as[i].CreatedAt.Before(as[j].CreatedAt)
	})
}
