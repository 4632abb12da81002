package domain

// Page is a single page of query results. It is constructed per query and not
// mutated afterwards.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	TotalItems int
	HasPrev    bool
	HasNext    bool
}

// NewPage assembles a result page. totalItems is counted independently of the
// item fetch, so it may be momentarily stale under concurrent writes; HasNext
// is derived from the skip, the returned item count and that total.
func NewPage[T any](items []T, page, limit, totalItems int) Page[T] {
	if items == nil {
		items = []T{}
	}
	skip := (page - 1) * limit
	return Page[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		HasPrev:    page > 1,
		HasNext:    skip+len(items) < totalItems,
	}
}
