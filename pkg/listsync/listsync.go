// Package listsync keeps a client-side view of the paginated affiliate
// listing in sync with the server under asynchronous fetches. It is the
// programmatic equivalent of the web client's listing hook: it remembers the
// last used page, limit and DNI filter, and guarantees that only the most
// recently issued request ever updates the visible state.
package listsync

import (
	"context"
	"sync"
)

// State is the lifecycle of the synced view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// DefaultLimit is used when the Syncer is constructed without one.
const DefaultLimit = 20

// Fetcher retrieves one page of the affiliate listing.
type Fetcher interface {
	FetchPage(ctx context.Context, page, limit int, filterByDNI string) (Result, error)
}

// Options tunes Syncer construction.
type Options struct {
	// DefaultLimit is the page size used on Mount and kept until changed.
	DefaultLimit int
	// OnChange, when set, is invoked with a snapshot after every state
	// transition. It is called outside the Syncer's lock.
	OnChange func(Snapshot)
}

// Snapshot is a consistent copy of the Syncer's visible state.
type Snapshot struct {
	State       State
	Data        Result
	Page        int
	Limit       int
	FilterByDNI string
	// ErrMessage is non-empty only in StateError. The Data of the last
	// successful fetch is retained alongside it.
	ErrMessage string
}

// Syncer is the client data-sync state machine. All trigger methods are safe
// for concurrent use; overlapping fetches are resolved by a generation
// counter so a late response from a superseded request is discarded.
type Syncer struct {
	fetcher      Fetcher
	defaultLimit int
	onChange     func(Snapshot)

	mu          sync.Mutex
	gen         uint64
	cancelPrev  context.CancelFunc
	state       State
	page        int
	limit       int
	filterByDNI string
	data        Result
	errMessage  string
}

func New(fetcher Fetcher, opts Options) *Syncer {
	limit := opts.DefaultLimit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Syncer{
		fetcher:      fetcher,
		defaultLimit: limit,
		onChange:     opts.OnChange,
		state:        StateIdle,
		page:         1,
		limit:        limit,
	}
}

// Mount issues the initial fetch with defaults: page 1, the default limit and
// no filter.
func (s *Syncer) Mount(ctx context.Context) {
	s.trigger(ctx, 1, s.defaultLimit, "")
}

// SetPage moves to page p, keeping the last used limit and filter.
func (s *Syncer) SetPage(ctx context.Context, p int) {
	s.mu.Lock()
	limit, filter := s.limit, s.filterByDNI
	s.mu.Unlock()
	s.trigger(ctx, p, limit, filter)
}

// SetFilter applies a new DNI filter. Filtering always restarts pagination at
// page 1.
func (s *Syncer) SetFilter(ctx context.Context, filterByDNI string) {
	s.mu.Lock()
	limit := s.limit
	s.mu.Unlock()
	s.trigger(ctx, 1, limit, filterByDNI)
}

// RefetchOptions override individual parameters of a manual refetch. A nil
// field carries the last stored value forward, so refetching after a
// registration replays the user's current view instead of resetting it.
type RefetchOptions struct {
	Page        *int
	Limit       *int
	FilterByDNI *string
}

// Refetch re-issues the listing request, carrying forward any parameter not
// overridden in opts.
func (s *Syncer) Refetch(ctx context.Context, opts RefetchOptions) {
	s.mu.Lock()
	page, limit, filter := s.page, s.limit, s.filterByDNI
	s.mu.Unlock()
	if opts.Page != nil {
		page = *opts.Page
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	if opts.FilterByDNI != nil {
		filter = *opts.FilterByDNI
	}
	s.trigger(ctx, page, limit, filter)
}

// Snapshot returns a copy of the current visible state.
func (s *Syncer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Syncer) trigger(ctx context.Context, page, limit int, filterByDNI string) {
	s.mu.Lock()
	s.gen++
	myGen := s.gen
	if s.cancelPrev != nil {
		// Superseded request: its result would be discarded anyway, stop it early.
		s.cancelPrev()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	s.state = StateLoading
	s.page = page
	s.limit = limit
	s.filterByDNI = filterByDNI
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	go func() {
		defer cancel()
		res, err := s.fetcher.FetchPage(fetchCtx, page, limit, filterByDNI)

		s.mu.Lock()
		if myGen != s.gen {
			// A newer request owns the visible state now.
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.state = StateError
			s.errMessage = err.Error()
			// s.data is retained so the previous listing stays visible.
		} else {
			s.state = StateSuccess
			s.errMessage = ""
			s.data = res
		}
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
	}()
}

func (s *Syncer) snapshotLocked() Snapshot {
	return Snapshot{
		State:       s.state,
		Data:        s.data.clone(),
		Page:        s.page,
		Limit:       s.limit,
		FilterByDNI: s.filterByDNI,
		ErrMessage:  s.errMessage,
	}
}

func (s *Syncer) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
