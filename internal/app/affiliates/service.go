package affiliates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
	"github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
	clockport "github.com/alerandon/insurance-affiliates-app/internal/ports/out/clock"
)

// FallbackPageLimit is used when the service is constructed without a
// positive default page limit.
const FallbackPageLimit = 20

type Service struct {
	repo affiliaterepo.Repository
	clk  clockport.Clock

	newAffiliateID func() domain.AffiliateID

	// defaultPageLimit is the page size used when a listing request does not
	// specify one. Threaded in from configuration at construction.
	defaultPageLimit int
}

func NewService(repo affiliaterepo.Repository, clk clockport.Clock, defaultPageLimit int) *Service {
	if defaultPageLimit <= 0 {
		defaultPageLimit = FallbackPageLimit
	}
	return &Service{
		repo: repo,
		clk:  clk,
		newAffiliateID: func() domain.AffiliateID {
			return domain.AffiliateID(uuid.NewString())
		},
		defaultPageLimit: defaultPageLimit,
	}
}

// List returns one page of affiliate summaries. The item fetch and the total
// count are issued concurrently and joined; the pair is allowed to be
// momentarily inconsistent under concurrent writes.
func (s *Service) List(ctx context.Context, q ListQuery) (domain.Page[domain.AffiliateSummary], error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = s.defaultPageLimit
	}
	filter := affiliaterepo.ListFilter{DNI: strings.TrimSpace(q.FilterByDNI)}
	offset := (page - 1) * limit

	var (
		items []domain.Affiliate
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.FindPage(gctx, filter, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Page[domain.AffiliateSummary]{}, err
	}

	out := make([]domain.AffiliateSummary, 0, len(items))
	for _, a := range items {
		out = append(out, domain.SummaryOf(a))
	}
	return domain.NewPage(out, page, limit, total), nil
}

// Register validates the input, derives the frozen age and fee snapshot from
// the current clock instant, and persists the affiliate in a single attempt.
// Uniqueness is enforced by the store constraint, never by a prior read.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Affiliate, error) {
	if err := validateRegisterInput(in); err != nil {
		return domain.Affiliate{}, err
	}

	rawPhone := strings.TrimSpace(in.PhoneNumber)
	phone := domain.FormatPhoneNumber(rawPhone)
	if phone == "" {
		// Normalization is best-effort; keep the caller's value.
		phone = rawPhone
	}

	now := s.clk.Now()
	age := domain.AgeAt(in.BirthDate, now)

	a := domain.Affiliate{
		ID:           s.newAffiliateID(),
		FirstName:    domain.NormalizeHumanName(in.FirstName),
		LastName:     domain.NormalizeHumanName(in.LastName),
		PhoneNumber:  phone,
		DNI:          strings.TrimSpace(in.DNI),
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
		Age:          age,
		USDAnnualFee: domain.USDAnnualFee(age),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return domain.Affiliate{}, classifyCreateError(err)
	}
	return a, nil
}
