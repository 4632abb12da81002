package affiliaterepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/alerandon/insurance-affiliates-app/internal/adapters/postgres"
	"github.com/alerandon/insurance-affiliates-app/internal/domain"
	"github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

// Repo is a Postgres implementation of affiliaterepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const affiliateColumns = `
	id,
	first_name,
	last_name,
	phone_number,
	dni,
	gender,
	birth_date,
	age,
	usd_annual_fee,
	created_at,
	updated_at
`

func (r *Repo) Create(ctx context.Context, a domain.Affiliate) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return errors.New("invalid affiliate id")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO affiliates (`+affiliateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		id,
		a.FirstName,
		a.LastName,
		a.PhoneNumber,
		a.DNI,
		string(a.Gender),
		a.BirthDate,
		a.Age,
		a.USDAnnualFee,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return &affiliaterepo.UniqueViolationError{
				Field: fieldForConstraint(pe.ConstraintName),
				Err:   err,
			}
		}
		return err
	}
	return nil
}

func (r *Repo) FindPage(ctx context.Context, filter affiliaterepo.ListFilter, offset, limit int) ([]domain.Affiliate, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	if offset < 0 {
		offset = 0
	}

	// strpos keeps the filter a literal substring: LIKE metacharacters in
	// the input must not act as wildcards.
	rows, err := r.pool.Query(ctx, `
		SELECT `+affiliateColumns+`
		FROM affiliates
		WHERE ($1 = '' OR strpos(lower(dni), lower($1)) > 0)
		ORDER BY created_at ASC, id ASC
		OFFSET $2
		LIMIT $3
	`, strings.TrimSpace(filter.DNI), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Affiliate, 0)
	for rows.Next() {
		a, err := scanAffiliate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context, filter affiliaterepo.ListFilter) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM affiliates
		WHERE ($1 = '' OR strpos(lower(dni), lower($1)) > 0)
	`, strings.TrimSpace(filter.DNI)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// fieldForConstraint maps a unique-constraint name to the violated field.
// Unknown constraints keep their raw name so nothing is silently swallowed.
func fieldForConstraint(name string) string {
	switch name {
	case "affiliates_dni_unique":
		return "dni"
	case "affiliates_pkey":
		return "id"
	default:
		return name
	}
}

func scanAffiliate(row pgx.Row) (domain.Affiliate, error) {
	var (
		id          uuid.UUID
		firstName   string
		lastName    string
		phoneNumber string
		dni         string
		gender      string
		birthDate   time.Time
		age         int
		usdFee      int
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(
		&id,
		&firstName,
		&lastName,
		&phoneNumber,
		&dni,
		&gender,
		&birthDate,
		&age,
		&usdFee,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Affiliate{}, affiliaterepo.ErrNotFound
		}
		return domain.Affiliate{}, err
	}
	return domain.Affiliate{
		ID:           domain.AffiliateID(id.String()),
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phoneNumber,
		DNI:          dni,
		Gender:       domain.Gender(gender),
		BirthDate:    birthDate,
		Age:          age,
		USDAnnualFee: usdFee,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}, nil
}
