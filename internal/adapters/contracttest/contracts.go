package contracttest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alerandon/insurance-affiliates-app/internal/domain"
	affiliaterepoport "github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

type CleanupFunc = func()

type AffiliateRepoFactory func(t *testing.T) (affiliaterepoport.Repository, CleanupFunc)

// RunAffiliateRepo exercises the behavior every affiliaterepo.Repository
// implementation must share: single-attempt creates with a uniqueness signal
// on dni, deterministic pagination and an independently computed count.
func RunAffiliateRepo(t *testing.T, newRepo AffiliateRepoFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("create reports dni unique violation", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}

		first := sampleAffiliate("12345678", time.Unix(1000, 0).UTC())
		if err := repo.Create(ctx, first); err != nil {
			t.Fatalf("Create: %v", err)
		}

		dup := sampleAffiliate("12345678", time.Unix(2000, 0).UTC())
		err := repo.Create(ctx, dup)
		if err == nil {
			t.Fatalf("expected unique violation")
		}
		uv := (*affiliaterepoport.UniqueViolationError)(nil)
		if !errors.As(err, &uv) || uv.Field != "dni" {
			t.Fatalf("err=%v (type=%T), want UniqueViolationError on dni", err, err)
		}

		// The first record must be intact, never overwritten.
		total, err := repo.Count(ctx, affiliaterepoport.ListFilter{})
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if total != 1 {
			t.Fatalf("total=%d, want 1", total)
		}
	})

	t.Run("find page orders by creation and honors offset and limit", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}

		base := time.Unix(5000, 0).UTC()
		for i := 0; i < 5; i++ {
			a := sampleAffiliate(fmt.Sprintf("1000000%d", i), base.Add(time.Duration(i)*time.Minute))
			if err := repo.Create(ctx, a); err != nil {
				t.Fatalf("Create #%d: %v", i, err)
			}
		}

		got, err := repo.FindPage(ctx, affiliaterepoport.ListFilter{}, 2, 2)
		if err != nil {
			t.Fatalf("FindPage: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len=%d, want 2", len(got))
		}
		if got[0].DNI != "10000002" || got[1].DNI != "10000003" {
			t.Fatalf("page dnis=%q,%q", got[0].DNI, got[1].DNI)
		}

		// Offset past the end yields an empty page, not an error.
		got, err = repo.FindPage(ctx, affiliaterepoport.ListFilter{}, 50, 2)
		if err != nil {
			t.Fatalf("FindPage past end: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("len=%d, want 0", len(got))
		}
	})

	t.Run("filter matches dni substring case-insensitively", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}

		base := time.Unix(9000, 0).UTC()
		for i, dni := range []string{"V12345678", "v98765123", "E55500012"} {
			if err := repo.Create(ctx, sampleAffiliate(dni, base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("Create %q: %v", dni, err)
			}
		}

		got, err := repo.FindPage(ctx, affiliaterepoport.ListFilter{DNI: "v1"}, 0, 10)
		if err != nil {
			t.Fatalf("FindPage: %v", err)
		}
		if len(got) != 1 || got[0].DNI != "V12345678" {
			t.Fatalf("got=%+v, want single V12345678", got)
		}

		total, err := repo.Count(ctx, affiliaterepoport.ListFilter{DNI: "123"})
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if total != 2 {
			t.Fatalf("total=%d, want 2", total)
		}

		total, err = repo.Count(ctx, affiliaterepoport.ListFilter{DNI: "ZZZ"})
		if err != nil {
			t.Fatalf("Count no match: %v", err)
		}
		if total != 0 {
			t.Fatalf("total=%d, want 0", total)
		}
	})

	t.Run("filter treats pattern metacharacters literally", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}

		base := time.Unix(11000, 0).UTC()
		for i, dni := range []string{"V12345678", "V98_00123", "E55%00012"} {
			if err := repo.Create(ctx, sampleAffiliate(dni, base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("Create %q: %v", dni, err)
			}
		}

		// A bare wildcard character matches only DNIs containing it.
		for filter, want := range map[string]int{"_": 1, "%": 1, "\\": 0, "8_0": 1, "5%0": 1} {
			total, err := repo.Count(ctx, affiliaterepoport.ListFilter{DNI: filter})
			if err != nil {
				t.Fatalf("Count %q: %v", filter, err)
			}
			if total != want {
				t.Errorf("Count(%q)=%d, want %d", filter, total, want)
			}
		}

		got, err := repo.FindPage(ctx, affiliaterepoport.ListFilter{DNI: "_"}, 0, 10)
		if err != nil {
			t.Fatalf("FindPage: %v", err)
		}
		if len(got) != 1 || got[0].DNI != "V98_00123" {
			t.Fatalf("got=%+v, want single V98_00123", got)
		}
	})

	t.Run("stored snapshot fields round-trip", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}

		a := sampleAffiliate("87654321", time.Unix(12000, 0).UTC())
		a.Age = 50
		a.USDAnnualFee = 15
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := repo.FindPage(ctx, affiliaterepoport.ListFilter{DNI: "87654321"}, 0, 1)
		if err != nil {
			t.Fatalf("FindPage: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len=%d, want 1", len(got))
		}
		if got[0].Age != 50 || got[0].USDAnnualFee != 15 || got[0].FirstName != "Juan" {
			t.Fatalf("round-trip mismatch: %+v", got[0])
		}
	})
}

func sampleAffiliate(dni string, createdAt time.Time) domain.Affiliate {
	return domain.Affiliate{
		ID:           domain.AffiliateID(uuid.NewString()),
		FirstName:    "Juan",
		LastName:     "Pérez",
		PhoneNumber:  "+58 412-0000000",
		DNI:          dni,
		Gender:       domain.GenderMale,
		BirthDate:    time.Date(1975, time.October, 6, 0, 0, 0, 0, time.UTC),
		Age:          49,
		USDAnnualFee: 15,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}
