package affiliaterepo

import (
	"testing"

	"github.com/alerandon/insurance-affiliates-app/internal/adapters/contracttest"
	affiliaterepoport "github.com/alerandon/insurance-affiliates-app/internal/ports/out/affiliaterepo"
)

func TestContract_AffiliateRepo(t *testing.T) {
	contracttest.RunAffiliateRepo(t, func(t *testing.T) (affiliaterepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
