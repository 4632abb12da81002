package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/alerandon/insurance-affiliates-app/internal/adapters/postgres"
)

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL,
// applies the schema and truncates the affiliates table. Tests calling it are
// skipped when the env var is unset so the suite stays runnable without infra.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE affiliates"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
