package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"storefront/internal/database"
)

// StartPostgres runs a throwaway PostgreSQL container, applies the
// migrations and returns an open pool. Callers should guard with
// testing.Short or a build tag since it needs Docker.
func StartPostgres(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres container failed: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string failed: %v", err)
	}
	if _, err := database.RunMigrations(dsn); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	db, err := database.NewPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
