package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/exercise-tracker-go/store"
	"github.com/user/exercise-tracker-go/store/storetest"
)

// setupTestDB connects to TEST_DATABASE_URL, applies the migration and empties the table.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Skipf("Failed to connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Failed to ping test database: %v", err)
	}

	migration, err := os.ReadFile("../../migrations/000001_create_users.up.sql")
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to read migration: %v", err)
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		pool.Close()
		t.Fatalf("Failed to create table: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users"); err != nil {
		pool.Close()
		t.Fatalf("Failed to clean up users table: %v", err)
	}
	return pool
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := New(setupTestDB(t))
		t.Cleanup(func() { _ = s.Close(context.Background()) })
		return s
	})
}
