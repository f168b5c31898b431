package sqlitestore

import (
	"context"
	"testing"

	"github.com/user/exercise-tracker-go/db"
)

// OpenMemory returns an empty in-memory Store that is closed when t finishes.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	d, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	s, err := New(context.Background(), d)
	if err != nil {
		_ = d.Close()
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
