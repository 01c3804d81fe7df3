// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/careerpages/db"
	"github.com/garnizeh/careerpages/internal/db"
)

// Open returns an in-memory SQLite database with every migration applied.
// It is closed when the test finishes.
func Open(t testing.TB) *db.DB {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return d
}
