package sqlite

import (
	"context"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	pool := setupRepositoryTest(t)

	ctx := context.Background()
	// A second run must skip already applied versions.
	if err := pool.Migrate(ctx); err != nil {
		t.Fatalf("Second Migrate run failed: %v", err)
	}

	var count int
	err := pool.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("Expected %d recorded migrations, got %d", len(migrations), count)
	}
}

func TestMigrateCreatesExpectedTables(t *testing.T) {
	pool := setupRepositoryTest(t)

	ctx := context.Background()
	for _, table := range []string{"companies", "audits", "themes", "interviews"} {
		var name string
		err := pool.DB().QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}
}
