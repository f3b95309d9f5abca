package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/audit-planner/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool       *sqlite.ConnectionPool
	Companies  *sqlite.CompanyRepository
	Audits     *sqlite.AuditRepository
	Themes     *sqlite.ThemeRepository
	Interviews *sqlite.InterviewRepository
}

// NewSQLiteHarness constructs a harness over a temporary file that is
// migrated automatically and cleaned up when the test finishes.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "auditplanner.db")
	pool, err := sqlite.NewConnectionPool(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	tb.Cleanup(func() {
		if err := pool.Close(); err != nil {
			tb.Errorf("failed to close storage: %v", err)
		}
	})

	if err := pool.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	return &SQLiteHarness{
		Pool:       pool,
		Companies:  sqlite.NewCompanyRepository(pool),
		Audits:     sqlite.NewAuditRepository(pool),
		Themes:     sqlite.NewThemeRepository(pool),
		Interviews: sqlite.NewInterviewRepository(pool),
	}
}
