package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

func seedCompany(t *testing.T, pool *ConnectionPool, id string) {
	t.Helper()
	repo := NewCompanyRepository(pool)
	if err := repo.CreateCompany(context.Background(), persistence.Company{ID: id, Name: "Company " + id}); err != nil {
		t.Fatalf("Failed to seed company %s: %v", id, err)
	}
}

func seedAudit(t *testing.T, pool *ConnectionPool, id, companyID string) {
	t.Helper()
	repo := NewAuditRepository(pool)
	audit := persistence.Audit{
		ID:        id,
		CompanyID: companyID,
		Name:      "Audit " + id,
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateAudit(context.Background(), audit); err != nil {
		t.Fatalf("Failed to seed audit %s: %v", id, err)
	}
}

func TestAuditRepository_CreateAudit(t *testing.T) {
	pool := setupRepositoryTest(t)
	seedCompany(t, pool, "company1")
	repo := NewAuditRepository(pool)

	ctx := context.Background()
	audit := persistence.Audit{
		ID:        "audit1",
		CompanyID: "company1",
		Name:      "Audit RGPD 2026",
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateAudit(ctx, audit); err != nil {
		t.Fatalf("CreateAudit failed: %v", err)
	}

	retrieved, err := repo.GetAudit(ctx, "audit1")
	if err != nil {
		t.Fatalf("GetAudit failed: %v", err)
	}
	if retrieved.Name != "Audit RGPD 2026" {
		t.Errorf("Expected name 'Audit RGPD 2026', got %q", retrieved.Name)
	}
	if !retrieved.StartDate.Equal(audit.StartDate) {
		t.Errorf("Expected start date %v, got %v", audit.StartDate, retrieved.StartDate)
	}
	if !retrieved.EndDate.Equal(audit.EndDate) {
		t.Errorf("Expected end date %v, got %v", audit.EndDate, retrieved.EndDate)
	}
}

func TestAuditRepository_CreateAudit_UnknownCompany(t *testing.T) {
	pool := setupRepositoryTest(t)
	repo := NewAuditRepository(pool)

	audit := persistence.Audit{
		ID:        "audit1",
		CompanyID: "missing",
		Name:      "Audit orphelin",
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
	err := repo.CreateAudit(context.Background(), audit)
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("Expected ErrForeignKeyViolation for unknown company, got %v", err)
	}
}

func TestAuditRepository_UpdateAudit(t *testing.T) {
	pool := setupRepositoryTest(t)
	seedCompany(t, pool, "company1")
	seedAudit(t, pool, "audit1", "company1")
	repo := NewAuditRepository(pool)

	ctx := context.Background()
	updated := persistence.Audit{
		ID:        "audit1",
		CompanyID: "company1",
		Name:      "Audit renommé",
		StartDate: time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.UpdateAudit(ctx, updated); err != nil {
		t.Fatalf("UpdateAudit failed: %v", err)
	}

	retrieved, err := repo.GetAudit(ctx, "audit1")
	if err != nil {
		t.Fatalf("GetAudit failed: %v", err)
	}
	if retrieved.Name != "Audit renommé" {
		t.Errorf("Expected updated name, got %q", retrieved.Name)
	}
	if !retrieved.StartDate.Equal(updated.StartDate) {
		t.Errorf("Expected start date %v, got %v", updated.StartDate, retrieved.StartDate)
	}
}

func TestAuditRepository_UpdateAudit_NotFound(t *testing.T) {
	pool := setupRepositoryTest(t)
	seedCompany(t, pool, "company1")
	repo := NewAuditRepository(pool)

	audit := persistence.Audit{
		ID:        "missing",
		CompanyID: "company1",
		Name:      "Audit fantôme",
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.UpdateAudit(context.Background(), audit); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestAuditRepository_ListAuditsForCompany(t *testing.T) {
	pool := setupRepositoryTest(t)
	seedCompany(t, pool, "company1")
	seedCompany(t, pool, "company2")
	seedAudit(t, pool, "audit1", "company1")
	seedAudit(t, pool, "audit2", "company1")
	seedAudit(t, pool, "audit3", "company2")
	repo := NewAuditRepository(pool)

	ctx := context.Background()
	audits, err := repo.ListAuditsForCompany(ctx, "company1")
	if err != nil {
		t.Fatalf("ListAuditsForCompany failed: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("Expected 2 audits for company1, got %d", len(audits))
	}
	for _, audit := range audits {
		if audit.CompanyID != "company1" {
			t.Errorf("Expected only company1 audits, got audit %s for %s", audit.ID, audit.CompanyID)
		}
	}

	all, err := repo.ListAudits(ctx)
	if err != nil {
		t.Fatalf("ListAudits failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 audits in total, got %d", len(all))
	}
}

func TestAuditRepository_DeleteAudit(t *testing.T) {
	pool := setupRepositoryTest(t)
	seedCompany(t, pool, "company1")
	seedAudit(t, pool, "audit1", "company1")
	repo := NewAuditRepository(pool)

	ctx := context.Background()
	if err := repo.DeleteAudit(ctx, "audit1"); err != nil {
		t.Fatalf("DeleteAudit failed: %v", err)
	}
	if _, err := repo.GetAudit(ctx, "audit1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected audit to be deleted, got %v", err)
	}
}
