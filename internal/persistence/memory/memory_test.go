package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

func newCompany(id, name string) persistence.Company {
	return persistence.Company{ID: id, Name: name}
}

func newAudit(id, companyID string) persistence.Audit {
	return persistence.Audit{
		ID:        id,
		CompanyID: companyID,
		Name:      "Audit " + id,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
}

func newInterview(id, auditID string, generated bool) persistence.Interview {
	return persistence.Interview{
		ID:              id,
		AuditID:         auditID,
		Title:           "Entretien " + id,
		Start:           time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Generated:       generated,
	}
}

func TestCompanyLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateCompany(ctx, newCompany("c1", "Acme")); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}

	if err := store.CreateCompany(ctx, newCompany("c2", "Acme")); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicate", err)
	}

	got, err := store.GetCompany(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCompany returned %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("GetCompany name = %q, want Acme", got.Name)
	}

	got.Name = "Acme SA"
	if err := store.UpdateCompany(ctx, got); err != nil {
		t.Fatalf("UpdateCompany returned %v", err)
	}
	got, _ = store.GetCompany(ctx, "c1")
	if got.Name != "Acme SA" {
		t.Fatalf("after update name = %q, want Acme SA", got.Name)
	}

	if err := store.DeleteCompany(ctx, "c1"); err != nil {
		t.Fatalf("DeleteCompany returned %v", err)
	}
	if _, err := store.GetCompany(ctx, "c1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestAuditRequiresCompany(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.CreateAudit(ctx, newAudit("a1", "missing"))
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("got %v, want ErrForeignKeyViolation", err)
	}

	if err := store.CreateCompany(ctx, newCompany("c1", "Acme")); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if err := store.CreateAudit(ctx, newAudit("a1", "c1")); err != nil {
		t.Fatalf("CreateAudit returned %v", err)
	}

	audits, err := store.ListAuditsForCompany(ctx, "c1")
	if err != nil {
		t.Fatalf("ListAuditsForCompany returned %v", err)
	}
	if len(audits) != 1 || audits[0].ID != "a1" {
		t.Fatalf("ListAuditsForCompany = %+v, want one audit a1", audits)
	}
}

func TestThemeNameUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateTheme(ctx, persistence.Theme{ID: "t1", Name: "RGPD"}); err != nil {
		t.Fatalf("CreateTheme returned %v", err)
	}
	if err := store.CreateTheme(ctx, persistence.Theme{ID: "t2", Name: "RGPD"}); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("duplicate theme name: got %v, want ErrDuplicate", err)
	}

	// Renaming a theme onto its own name is not a conflict.
	if err := store.UpdateTheme(ctx, persistence.Theme{ID: "t1", Name: "RGPD"}); err != nil {
		t.Fatalf("UpdateTheme returned %v", err)
	}
}

func TestBulkInsertInterviewsIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateCompany(ctx, newCompany("c1", "Acme")); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if err := store.CreateAudit(ctx, newAudit("a1", "c1")); err != nil {
		t.Fatalf("CreateAudit returned %v", err)
	}

	batch := []persistence.Interview{
		newInterview("i1", "a1", true),
		newInterview("i2", "missing-audit", true),
	}
	if err := store.BulkInsertInterviews(ctx, batch); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("got %v, want ErrForeignKeyViolation", err)
	}

	interviews, err := store.ListInterviewsForAudit(ctx, "a1")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(interviews) != 0 {
		t.Fatalf("partial batch persisted: %d rows, want 0", len(interviews))
	}
}

func TestDeleteGeneratedInterviewsKeepsManualOnes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateCompany(ctx, newCompany("c1", "Acme")); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if err := store.CreateAudit(ctx, newAudit("a1", "c1")); err != nil {
		t.Fatalf("CreateAudit returned %v", err)
	}

	if err := store.CreateInterview(ctx, newInterview("gen", "a1", true)); err != nil {
		t.Fatalf("CreateInterview returned %v", err)
	}
	if err := store.CreateInterview(ctx, newInterview("manual", "a1", false)); err != nil {
		t.Fatalf("CreateInterview returned %v", err)
	}

	if err := store.DeleteGeneratedInterviews(ctx, "a1"); err != nil {
		t.Fatalf("DeleteGeneratedInterviews returned %v", err)
	}

	interviews, err := store.ListInterviewsForAudit(ctx, "a1")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(interviews) != 1 || interviews[0].ID != "manual" {
		t.Fatalf("remaining interviews = %+v, want only the manual one", interviews)
	}
}

func TestDeleteAuditRemovesItsInterviews(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if err := store.CreateCompany(ctx, newCompany("c1", "Acme")); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if err := store.CreateAudit(ctx, newAudit("a1", "c1")); err != nil {
		t.Fatalf("CreateAudit returned %v", err)
	}
	if err := store.CreateInterview(ctx, newInterview("i1", "a1", true)); err != nil {
		t.Fatalf("CreateInterview returned %v", err)
	}

	if err := store.DeleteAudit(ctx, "a1"); err != nil {
		t.Fatalf("DeleteAudit returned %v", err)
	}

	interviews, err := store.ListInterviewsForAudit(ctx, "a1")
	if err != nil {
		t.Fatalf("ListInterviewsForAudit returned %v", err)
	}
	if len(interviews) != 0 {
		t.Fatalf("interviews survived audit deletion: %+v", interviews)
	}
}
