package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence/memory"
	"github.com/example/audit-planner/internal/testfixtures"
)

func newAuditService(store *memory.Store) *AuditService {
	return NewAuditService(
		store, store,
		testfixtures.NewIDGenerator("audit").NextFunc(),
		testfixtures.NewClock(time.Time{}).NowFunc(),
		nil,
	)
}

func auditInput(companyID string) AuditInput {
	return AuditInput{
		CompanyID: companyID,
		Name:      "Audit annuel",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAuditRequiresExistingCompany(t *testing.T) {
	service := newAuditService(memory.NewStore())

	if _, err := service.CreateAudit(context.Background(), auditInput("ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCreateAuditValidatesDates(t *testing.T) {
	store := memory.NewStore()
	service := newAuditService(store)
	ctx := context.Background()

	company := testfixtures.NewCompanyFixture()
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	input := auditInput(company.ID)
	input.EndDate = input.StartDate.AddDate(0, 0, -1)

	_, err := service.CreateAudit(ctx, input)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["end_date"]; !ok {
		t.Fatalf("FieldErrors = %v, want end_date", vErr.FieldErrors)
	}
}

func TestAuditLifecycle(t *testing.T) {
	store := memory.NewStore()
	service := newAuditService(store)
	ctx := context.Background()

	company := testfixtures.NewCompanyFixture()
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	audit, err := service.CreateAudit(ctx, auditInput(company.ID))
	if err != nil {
		t.Fatalf("CreateAudit returned %v", err)
	}

	input := auditInput(company.ID)
	input.Name = "Audit de suivi"
	updated, err := service.UpdateAudit(ctx, audit.ID, input)
	if err != nil {
		t.Fatalf("UpdateAudit returned %v", err)
	}
	if updated.Name != "Audit de suivi" {
		t.Fatalf("name = %q", updated.Name)
	}

	audits, err := service.ListAudits(ctx, company.ID)
	if err != nil {
		t.Fatalf("ListAudits returned %v", err)
	}
	if len(audits) != 1 {
		t.Fatalf("got %d audits, want 1", len(audits))
	}

	if err := service.DeleteAudit(ctx, audit.ID); err != nil {
		t.Fatalf("DeleteAudit returned %v", err)
	}
	if _, err := service.GetAudit(ctx, audit.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
