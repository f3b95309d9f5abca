package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/audit-planner/internal/persistence/memory"
	"github.com/example/audit-planner/internal/testfixtures"
)

func newCompanyService(store *memory.Store) *CompanyService {
	return NewCompanyService(
		store, store,
		testfixtures.NewIDGenerator("company").NextFunc(),
		testfixtures.NewClock(time.Time{}).NowFunc(),
		nil,
	)
}

func TestCreateCompanyValidatesName(t *testing.T) {
	service := newCompanyService(memory.NewStore())

	_, err := service.CreateCompany(context.Background(), CompanyInput{Name: "   "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["name"]; !ok {
		t.Fatalf("FieldErrors = %v, want name", vErr.FieldErrors)
	}
}

func TestCreateCompanyTrimsAndPersists(t *testing.T) {
	store := memory.NewStore()
	service := newCompanyService(store)
	ctx := context.Background()

	industry := "  Banque  "
	company, err := service.CreateCompany(ctx, CompanyInput{Name: "  Acme  ", Industry: &industry})
	if err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if company.Name != "Acme" {
		t.Fatalf("name = %q, want Acme", company.Name)
	}
	if company.Industry == nil || *company.Industry != "Banque" {
		t.Fatalf("industry = %v, want Banque", company.Industry)
	}
	if company.ID == "" {
		t.Fatal("expected generated ID")
	}

	got, err := service.GetCompany(ctx, company.ID)
	if err != nil {
		t.Fatalf("GetCompany returned %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("persisted name = %q", got.Name)
	}
}

func TestCreateCompanyDuplicateName(t *testing.T) {
	service := newCompanyService(memory.NewStore())
	ctx := context.Background()

	if _, err := service.CreateCompany(ctx, CompanyInput{Name: "Acme"}); err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	if _, err := service.CreateCompany(ctx, CompanyInput{Name: "Acme"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
}

func TestDeleteCompanyWithAudits(t *testing.T) {
	store := memory.NewStore()
	service := newCompanyService(store)
	ctx := context.Background()

	company, err := service.CreateCompany(ctx, CompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany returned %v", err)
	}
	audit := testfixtures.NewAuditFixture(testfixtures.WithAuditCompany(company.ID))
	if err := store.CreateAudit(ctx, audit); err != nil {
		t.Fatalf("seed audit: %v", err)
	}

	if err := service.DeleteCompany(ctx, company.ID); !errors.Is(err, ErrHasDependencies) {
		t.Fatalf("got %v, want ErrHasDependencies", err)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	service := newCompanyService(memory.NewStore())
	if _, err := service.GetCompany(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
