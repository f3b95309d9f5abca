package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// CompanyService orchestrates validation and persistence for companies.
type CompanyService struct {
	companies   persistence.CompanyRepository
	audits      persistence.AuditRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewCompanyService constructs a company service with the provided dependencies.
func NewCompanyService(companies persistence.CompanyRepository, audits persistence.AuditRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *CompanyService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &CompanyService{
		companies:   companies,
		audits:      audits,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *CompanyService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CompanyService", operation, attrs...)
}

// CreateCompany validates input and persists a new company.
func (s *CompanyService) CreateCompany(ctx context.Context, input CompanyInput) (company Company, err error) {
	logger := s.loggerWith(ctx, "CreateCompany")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create company", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("company_id", company.ID).InfoContext(ctx, "company created")
	}()

	vErr := validateCompanyInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	record := persistence.Company{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Industry:  normalizeOptionalString(input.Industry),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapRepoError(s.companies.CreateCompany(ctx, record)); err != nil {
		return
	}
	company = companyFromRecord(record)
	return
}

// UpdateCompany validates input and updates an existing company.
func (s *CompanyService) UpdateCompany(ctx context.Context, id string, input CompanyInput) (company Company, err error) {
	logger := s.loggerWith(ctx, "UpdateCompany", "company_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update company", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "company updated")
	}()

	vErr := validateCompanyInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Company
	existing, err = s.companies.GetCompany(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Industry = normalizeOptionalString(input.Industry)
	existing.UpdatedAt = s.now()

	if err = mapRepoError(s.companies.UpdateCompany(ctx, existing)); err != nil {
		return
	}
	company = companyFromRecord(existing)
	return
}

// GetCompany retrieves a company by ID.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (Company, error) {
	record, err := s.companies.GetCompany(ctx, id)
	if err != nil {
		return Company{}, mapRepoError(err)
	}
	return companyFromRecord(record), nil
}

// ListCompanies returns all companies.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]Company, error) {
	records, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	companies := make([]Company, 0, len(records))
	for _, record := range records {
		companies = append(companies, companyFromRecord(record))
	}
	return companies, nil
}

// DeleteCompany removes a company that has no remaining audits.
func (s *CompanyService) DeleteCompany(ctx context.Context, id string) (err error) {
	logger := s.loggerWith(ctx, "DeleteCompany", "company_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete company", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "company deleted")
	}()

	if s.audits != nil {
		var audits []persistence.Audit
		audits, err = s.audits.ListAuditsForCompany(ctx, id)
		if err != nil {
			err = mapRepoError(err)
			return
		}
		if len(audits) > 0 {
			err = fmt.Errorf("%w: %d audits reference company", ErrHasDependencies, len(audits))
			return
		}
	}

	err = mapRepoError(s.companies.DeleteCompany(ctx, id))
	return
}

func validateCompanyInput(input CompanyInput) *ValidationError {
	vErr := &ValidationError{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		vErr.add("name", "Le nom est obligatoire")
	}
	if len(name) > 200 {
		vErr.add("name", "Le nom ne doit pas dépasser 200 caractères")
	}
	return vErr
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
