package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// AuditService orchestrates validation and persistence for audit engagements.
type AuditService struct {
	audits      persistence.AuditRepository
	companies   persistence.CompanyRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAuditService constructs an audit service with the provided dependencies.
func NewAuditService(audits persistence.AuditRepository, companies persistence.CompanyRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AuditService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuditService{
		audits:      audits,
		companies:   companies,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *AuditService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuditService", operation, attrs...)
}

// CreateAudit validates input and persists a new audit.
func (s *AuditService) CreateAudit(ctx context.Context, input AuditInput) (audit Audit, err error) {
	logger := s.loggerWith(ctx, "CreateAudit", "company_id", input.CompanyID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create audit", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("audit_id", audit.ID).InfoContext(ctx, "audit created")
	}()

	vErr := validateAuditInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, err = s.companies.GetCompany(ctx, input.CompanyID); err != nil {
		err = mapRepoError(err)
		return
	}

	now := s.now()
	record := persistence.Audit{
		ID:        s.idGenerator(),
		CompanyID: input.CompanyID,
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapRepoError(s.audits.CreateAudit(ctx, record)); err != nil {
		return
	}
	audit = auditFromRecord(record)
	return
}

// UpdateAudit validates input and updates an existing audit.
func (s *AuditService) UpdateAudit(ctx context.Context, id string, input AuditInput) (audit Audit, err error) {
	logger := s.loggerWith(ctx, "UpdateAudit", "audit_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update audit", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "audit updated")
	}()

	vErr := validateAuditInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing persistence.Audit
	existing, err = s.audits.GetAudit(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	if input.CompanyID != existing.CompanyID {
		if _, err = s.companies.GetCompany(ctx, input.CompanyID); err != nil {
			err = mapRepoError(err)
			return
		}
	}

	existing.CompanyID = input.CompanyID
	existing.Name = strings.TrimSpace(input.Name)
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.UpdatedAt = s.now()

	if err = mapRepoError(s.audits.UpdateAudit(ctx, existing)); err != nil {
		return
	}
	audit = auditFromRecord(existing)
	return
}

// GetAudit retrieves an audit by ID.
func (s *AuditService) GetAudit(ctx context.Context, id string) (Audit, error) {
	record, err := s.audits.GetAudit(ctx, id)
	if err != nil {
		return Audit{}, mapRepoError(err)
	}
	return auditFromRecord(record), nil
}

// ListAudits returns all audits, optionally filtered by company.
func (s *AuditService) ListAudits(ctx context.Context, companyID string) ([]Audit, error) {
	var records []persistence.Audit
	var err error
	if companyID == "" {
		records, err = s.audits.ListAudits(ctx)
	} else {
		records, err = s.audits.ListAuditsForCompany(ctx, companyID)
	}
	if err != nil {
		return nil, mapRepoError(err)
	}
	audits := make([]Audit, 0, len(records))
	for _, record := range records {
		audits = append(audits, auditFromRecord(record))
	}
	return audits, nil
}

// DeleteAudit removes an audit and its interviews.
func (s *AuditService) DeleteAudit(ctx context.Context, id string) (err error) {
	logger := s.loggerWith(ctx, "DeleteAudit", "audit_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete audit", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "audit deleted")
	}()

	err = mapRepoError(s.audits.DeleteAudit(ctx, id))
	return
}

func validateAuditInput(input AuditInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "Le nom est obligatoire")
	}
	if strings.TrimSpace(input.CompanyID) == "" {
		vErr.add("company_id", "L'entreprise est obligatoire")
	}
	if input.StartDate.IsZero() {
		vErr.add("start_date", "La date de début est obligatoire")
	}
	if input.EndDate.IsZero() {
		vErr.add("end_date", "La date de fin est obligatoire")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		vErr.add("end_date", "La date de fin doit être postérieure à la date de début")
	}
	return vErr
}
