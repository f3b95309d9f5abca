package application

import (
	"errors"
	"time"

	"github.com/example/audit-planner/internal/persistence"
	"github.com/example/audit-planner/internal/planning"
)

// Company is an audited organisation as exposed to callers.
type Company struct {
	ID        string
	Name      string
	Industry  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Audit is a compliance engagement run against one company.
type Audit struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Theme is a named audit subject area.
type Theme struct {
	ID          string
	Name        string
	Description string
	System      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interview is a scheduled meeting within an audit.
type Interview struct {
	ID              string
	AuditID         string
	ThemeID         *string
	Title           string
	Description     *string
	Start           time.Time
	DurationMinutes int
	Location        *string
	MeetingLink     *string
	Generated       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompanyInput carries caller-supplied company attributes.
type CompanyInput struct {
	Name     string
	Industry *string
}

// AuditInput carries caller-supplied audit attributes.
type AuditInput struct {
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// ThemeInput carries caller-supplied theme attributes.
type ThemeInput struct {
	Name        string
	Description string
}

// InterviewInput carries caller-supplied interview attributes.
type InterviewInput struct {
	AuditID         string
	ThemeID         *string
	Title           string
	Description     *string
	Start           time.Time
	DurationMinutes int
	Location        *string
	MeetingLink     *string
}

func companyFromRecord(record persistence.Company) Company {
	return Company(record)
}

func auditFromRecord(record persistence.Audit) Audit {
	return Audit(record)
}

func interviewFromRecord(record persistence.Interview) Interview {
	return Interview(record)
}

func themeFromRecord(record persistence.Theme) Theme {
	return Theme{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		System:      planning.IsSystemTheme(record.Name),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// mapRepoError translates persistence sentinels into application sentinels.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrHasDependencies
	default:
		return err
	}
}
