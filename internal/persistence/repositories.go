package persistence

import "context"

// CompanyRepository exposes CRUD operations for companies.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company Company) error
	UpdateCompany(ctx context.Context, company Company) error
	GetCompany(ctx context.Context, id string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

// AuditRepository exposes CRUD operations for audit engagements.
type AuditRepository interface {
	CreateAudit(ctx context.Context, audit Audit) error
	UpdateAudit(ctx context.Context, audit Audit) error
	GetAudit(ctx context.Context, id string) (Audit, error)
	ListAudits(ctx context.Context) ([]Audit, error)
	ListAuditsForCompany(ctx context.Context, companyID string) ([]Audit, error)
	DeleteAudit(ctx context.Context, id string) error
}

// ThemeRepository exposes CRUD operations for audit themes.
type ThemeRepository interface {
	CreateTheme(ctx context.Context, theme Theme) error
	UpdateTheme(ctx context.Context, theme Theme) error
	GetTheme(ctx context.Context, id string) (Theme, error)
	ListThemes(ctx context.Context) ([]Theme, error)
	DeleteTheme(ctx context.Context, id string) error
}

// InterviewRepository stores scheduled interviews and plan meetings.
type InterviewRepository interface {
	CreateInterview(ctx context.Context, interview Interview) error
	ListInterviewsForAudit(ctx context.Context, auditID string) ([]Interview, error)
	BulkInsertInterviews(ctx context.Context, interviews []Interview) error
	DeleteGeneratedInterviews(ctx context.Context, auditID string) error
	DeleteInterview(ctx context.Context, id string) error
}
