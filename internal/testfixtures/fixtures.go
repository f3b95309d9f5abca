// Package testfixtures provides deterministic clocks, identifier generators
// and record builders shared by the test suites.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

var (
	companyCounter   uint64
	auditCounter     uint64
	themeCounter     uint64
	interviewCounter uint64
)

var referenceTime = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It falls on a Monday so planning tests can count business days easily.
func ReferenceTime() time.Time {
	return referenceTime
}

// CompanyOption configures a generated company fixture.
type CompanyOption func(*persistence.Company)

// NewCompanyFixture returns a deterministic company record with optional overrides.
func NewCompanyFixture(opts ...CompanyOption) persistence.Company {
	idx := atomic.AddUint64(&companyCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Company{
		ID:        fmt.Sprintf("company-%03d", idx),
		Name:      fmt.Sprintf("Entreprise %03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCompanyID overrides the generated company ID.
func WithCompanyID(id string) CompanyOption {
	return func(c *persistence.Company) { c.ID = id }
}

// WithCompanyName overrides the generated company name.
func WithCompanyName(name string) CompanyOption {
	return func(c *persistence.Company) { c.Name = name }
}

// AuditOption configures a generated audit fixture.
type AuditOption func(*persistence.Audit)

// NewAuditFixture returns a deterministic audit record spanning one working
// week from the reference date.
func NewAuditFixture(opts ...AuditOption) persistence.Audit {
	idx := atomic.AddUint64(&auditCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Audit{
		ID:        fmt.Sprintf("audit-%03d", idx),
		CompanyID: "company-001",
		Name:      fmt.Sprintf("Audit %03d", idx),
		StartDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAuditID overrides the generated audit ID.
func WithAuditID(id string) AuditOption {
	return func(a *persistence.Audit) { a.ID = id }
}

// WithAuditCompany overrides the company the audit belongs to.
func WithAuditCompany(companyID string) AuditOption {
	return func(a *persistence.Audit) { a.CompanyID = companyID }
}

// WithAuditDates overrides the audit date range.
func WithAuditDates(start, end time.Time) AuditOption {
	return func(a *persistence.Audit) {
		a.StartDate = start
		a.EndDate = end
	}
}

// ThemeOption configures a generated theme fixture.
type ThemeOption func(*persistence.Theme)

// NewThemeFixture returns a deterministic theme record with optional overrides.
func NewThemeFixture(opts ...ThemeOption) persistence.Theme {
	idx := atomic.AddUint64(&themeCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Theme{
		ID:        fmt.Sprintf("theme-%03d", idx),
		Name:      fmt.Sprintf("Thématique %03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithThemeID overrides the generated theme ID.
func WithThemeID(id string) ThemeOption {
	return func(t *persistence.Theme) { t.ID = id }
}

// WithThemeName overrides the generated theme name.
func WithThemeName(name string) ThemeOption {
	return func(t *persistence.Theme) { t.Name = name }
}

// InterviewOption configures a generated interview fixture.
type InterviewOption func(*persistence.Interview)

// NewInterviewFixture returns a deterministic interview record with optional overrides.
func NewInterviewFixture(opts ...InterviewOption) persistence.Interview {
	idx := atomic.AddUint64(&interviewCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Interview{
		ID:              fmt.Sprintf("interview-%03d", idx),
		AuditID:         "audit-001",
		Title:           fmt.Sprintf("Entretien %03d", idx),
		Start:           referenceTime.Add(time.Hour),
		DurationMinutes: 60,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithInterviewID overrides the generated interview ID.
func WithInterviewID(id string) InterviewOption {
	return func(i *persistence.Interview) { i.ID = id }
}

// WithInterviewAudit overrides the audit the interview belongs to.
func WithInterviewAudit(auditID string) InterviewOption {
	return func(i *persistence.Interview) { i.AuditID = auditID }
}

// WithInterviewGenerated marks the interview as produced by a plan commit.
func WithInterviewGenerated(generated bool) InterviewOption {
	return func(i *persistence.Interview) { i.Generated = generated }
}
