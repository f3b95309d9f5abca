// Package memory provides an in-process persistence implementation used by
// tests and local tooling. Behavior mirrors the SQLite repositories.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/audit-planner/internal/persistence"
)

// Store keeps every record in process memory behind a single lock. All
// returned records are copies; callers never share slices or pointers with
// the store.
type Store struct {
	mu         sync.RWMutex
	companies  map[string]persistence.Company
	audits     map[string]persistence.Audit
	themes     map[string]persistence.Theme
	interviews map[string]persistence.Interview
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		companies:  make(map[string]persistence.Company),
		audits:     make(map[string]persistence.Audit),
		themes:     make(map[string]persistence.Theme),
		interviews: make(map[string]persistence.Interview),
	}
}

// --- CompanyRepository implementation ---

func (s *Store) CreateCompany(ctx context.Context, company persistence.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[company.ID]; ok {
		return persistence.ErrDuplicate
	}
	if err := s.ensureUniqueCompanyNameLocked(company.ID, company.Name); err != nil {
		return err
	}
	s.companies[company.ID] = cloneCompany(company)
	return nil
}

func (s *Store) UpdateCompany(ctx context.Context, company persistence.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[company.ID]; !ok {
		return persistence.ErrNotFound
	}
	if err := s.ensureUniqueCompanyNameLocked(company.ID, company.Name); err != nil {
		return err
	}
	s.companies[company.ID] = cloneCompany(company)
	return nil
}

func (s *Store) GetCompany(ctx context.Context, id string) (persistence.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[id]
	if !ok {
		return persistence.Company{}, persistence.ErrNotFound
	}
	return cloneCompany(company), nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]persistence.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies := make([]persistence.Company, 0, len(s.companies))
	for _, company := range s.companies {
		companies = append(companies, cloneCompany(company))
	}
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].CreatedAt.Equal(companies[j].CreatedAt) {
			return companies[i].ID < companies[j].ID
		}
		return companies[i].CreatedAt.Before(companies[j].CreatedAt)
	})
	return companies, nil
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return persistence.ErrNotFound
	}
	for _, audit := range s.audits {
		if audit.CompanyID == id {
			return persistence.ErrForeignKeyViolation
		}
	}
	delete(s.companies, id)
	return nil
}

func (s *Store) ensureUniqueCompanyNameLocked(id, name string) error {
	lower := strings.ToLower(name)
	for _, company := range s.companies {
		if company.ID != id && strings.ToLower(company.Name) == lower {
			return persistence.ErrDuplicate
		}
	}
	return nil
}

// --- AuditRepository implementation ---

func (s *Store) CreateAudit(ctx context.Context, audit persistence.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.audits[audit.ID]; ok {
		return persistence.ErrDuplicate
	}
	if _, ok := s.companies[audit.CompanyID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	s.audits[audit.ID] = audit
	return nil
}

func (s *Store) UpdateAudit(ctx context.Context, audit persistence.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.audits[audit.ID]; !ok {
		return persistence.ErrNotFound
	}
	if _, ok := s.companies[audit.CompanyID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	s.audits[audit.ID] = audit
	return nil
}

func (s *Store) GetAudit(ctx context.Context, id string) (persistence.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	audit, ok := s.audits[id]
	if !ok {
		return persistence.Audit{}, persistence.ErrNotFound
	}
	return audit, nil
}

func (s *Store) ListAudits(ctx context.Context) ([]persistence.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAuditsLocked(""), nil
}

func (s *Store) ListAuditsForCompany(ctx context.Context, companyID string) ([]persistence.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAuditsLocked(companyID), nil
}

func (s *Store) listAuditsLocked(companyID string) []persistence.Audit {
	audits := make([]persistence.Audit, 0, len(s.audits))
	for _, audit := range s.audits {
		if companyID != "" && audit.CompanyID != companyID {
			continue
		}
		audits = append(audits, audit)
	}
	sort.Slice(audits, func(i, j int) bool {
		if audits[i].StartDate.Equal(audits[j].StartDate) {
			return audits[i].ID < audits[j].ID
		}
		return audits[i].StartDate.Before(audits[j].StartDate)
	})
	return audits
}

func (s *Store) DeleteAudit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.audits[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.audits, id)
	for interviewID, interview := range s.interviews {
		if interview.AuditID == id {
			delete(s.interviews, interviewID)
		}
	}
	return nil
}

// --- ThemeRepository implementation ---

func (s *Store) CreateTheme(ctx context.Context, theme persistence.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[theme.ID]; ok {
		return persistence.ErrDuplicate
	}
	if err := s.ensureUniqueThemeNameLocked(theme.ID, theme.Name); err != nil {
		return err
	}
	s.themes[theme.ID] = theme
	return nil
}

func (s *Store) UpdateTheme(ctx context.Context, theme persistence.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[theme.ID]; !ok {
		return persistence.ErrNotFound
	}
	if err := s.ensureUniqueThemeNameLocked(theme.ID, theme.Name); err != nil {
		return err
	}
	s.themes[theme.ID] = theme
	return nil
}

func (s *Store) GetTheme(ctx context.Context, id string) (persistence.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	theme, ok := s.themes[id]
	if !ok {
		return persistence.Theme{}, persistence.ErrNotFound
	}
	return theme, nil
}

func (s *Store) ListThemes(ctx context.Context) ([]persistence.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	themes := make([]persistence.Theme, 0, len(s.themes))
	for _, theme := range s.themes {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Name == themes[j].Name {
			return themes[i].ID < themes[j].ID
		}
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}

func (s *Store) DeleteTheme(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[id]; !ok {
		return persistence.ErrNotFound
	}
	for _, interview := range s.interviews {
		if interview.ThemeID != nil && *interview.ThemeID == id {
			return persistence.ErrForeignKeyViolation
		}
	}
	delete(s.themes, id)
	return nil
}

func (s *Store) ensureUniqueThemeNameLocked(id, name string) error {
	lower := strings.ToLower(name)
	for _, theme := range s.themes {
		if theme.ID != id && strings.ToLower(theme.Name) == lower {
			return persistence.ErrDuplicate
		}
	}
	return nil
}

// --- InterviewRepository implementation ---

func (s *Store) CreateInterview(ctx context.Context, interview persistence.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertInterviewLocked(interview)
}

func (s *Store) BulkInsertInterviews(ctx context.Context, interviews []persistence.Interview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state so a failure leaves
	// nothing half-written.
	for _, interview := range interviews {
		if _, ok := s.interviews[interview.ID]; ok {
			return persistence.ErrDuplicate
		}
		if _, ok := s.audits[interview.AuditID]; !ok {
			return persistence.ErrForeignKeyViolation
		}
		if interview.DurationMinutes <= 0 {
			return persistence.ErrConstraintViolation
		}
	}
	for _, interview := range interviews {
		s.interviews[interview.ID] = cloneInterview(interview)
	}
	return nil
}

func (s *Store) insertInterviewLocked(interview persistence.Interview) error {
	if _, ok := s.interviews[interview.ID]; ok {
		return persistence.ErrDuplicate
	}
	if _, ok := s.audits[interview.AuditID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	if interview.DurationMinutes <= 0 {
		return persistence.ErrConstraintViolation
	}
	s.interviews[interview.ID] = cloneInterview(interview)
	return nil
}

func (s *Store) ListInterviewsForAudit(ctx context.Context, auditID string) ([]persistence.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interviews := make([]persistence.Interview, 0)
	for _, interview := range s.interviews {
		if interview.AuditID != auditID {
			continue
		}
		interviews = append(interviews, cloneInterview(interview))
	}
	sort.Slice(interviews, func(i, j int) bool {
		if interviews[i].Start.Equal(interviews[j].Start) {
			return interviews[i].ID < interviews[j].ID
		}
		return interviews[i].Start.Before(interviews[j].Start)
	})
	return interviews, nil
}

func (s *Store) DeleteGeneratedInterviews(ctx context.Context, auditID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, interview := range s.interviews {
		if interview.AuditID == auditID && interview.Generated {
			delete(s.interviews, id)
		}
	}
	return nil
}

func (s *Store) DeleteInterview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.interviews[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.interviews, id)
	return nil
}

func cloneCompany(company persistence.Company) persistence.Company {
	out := company
	if company.Industry != nil {
		industry := *company.Industry
		out.Industry = &industry
	}
	return out
}

func cloneInterview(interview persistence.Interview) persistence.Interview {
	out := interview
	if interview.ThemeID != nil {
		themeID := *interview.ThemeID
		out.ThemeID = &themeID
	}
	if interview.Description != nil {
		description := *interview.Description
		out.Description = &description
	}
	if interview.Location != nil {
		location := *interview.Location
		out.Location = &location
	}
	if interview.MeetingLink != nil {
		link := *interview.MeetingLink
		out.MeetingLink = &link
	}
	return out
}
