package persistence

import "time"

// Company represents an audited organisation.
type Company struct {
	ID        string
	Name      string
	Industry  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Audit represents a compliance engagement run against a company.
type Audit struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Theme represents a named audit subject area. The reserved names "ADMIN"
// and "Cloture" mark system themes that never receive interview slots.
type Theme struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interview represents a scheduled meeting within an audit. Meetings such as
// the opening session carry no theme. Generated marks rows produced by the
// plan committer so a recommit replaces exactly the prior batch.
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
