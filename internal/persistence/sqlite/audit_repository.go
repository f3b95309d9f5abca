package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// AuditRepository implements persistence.AuditRepository using SQLite.
type AuditRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(pool *ConnectionPool) *AuditRepository {
	return &AuditRepository{pool: pool, mapper: NewErrorMapper()}
}

// CreateAudit inserts a new audit engagement.
func (r *AuditRepository) CreateAudit(ctx context.Context, audit persistence.Audit) error {
	if audit.ID == "" || audit.CompanyID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	audit.CreatedAt = now
	audit.UpdatedAt = now

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO audits (id, company_id, name, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		audit.ID,
		audit.CompanyID,
		audit.Name,
		audit.StartDate.Format(time.RFC3339),
		audit.EndDate.Format(time.RFC3339),
		audit.CreatedAt.Format(time.RFC3339),
		audit.UpdatedAt.Format(time.RFC3339),
	)
	return r.mapper.MapError(err)
}

// UpdateAudit updates an existing audit engagement.
func (r *AuditRepository) UpdateAudit(ctx context.Context, audit persistence.Audit) error {
	if audit.ID == "" {
		return persistence.ErrConstraintViolation
	}

	audit.UpdatedAt = time.Now().UTC()

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE audits SET company_id = ?, name = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`,
		audit.CompanyID,
		audit.Name,
		audit.StartDate.Format(time.RFC3339),
		audit.EndDate.Format(time.RFC3339),
		audit.UpdatedAt.Format(time.RFC3339),
		audit.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

// GetAudit retrieves an audit by ID.
func (r *AuditRepository) GetAudit(ctx context.Context, id string) (persistence.Audit, error) {
	if id == "" {
		return persistence.Audit{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, start_date, end_date, created_at, updated_at
		FROM audits WHERE id = ?`, id)

	audit, err := scanAudit(row)
	if err != nil {
		return persistence.Audit{}, r.mapper.MapError(err)
	}
	return audit, nil
}

// ListAudits returns every audit ordered by start date.
func (r *AuditRepository) ListAudits(ctx context.Context) ([]persistence.Audit, error) {
	return r.list(ctx, `
		SELECT id, company_id, name, start_date, end_date, created_at, updated_at
		FROM audits ORDER BY start_date, id`)
}

// ListAuditsForCompany returns the audits of one company ordered by start date.
func (r *AuditRepository) ListAuditsForCompany(ctx context.Context, companyID string) ([]persistence.Audit, error) {
	return r.list(ctx, `
		SELECT id, company_id, name, start_date, end_date, created_at, updated_at
		FROM audits WHERE company_id = ? ORDER BY start_date, id`, companyID)
}

func (r *AuditRepository) list(ctx context.Context, query string, args ...any) ([]persistence.Audit, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	audits := make([]persistence.Audit, 0)
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		audits = append(audits, audit)
	}
	return audits, rows.Err()
}

// DeleteAudit removes an audit; its interviews cascade.
func (r *AuditRepository) DeleteAudit(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM audits WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

func scanAudit(row rowScanner) (persistence.Audit, error) {
	var audit persistence.Audit
	var startDate, endDate, createdAt, updatedAt string

	if err := row.Scan(&audit.ID, &audit.CompanyID, &audit.Name, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		return persistence.Audit{}, err
	}

	var err error
	if audit.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
		return persistence.Audit{}, fmt.Errorf("invalid start_date: %w", err)
	}
	if audit.EndDate, err = time.Parse(time.RFC3339, endDate); err != nil {
		return persistence.Audit{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if audit.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Audit{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if audit.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Audit{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return audit, nil
}
