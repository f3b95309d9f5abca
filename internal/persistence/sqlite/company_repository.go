package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// CompanyRepository implements persistence.CompanyRepository using SQLite.
type CompanyRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewCompanyRepository creates a new SQLite company repository.
func NewCompanyRepository(pool *ConnectionPool) *CompanyRepository {
	return &CompanyRepository{pool: pool, mapper: NewErrorMapper()}
}

// CreateCompany inserts a new company.
func (r *CompanyRepository) CreateCompany(ctx context.Context, company persistence.Company) error {
	if company.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, industry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		company.ID,
		company.Name,
		nullString(company.Industry),
		company.CreatedAt.Format(time.RFC3339),
		company.UpdatedAt.Format(time.RFC3339),
	)
	return r.mapper.MapError(err)
}

// UpdateCompany updates an existing company.
func (r *CompanyRepository) UpdateCompany(ctx context.Context, company persistence.Company) error {
	if company.ID == "" {
		return persistence.ErrConstraintViolation
	}

	company.UpdatedAt = time.Now().UTC()

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE companies SET name = ?, industry = ?, updated_at = ? WHERE id = ?`,
		company.Name,
		nullString(company.Industry),
		company.UpdatedAt.Format(time.RFC3339),
		company.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

// GetCompany retrieves a company by ID.
func (r *CompanyRepository) GetCompany(ctx context.Context, id string) (persistence.Company, error) {
	if id == "" {
		return persistence.Company{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, industry, created_at, updated_at FROM companies WHERE id = ?`, id)

	company, err := scanCompany(row)
	if err != nil {
		return persistence.Company{}, r.mapper.MapError(err)
	}
	return company, nil
}

// ListCompanies returns all companies ordered by creation time.
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]persistence.Company, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, name, industry, created_at, updated_at
		FROM companies ORDER BY created_at, id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	companies := make([]persistence.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// DeleteCompany removes a company by ID.
func (r *CompanyRepository) DeleteCompany(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (persistence.Company, error) {
	var company persistence.Company
	var industry sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&company.ID, &company.Name, &industry, &createdAt, &updatedAt); err != nil {
		return persistence.Company{}, err
	}

	company.Industry = stringPtr(industry)
	var err error
	if company.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Company{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if company.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Company{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return company, nil
}

func requireRows(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}
