package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// ThemeRepository implements persistence.ThemeRepository using SQLite.
type ThemeRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewThemeRepository creates a new SQLite theme repository.
func NewThemeRepository(pool *ConnectionPool) *ThemeRepository {
	return &ThemeRepository{pool: pool, mapper: NewErrorMapper()}
}

// CreateTheme inserts a new theme.
func (r *ThemeRepository) CreateTheme(ctx context.Context, theme persistence.Theme) error {
	if theme.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	theme.CreatedAt = now
	theme.UpdatedAt = now

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO themes (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		theme.ID,
		theme.Name,
		theme.Description,
		theme.CreatedAt.Format(time.RFC3339),
		theme.UpdatedAt.Format(time.RFC3339),
	)
	return r.mapper.MapError(err)
}

// UpdateTheme updates an existing theme.
func (r *ThemeRepository) UpdateTheme(ctx context.Context, theme persistence.Theme) error {
	if theme.ID == "" {
		return persistence.ErrConstraintViolation
	}

	theme.UpdatedAt = time.Now().UTC()

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE themes SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		theme.Name,
		theme.Description,
		theme.UpdatedAt.Format(time.RFC3339),
		theme.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

// GetTheme retrieves a theme by ID.
func (r *ThemeRepository) GetTheme(ctx context.Context, id string) (persistence.Theme, error) {
	if id == "" {
		return persistence.Theme{}, persistence.ErrNotFound
	}

	row := r.pool.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at FROM themes WHERE id = ?`, id)

	theme, err := scanTheme(row)
	if err != nil {
		return persistence.Theme{}, r.mapper.MapError(err)
	}
	return theme, nil
}

// ListThemes returns all themes ordered by name.
func (r *ThemeRepository) ListThemes(ctx context.Context) ([]persistence.Theme, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at FROM themes ORDER BY name, id`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	themes := make([]persistence.Theme, 0)
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// DeleteTheme removes a theme by ID.
func (r *ThemeRepository) DeleteTheme(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM themes WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

func scanTheme(row rowScanner) (persistence.Theme, error) {
	var theme persistence.Theme
	var createdAt, updatedAt string

	if err := row.Scan(&theme.ID, &theme.Name, &theme.Description, &createdAt, &updatedAt); err != nil {
		return persistence.Theme{}, err
	}

	var err error
	if theme.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Theme{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if theme.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Theme{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return theme, nil
}
