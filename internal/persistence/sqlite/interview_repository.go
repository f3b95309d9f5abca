package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/audit-planner/internal/logging"
	"github.com/example/audit-planner/internal/persistence"
)

// InterviewRepository implements persistence.InterviewRepository using SQLite.
type InterviewRepository struct {
	pool   *ConnectionPool
	mapper *ErrorMapper
}

// NewInterviewRepository creates a new SQLite interview repository.
func NewInterviewRepository(pool *ConnectionPool) *InterviewRepository {
	return &InterviewRepository{pool: pool, mapper: NewErrorMapper()}
}

const insertInterviewSQL = `
	INSERT INTO interviews (
		id, audit_id, theme_id, title, description, start_time,
		duration_minutes, location, meeting_link, generated, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateInterview inserts a single interview.
func (r *InterviewRepository) CreateInterview(ctx context.Context, interview persistence.Interview) error {
	if interview.ID == "" || interview.AuditID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	interview.CreatedAt = now
	interview.UpdatedAt = now

	_, err := r.pool.db.ExecContext(ctx, insertInterviewSQL, interviewArgs(interview)...)
	return r.mapper.MapError(err)
}

// ListInterviewsForAudit returns every interview stored for the audit,
// ordered by start time. Rows whose stored dates cannot be parsed are
// logged and skipped so one corrupt record does not hide the rest of the
// schedule.
func (r *InterviewRepository) ListInterviewsForAudit(ctx context.Context, auditID string) ([]persistence.Interview, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, audit_id, theme_id, title, description, start_time,
		       duration_minutes, location, meeting_link, generated, created_at, updated_at
		FROM interviews
		WHERE audit_id = ?
		ORDER BY start_time, id`, auditID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	interviews := make([]persistence.Interview, 0)
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			logging.FromContextOrDefault(ctx).Warn("skipping interview with malformed dates",
				slog.String("audit_id", auditID),
				slog.String("error", err.Error()),
			)
			continue
		}
		interviews = append(interviews, interview)
	}
	return interviews, rows.Err()
}

// BulkInsertInterviews inserts every interview inside a single transaction.
// Either all rows are stored or none are.
func (r *InterviewRepository) BulkInsertInterviews(ctx context.Context, interviews []persistence.Interview) error {
	if len(interviews) == 0 {
		return nil
	}
	for _, interview := range interviews {
		if interview.ID == "" || interview.AuditID == "" {
			return persistence.ErrConstraintViolation
		}
	}

	now := time.Now().UTC()
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertInterviewSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, interview := range interviews {
			interview.CreatedAt = now
			interview.UpdatedAt = now
			if _, err := stmt.ExecContext(ctx, interviewArgs(interview)...); err != nil {
				return err
			}
		}
		return nil
	})
	return r.mapper.MapError(err)
}

// DeleteGeneratedInterviews removes the interviews produced by a previous
// plan commit for the audit. Manually created interviews are untouched.
func (r *InterviewRepository) DeleteGeneratedInterviews(ctx context.Context, auditID string) error {
	_, err := r.pool.db.ExecContext(ctx,
		"DELETE FROM interviews WHERE audit_id = ? AND generated = 1", auditID)
	return r.mapper.MapError(err)
}

// DeleteInterview removes an interview by ID.
func (r *InterviewRepository) DeleteInterview(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM interviews WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRows(result)
}

func interviewArgs(interview persistence.Interview) []any {
	return []any{
		interview.ID,
		interview.AuditID,
		nullString(interview.ThemeID),
		interview.Title,
		nullString(interview.Description),
		interview.Start.Format(time.RFC3339),
		interview.DurationMinutes,
		nullString(interview.Location),
		nullString(interview.MeetingLink),
		boolToInt(interview.Generated),
		interview.CreatedAt.Format(time.RFC3339),
		interview.UpdatedAt.Format(time.RFC3339),
	}
}

func scanInterview(row rowScanner) (persistence.Interview, error) {
	var interview persistence.Interview
	var themeID, description, location, meetingLink sql.NullString
	var startTime, createdAt, updatedAt string
	var generated int

	err := row.Scan(
		&interview.ID,
		&interview.AuditID,
		&themeID,
		&interview.Title,
		&description,
		&startTime,
		&interview.DurationMinutes,
		&location,
		&meetingLink,
		&generated,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Interview{}, err
	}

	interview.ThemeID = stringPtr(themeID)
	interview.Description = stringPtr(description)
	interview.Location = stringPtr(location)
	interview.MeetingLink = stringPtr(meetingLink)
	interview.Generated = generated != 0

	if interview.Start, err = time.Parse(time.RFC3339, startTime); err != nil {
		return persistence.Interview{}, fmt.Errorf("invalid start_time: %w", err)
	}
	if interview.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Interview{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if interview.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Interview{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return interview, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
