package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/persistence"
)

// InterviewService manages manually created interviews and exposes the full
// schedule of an audit.
type InterviewService struct {
	interviews  persistence.InterviewRepository
	audits      persistence.AuditRepository
	themes      persistence.ThemeRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewInterviewService constructs an interview service with the provided dependencies.
func NewInterviewService(interviews persistence.InterviewRepository, audits persistence.AuditRepository, themes persistence.ThemeRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *InterviewService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &InterviewService{
		interviews:  interviews,
		audits:      audits,
		themes:      themes,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *InterviewService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "InterviewService", operation, attrs...)
}

// CreateInterview validates input and persists a manually scheduled interview.
func (s *InterviewService) CreateInterview(ctx context.Context, input InterviewInput) (interview Interview, err error) {
	logger := s.loggerWith(ctx, "CreateInterview", "audit_id", input.AuditID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create interview", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("interview_id", interview.ID).InfoContext(ctx, "interview created")
	}()

	vErr := validateInterviewInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, err = s.audits.GetAudit(ctx, input.AuditID); err != nil {
		err = mapRepoError(err)
		return
	}
	if input.ThemeID != nil {
		if _, err = s.themes.GetTheme(ctx, *input.ThemeID); err != nil {
			err = ErrUnknownTheme
			return
		}
	}

	now := s.now()
	record := persistence.Interview{
		ID:              s.idGenerator(),
		AuditID:         input.AuditID,
		ThemeID:         input.ThemeID,
		Title:           strings.TrimSpace(input.Title),
		Description:     normalizeOptionalString(input.Description),
		Start:           input.Start,
		DurationMinutes: input.DurationMinutes,
		Location:        normalizeOptionalString(input.Location),
		MeetingLink:     normalizeOptionalString(input.MeetingLink),
		Generated:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = mapRepoError(s.interviews.CreateInterview(ctx, record)); err != nil {
		return
	}
	interview = interviewFromRecord(record)
	return
}

// ListInterviewsForAudit returns the stored schedule of one audit ordered by
// start time. The audit must exist.
func (s *InterviewService) ListInterviewsForAudit(ctx context.Context, auditID string) ([]Interview, error) {
	if _, err := s.audits.GetAudit(ctx, auditID); err != nil {
		return nil, mapRepoError(err)
	}
	records, err := s.interviews.ListInterviewsForAudit(ctx, auditID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	interviews := make([]Interview, 0, len(records))
	for _, record := range records {
		interviews = append(interviews, interviewFromRecord(record))
	}
	return interviews, nil
}

// DeleteInterview removes an interview by ID.
func (s *InterviewService) DeleteInterview(ctx context.Context, id string) (err error) {
	logger := s.loggerWith(ctx, "DeleteInterview", "interview_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete interview", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "interview deleted")
	}()

	err = mapRepoError(s.interviews.DeleteInterview(ctx, id))
	return
}

func validateInterviewInput(input InterviewInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.AuditID) == "" {
		vErr.add("audit_id", "L'audit est obligatoire")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "Le titre est obligatoire")
	}
	if input.Start.IsZero() {
		vErr.add("start", "La date de début est obligatoire")
	}
	if input.DurationMinutes <= 0 {
		vErr.add("duration_minutes", "La durée doit être strictement positive")
	}
	return vErr
}
