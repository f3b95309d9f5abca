package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/audit-planner/internal/persistence"
	"github.com/example/audit-planner/internal/planning"
)

// PlanParams describes one plan generation request. SelectedDays defaults to
// the business days of the date range, and the date range defaults to the
// audit's own dates.
type PlanParams struct {
	AuditID               string
	StartDate             time.Time
	EndDate               time.Time
	SelectedDays          []time.Time
	ThemeIDs              []string
	ThemeDurations        map[string]int
	MaxMinutesPerDay      int
	IncludeOpeningClosing bool
}

// PlanResult is the outcome of a preview or commit. Preview and commit run
// the exact same generation; commit additionally persists the items.
type PlanResult struct {
	AuditID            string
	Items              []planning.Item
	Overflow           bool
	IdealMinutesPerDay int
	Warnings           []string
	Committed          bool
}

// PlanService generates audit schedules and commits them to storage.
type PlanService struct {
	calendar    planning.Calendar
	audits      persistence.AuditRepository
	themes      persistence.ThemeRepository
	interviews  persistence.InterviewRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewPlanService constructs a plan service with the provided dependencies.
func NewPlanService(calendar planning.Calendar, audits persistence.AuditRepository, themes persistence.ThemeRepository, interviews persistence.InterviewRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *PlanService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &PlanService{
		calendar:    calendar,
		audits:      audits,
		themes:      themes,
		interviews:  interviews,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *PlanService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PlanService", operation, attrs...)
}

// Preview generates a schedule without persisting anything. An empty day
// selection yields an empty result rather than an error so callers can render
// a blank calendar.
func (s *PlanService) Preview(ctx context.Context, params PlanParams) (result PlanResult, err error) {
	logger := s.loggerWith(ctx, "Preview", "audit_id", params.AuditID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to preview plan", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "plan previewed", "items", len(result.Items), "overflow", result.Overflow)
	}()

	var days []time.Time
	var slots []planning.ThemeSlot
	days, slots, err = s.resolveRequest(ctx, &params)
	if err != nil {
		return
	}
	if len(days) == 0 {
		result = PlanResult{AuditID: params.AuditID}
		return
	}

	result = s.generate(params, days, slots)
	return
}

// Commit generates a schedule and persists it. Previously committed items for
// the audit are removed first; manually created interviews survive. A failed
// removal is logged and the insert still proceeds.
func (s *PlanService) Commit(ctx context.Context, params PlanParams) (result PlanResult, err error) {
	logger := s.loggerWith(ctx, "Commit", "audit_id", params.AuditID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to commit plan", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "plan committed", "items", len(result.Items), "overflow", result.Overflow)
	}()

	var days []time.Time
	var slots []planning.ThemeSlot
	days, slots, err = s.resolveRequest(ctx, &params)
	if err != nil {
		return
	}
	if len(days) == 0 {
		vErr := &ValidationError{}
		vErr.add("selected_days", "Aucun jour ouvré sélectionné")
		err = vErr
		return
	}
	if err = s.checkCapacity(days, slots, params.MaxMinutesPerDay); err != nil {
		return
	}

	result = s.generate(params, days, slots)

	if deleteErr := s.interviews.DeleteGeneratedInterviews(ctx, params.AuditID); deleteErr != nil {
		// Leftover items from the previous commit are preferable to losing
		// the new plan, so keep going.
		logger.WarnContext(ctx, "failed to delete previously generated interviews", "error", deleteErr)
	}

	records := s.itemsToRecords(params.AuditID, result.Items)
	if err = mapRepoError(s.interviews.BulkInsertInterviews(ctx, records)); err != nil {
		result = PlanResult{}
		return
	}
	result.Committed = true
	return
}

// resolveRequest validates the audit, defaults the day selection, and turns
// theme IDs into named slots with durations.
func (s *PlanService) resolveRequest(ctx context.Context, params *PlanParams) ([]time.Time, []planning.ThemeSlot, error) {
	audit, err := s.audits.GetAudit(ctx, params.AuditID)
	if err != nil {
		return nil, nil, mapRepoError(err)
	}

	days := params.SelectedDays
	if len(days) == 0 {
		start, end := params.StartDate, params.EndDate
		if start.IsZero() {
			start = audit.StartDate
		}
		if end.IsZero() {
			end = audit.EndDate
		}
		days = planning.BusinessDays(start, end)
	}

	slots := make([]planning.ThemeSlot, 0, len(params.ThemeIDs))
	for _, id := range params.ThemeIDs {
		theme, err := s.themes.GetTheme(ctx, id)
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTheme, id)
		}
		if err != nil {
			return nil, nil, mapRepoError(err)
		}

		minutes := params.ThemeDurations[id]
		if minutes < 0 {
			vErr := &ValidationError{}
			vErr.add("theme_durations", "La durée doit être strictement positive")
			return nil, nil, vErr
		}
		slots = append(slots, planning.ThemeSlot{
			ID:      planning.ThemeID(theme.ID),
			Name:    theme.Name,
			Minutes: minutes,
		})
	}
	return days, slots, nil
}

// checkCapacity rejects commits whose thematic minutes cannot fit in the
// selected days even at the daily ceiling.
func (s *PlanService) checkCapacity(days []time.Time, slots []planning.ThemeSlot, maxMinutesPerDay int) error {
	total := 0
	for _, slot := range slots {
		if planning.IsSystemTheme(slot.Name) {
			continue
		}
		minutes := slot.Minutes
		if minutes <= 0 {
			minutes = planning.DefaultInterviewMinutes
		}
		total += minutes
	}
	if total == 0 {
		return nil
	}

	perDay := s.calendar.EffectiveMinutesPerDay()
	if maxMinutesPerDay > 0 && maxMinutesPerDay < perDay {
		perDay = maxMinutesPerDay
	}
	required := (total + perDay - 1) / perDay
	if required > len(days) {
		vErr := &ValidationError{}
		vErr.add("selected_days", fmt.Sprintf(
			"Capacité insuffisante : %d jours requis, %d sélectionnés", required, len(days)))
		return vErr
	}
	return nil
}

func (s *PlanService) generate(params PlanParams, days []time.Time, slots []planning.ThemeSlot) PlanResult {
	plan := planning.Generate(s.calendar, planning.Request{
		AuditID:               params.AuditID,
		Days:                  days,
		Themes:                slots,
		IncludeOpeningClosing: params.IncludeOpeningClosing,
		MaxMinutesPerDay:      params.MaxMinutesPerDay,
	})

	result := PlanResult{
		AuditID:            params.AuditID,
		Items:              plan.Items,
		Overflow:           plan.Overflow,
		IdealMinutesPerDay: plan.IdealMinutesPerDay,
	}
	if plan.Overflow {
		result.Warnings = append(result.Warnings,
			"La charge dépasse la capacité des jours sélectionnés")
	}
	for _, overlap := range planning.DetectOverlaps(plan.Items) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Chevauchement entre « %s » et « %s »", overlap.First.Title, overlap.Second.Title))
	}
	return result
}

// itemsToRecords converts generated items into interview rows flagged so a
// later commit can replace exactly this batch.
func (s *PlanService) itemsToRecords(auditID string, items []planning.Item) []persistence.Interview {
	now := s.now()
	records := make([]persistence.Interview, 0, len(items))
	for _, item := range items {
		record := persistence.Interview{
			ID:              s.idGenerator(),
			AuditID:         auditID,
			Title:           item.Title,
			Start:           item.Start,
			DurationMinutes: item.Minutes,
			Generated:       true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if item.ThemeID != "" {
			themeID := string(item.ThemeID)
			record.ThemeID = &themeID
		}
		if item.Description != "" {
			description := item.Description
			record.Description = &description
		}
		records = append(records, record)
	}
	return records
}
