package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/application"
	"github.com/example/audit-planner/internal/planning"
)

type planService interface {
	Preview(ctx context.Context, params application.PlanParams) (application.PlanResult, error)
	Commit(ctx context.Context, params application.PlanParams) (application.PlanResult, error)
}

type PlanHandler struct {
	service   planService
	responder responder
	logger    *slog.Logger
}

func NewPlanHandler(service planService, logger *slog.Logger) *PlanHandler {
	base := defaultLogger(logger)
	return &PlanHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *PlanHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "PlanHandler", operation, attrs...)
}

// Preview serves POST /audits/{id}/plan/preview.
func (h *PlanHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "Preview", h.service.Preview)
}

// Commit serves POST /audits/{id}/plan.
func (h *PlanHandler) Commit(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "Commit", h.service.Commit)
}

func (h *PlanHandler) run(w http.ResponseWriter, r *http.Request, operation string, call func(context.Context, application.PlanParams) (application.PlanResult, error)) {
	auditID, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(auditID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), operation, "audit_id", auditID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode plan request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	params, err := req.toParams(auditID)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), operation, "audit_id", auditID)
	result, err := call(r.Context(), params)
	if err != nil {
		logger.ErrorContext(r.Context(), "plan generation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "plan generated", "items", len(result.Items), "overflow", result.Overflow, "committed", result.Committed)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPlanDTO(result))
}

type planRequest struct {
	StartDate             string         `json:"start_date"`
	EndDate               string         `json:"end_date"`
	TopicIDs              []string       `json:"topic_ids"`
	SelectedDays          []string       `json:"selected_days"`
	ThemeDurations        map[string]int `json:"theme_durations"`
	MaxHoursPerDay        int            `json:"max_hours_per_day"`
	IncludeOpeningClosing bool           `json:"include_opening_closing"`
}

func (req planRequest) toParams(auditID string) (application.PlanParams, error) {
	params := application.PlanParams{
		AuditID:               auditID,
		ThemeIDs:              req.TopicIDs,
		ThemeDurations:        req.ThemeDurations,
		MaxMinutesPerDay:      req.MaxHoursPerDay * 60,
		IncludeOpeningClosing: req.IncludeOpeningClosing,
	}

	var err error
	if params.StartDate, err = parseDate(req.StartDate); err != nil {
		return application.PlanParams{}, err
	}
	if params.EndDate, err = parseDate(req.EndDate); err != nil {
		return application.PlanParams{}, err
	}
	for _, raw := range req.SelectedDays {
		day, err := parseDate(raw)
		if err != nil {
			return application.PlanParams{}, err
		}
		if !day.IsZero() {
			params.SelectedDays = append(params.SelectedDays, day)
		}
	}
	return params, nil
}

type planItemDTO struct {
	Kind        string `json:"kind"`
	ThemeID     string `json:"theme_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Minutes     int    `json:"duration_minutes"`
}

type planResponse struct {
	AuditID            string        `json:"audit_id"`
	Items              []planItemDTO `json:"items"`
	Overflow           bool          `json:"overflow"`
	IdealMinutesPerDay int           `json:"ideal_minutes_per_day"`
	Warnings           []string      `json:"warnings,omitempty"`
	Committed          bool          `json:"committed"`
}

func toPlanDTO(result application.PlanResult) planResponse {
	items := make([]planItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toPlanItemDTO(item))
	}
	return planResponse{
		AuditID:            result.AuditID,
		Items:              items,
		Overflow:           result.Overflow,
		IdealMinutesPerDay: result.IdealMinutesPerDay,
		Warnings:           result.Warnings,
		Committed:          result.Committed,
	}
}

func toPlanItemDTO(item planning.Item) planItemDTO {
	return planItemDTO{
		Kind:        string(item.Kind),
		ThemeID:     string(item.ThemeID),
		Title:       item.Title,
		Description: item.Description,
		Start:       item.Start.Format(time.RFC3339),
		End:         item.End().Format(time.RFC3339),
		Minutes:     item.Minutes,
	}
}
