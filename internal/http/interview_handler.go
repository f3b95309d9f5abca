package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/audit-planner/internal/application"
)

type interviewService interface {
	CreateInterview(ctx context.Context, input application.InterviewInput) (application.Interview, error)
	ListInterviewsForAudit(ctx context.Context, auditID string) ([]application.Interview, error)
	DeleteInterview(ctx context.Context, id string) error
}

type InterviewHandler struct {
	service   interviewService
	responder responder
	logger    *slog.Logger
}

func NewInterviewHandler(service interviewService, logger *slog.Logger) *InterviewHandler {
	base := defaultLogger(logger)
	return &InterviewHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *InterviewHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "InterviewHandler", operation, attrs...)
}

// Create serves POST /audits/{id}/interviews.
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	auditID, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(auditID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	var req interviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "audit_id", auditID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode interview request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput(auditID)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "audit_id", auditID)
	interview, err := h.service.CreateInterview(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "interview creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("interview_id", interview.ID).InfoContext(r.Context(), "interview created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toInterviewDTO(interview))
}

// ListForAudit serves GET /audits/{id}/interviews.
func (h *InterviewHandler) ListForAudit(w http.ResponseWriter, r *http.Request) {
	auditID, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(auditID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	interviews, err := h.service.ListInterviewsForAudit(r.Context(), auditID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]interviewDTO, 0, len(interviews))
	for _, interview := range interviews {
		dtos = append(dtos, toInterviewDTO(interview))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, interviewListResponse{Interviews: dtos})
}

// Delete serves DELETE /interviews/{id}.
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := InterviewIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterviewID)
		return
	}

	logger := h.log(r.Context(), "Delete", "interview_id", id)
	if err := h.service.DeleteInterview(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "interview delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "interview deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type interviewRequest struct {
	ThemeID         *string `json:"theme_id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Start           string  `json:"start"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        *string `json:"location"`
	MeetingLink     *string `json:"meeting_link"`
}

func (req interviewRequest) toInput(auditID string) (application.InterviewInput, error) {
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return application.InterviewInput{}, errInvalidDate
	}
	return application.InterviewInput{
		AuditID:         auditID,
		ThemeID:         req.ThemeID,
		Title:           req.Title,
		Description:     req.Description,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		MeetingLink:     req.MeetingLink,
	}, nil
}

type interviewDTO struct {
	ID              string  `json:"id"`
	AuditID         string  `json:"audit_id"`
	ThemeID         *string `json:"theme_id,omitempty"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	Start           string  `json:"start"`
	DurationMinutes int     `json:"duration_minutes"`
	Location        *string `json:"location,omitempty"`
	MeetingLink     *string `json:"meeting_link,omitempty"`
	Generated       bool    `json:"generated"`
}

type interviewListResponse struct {
	Interviews []interviewDTO `json:"interviews"`
}

func toInterviewDTO(interview application.Interview) interviewDTO {
	return interviewDTO{
		ID:              interview.ID,
		AuditID:         interview.AuditID,
		ThemeID:         interview.ThemeID,
		Title:           interview.Title,
		Description:     interview.Description,
		Start:           interview.Start.Format(time.RFC3339),
		DurationMinutes: interview.DurationMinutes,
		Location:        interview.Location,
		MeetingLink:     interview.MeetingLink,
		Generated:       interview.Generated,
	}
}
