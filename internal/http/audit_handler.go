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

type auditService interface {
	CreateAudit(ctx context.Context, input application.AuditInput) (application.Audit, error)
	UpdateAudit(ctx context.Context, id string, input application.AuditInput) (application.Audit, error)
	GetAudit(ctx context.Context, id string) (application.Audit, error)
	ListAudits(ctx context.Context, companyID string) ([]application.Audit, error)
	DeleteAudit(ctx context.Context, id string) error
}

type AuditHandler struct {
	service   auditService
	responder responder
	logger    *slog.Logger
}

func NewAuditHandler(service auditService, logger *slog.Logger) *AuditHandler {
	base := defaultLogger(logger)
	return &AuditHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AuditHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "AuditHandler", operation, attrs...)
}

func (h *AuditHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode audit request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "company_id", input.CompanyID)
	audit, err := h.service.CreateAudit(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "audit creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("audit_id", audit.ID).InfoContext(r.Context(), "audit created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toAuditDTO(audit))
}

func (h *AuditHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "audit_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode audit update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Update", "audit_id", id)
	audit, err := h.service.UpdateAudit(r.Context(), id, input)
	if err != nil {
		logger.ErrorContext(r.Context(), "audit update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "audit updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAuditDTO(audit))
}

func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	audit, err := h.service.GetAudit(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAuditDTO(audit))
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	audits, err := h.service.ListAudits(r.Context(), companyID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]auditDTO, 0, len(audits))
	for _, audit := range audits {
		dtos = append(dtos, toAuditDTO(audit))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, auditListResponse{Audits: dtos})
}

func (h *AuditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := AuditIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAuditID)
		return
	}

	logger := h.log(r.Context(), "Delete", "audit_id", id)
	if err := h.service.DeleteAudit(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "audit delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "audit deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type auditRequest struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (req auditRequest) toInput() (application.AuditInput, error) {
	input := application.AuditInput{CompanyID: req.CompanyID, Name: req.Name}
	var err error
	if input.StartDate, err = parseDate(req.StartDate); err != nil {
		return application.AuditInput{}, errInvalidDate
	}
	if input.EndDate, err = parseDate(req.EndDate); err != nil {
		return application.AuditInput{}, errInvalidDate
	}
	return input, nil
}

type auditDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type auditListResponse struct {
	Audits []auditDTO `json:"audits"`
}

func toAuditDTO(audit application.Audit) auditDTO {
	return auditDTO{
		ID:        audit.ID,
		CompanyID: audit.CompanyID,
		Name:      audit.Name,
		StartDate: audit.StartDate.Format(dateLayout),
		EndDate:   audit.EndDate.Format(dateLayout),
		CreatedAt: audit.CreatedAt.Format(time.RFC3339),
		UpdatedAt: audit.UpdatedAt.Format(time.RFC3339),
	}
}
