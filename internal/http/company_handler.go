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

type companyService interface {
	CreateCompany(ctx context.Context, input application.CompanyInput) (application.Company, error)
	UpdateCompany(ctx context.Context, id string, input application.CompanyInput) (application.Company, error)
	GetCompany(ctx context.Context, id string) (application.Company, error)
	ListCompanies(ctx context.Context) ([]application.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

type auditLister interface {
	ListAudits(ctx context.Context, companyID string) ([]application.Audit, error)
}

type CompanyHandler struct {
	service   companyService
	audits    auditLister
	responder responder
	logger    *slog.Logger
}

func NewCompanyHandler(service companyService, audits auditLister, logger *slog.Logger) *CompanyHandler {
	base := defaultLogger(logger)
	return &CompanyHandler{service: service, audits: audits, responder: newResponder(base), logger: base}
}

func (h *CompanyHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "CompanyHandler", operation, attrs...)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode company request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	company, err := h.service.CreateCompany(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "company creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("company_id", company.ID).InfoContext(r.Context(), "company created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toCompanyDTO(company))
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := CompanyIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCompanyID)
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "company_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode company update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "company_id", id)
	company, err := h.service.UpdateCompany(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "company update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "company updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCompanyDTO(company))
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := CompanyIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCompanyID)
		return
	}

	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toCompanyDTO(company))
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]companyDTO, 0, len(companies))
	for _, company := range companies {
		dtos = append(dtos, toCompanyDTO(company))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, companyListResponse{Companies: dtos})
}

// ListAudits serves GET /companies/{id}/audits.
func (h *CompanyHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	id, ok := CompanyIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCompanyID)
		return
	}

	if _, err := h.service.GetCompany(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	audits, err := h.audits.ListAudits(r.Context(), id)
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

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := CompanyIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCompanyID)
		return
	}

	logger := h.log(r.Context(), "Delete", "company_id", id)
	if err := h.service.DeleteCompany(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "company delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "company deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type companyRequest struct {
	Name     string  `json:"name"`
	Industry *string `json:"industry"`
}

func (req companyRequest) toInput() application.CompanyInput {
	return application.CompanyInput{Name: req.Name, Industry: req.Industry}
}

type companyDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Industry  *string `json:"industry,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type companyListResponse struct {
	Companies []companyDTO `json:"companies"`
}

func toCompanyDTO(company application.Company) companyDTO {
	return companyDTO{
		ID:        company.ID,
		Name:      company.Name,
		Industry:  company.Industry,
		CreatedAt: company.CreatedAt.Format(time.RFC3339),
		UpdatedAt: company.UpdatedAt.Format(time.RFC3339),
	}
}
