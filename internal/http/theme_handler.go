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

type themeService interface {
	CreateTheme(ctx context.Context, input application.ThemeInput) (application.Theme, error)
	UpdateTheme(ctx context.Context, id string, input application.ThemeInput) (application.Theme, error)
	GetTheme(ctx context.Context, id string) (application.Theme, error)
	ListThemes(ctx context.Context) ([]application.Theme, error)
	DeleteTheme(ctx context.Context, id string) error
}

type ThemeHandler struct {
	service   themeService
	responder responder
	logger    *slog.Logger
}

func NewThemeHandler(service themeService, logger *slog.Logger) *ThemeHandler {
	base := defaultLogger(logger)
	return &ThemeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ThemeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "ThemeHandler", operation, attrs...)
}

func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode theme request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	theme, err := h.service.CreateTheme(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "theme creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("theme_id", theme.ID).InfoContext(r.Context(), "theme created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toThemeDTO(theme))
}

func (h *ThemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ThemeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidThemeID)
		return
	}

	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "theme_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode theme update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "theme_id", id)
	theme, err := h.service.UpdateTheme(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "theme update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "theme updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toThemeDTO(theme))
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ThemeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidThemeID)
		return
	}

	theme, err := h.service.GetTheme(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toThemeDTO(theme))
}

func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.service.ListThemes(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]themeDTO, 0, len(themes))
	for _, theme := range themes {
		dtos = append(dtos, toThemeDTO(theme))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, themeListResponse{Themes: dtos})
}

func (h *ThemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ThemeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidThemeID)
		return
	}

	logger := h.log(r.Context(), "Delete", "theme_id", id)
	if err := h.service.DeleteTheme(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "theme delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "theme deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type themeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req themeRequest) toInput() application.ThemeInput {
	return application.ThemeInput{Name: req.Name, Description: req.Description}
}

type themeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	System      bool   `json:"system"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type themeListResponse struct {
	Themes []themeDTO `json:"themes"`
}

func toThemeDTO(theme application.Theme) themeDTO {
	return themeDTO{
		ID:          theme.ID,
		Name:        theme.Name,
		Description: theme.Description,
		System:      theme.System,
		CreatedAt:   theme.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   theme.UpdatedAt.Format(time.RFC3339),
	}
}
