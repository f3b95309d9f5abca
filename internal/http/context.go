package http

import (
	"context"
	"log/slog"

	"github.com/example/audit-planner/internal/logging"
)

type contextKey string

const (
	companyIDContextKey   contextKey = "company_id"
	auditIDContextKey     contextKey = "audit_id"
	themeIDContextKey     contextKey = "theme_id"
	interviewIDContextKey contextKey = "interview_id"
)

// ContextWithCompanyID injects the company identifier resolved from the request path.
func ContextWithCompanyID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, companyIDContextKey, id)
}

// CompanyIDFromContext extracts a company identifier previously associated with the context.
func CompanyIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(companyIDContextKey).(string)
	return id, ok
}

// ContextWithAuditID injects the audit identifier resolved from the request path.
func ContextWithAuditID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, auditIDContextKey, id)
}

// AuditIDFromContext extracts an audit identifier previously associated with the context.
func AuditIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(auditIDContextKey).(string)
	return id, ok
}

// ContextWithThemeID injects the theme identifier resolved from the request path.
func ContextWithThemeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, themeIDContextKey, id)
}

// ThemeIDFromContext extracts a theme identifier previously associated with the context.
func ThemeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(themeIDContextKey).(string)
	return id, ok
}

// ContextWithInterviewID injects the interview identifier resolved from the request path.
func ContextWithInterviewID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, interviewIDContextKey, id)
}

// InterviewIDFromContext extracts an interview identifier previously associated with the context.
func InterviewIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(interviewIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.WithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, or nil when absent.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
